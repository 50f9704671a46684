package estoque_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
)

func saldoCom(descricao, estoqueAtual string) estoque.SaldoProduto {
	return estoque.SaldoProduto{
		Produto:      estoque.ProdutoID{Descricao: descricao, UnidadeMedida: "UN"},
		EstoqueAtual: dec(estoqueAtual),
	}
}

// Cenário C: com limite 10, estoque 5 entra na lista; 0 e 11 ficam fora.
func TestFiltrarEstoqueBaixo_ConjuntoExato(t *testing.T) {
	saldos := []estoque.SaldoProduto{
		saldoCom("Arroz", "5"),
		saldoCom("Feijão", "0"),
		saldoCom("Óleo", "11"),
		saldoCom("Açúcar", "10"),
	}

	baixos := estoque.FiltrarEstoqueBaixo(saldos, estoque.LimiteAlertaPadrao)

	require.Len(t, baixos, 2, "apenas 0 < estoque ≤ 10 entram na lista")
	assert.Equal(t, "Arroz", baixos[0].Produto.Descricao)
	assert.Equal(t, "Açúcar", baixos[1].Produto.Descricao, "fronteira estoque == limite é incluída")
}

// Estoque zerado é "esgotado", não "baixo": fica fora da lista mesmo com
// qualquer limite.
func TestFiltrarEstoqueBaixo_ZeroExcluido(t *testing.T) {
	baixos := estoque.FiltrarEstoqueBaixo([]estoque.SaldoProduto{saldoCom("Feijão", "0")}, dec("100"))

	assert.Empty(t, baixos)
}

func TestFiltrarEstoqueBaixo_ListaVazia(t *testing.T) {
	baixos := estoque.FiltrarEstoqueBaixo(nil, estoque.LimiteAlertaPadrao)

	assert.NotNil(t, baixos, "deve devolver slice vazio, não nil")
	assert.Empty(t, baixos)
}

func TestClassificarSeveridade_Faixas(t *testing.T) {
	casos := []struct {
		estoque  string
		esperado estoque.Severidade
	}{
		{"1", estoque.SeveridadeCritica},
		{"5", estoque.SeveridadeCritica},
		{"6", estoque.SeveridadeBaixa},
		{"10", estoque.SeveridadeBaixa},
		{"11", estoque.SeveridadeNormal},
	}
	for _, c := range casos {
		got := estoque.ClassificarSeveridade(dec(c.estoque), estoque.LimiteCriticoPadrao, estoque.LimiteAlertaPadrao)
		assert.Equal(t, c.esperado, got, "estoque %s", c.estoque)
	}
}
