package estoque_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
)

// Cenário B: com 70 UN disponíveis, saída de 80 é reprovada e o resultado
// informa o estoque exato restante.
func TestValidarSaida_EstoqueInsuficiente(t *testing.T) {
	notas, movs := cenarioArroz()

	res := estoque.ValidarSaida(arroz, dec("80"), notas, movs)

	assert.False(t, res.Valida, "saída de 80 com 70 disponíveis deve ser reprovada")
	assert.True(t, dec("70").Equal(res.EstoqueDisponivel), "estoque disponível deve ser 70")
	assert.Contains(t, res.Mensagem, "70", "mensagem deve informar o estoque restante exato")
}

func TestValidarSaida_QuantidadeNaoPositiva(t *testing.T) {
	notas, movs := cenarioArroz()

	for _, qtd := range []string{"0", "-5"} {
		res := estoque.ValidarSaida(arroz, dec(qtd), notas, movs)
		assert.False(t, res.Valida, "quantidade %s deve ser reprovada", qtd)
		assert.Equal(t, "quantidade deve ser maior que zero", res.Mensagem)
	}
}

func TestValidarSaida_DentroDoDisponivel(t *testing.T) {
	notas, movs := cenarioArroz()

	res := estoque.ValidarSaida(arroz, dec("50"), notas, movs)

	assert.True(t, res.Valida)
	assert.True(t, dec("70").Equal(res.EstoqueDisponivel))
	assert.Empty(t, res.Mensagem)
}

// Fronteira: sacar exatamente o estoque disponível é válido.
func TestValidarSaida_ExatamenteODisponivel(t *testing.T) {
	notas, movs := cenarioArroz()

	res := estoque.ValidarSaida(arroz, dec("70"), notas, movs)

	assert.True(t, res.Valida, "saída igual ao estoque disponível deve ser aprovada")
}

func TestValidarSaida_ProdutoSemHistorico(t *testing.T) {
	res := estoque.ValidarSaida(estoque.ProdutoID{Descricao: "Caderno", UnidadeMedida: "UN"}, dec("1"), nil, nil)

	assert.False(t, res.Valida)
	assert.True(t, res.EstoqueDisponivel.IsZero())
}
