package estoque_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
)

// Política desligada (padrão): identidade é comparada byte a byte, grafias
// diferentes são produtos diferentes.
func TestNormalizador_Desligado(t *testing.T) {
	n := estoque.Normalizador{Ativo: false}

	p := n.Aplicar(estoque.ProdutoID{Descricao: "  ARROZ ", UnidadeMedida: "Un"})

	assert.Equal(t, "  ARROZ ", p.Descricao, "sem normalização a identidade deve ficar intocada")
	assert.Equal(t, "Un", p.UnidadeMedida)
}

func TestNormalizador_Ligado(t *testing.T) {
	n := estoque.Normalizador{Ativo: true}

	a := n.Aplicar(estoque.ProdutoID{Descricao: "  ARROZ Tipo 1 ", UnidadeMedida: "UN"})
	b := n.Aplicar(estoque.ProdutoID{Descricao: "arroz tipo 1", UnidadeMedida: "un"})

	assert.Equal(t, a, b, "com a política ativa, variações de caixa e espaços devem convergir")
}
