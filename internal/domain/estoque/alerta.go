package estoque

import "github.com/shopspring/decimal"

// Limites padrão de alerta de estoque baixo.
var (
	LimiteAlertaPadrao  = decimal.NewFromInt(10)
	LimiteCriticoPadrao = decimal.NewFromInt(5)
)

// Severidade de um alerta de estoque.
type Severidade string

const (
	SeveridadeCritica Severidade = "critica"
	SeveridadeBaixa   Severidade = "baixa"
	SeveridadeNormal  Severidade = "normal"
)

// FiltrarEstoqueBaixo devolve exatamente os saldos com 0 < EstoqueAtual ≤ limite.
// Estoque zerado é condição distinta ("esgotado") e fica deliberadamente fora
// da lista de estoque baixo.
func FiltrarEstoqueBaixo(saldos []SaldoProduto, limite decimal.Decimal) []SaldoProduto {
	baixos := make([]SaldoProduto, 0)
	for _, s := range saldos {
		if s.EstoqueAtual.IsPositive() && s.EstoqueAtual.LessThanOrEqual(limite) {
			baixos = append(baixos, s)
		}
	}
	return baixos
}

// ClassificarSeveridade aplica as faixas de apresentação:
// estoque ≤ limiteCritico → crítica; limiteCritico < estoque ≤ limiteAlerta → baixa;
// acima disso → normal.
func ClassificarSeveridade(estoqueAtual, limiteCritico, limiteAlerta decimal.Decimal) Severidade {
	switch {
	case estoqueAtual.LessThanOrEqual(limiteCritico):
		return SeveridadeCritica
	case estoqueAtual.LessThanOrEqual(limiteAlerta):
		return SeveridadeBaixa
	default:
		return SeveridadeNormal
	}
}
