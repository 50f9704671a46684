package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaldoEstoque é o agregado materializado por (unidade, produto), atualizado
// transacionalmente a cada aprovação de nota e a cada movimentação. Serve como
// linha de bloqueio e caminho rápido de listagem; a recomputação pura sobre o
// histórico continua sendo a fonte canônica (ver estoque.CalcularSaldo).
type SaldoEstoque struct {
	UnidadeID          string
	ProdutoDescricao   string
	UnidadeMedida      string
	TotalEntradas      decimal.Decimal
	TotalSaidas        decimal.Decimal
	CustoTotalEntradas decimal.Decimal
	AtualizadoEm       time.Time
}

// EstoqueAtual devolve max(0, TotalEntradas − TotalSaidas).
func (s SaldoEstoque) EstoqueAtual() decimal.Decimal {
	atual := s.TotalEntradas.Sub(s.TotalSaidas)
	if atual.IsNegative() {
		return decimal.Zero
	}
	return atual
}

// CustoMedio devolve CustoTotalEntradas / TotalEntradas quando TotalEntradas > 0, senão 0.
func (s SaldoEstoque) CustoMedio() decimal.Decimal {
	if !s.TotalEntradas.IsPositive() {
		return decimal.Zero
	}
	return s.CustoTotalEntradas.Div(s.TotalEntradas)
}
