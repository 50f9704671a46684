package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimentação de estoque.
const (
	TipoEntrada = "entrada"
	TipoSaida   = "saida"
)

// Origem de uma movimentação.
const (
	OrigemManual     = "manual"
	OrigemNotaFiscal = "nota_fiscal"
)

// Movimentacao representa um evento de movimentação de estoque registrado
// manualmente. A coleção é append-only: correções são lançadas como novas
// movimentações compensatórias, nunca como edição ou exclusão.
type Movimentacao struct {
	ID               string
	UnidadeID        string
	Tipo             string // entrada | saida
	Data             time.Time
	ProdutoDescricao string
	UnidadeMedida    string
	Quantidade       decimal.Decimal
	ValorUnitario    decimal.Decimal
	CustoTotal       decimal.Decimal
	Origem           string // manual | nota_fiscal
	Motivo           string
	CriadaEm         time.Time
	CriadaPor        string // UsuarioID
}

// Custo devolve o custo da movimentação: CustoTotal quando informado,
// senão Quantidade × ValorUnitario. Campos numéricos ausentes valem zero.
func (m Movimentacao) Custo() decimal.Decimal {
	if !m.CustoTotal.IsZero() {
		return m.CustoTotal
	}
	return m.Quantidade.Mul(m.ValorUnitario)
}
