package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de uma nota fiscal de fornecedor.
const (
	NotaStatusPendente  = "pendente"
	NotaStatusAprovada  = "aprovada"
	NotaStatusRejeitada = "rejeitada"
)

// NotaFiscal representa uma nota fiscal de fornecedor importada pelo processo externo.
// Somente notas com Status = aprovada e Ativa = true alimentam o razão de estoque;
// todas as demais são invisíveis para a agregação.
type NotaFiscal struct {
	ID           string
	UnidadeID    string
	Fornecedor   string
	ChaveAcesso  string // chave de acesso NF-e (44 dígitos), vazia em notas digitadas
	DataEmissao  time.Time
	Status       string
	Ativa        bool
	Itens        []ItemNotaFiscal
	CriadaEm     time.Time
	AtualizadaEm time.Time
}

// ItemNotaFiscal representa uma linha de item de uma nota fiscal.
type ItemNotaFiscal struct {
	ID            string
	NotaFiscalID  string
	Descricao     string
	UnidadeMedida string
	Quantidade    decimal.Decimal
	ValorUnitario decimal.Decimal
	ValorTotal    decimal.Decimal
}

// CustoItem devolve o custo de entrada do item: ValorTotal quando informado,
// senão Quantidade × ValorUnitario. Campos ausentes valem zero (degradação local,
// nunca aborta o cálculo).
func (i ItemNotaFiscal) CustoItem() decimal.Decimal {
	if !i.ValorTotal.IsZero() {
		return i.ValorTotal
	}
	return i.Quantidade.Mul(i.ValorUnitario)
}
