package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemNotaRequest linha de item para importação de nota via JSON.
type ItemNotaRequest struct {
	Descricao     string          `json:"descricao"`
	UnidadeMedida string          `json:"unidade_medida"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
}

// ImportarNotaRequest body para POST /api/notas.
type ImportarNotaRequest struct {
	Fornecedor  string            `json:"fornecedor"`
	ChaveAcesso string            `json:"chave_acesso,omitempty"`
	DataEmissao time.Time         `json:"data_emissao"`
	Itens       []ItemNotaRequest `json:"itens"`
}

// NotaFiscalResponse nota fiscal nas listagens e respostas de importação.
type NotaFiscalResponse struct {
	ID          string             `json:"id"`
	Fornecedor  string             `json:"fornecedor"`
	ChaveAcesso string             `json:"chave_acesso,omitempty"`
	DataEmissao time.Time          `json:"data_emissao"`
	Status      string             `json:"status"`
	Ativa       bool               `json:"ativa"`
	Itens       []ItemNotaResponse `json:"itens"`
}

// ItemNotaResponse linha de item na resposta.
type ItemNotaResponse struct {
	Descricao     string          `json:"descricao"`
	UnidadeMedida string          `json:"unidade_medida"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
}
