package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaldoProdutoResponse snapshot de estoque de um produto, tal como exibido
// na tabela de estoque e no formulário de saída.
type SaldoProdutoResponse struct {
	Descricao     string          `json:"descricao"`
	UnidadeMedida string          `json:"unidade_medida"`
	TotalEntradas decimal.Decimal `json:"total_entradas"`
	TotalSaidas   decimal.Decimal `json:"total_saidas"`
	EstoqueAtual  decimal.Decimal `json:"estoque_atual"`
	CustoMedio    decimal.Decimal `json:"custo_medio"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
}

// AlertaEstoqueResponse item da lista de alertas de estoque baixo.
type AlertaEstoqueResponse struct {
	SaldoProdutoResponse
	Severidade string `json:"severidade"` // critica | baixa
}

// RegistrarSaidaRequest body para POST /api/estoque/saidas.
type RegistrarSaidaRequest struct {
	Descricao     string          `json:"descricao"`
	UnidadeMedida string          `json:"unidade_medida"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	Motivo        string          `json:"motivo,omitempty"`
}

// RegistrarEntradaRequest body para POST /api/estoque/entradas.
type RegistrarEntradaRequest struct {
	Descricao     string          `json:"descricao"`
	UnidadeMedida string          `json:"unidade_medida"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	Motivo        string          `json:"motivo,omitempty"`
}

// ResultadoSaidaResponse resultado estruturado da validação de saída.
// Reprovação de regra de negócio vem aqui, nunca como erro HTTP 5xx.
type ResultadoSaidaResponse struct {
	Valida            bool            `json:"valida"`
	EstoqueDisponivel decimal.Decimal `json:"estoque_disponivel"`
	Mensagem          string          `json:"mensagem,omitempty"`
	MovimentacaoID    string          `json:"movimentacao_id,omitempty"`
}

// MovimentacaoResponse uma movimentação na listagem do relatório.
type MovimentacaoResponse struct {
	ID            string          `json:"id"`
	Tipo          string          `json:"tipo"`
	Data          time.Time       `json:"data"`
	Descricao     string          `json:"descricao"`
	UnidadeMedida string          `json:"unidade_medida"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	CustoTotal    decimal.Decimal `json:"custo_total"`
	Origem        string          `json:"origem"`
	Motivo        string          `json:"motivo,omitempty"`
	CriadaEm      time.Time       `json:"criada_em"`
}

// DivergenciaSaldoDTO divergência encontrada pela reconciliação entre o
// agregado materializado e a recomputação pura do histórico.
type DivergenciaSaldoDTO struct {
	Descricao               string          `json:"descricao"`
	UnidadeMedida           string          `json:"unidade_medida"`
	EstoqueMaterializado    decimal.Decimal `json:"estoque_materializado"`
	EstoqueRecomputado      decimal.Decimal `json:"estoque_recomputado"`
	CustoTotalMaterializado decimal.Decimal `json:"custo_total_materializado"`
	CustoTotalRecomputado   decimal.Decimal `json:"custo_total_recomputado"`
}

// RecalculoResponse resultado da reconciliação de saldos.
type RecalculoResponse struct {
	SaldosRecalculados int                   `json:"saldos_recalculados"`
	Divergencias       []DivergenciaSaldoDTO `json:"divergencias"`
}
