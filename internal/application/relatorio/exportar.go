package relatorio

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
)

// ConsultaSaldos fornece os saldos recomputados da unidade (implementada pelo
// caso de uso de consulta de estoque).
type ConsultaSaldos interface {
	SaldosCalculados(ctx context.Context, unidadeID string) ([]estoque.SaldoProduto, error)
}

// GeradorPDF gera o PDF do relatório de valorização de estoque.
type GeradorPDF interface {
	GerarRelatorioEstoque(ctx context.Context, unidadeNome string, saldos []estoque.SaldoProduto) ([]byte, error)
}

// ExportarUseCase exporta o relatório de estoque em CSV e PDF para os
// consumidores de apresentação.
type ExportarUseCase struct {
	consulta ConsultaSaldos
	pdf      GeradorPDF
}

// NewExportarUseCase constrói o caso de uso.
func NewExportarUseCase(consulta ConsultaSaldos, pdf GeradorPDF) *ExportarUseCase {
	return &ExportarUseCase{consulta: consulta, pdf: pdf}
}

// GerarCSV devolve o relatório de saldos em CSV (separador ponto e vírgula,
// padrão das planilhas em pt-BR).
func (uc *ExportarUseCase) GerarCSV(ctx context.Context, unidadeID string) ([]byte, error) {
	saldos, err := uc.consulta.SaldosCalculados(ctx, unidadeID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	cabecalho := []string{"descricao", "unidade_medida", "total_entradas", "total_saidas", "estoque_atual", "custo_medio", "valor_total"}
	if err := w.Write(cabecalho); err != nil {
		return nil, fmt.Errorf("relatorio: escrever cabeçalho CSV: %w", err)
	}
	for _, s := range saldos {
		linha := []string{
			s.Produto.Descricao,
			s.Produto.UnidadeMedida,
			s.TotalEntradas.String(),
			s.TotalSaidas.String(),
			s.EstoqueAtual.String(),
			s.CustoMedio.StringFixed(2),
			s.ValorTotal.StringFixed(2),
		}
		if err := w.Write(linha); err != nil {
			return nil, fmt.Errorf("relatorio: escrever linha CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("relatorio: finalizar CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// GerarPDF devolve o relatório de saldos em PDF.
func (uc *ExportarUseCase) GerarPDF(ctx context.Context, unidadeID, unidadeNome string) ([]byte, error) {
	saldos, err := uc.consulta.SaldosCalculados(ctx, unidadeID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GerarRelatorioEstoque(ctx, unidadeNome, saldos)
}
