package relatorio_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmsouza/almoxarifado-api/internal/application/relatorio"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
)

type consultaFixa struct {
	saldos []estoque.SaldoProduto
}

func (c *consultaFixa) SaldosCalculados(_ context.Context, _ string) ([]estoque.SaldoProduto, error) {
	return c.saldos, nil
}

type pdfFake struct {
	chamado bool
}

func (p *pdfFake) GerarRelatorioEstoque(_ context.Context, _ string, _ []estoque.SaldoProduto) ([]byte, error) {
	p.chamado = true
	return []byte("%PDF-fake"), nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGerarCSV_FormatoPtBR(t *testing.T) {
	consulta := &consultaFixa{saldos: []estoque.SaldoProduto{{
		Produto:            estoque.ProdutoID{Descricao: "Arroz Tipo 1 5kg", UnidadeMedida: "PCT"},
		TotalEntradas:      dec("100"),
		TotalSaidas:        dec("30"),
		CustoTotalEntradas: dec("200"),
		EstoqueAtual:       dec("70"),
		CustoMedio:         dec("2"),
		ValorTotal:         dec("140"),
	}}}
	uc := relatorio.NewExportarUseCase(consulta, &pdfFake{})

	out, err := uc.GerarCSV(context.Background(), "unidade-1")
	require.NoError(t, err)

	linhas := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, linhas, 2, "cabeçalho + uma linha de produto")
	assert.Equal(t, "descricao;unidade_medida;total_entradas;total_saidas;estoque_atual;custo_medio;valor_total",
		linhas[0], "separador ponto e vírgula, padrão das planilhas em pt-BR")
	assert.Equal(t, "Arroz Tipo 1 5kg;PCT;100;30;70;2.00;140.00", linhas[1],
		"valores monetários com duas casas")
}

func TestGerarCSV_SemProdutos(t *testing.T) {
	uc := relatorio.NewExportarUseCase(&consultaFixa{}, &pdfFake{})

	out, err := uc.GerarCSV(context.Background(), "unidade-1")
	require.NoError(t, err)

	linhas := strings.Split(strings.TrimSpace(string(out)), "\n")
	assert.Len(t, linhas, 1, "só o cabeçalho")
}

func TestGerarPDF_DelegaAoGerador(t *testing.T) {
	pdf := &pdfFake{}
	uc := relatorio.NewExportarUseCase(&consultaFixa{}, pdf)

	out, err := uc.GerarPDF(context.Background(), "unidade-1", "EMEF Teste")
	require.NoError(t, err)
	assert.True(t, pdf.chamado)
	assert.NotEmpty(t, out)
}
