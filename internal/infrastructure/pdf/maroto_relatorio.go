// Package pdf implementa a geração do relatório de valorização de estoque
// em PDF com Maroto v2.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Unidade escolar  │  Data de geração                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Produto | Un. | Entradas | Saídas | Estoque |      │
//	│          Custo Médio | Valor Total                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: itens distintos / valor total do estoque            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/ljmsouza/almoxarifado-api/internal/application/relatorio"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	corPrimaria = &props.Color{Red: 0, Green: 90, Blue: 60}
	corCinza    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Gerador ───────────────────────────────────────────────────────────────────

var _ relatorio.GeradorPDF = (*MarotoGerador)(nil)

// MarotoGerador implementa relatorio.GeradorPDF usando Maroto v2.
type MarotoGerador struct{}

// NewMarotoGerador constrói o gerador.
func NewMarotoGerador() *MarotoGerador { return &MarotoGerador{} }

// GerarRelatorioEstoque gera o PDF e devolve seus bytes.
func (g *MarotoGerador) GerarRelatorioEstoque(
	_ context.Context,
	unidadeNome string,
	saldos []estoque.SaldoProduto,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Valorização de Estoque", true).
		WithAuthor(unidadeNome, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(cabecalhoRow(unidadeNome))
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.5}))

	m.AddRows(tabelaCabecalhoRow())
	for _, r := range tabelaSaldoRows(saldos) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.3}))
	m.AddRows(totaisRow(saldos))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// cabecalhoRow: nome da unidade (esq) e data de geração (dir).
func cabecalhoRow(unidadeNome string) core.Row {
	gerado := time.Now().Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(8).Add(
			text.New(unidadeNome, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: corPrimaria, Top: 1,
			}),
			text.New("Relatório de Valorização de Estoque", props.Text{
				Size: 9, Top: 9, Color: corCinza,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em: "+gerado, props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: corCinza,
			}),
		),
	)
}

// tabelaCabecalhoRow: cabeçalho da tabela de saldos.
func tabelaCabecalhoRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: corPrimaria, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Produto", 4, align.Left),
		h("Un.", 1, align.Center),
		h("Entradas", 1, align.Right),
		h("Saídas", 1, align.Right),
		h("Estoque", 1, align.Right),
		h("Custo Médio", 2, align.Right),
		h("Valor Total", 2, align.Right),
	)
}

// tabelaSaldoRows: uma linha por produto.
func tabelaSaldoRows(saldos []estoque.SaldoProduto) []core.Row {
	cel := func(valor string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(valor, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(saldos))
	for _, s := range saldos {
		result = append(result, row.New(7).Add(
			cel(s.Produto.Descricao, 4, align.Left),
			cel(s.Produto.UnidadeMedida, 1, align.Center),
			cel(s.TotalEntradas.String(), 1, align.Right),
			cel(s.TotalSaidas.String(), 1, align.Right),
			cel(s.EstoqueAtual.String(), 1, align.Right),
			cel("R$ "+s.CustoMedio.StringFixed(2), 2, align.Right),
			cel("R$ "+s.ValorTotal.StringFixed(2), 2, align.Right),
		))
	}
	return result
}

// totaisRow: contagem de itens e valor total do estoque.
func totaisRow(saldos []estoque.SaldoProduto) core.Row {
	valorTotal := decimal.Zero
	for _, s := range saldos {
		valorTotal = valorTotal.Add(s.ValorTotal)
	}
	return row.New(12).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("%d produtos distintos", len(saldos)), props.Text{
				Size: 9, Top: 2, Color: corCinza,
			}),
		),
		col.New(6).Add(
			text.New("VALOR TOTAL DO ESTOQUE: R$ "+valorTotal.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: corPrimaria, Top: 2,
			}),
		),
	)
}
