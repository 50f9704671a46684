package estoque

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
)

// SaldoProduto é o snapshot derivado do estado de estoque de um produto no
// momento do cálculo. Nunca é persistido: é recomputado a cada consulta e
// descartado em seguida.
type SaldoProduto struct {
	Produto            ProdutoID
	TotalEntradas      decimal.Decimal
	TotalSaidas        decimal.Decimal
	CustoTotalEntradas decimal.Decimal
	EstoqueAtual       decimal.Decimal
	CustoMedio         decimal.Decimal
	ValorTotal         decimal.Decimal
}

// CalcularSaldo agrega, para um produto, as entradas derivadas de notas
// fiscais qualificadas e as movimentações manuais armazenadas:
//
//	TotalEntradas      = qtd de itens de notas aprovadas + qtd de entradas manuais
//	CustoTotalEntradas = custo dos itens de notas + custo das entradas manuais
//	EstoqueAtual       = max(0, TotalEntradas − TotalSaidas)
//	CustoMedio         = CustoTotalEntradas / TotalEntradas (0 quando sem entradas)
//	ValorTotal         = EstoqueAtual × CustoMedio
//
// O custo médio é uma média ponderada única sobre todo o histórico de
// entradas: o custo das unidades já saídas nunca é retirado da média, que só
// se desloca quando ocorrem novas entradas. Não é média móvel nem FIFO/LIFO.
func CalcularSaldo(produto ProdutoID, notas []entity.NotaFiscal, movs []entity.Movimentacao) SaldoProduto {
	totalEntradas := decimal.Zero
	custoEntradas := decimal.Zero
	totalSaidas := decimal.Zero

	for _, e := range DerivarEntradasNota(notas) {
		if e.Produto != produto {
			continue
		}
		totalEntradas = totalEntradas.Add(e.Quantidade)
		custoEntradas = custoEntradas.Add(e.ValorTotal)
	}

	for _, m := range movs {
		if m.ProdutoDescricao != produto.Descricao || m.UnidadeMedida != produto.UnidadeMedida {
			continue
		}
		switch m.Tipo {
		case entity.TipoEntrada:
			totalEntradas = totalEntradas.Add(m.Quantidade)
			custoEntradas = custoEntradas.Add(m.Custo())
		case entity.TipoSaida:
			totalSaidas = totalSaidas.Add(m.Quantidade)
		}
	}

	estoqueAtual := totalEntradas.Sub(totalSaidas)
	if estoqueAtual.IsNegative() {
		estoqueAtual = decimal.Zero
	}

	custoMedio := decimal.Zero
	if totalEntradas.IsPositive() {
		custoMedio = custoEntradas.Div(totalEntradas)
	}

	return SaldoProduto{
		Produto:            produto,
		TotalEntradas:      totalEntradas,
		TotalSaidas:        totalSaidas,
		CustoTotalEntradas: custoEntradas,
		EstoqueAtual:       estoqueAtual,
		CustoMedio:         custoMedio,
		ValorTotal:         estoqueAtual.Mul(custoMedio),
	}
}

// CalcularSaldos enumera a união das identidades observadas nos itens de
// notas qualificadas e nas movimentações, e calcula um saldo por identidade.
// A saída é ordenada por (descrição, unidade) para ser determinística.
func CalcularSaldos(notas []entity.NotaFiscal, movs []entity.Movimentacao) []SaldoProduto {
	vistos := make(map[ProdutoID]struct{})
	var produtos []ProdutoID

	registrar := func(p ProdutoID) {
		if _, ok := vistos[p]; ok {
			return
		}
		vistos[p] = struct{}{}
		produtos = append(produtos, p)
	}

	for _, e := range DerivarEntradasNota(notas) {
		registrar(e.Produto)
	}
	for _, m := range movs {
		registrar(ProdutoID{Descricao: m.ProdutoDescricao, UnidadeMedida: m.UnidadeMedida})
	}

	sort.Slice(produtos, func(i, j int) bool {
		if produtos[i].Descricao != produtos[j].Descricao {
			return produtos[i].Descricao < produtos[j].Descricao
		}
		return produtos[i].UnidadeMedida < produtos[j].UnidadeMedida
	})

	saldos := make([]SaldoProduto, 0, len(produtos))
	for _, p := range produtos {
		saldos = append(saldos, CalcularSaldo(p, notas, movs))
	}
	return saldos
}
