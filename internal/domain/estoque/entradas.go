package estoque

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
)

// EntradaNota é uma entrada sintética derivada de um item de nota fiscal
// qualificada. Nunca é persistida: existe apenas como insumo da agregação.
type EntradaNota struct {
	Produto     ProdutoID
	Quantidade  decimal.Decimal
	ValorTotal  decimal.Decimal
	DataEmissao time.Time
	NotaID      string
}

// NotaQualificada informa se a nota contribui com entradas para o razão:
// apenas status aprovada com a nota ativa.
func NotaQualificada(n entity.NotaFiscal) bool {
	return n.Status == entity.NotaStatusAprovada && n.Ativa
}

// DerivarEntradasNota converte notas fiscais qualificadas em entradas
// sintéticas, achatando os itens de cada nota. Função pura e determinística;
// uma nota sem itens não contribui com nada.
func DerivarEntradasNota(notas []entity.NotaFiscal) []EntradaNota {
	var entradas []EntradaNota
	for _, n := range notas {
		if !NotaQualificada(n) {
			continue
		}
		for _, item := range n.Itens {
			entradas = append(entradas, EntradaNota{
				Produto: ProdutoID{
					Descricao:     item.Descricao,
					UnidadeMedida: item.UnidadeMedida,
				},
				Quantidade:  item.Quantidade,
				ValorTotal:  item.CustoItem(),
				DataEmissao: n.DataEmissao,
				NotaID:      n.ID,
			})
		}
	}
	return entradas
}
