// Package estoque implementa o razão de valorização de estoque: agregação
// determinística de entradas (itens de notas fiscais aprovadas) e saídas
// (movimentações manuais) em saldos por produto, validação de saídas e
// alerta de estoque baixo. Todas as funções são puras; persistência e
// escopo por unidade ficam a cargo dos repositórios injetados.
package estoque

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ProdutoID identifica um produto pelo par (descrição, unidade de medida).
// É a chave de agregação em todo o razão; a comparação é por igualdade
// exata de strings, sem normalização implícita.
type ProdutoID struct {
	Descricao     string
	UnidadeMedida string
}

// Normalizador aplica a política opcional de normalização de identidade na
// ingestão: trim, case folding e forma NFC. Desligado por padrão: duas
// grafias distintas do mesmo produto são tratadas como produtos distintos,
// e a política torna esse comportamento uma escolha explícita de configuração.
type Normalizador struct {
	Ativo bool
}

// Aplicar devolve a identidade normalizada quando a política está ativa;
// caso contrário devolve a identidade intocada.
func (n Normalizador) Aplicar(p ProdutoID) ProdutoID {
	if !n.Ativo {
		return p
	}
	return ProdutoID{
		Descricao:     normalizarTexto(p.Descricao),
		UnidadeMedida: normalizarTexto(p.UnidadeMedida),
	}
}

func normalizarTexto(s string) string {
	s = strings.TrimSpace(s)
	s = cases.Fold().String(s)
	return norm.NFC.String(s)
}
