// Package nfe lê o XML de NF-e (modelo 55) para importação de notas de
// fornecedor. Extrai apenas os campos de interesse do almoxarifado: emitente,
// data de emissão, chave de acesso e itens (det/prod). O documento não é
// validado contra o schema da SEFAZ nem tem a assinatura verificada.
package nfe

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/ljmsouza/almoxarifado-api/internal/application/notas"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
)

var _ notas.ParserNFe = (*Parser)(nil)

// Parser lê XMLs de NF-e com etree.
type Parser struct{}

// NewParser cria o parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse converte o XML (nfeProc ou NFe) em uma nota fiscal com itens.
// A nota devolvida ainda não tem ID, unidade nem status: o caso de uso
// preenche esses campos na importação.
func (p *Parser) Parse(xmlNFe []byte) (*entity.NotaFiscal, error) {
	if len(xmlNFe) == 0 {
		return nil, fmt.Errorf("nfe: XML vazio")
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlNFe); err != nil {
		return nil, fmt.Errorf("nfe: ler XML: %w", err)
	}

	infNFe := doc.FindElement("//infNFe")
	if infNFe == nil {
		return nil, fmt.Errorf("nfe: elemento infNFe ausente")
	}

	nota := &entity.NotaFiscal{
		ChaveAcesso: chaveAcesso(infNFe),
	}

	if emit := infNFe.FindElement("emit"); emit != nil {
		nota.Fornecedor = texto(emit, "xNome")
	}
	if nota.Fornecedor == "" {
		return nil, fmt.Errorf("nfe: emitente sem razão social (emit/xNome)")
	}

	if ide := infNFe.FindElement("ide"); ide != nil {
		emissao, err := dataEmissao(ide)
		if err != nil {
			return nil, err
		}
		nota.DataEmissao = emissao
	}

	dets := infNFe.FindElements("det")
	if len(dets) == 0 {
		return nil, fmt.Errorf("nfe: nota sem itens (det)")
	}
	for i, det := range dets {
		prod := det.FindElement("prod")
		if prod == nil {
			return nil, fmt.Errorf("nfe: item %d sem prod", i+1)
		}
		item := entity.ItemNotaFiscal{
			Descricao:     texto(prod, "xProd"),
			UnidadeMedida: texto(prod, "uCom"),
			Quantidade:    valor(prod, "qCom"),
			ValorUnitario: valor(prod, "vUnCom"),
			ValorTotal:    valor(prod, "vProd"),
		}
		if item.Descricao == "" {
			return nil, fmt.Errorf("nfe: item %d sem descrição (prod/xProd)", i+1)
		}
		nota.Itens = append(nota.Itens, item)
	}
	return nota, nil
}

// chaveAcesso extrai a chave de 44 dígitos do atributo Id ("NFe" + chave).
func chaveAcesso(infNFe *etree.Element) string {
	id := infNFe.SelectAttrValue("Id", "")
	return strings.TrimPrefix(id, "NFe")
}

// dataEmissao lê ide/dhEmi (RFC 3339 com offset) ou ide/dEmi (layout antigo,
// só a data).
func dataEmissao(ide *etree.Element) (time.Time, error) {
	if dhEmi := texto(ide, "dhEmi"); dhEmi != "" {
		t, err := time.Parse(time.RFC3339, dhEmi)
		if err != nil {
			return time.Time{}, fmt.Errorf("nfe: dhEmi inválido %q: %w", dhEmi, err)
		}
		return t, nil
	}
	if dEmi := texto(ide, "dEmi"); dEmi != "" {
		t, err := time.Parse("2006-01-02", dEmi)
		if err != nil {
			return time.Time{}, fmt.Errorf("nfe: dEmi inválido %q: %w", dEmi, err)
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("nfe: nota sem data de emissão (ide/dhEmi)")
}

func texto(el *etree.Element, tag string) string {
	child := el.FindElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// valor lê um campo decimal; campo ausente ou malformado degrada para zero,
// como nos demais pontos do razão.
func valor(el *etree.Element, tag string) decimal.Decimal {
	raw := texto(el, tag)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
