package notas

import (
	"context"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação com os repositórios do
// razão de estoque. Aprovar ou desativar uma nota muda o conjunto de entradas
// visíveis, então o crédito/débito do agregado materializado precisa ser
// atômico com a mudança de status.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		notaRepo repository.NotaFiscalRepository,
		movRepo repository.MovimentacaoRepository,
		saldoRepo repository.SaldoRepository,
	) error) error
}

// ParserNFe converte o XML de uma NF-e de fornecedor em uma nota fiscal.
type ParserNFe interface {
	Parse(xmlNFe []byte) (*entity.NotaFiscal, error)
}
