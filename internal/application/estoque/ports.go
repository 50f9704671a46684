package estoque

import (
	"context"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação, passando repositórios
// atados a essa transação. Garante que a dupla "validar disponibilidade e
// anexar movimentação" seja uma operação atômica: junto com o bloqueio por
// produto (SaldoRepository.TravaProduto), elimina a janela de lost update
// entre duas saídas concorrentes do mesmo produto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		notaRepo repository.NotaFiscalRepository,
		movRepo repository.MovimentacaoRepository,
		saldoRepo repository.SaldoRepository,
	) error) error
}
