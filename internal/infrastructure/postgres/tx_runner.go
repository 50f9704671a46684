package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appestoque "github.com/ljmsouza/almoxarifado-api/internal/application/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/application/notas"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

var (
	_ appestoque.TxRunner = (*TxRunner)(nil)
	_ notas.TxRunner      = (*TxRunner)(nil)
)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com os repositórios atados à tx e faz
// Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	notaRepo repository.NotaFiscalRepository,
	movRepo repository.MovimentacaoRepository,
	saldoRepo repository.SaldoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	notaRepo := NewNotaFiscalRepository(tx)
	movRepo := NewMovimentacaoRepository(tx)
	saldoRepo := NewSaldoRepository(tx)

	if err := fn(notaRepo, movRepo, saldoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
