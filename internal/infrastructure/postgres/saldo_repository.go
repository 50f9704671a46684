package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

var _ repository.SaldoRepository = (*SaldoRepo)(nil)

// SaldoRepo implementação de SaldoRepository sobre PostgreSQL.
// Os métodos de escrita pressupõem execução dentro de transação (ver TxRunner).
type SaldoRepo struct {
	q Querier
}

// NewSaldoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewSaldoRepository(q Querier) *SaldoRepo {
	return &SaldoRepo{q: q}
}

// TravaProduto adquire um advisory lock transacional para a identidade do
// produto dentro da unidade. O lock é liberado no commit/rollback e serializa
// todas as escritas concorrentes sobre o mesmo produto, mesmo quando a linha
// de saldo ainda não existe.
func (r *SaldoRepo) TravaProduto(ctx context.Context, unidadeID, descricao, unidadeMedida string) error {
	chave := unidadeID + "|" + descricao + "|" + unidadeMedida
	_, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, chave)
	if err != nil {
		return fmt.Errorf("trava produto: %w", err)
	}
	return nil
}

// Get busca a linha de saldo. Quando não existe, devolve uma linha zerada
// com a identidade preenchida (produto sem histórico materializado).
func (r *SaldoRepo) Get(ctx context.Context, unidadeID, descricao, unidadeMedida string) (*entity.SaldoEstoque, error) {
	return r.get(ctx, unidadeID, descricao, unidadeMedida, false)
}

// GetForUpdate busca a linha de saldo com SELECT FOR UPDATE.
func (r *SaldoRepo) GetForUpdate(ctx context.Context, unidadeID, descricao, unidadeMedida string) (*entity.SaldoEstoque, error) {
	return r.get(ctx, unidadeID, descricao, unidadeMedida, true)
}

func (r *SaldoRepo) get(ctx context.Context, unidadeID, descricao, unidadeMedida string, forUpdate bool) (*entity.SaldoEstoque, error) {
	query := `
		SELECT unidade_id, produto_descricao, unidade_medida,
			total_entradas, total_saidas, custo_total_entradas, atualizado_em
		FROM saldos_estoque
		WHERE unidade_id = $1 AND produto_descricao = $2 AND unidade_medida = $3`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var s entity.SaldoEstoque
	err := r.q.QueryRow(ctx, query, unidadeID, descricao, unidadeMedida).Scan(
		&s.UnidadeID, &s.ProdutoDescricao, &s.UnidadeMedida,
		&s.TotalEntradas, &s.TotalSaidas, &s.CustoTotalEntradas, &s.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.SaldoEstoque{
				UnidadeID:        unidadeID,
				ProdutoDescricao: descricao,
				UnidadeMedida:    unidadeMedida,
			}, nil
		}
		return nil, fmt.Errorf("get saldo: %w", err)
	}
	return &s, nil
}

// Upsert grava a linha de saldo, inserindo ou substituindo os acumuladores.
func (r *SaldoRepo) Upsert(ctx context.Context, saldo *entity.SaldoEstoque) error {
	if saldo.AtualizadoEm.IsZero() {
		saldo.AtualizadoEm = time.Now().UTC()
	}
	query := `
		INSERT INTO saldos_estoque (unidade_id, produto_descricao, unidade_medida,
			total_entradas, total_saidas, custo_total_entradas, atualizado_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (unidade_id, produto_descricao, unidade_medida) DO UPDATE SET
			total_entradas = EXCLUDED.total_entradas,
			total_saidas = EXCLUDED.total_saidas,
			custo_total_entradas = EXCLUDED.custo_total_entradas,
			atualizado_em = EXCLUDED.atualizado_em`
	_, err := r.q.Exec(ctx, query,
		saldo.UnidadeID, saldo.ProdutoDescricao, saldo.UnidadeMedida,
		saldo.TotalEntradas, saldo.TotalSaidas, saldo.CustoTotalEntradas, saldo.AtualizadoEm,
	)
	if err != nil {
		return fmt.Errorf("upsert saldo: %w", err)
	}
	return nil
}

// List devolve os saldos materializados da unidade ordenados por identidade.
func (r *SaldoRepo) List(ctx context.Context, unidadeID string) ([]entity.SaldoEstoque, error) {
	query := `
		SELECT unidade_id, produto_descricao, unidade_medida,
			total_entradas, total_saidas, custo_total_entradas, atualizado_em
		FROM saldos_estoque WHERE unidade_id = $1
		ORDER BY produto_descricao ASC, unidade_medida ASC`
	rows, err := r.q.Query(ctx, query, unidadeID)
	if err != nil {
		return nil, fmt.Errorf("list saldos: %w", err)
	}
	defer rows.Close()

	var saldos []entity.SaldoEstoque
	for rows.Next() {
		var s entity.SaldoEstoque
		if err := rows.Scan(&s.UnidadeID, &s.ProdutoDescricao, &s.UnidadeMedida,
			&s.TotalEntradas, &s.TotalSaidas, &s.CustoTotalEntradas, &s.AtualizadoEm); err != nil {
			return nil, fmt.Errorf("scan saldo: %w", err)
		}
		saldos = append(saldos, s)
	}
	return saldos, rows.Err()
}

// DeleteAll apaga todos os saldos materializados da unidade.
func (r *SaldoRepo) DeleteAll(ctx context.Context, unidadeID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM saldos_estoque WHERE unidade_id = $1`, unidadeID)
	if err != nil {
		return fmt.Errorf("delete saldos: %w", err)
	}
	return nil
}
