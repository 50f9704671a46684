package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

var _ repository.MovimentacaoRepository = (*MovimentacaoRepo)(nil)

// MovimentacaoRepo implementação sobre PostgreSQL (usável com pool ou tx).
// A tabela movimentacoes é append-only: não há UPDATE nem DELETE aqui.
type MovimentacaoRepo struct {
	q Querier
}

// NewMovimentacaoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMovimentacaoRepository(q Querier) *MovimentacaoRepo {
	return &MovimentacaoRepo{q: q}
}

const colunasMovimentacao = `id, unidade_id, tipo, data, produto_descricao, unidade_medida,
	quantidade, valor_unitario, custo_total, origem, motivo, criada_em, criada_por`

// Append persiste uma movimentação.
func (r *MovimentacaoRepo) Append(ctx context.Context, mov *entity.Movimentacao) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimentacoes (` + colunasMovimentacao + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	criadaPor := (*string)(nil)
	if mov.CriadaPor != "" {
		criadaPor = &mov.CriadaPor
	}
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.UnidadeID, mov.Tipo, mov.Data, mov.ProdutoDescricao, mov.UnidadeMedida,
		mov.Quantidade, mov.ValorUnitario, mov.CustoTotal, mov.Origem, mov.Motivo,
		mov.CriadaEm, criadaPor,
	)
	if err != nil {
		return fmt.Errorf("append movimentacao: %w", err)
	}
	return nil
}

// List devolve todas as movimentações da unidade, em ordem de criação.
func (r *MovimentacaoRepo) List(ctx context.Context, unidadeID string) ([]entity.Movimentacao, error) {
	query := `
		SELECT ` + colunasMovimentacao + `
		FROM movimentacoes WHERE unidade_id = $1
		ORDER BY criada_em ASC`
	rows, err := r.q.Query(ctx, query, unidadeID)
	if err != nil {
		return nil, fmt.Errorf("list movimentacoes: %w", err)
	}
	defer rows.Close()
	return scanMovimentacoes(rows)
}

// ListFiltrada lista movimentações com filtros opcionais de produto, tipo e
// intervalo de datas.
func (r *MovimentacaoRepo) ListFiltrada(ctx context.Context, unidadeID string, filtro repository.FiltroMovimentacao) ([]entity.Movimentacao, error) {
	query := `
		SELECT ` + colunasMovimentacao + `
		FROM movimentacoes WHERE unidade_id = $1`
	args := []any{unidadeID}
	pos := 2
	if filtro.ProdutoDescricao != "" {
		query += fmt.Sprintf(" AND produto_descricao = $%d", pos)
		args = append(args, filtro.ProdutoDescricao)
		pos++
	}
	if filtro.UnidadeMedida != "" {
		query += fmt.Sprintf(" AND unidade_medida = $%d", pos)
		args = append(args, filtro.UnidadeMedida)
		pos++
	}
	if filtro.Tipo != "" {
		query += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, filtro.Tipo)
		pos++
	}
	if filtro.De != nil {
		query += fmt.Sprintf(" AND data >= $%d", pos)
		args = append(args, *filtro.De)
		pos++
	}
	if filtro.Ate != nil {
		query += fmt.Sprintf(" AND data <= $%d", pos)
		args = append(args, *filtro.Ate)
		pos++
	}
	query += " ORDER BY data DESC"
	if filtro.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filtro.Limit, filtro.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimentacoes filtrada: %w", err)
	}
	defer rows.Close()
	return scanMovimentacoes(rows)
}

func scanMovimentacoes(rows pgx.Rows) ([]entity.Movimentacao, error) {
	var list []entity.Movimentacao
	for rows.Next() {
		var m entity.Movimentacao
		var criadaPor *string
		if err := rows.Scan(&m.ID, &m.UnidadeID, &m.Tipo, &m.Data, &m.ProdutoDescricao, &m.UnidadeMedida,
			&m.Quantidade, &m.ValorUnitario, &m.CustoTotal, &m.Origem, &m.Motivo,
			&m.CriadaEm, &criadaPor); err != nil {
			return nil, fmt.Errorf("scan movimentacao: %w", err)
		}
		if criadaPor != nil {
			m.CriadaPor = *criadaPor
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
