package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ljmsouza/almoxarifado-api/internal/domain"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

var _ repository.NotaFiscalRepository = (*NotaFiscalRepo)(nil)

// NotaFiscalRepo implementação de NotaFiscalRepository sobre PostgreSQL.
type NotaFiscalRepo struct {
	q Querier
}

// NewNotaFiscalRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewNotaFiscalRepository(q Querier) *NotaFiscalRepo {
	return &NotaFiscalRepo{q: q}
}

// Create persiste a nota e seus itens.
func (r *NotaFiscalRepo) Create(ctx context.Context, nota *entity.NotaFiscal) error {
	if nota.ID == "" {
		nota.ID = uuid.New().String()
	}
	query := `
		INSERT INTO notas_fiscais (id, unidade_id, fornecedor, chave_acesso, data_emissao,
			status, ativa, criada_em, atualizada_em)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		nota.ID, nota.UnidadeID, nota.Fornecedor, nota.ChaveAcesso, nota.DataEmissao,
		nota.Status, nota.Ativa, nota.CriadaEm, nota.AtualizadaEm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create nota fiscal: %w", err)
	}
	for i := range nota.Itens {
		item := &nota.Itens[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.NotaFiscalID = nota.ID
		itemQuery := `
			INSERT INTO itens_nota_fiscal (id, nota_fiscal_id, descricao, unidade_medida,
				quantidade, valor_unitario, valor_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.NotaFiscalID, item.Descricao, item.UnidadeMedida,
			item.Quantidade, item.ValorUnitario, item.ValorTotal,
		)
		if err != nil {
			return fmt.Errorf("create item nota fiscal: %w", err)
		}
	}
	return nil
}

// GetByID busca a nota da unidade com itens carregados.
func (r *NotaFiscalRepo) GetByID(ctx context.Context, unidadeID, id string) (*entity.NotaFiscal, error) {
	query := `
		SELECT id, unidade_id, fornecedor, chave_acesso, data_emissao, status, ativa,
			criada_em, atualizada_em
		FROM notas_fiscais WHERE unidade_id = $1 AND id = $2`
	var nota entity.NotaFiscal
	err := r.q.QueryRow(ctx, query, unidadeID, id).Scan(
		&nota.ID, &nota.UnidadeID, &nota.Fornecedor, &nota.ChaveAcesso, &nota.DataEmissao,
		&nota.Status, &nota.Ativa, &nota.CriadaEm, &nota.AtualizadaEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get nota fiscal: %w", err)
	}
	itens, err := r.itensDaNota(ctx, nota.ID)
	if err != nil {
		return nil, err
	}
	nota.Itens = itens
	return &nota, nil
}

// List devolve todas as notas da unidade, mais recentes primeiro, com itens.
func (r *NotaFiscalRepo) List(ctx context.Context, unidadeID string) ([]entity.NotaFiscal, error) {
	query := `
		SELECT id, unidade_id, fornecedor, chave_acesso, data_emissao, status, ativa,
			criada_em, atualizada_em
		FROM notas_fiscais WHERE unidade_id = $1
		ORDER BY data_emissao DESC, criada_em DESC`
	rows, err := r.q.Query(ctx, query, unidadeID)
	if err != nil {
		return nil, fmt.Errorf("list notas fiscais: %w", err)
	}
	defer rows.Close()

	var notas []entity.NotaFiscal
	for rows.Next() {
		var nota entity.NotaFiscal
		if err := rows.Scan(&nota.ID, &nota.UnidadeID, &nota.Fornecedor, &nota.ChaveAcesso,
			&nota.DataEmissao, &nota.Status, &nota.Ativa, &nota.CriadaEm, &nota.AtualizadaEm); err != nil {
			return nil, fmt.Errorf("scan nota fiscal: %w", err)
		}
		notas = append(notas, nota)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range notas {
		itens, err := r.itensDaNota(ctx, notas[i].ID)
		if err != nil {
			return nil, err
		}
		notas[i].Itens = itens
	}
	return notas, nil
}

// UpdateStatus altera o status da nota (pendente → aprovada | rejeitada).
func (r *NotaFiscalRepo) UpdateStatus(ctx context.Context, unidadeID, id, status string) error {
	query := `
		UPDATE notas_fiscais SET status = $3, atualizada_em = now()
		WHERE unidade_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, unidadeID, id, status)
	if err != nil {
		return fmt.Errorf("update status nota fiscal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetAtiva liga ou desliga a flag ativa da nota.
func (r *NotaFiscalRepo) SetAtiva(ctx context.Context, unidadeID, id string, ativa bool) error {
	query := `
		UPDATE notas_fiscais SET ativa = $3, atualizada_em = now()
		WHERE unidade_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, unidadeID, id, ativa)
	if err != nil {
		return fmt.Errorf("set ativa nota fiscal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NotaFiscalRepo) itensDaNota(ctx context.Context, notaID string) ([]entity.ItemNotaFiscal, error) {
	query := `
		SELECT id, nota_fiscal_id, descricao, unidade_medida, quantidade, valor_unitario, valor_total
		FROM itens_nota_fiscal WHERE nota_fiscal_id = $1
		ORDER BY descricao ASC`
	rows, err := r.q.Query(ctx, query, notaID)
	if err != nil {
		return nil, fmt.Errorf("list itens nota fiscal: %w", err)
	}
	defer rows.Close()

	var itens []entity.ItemNotaFiscal
	for rows.Next() {
		var item entity.ItemNotaFiscal
		if err := rows.Scan(&item.ID, &item.NotaFiscalID, &item.Descricao, &item.UnidadeMedida,
			&item.Quantidade, &item.ValorUnitario, &item.ValorTotal); err != nil {
			return nil, fmt.Errorf("scan item nota fiscal: %w", err)
		}
		itens = append(itens, item)
	}
	return itens, rows.Err()
}
