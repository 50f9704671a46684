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

var _ repository.UnidadeRepository = (*UnidadeRepo)(nil)

// UnidadeRepo implementação de UnidadeRepository sobre PostgreSQL.
type UnidadeRepo struct {
	q Querier
}

// NewUnidadeRepository constrói o adaptador.
func NewUnidadeRepository(q Querier) *UnidadeRepo {
	return &UnidadeRepo{q: q}
}

// Create persiste uma unidade escolar.
func (r *UnidadeRepo) Create(ctx context.Context, unidade *entity.Unidade) error {
	if unidade.ID == "" {
		unidade.ID = uuid.New().String()
	}
	query := `INSERT INTO unidades (id, nome, cidade, criada_em) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, unidade.ID, unidade.Nome, unidade.Cidade, unidade.CriadaEm)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create unidade: %w", err)
	}
	return nil
}

// GetByID busca uma unidade pelo ID.
func (r *UnidadeRepo) GetByID(ctx context.Context, id string) (*entity.Unidade, error) {
	query := `SELECT id, nome, cidade, criada_em FROM unidades WHERE id = $1`
	var u entity.Unidade
	err := r.q.QueryRow(ctx, query, id).Scan(&u.ID, &u.Nome, &u.Cidade, &u.CriadaEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get unidade: %w", err)
	}
	return &u, nil
}

// List devolve todas as unidades ordenadas por nome.
func (r *UnidadeRepo) List(ctx context.Context) ([]entity.Unidade, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nome, cidade, criada_em FROM unidades ORDER BY nome ASC`)
	if err != nil {
		return nil, fmt.Errorf("list unidades: %w", err)
	}
	defer rows.Close()

	var unidades []entity.Unidade
	for rows.Next() {
		var u entity.Unidade
		if err := rows.Scan(&u.ID, &u.Nome, &u.Cidade, &u.CriadaEm); err != nil {
			return nil, fmt.Errorf("scan unidade: %w", err)
		}
		unidades = append(unidades, u)
	}
	return unidades, rows.Err()
}
