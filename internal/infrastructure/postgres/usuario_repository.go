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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementação de UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository constrói o adaptador.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const colunasUsuario = `id, unidade_id, email, senha_hash, nome, perfil, status, criado_em, atualizado_em`

// Create persiste um usuário. Email duplicado devolve ErrEmailJaCadastrado.
func (r *UsuarioRepo) Create(ctx context.Context, usuario *entity.Usuario) error {
	if usuario.ID == "" {
		usuario.ID = uuid.New().String()
	}
	query := `
		INSERT INTO usuarios (` + colunasUsuario + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		usuario.ID, usuario.UnidadeID, usuario.Email, usuario.SenhaHash,
		usuario.Nome, usuario.Perfil, usuario.Status, usuario.CriadoEm, usuario.AtualizadoEm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailJaCadastrado
		}
		return fmt.Errorf("create usuario: %w", err)
	}
	return nil
}

// FindByEmail busca um usuário pelo email.
func (r *UsuarioRepo) FindByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	query := `SELECT ` + colunasUsuario + ` FROM usuarios WHERE email = $1`
	return r.scanUsuario(r.q.QueryRow(ctx, query, email))
}

// GetByEmailAndUnidade busca um usuário pelo email dentro de uma unidade.
func (r *UsuarioRepo) GetByEmailAndUnidade(ctx context.Context, email, unidadeID string) (*entity.Usuario, error) {
	query := `SELECT ` + colunasUsuario + ` FROM usuarios WHERE email = $1 AND unidade_id = $2`
	return r.scanUsuario(r.q.QueryRow(ctx, query, email, unidadeID))
}

func (r *UsuarioRepo) scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.UnidadeID, &u.Email, &u.SenhaHash,
		&u.Nome, &u.Perfil, &u.Status, &u.CriadoEm, &u.AtualizadoEm)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUsuarioNotFound
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}
