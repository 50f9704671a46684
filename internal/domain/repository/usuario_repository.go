package repository

import (
	"context"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
)

// UsuarioRepository define a porta de persistência de usuários.
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *entity.Usuario) error
	FindByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	GetByEmailAndUnidade(ctx context.Context, email, unidadeID string) (*entity.Usuario, error)
}
