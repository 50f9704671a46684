package repository

import (
	"context"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
)

// UnidadeRepository define a porta de persistência de unidades escolares.
type UnidadeRepository interface {
	Create(ctx context.Context, unidade *entity.Unidade) error
	GetByID(ctx context.Context, id string) (*entity.Unidade, error)
	List(ctx context.Context) ([]entity.Unidade, error)
}
