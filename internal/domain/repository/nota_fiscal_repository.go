package repository

import (
	"context"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
)

// NotaFiscalRepository define a porta de persistência de notas fiscais e itens.
// Notas são imutáveis depois de aprovadas; apenas status e flag ativa mudam.
type NotaFiscalRepository interface {
	Create(ctx context.Context, nota *entity.NotaFiscal) error
	GetByID(ctx context.Context, unidadeID, id string) (*entity.NotaFiscal, error)
	// List devolve todas as notas da unidade com seus itens carregados.
	List(ctx context.Context, unidadeID string) ([]entity.NotaFiscal, error)
	UpdateStatus(ctx context.Context, unidadeID, id, status string) error
	SetAtiva(ctx context.Context, unidadeID, id string, ativa bool) error
}
