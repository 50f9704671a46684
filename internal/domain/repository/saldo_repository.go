package repository

import (
	"context"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
)

// SaldoRepository define a porta do agregado materializado de saldos por
// (unidade, produto). Usado dentro de transações para garantir consistência.
type SaldoRepository interface {
	// TravaProduto adquire o bloqueio exclusivo da identidade dentro da
	// transação corrente. Só um escritor lógico por produto por vez.
	TravaProduto(ctx context.Context, unidadeID, descricao, unidadeMedida string) error
	Get(ctx context.Context, unidadeID, descricao, unidadeMedida string) (*entity.SaldoEstoque, error)
	// GetForUpdate bloqueia a linha para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, unidadeID, descricao, unidadeMedida string) (*entity.SaldoEstoque, error)
	Upsert(ctx context.Context, saldo *entity.SaldoEstoque) error
	List(ctx context.Context, unidadeID string) ([]entity.SaldoEstoque, error)
	// DeleteAll remove todos os saldos da unidade (usado na reconciliação).
	DeleteAll(ctx context.Context, unidadeID string) error
}
