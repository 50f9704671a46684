package repository

import (
	"context"
	"time"

	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
)

// FiltroMovimentacao filtros opcionais de listagem.
type FiltroMovimentacao struct {
	ProdutoDescricao string
	UnidadeMedida    string
	Tipo             string
	De               *time.Time
	Ate              *time.Time
	Limit            int
	Offset           int
}

// MovimentacaoRepository define a porta de persistência da coleção append-only
// de movimentações, particionada por unidade escolar. O núcleo só exige List
// e Append; não há edição nem exclusão.
type MovimentacaoRepository interface {
	Append(ctx context.Context, mov *entity.Movimentacao) error
	List(ctx context.Context, unidadeID string) ([]entity.Movimentacao, error)
	ListFiltrada(ctx context.Context, unidadeID string, filtro FiltroMovimentacao) ([]entity.Movimentacao, error)
}
