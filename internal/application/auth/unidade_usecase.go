package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	"github.com/ljmsouza/almoxarifado-api/internal/domain"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

// UnidadeUseCase cadastro e listagem de unidades escolares.
type UnidadeUseCase struct {
	unidadeRepo repository.UnidadeRepository
}

// NewUnidadeUseCase constrói o caso de uso.
func NewUnidadeUseCase(unidadeRepo repository.UnidadeRepository) *UnidadeUseCase {
	return &UnidadeUseCase{unidadeRepo: unidadeRepo}
}

// Criar cadastra uma unidade escolar.
func (uc *UnidadeUseCase) Criar(ctx context.Context, in dto.CriarUnidadeRequest) (*dto.UnidadeResponse, error) {
	if in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	unidade := &entity.Unidade{
		ID:       uuid.New().String(),
		Nome:     in.Nome,
		Cidade:   in.Cidade,
		CriadaEm: time.Now(),
	}
	if err := uc.unidadeRepo.Create(ctx, unidade); err != nil {
		return nil, err
	}
	return &dto.UnidadeResponse{ID: unidade.ID, Nome: unidade.Nome, Cidade: unidade.Cidade}, nil
}

// Listar devolve as unidades cadastradas.
func (uc *UnidadeUseCase) Listar(ctx context.Context) ([]dto.UnidadeResponse, error) {
	unidades, err := uc.unidadeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnidadeResponse, 0, len(unidades))
	for _, u := range unidades {
		out = append(out, dto.UnidadeResponse{ID: u.ID, Nome: u.Nome, Cidade: u.Cidade})
	}
	return out, nil
}
