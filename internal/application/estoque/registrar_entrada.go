package estoque

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	"github.com/ljmsouza/almoxarifado-api/internal/domain"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	domestoque "github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

// RegistrarEntradaUseCase registra entradas manuais de estoque, espelhando o
// caminho das saídas: transação + bloqueio por produto + atualização do
// agregado materializado.
type RegistrarEntradaUseCase struct {
	txRunner     TxRunner
	normalizador domestoque.Normalizador
}

// NewRegistrarEntradaUseCase constrói o caso de uso.
func NewRegistrarEntradaUseCase(txRunner TxRunner, normalizador domestoque.Normalizador) *RegistrarEntradaUseCase {
	return &RegistrarEntradaUseCase{txRunner: txRunner, normalizador: normalizador}
}

// Executar registra a entrada manual. Exige quantidade positiva e valor
// unitário não negativo.
func (uc *RegistrarEntradaUseCase) Executar(ctx context.Context, unidadeID, usuarioID string, in dto.RegistrarEntradaRequest) (*dto.MovimentacaoResponse, error) {
	if in.Descricao == "" || in.UnidadeMedida == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantidade.IsPositive() || in.ValorUnitario.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	produto := uc.normalizador.Aplicar(domestoque.ProdutoID{
		Descricao:     in.Descricao,
		UnidadeMedida: in.UnidadeMedida,
	})

	now := time.Now()
	custo := in.Quantidade.Mul(in.ValorUnitario)
	mov := &entity.Movimentacao{
		ID:               uuid.New().String(),
		UnidadeID:        unidadeID,
		Tipo:             entity.TipoEntrada,
		Data:             now,
		ProdutoDescricao: produto.Descricao,
		UnidadeMedida:    produto.UnidadeMedida,
		Quantidade:       in.Quantidade,
		ValorUnitario:    in.ValorUnitario,
		CustoTotal:       custo,
		Origem:           entity.OrigemManual,
		Motivo:           in.Motivo,
		CriadaEm:         now,
		CriadaPor:        usuarioID,
	}

	err := uc.txRunner.Run(ctx, func(
		_ repository.NotaFiscalRepository,
		movRepo repository.MovimentacaoRepository,
		saldoRepo repository.SaldoRepository,
	) error {
		if err := saldoRepo.TravaProduto(ctx, unidadeID, produto.Descricao, produto.UnidadeMedida); err != nil {
			return err
		}
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
		linha, err := saldoRepo.GetForUpdate(ctx, unidadeID, produto.Descricao, produto.UnidadeMedida)
		if err != nil {
			return err
		}
		linha.TotalEntradas = linha.TotalEntradas.Add(in.Quantidade)
		linha.CustoTotalEntradas = linha.CustoTotalEntradas.Add(custo)
		linha.AtualizadoEm = now
		return saldoRepo.Upsert(ctx, linha)
	})
	if err != nil {
		return nil, err
	}

	return &dto.MovimentacaoResponse{
		ID:            mov.ID,
		Tipo:          mov.Tipo,
		Data:          mov.Data,
		Descricao:     mov.ProdutoDescricao,
		UnidadeMedida: mov.UnidadeMedida,
		Quantidade:    mov.Quantidade,
		ValorUnitario: mov.ValorUnitario,
		CustoTotal:    mov.CustoTotal,
		Origem:        mov.Origem,
		Motivo:        mov.Motivo,
		CriadaEm:      mov.CriadaEm,
	}, nil
}
