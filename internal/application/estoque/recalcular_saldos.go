package estoque

import (
	"context"
	"time"

	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	domestoque "github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

// RecalcularSaldosUseCase reconcilia o agregado materializado com a
// recomputação pura do histórico de notas e movimentações: reporta as
// divergências encontradas e reconstrói as linhas de saldo do zero, tudo em
// uma transação.
type RecalcularSaldosUseCase struct {
	txRunner TxRunner
}

// NewRecalcularSaldosUseCase constrói o caso de uso.
func NewRecalcularSaldosUseCase(txRunner TxRunner) *RecalcularSaldosUseCase {
	return &RecalcularSaldosUseCase{txRunner: txRunner}
}

// Executar recalcula os saldos materializados da unidade.
func (uc *RecalcularSaldosUseCase) Executar(ctx context.Context, unidadeID string) (*dto.RecalculoResponse, error) {
	var out dto.RecalculoResponse
	err := uc.txRunner.Run(ctx, func(
		notaRepo repository.NotaFiscalRepository,
		movRepo repository.MovimentacaoRepository,
		saldoRepo repository.SaldoRepository,
	) error {
		notas, err := notaRepo.List(ctx, unidadeID)
		if err != nil {
			return err
		}
		movs, err := movRepo.List(ctx, unidadeID)
		if err != nil {
			return err
		}
		recomputados := domestoque.CalcularSaldos(notas, movs)

		existentes, err := saldoRepo.List(ctx, unidadeID)
		if err != nil {
			return err
		}
		materializado := make(map[domestoque.ProdutoID]entity.SaldoEstoque, len(existentes))
		for _, s := range existentes {
			materializado[domestoque.ProdutoID{Descricao: s.ProdutoDescricao, UnidadeMedida: s.UnidadeMedida}] = s
		}

		out.Divergencias = make([]dto.DivergenciaSaldoDTO, 0)
		for _, r := range recomputados {
			atual, ok := materializado[r.Produto]
			// Quantidade certa com custo errado também é divergência: o custo
			// acumulado de entradas determina o custo médio reportado.
			divergente := !ok ||
				!atual.EstoqueAtual().Equal(r.EstoqueAtual) ||
				!atual.CustoTotalEntradas.Equal(r.CustoTotalEntradas)
			if divergente {
				out.Divergencias = append(out.Divergencias, dto.DivergenciaSaldoDTO{
					Descricao:               r.Produto.Descricao,
					UnidadeMedida:           r.Produto.UnidadeMedida,
					EstoqueMaterializado:    atual.EstoqueAtual(),
					EstoqueRecomputado:      r.EstoqueAtual,
					CustoTotalMaterializado: atual.CustoTotalEntradas,
					CustoTotalRecomputado:   r.CustoTotalEntradas,
				})
			}
		}

		// Reconstrói o agregado a partir do histórico.
		if err := saldoRepo.DeleteAll(ctx, unidadeID); err != nil {
			return err
		}
		now := time.Now()
		for _, r := range recomputados {
			linha := &entity.SaldoEstoque{
				UnidadeID:          unidadeID,
				ProdutoDescricao:   r.Produto.Descricao,
				UnidadeMedida:      r.Produto.UnidadeMedida,
				TotalEntradas:      r.TotalEntradas,
				TotalSaidas:        r.TotalSaidas,
				CustoTotalEntradas: r.CustoTotalEntradas,
				AtualizadoEm:       now,
			}
			if err := saldoRepo.Upsert(ctx, linha); err != nil {
				return err
			}
		}
		out.SaldosRecalculados = len(recomputados)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
