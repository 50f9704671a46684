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

// RegistrarSaidaUseCase registra saídas de estoque de forma transacional.
// Dentro da transação: trava a identidade do produto, recomputa o saldo a
// partir do histórico, valida a quantidade pedida e só então anexa a
// movimentação, com o custo médio calculado como preço unitário, nunca um
// preço vindo do chamador.
type RegistrarSaidaUseCase struct {
	txRunner     TxRunner
	normalizador domestoque.Normalizador
}

// NewRegistrarSaidaUseCase constrói o caso de uso.
func NewRegistrarSaidaUseCase(txRunner TxRunner, normalizador domestoque.Normalizador) *RegistrarSaidaUseCase {
	return &RegistrarSaidaUseCase{txRunner: txRunner, normalizador: normalizador}
}

// Executar valida e registra a saída. Reprovação de regra de negócio volta no
// resultado estruturado (Valida=false), sem erro e sem efeito colateral;
// erro Go só para falhas de entrada ou de infraestrutura.
func (uc *RegistrarSaidaUseCase) Executar(ctx context.Context, unidadeID, usuarioID string, in dto.RegistrarSaidaRequest) (*dto.ResultadoSaidaResponse, error) {
	if in.Descricao == "" || in.UnidadeMedida == "" {
		return nil, domain.ErrInvalidInput
	}
	produto := uc.normalizador.Aplicar(domestoque.ProdutoID{
		Descricao:     in.Descricao,
		UnidadeMedida: in.UnidadeMedida,
	})

	var out dto.ResultadoSaidaResponse
	err := uc.txRunner.Run(ctx, func(
		notaRepo repository.NotaFiscalRepository,
		movRepo repository.MovimentacaoRepository,
		saldoRepo repository.SaldoRepository,
	) error {
		if err := saldoRepo.TravaProduto(ctx, unidadeID, produto.Descricao, produto.UnidadeMedida); err != nil {
			return err
		}

		notas, err := notaRepo.List(ctx, unidadeID)
		if err != nil {
			return err
		}
		movs, err := movRepo.List(ctx, unidadeID)
		if err != nil {
			return err
		}

		saldo := domestoque.CalcularSaldo(produto, notas, movs)
		res := domestoque.ValidarSaidaContraSaldo(saldo, in.Quantidade)
		out = dto.ResultadoSaidaResponse{
			Valida:            res.Valida,
			EstoqueDisponivel: res.EstoqueDisponivel,
			Mensagem:          res.Mensagem,
		}
		if !res.Valida {
			return nil
		}

		now := time.Now()
		mov := &entity.Movimentacao{
			ID:               uuid.New().String(),
			UnidadeID:        unidadeID,
			Tipo:             entity.TipoSaida,
			Data:             now,
			ProdutoDescricao: produto.Descricao,
			UnidadeMedida:    produto.UnidadeMedida,
			Quantidade:       in.Quantidade,
			ValorUnitario:    saldo.CustoMedio,
			CustoTotal:       in.Quantidade.Mul(saldo.CustoMedio),
			Origem:           entity.OrigemManual,
			Motivo:           in.Motivo,
			CriadaEm:         now,
			CriadaPor:        usuarioID,
		}
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
		out.MovimentacaoID = mov.ID

		// Mantém o agregado materializado consistente na mesma transação.
		linha, err := saldoRepo.GetForUpdate(ctx, unidadeID, produto.Descricao, produto.UnidadeMedida)
		if err != nil {
			return err
		}
		linha.TotalSaidas = linha.TotalSaidas.Add(in.Quantidade)
		linha.AtualizadoEm = now
		return saldoRepo.Upsert(ctx, linha)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
