package notas

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	"github.com/ljmsouza/almoxarifado-api/internal/domain"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	domestoque "github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

// NotaFiscalUseCase ciclo de vida das notas de fornecedor: importação (JSON
// ou XML de NF-e), listagem, aprovação, rejeição e desativação. Notas nascem
// pendentes e invisíveis ao razão; a aprovação credita o agregado
// materializado e a desativação o debita, sempre na mesma transação da
// mudança de status.
type NotaFiscalUseCase struct {
	txRunner     TxRunner
	notaRepo     repository.NotaFiscalRepository
	parser       ParserNFe
	normalizador domestoque.Normalizador
}

// NewNotaFiscalUseCase constrói o caso de uso.
func NewNotaFiscalUseCase(
	txRunner TxRunner,
	notaRepo repository.NotaFiscalRepository,
	parser ParserNFe,
	normalizador domestoque.Normalizador,
) *NotaFiscalUseCase {
	return &NotaFiscalUseCase{
		txRunner:     txRunner,
		notaRepo:     notaRepo,
		parser:       parser,
		normalizador: normalizador,
	}
}

// Importar cria uma nota pendente a partir do payload JSON.
func (uc *NotaFiscalUseCase) Importar(ctx context.Context, unidadeID string, in dto.ImportarNotaRequest) (*dto.NotaFiscalResponse, error) {
	if in.Fornecedor == "" || len(in.Itens) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	nota := &entity.NotaFiscal{
		ID:           uuid.New().String(),
		UnidadeID:    unidadeID,
		Fornecedor:   in.Fornecedor,
		ChaveAcesso:  in.ChaveAcesso,
		DataEmissao:  in.DataEmissao,
		Status:       entity.NotaStatusPendente,
		Ativa:        true,
		CriadaEm:     now,
		AtualizadaEm: now,
	}
	if nota.DataEmissao.IsZero() {
		nota.DataEmissao = now
	}
	for _, item := range in.Itens {
		if item.Descricao == "" || item.UnidadeMedida == "" || !item.Quantidade.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		produto := uc.normalizador.Aplicar(domestoque.ProdutoID{
			Descricao:     item.Descricao,
			UnidadeMedida: item.UnidadeMedida,
		})
		valorTotal := item.ValorTotal
		if valorTotal.IsZero() {
			valorTotal = item.Quantidade.Mul(item.ValorUnitario)
		}
		nota.Itens = append(nota.Itens, entity.ItemNotaFiscal{
			ID:            uuid.New().String(),
			NotaFiscalID:  nota.ID,
			Descricao:     produto.Descricao,
			UnidadeMedida: produto.UnidadeMedida,
			Quantidade:    item.Quantidade,
			ValorUnitario: item.ValorUnitario,
			ValorTotal:    valorTotal,
		})
	}
	if err := uc.notaRepo.Create(ctx, nota); err != nil {
		return nil, err
	}
	return toNotaResponse(nota), nil
}

// ImportarXML cria uma nota pendente a partir do XML de uma NF-e.
func (uc *NotaFiscalUseCase) ImportarXML(ctx context.Context, unidadeID string, xmlNFe []byte) (*dto.NotaFiscalResponse, error) {
	nota, err := uc.parser.Parse(xmlNFe)
	if err != nil {
		return nil, err
	}
	in := dto.ImportarNotaRequest{
		Fornecedor:  nota.Fornecedor,
		ChaveAcesso: nota.ChaveAcesso,
		DataEmissao: nota.DataEmissao,
	}
	for _, item := range nota.Itens {
		in.Itens = append(in.Itens, dto.ItemNotaRequest{
			Descricao:     item.Descricao,
			UnidadeMedida: item.UnidadeMedida,
			Quantidade:    item.Quantidade,
			ValorUnitario: item.ValorUnitario,
			ValorTotal:    item.ValorTotal,
		})
	}
	return uc.Importar(ctx, unidadeID, in)
}

// Listar devolve as notas da unidade.
func (uc *NotaFiscalUseCase) Listar(ctx context.Context, unidadeID string) ([]dto.NotaFiscalResponse, error) {
	notas, err := uc.notaRepo.List(ctx, unidadeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotaFiscalResponse, 0, len(notas))
	for i := range notas {
		out = append(out, *toNotaResponse(&notas[i]))
	}
	return out, nil
}

// Aprovar move a nota de pendente para aprovada e credita as entradas dos
// itens no agregado materializado, na mesma transação.
func (uc *NotaFiscalUseCase) Aprovar(ctx context.Context, unidadeID, notaID string) error {
	return uc.txRunner.Run(ctx, func(
		notaRepo repository.NotaFiscalRepository,
		_ repository.MovimentacaoRepository,
		saldoRepo repository.SaldoRepository,
	) error {
		nota, err := notaRepo.GetByID(ctx, unidadeID, notaID)
		if err != nil {
			return err
		}
		if nota == nil {
			return domain.ErrNotFound
		}
		if nota.Status != entity.NotaStatusPendente {
			return domain.ErrConflict
		}
		if err := notaRepo.UpdateStatus(ctx, unidadeID, notaID, entity.NotaStatusAprovada); err != nil {
			return err
		}
		return uc.creditarItens(ctx, saldoRepo, unidadeID, nota.Itens, false)
	})
}

// Rejeitar move a nota de pendente para rejeitada. Nota rejeitada nunca
// contribuiu com entradas, então não há efeito sobre saldos.
func (uc *NotaFiscalUseCase) Rejeitar(ctx context.Context, unidadeID, notaID string) error {
	nota, err := uc.notaRepo.GetByID(ctx, unidadeID, notaID)
	if err != nil {
		return err
	}
	if nota == nil {
		return domain.ErrNotFound
	}
	if nota.Status != entity.NotaStatusPendente {
		return domain.ErrConflict
	}
	return uc.notaRepo.UpdateStatus(ctx, unidadeID, notaID, entity.NotaStatusRejeitada)
}

// Desativar marca a nota como inativa. Se estava aprovada, as entradas dos
// itens deixam de ser visíveis ao razão e são debitadas do agregado.
func (uc *NotaFiscalUseCase) Desativar(ctx context.Context, unidadeID, notaID string) error {
	return uc.txRunner.Run(ctx, func(
		notaRepo repository.NotaFiscalRepository,
		_ repository.MovimentacaoRepository,
		saldoRepo repository.SaldoRepository,
	) error {
		nota, err := notaRepo.GetByID(ctx, unidadeID, notaID)
		if err != nil {
			return err
		}
		if nota == nil {
			return domain.ErrNotFound
		}
		if !nota.Ativa {
			return domain.ErrConflict
		}
		if err := notaRepo.SetAtiva(ctx, unidadeID, notaID, false); err != nil {
			return err
		}
		if nota.Status != entity.NotaStatusAprovada {
			return nil
		}
		return uc.creditarItens(ctx, saldoRepo, unidadeID, nota.Itens, true)
	})
}

// creditarItens aplica (ou estorna, com debito=true) as entradas dos itens no
// agregado materializado, produto a produto, sob bloqueio.
func (uc *NotaFiscalUseCase) creditarItens(ctx context.Context, saldoRepo repository.SaldoRepository, unidadeID string, itens []entity.ItemNotaFiscal, debito bool) error {
	now := time.Now()
	for _, item := range itens {
		if err := saldoRepo.TravaProduto(ctx, unidadeID, item.Descricao, item.UnidadeMedida); err != nil {
			return err
		}
		linha, err := saldoRepo.GetForUpdate(ctx, unidadeID, item.Descricao, item.UnidadeMedida)
		if err != nil {
			return err
		}
		qtd := item.Quantidade
		custo := item.CustoItem()
		if debito {
			qtd = qtd.Neg()
			custo = custo.Neg()
		}
		linha.TotalEntradas = linha.TotalEntradas.Add(qtd)
		linha.CustoTotalEntradas = linha.CustoTotalEntradas.Add(custo)
		if linha.TotalEntradas.IsNegative() {
			linha.TotalEntradas = decimal.Zero
		}
		if linha.CustoTotalEntradas.IsNegative() {
			linha.CustoTotalEntradas = decimal.Zero
		}
		linha.AtualizadoEm = now
		if err := saldoRepo.Upsert(ctx, linha); err != nil {
			return err
		}
	}
	return nil
}

func toNotaResponse(n *entity.NotaFiscal) *dto.NotaFiscalResponse {
	resp := &dto.NotaFiscalResponse{
		ID:          n.ID,
		Fornecedor:  n.Fornecedor,
		ChaveAcesso: n.ChaveAcesso,
		DataEmissao: n.DataEmissao,
		Status:      n.Status,
		Ativa:       n.Ativa,
		Itens:       make([]dto.ItemNotaResponse, 0, len(n.Itens)),
	}
	for _, item := range n.Itens {
		resp.Itens = append(resp.Itens, dto.ItemNotaResponse{
			Descricao:     item.Descricao,
			UnidadeMedida: item.UnidadeMedida,
			Quantidade:    item.Quantidade,
			ValorUnitario: item.ValorUnitario,
			ValorTotal:    item.ValorTotal,
		})
	}
	return resp
}
