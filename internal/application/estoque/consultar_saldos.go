package estoque

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	domestoque "github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

// LimitesAlerta limites configuráveis do monitor de estoque baixo.
type LimitesAlerta struct {
	Alerta  decimal.Decimal
	Critico decimal.Decimal
}

// ConsultaEstoqueUseCase consultas de saldo: tabela de estoque, saldo de um
// produto, alertas de estoque baixo e listagem de movimentações. Os saldos
// são sempre recomputados do histórico completo na hora da consulta, sem
// cache entre chamadas.
type ConsultaEstoqueUseCase struct {
	notaRepo     repository.NotaFiscalRepository
	movRepo      repository.MovimentacaoRepository
	limites      LimitesAlerta
	normalizador domestoque.Normalizador
}

// NewConsultaEstoqueUseCase constrói o caso de uso.
func NewConsultaEstoqueUseCase(
	notaRepo repository.NotaFiscalRepository,
	movRepo repository.MovimentacaoRepository,
	limites LimitesAlerta,
	normalizador domestoque.Normalizador,
) *ConsultaEstoqueUseCase {
	if limites.Alerta.IsZero() {
		limites.Alerta = domestoque.LimiteAlertaPadrao
	}
	if limites.Critico.IsZero() {
		limites.Critico = domestoque.LimiteCriticoPadrao
	}
	return &ConsultaEstoqueUseCase{
		notaRepo:     notaRepo,
		movRepo:      movRepo,
		limites:      limites,
		normalizador: normalizador,
	}
}

// SaldosCalculados recomputa todos os saldos da unidade (domínio puro).
func (uc *ConsultaEstoqueUseCase) SaldosCalculados(ctx context.Context, unidadeID string) ([]domestoque.SaldoProduto, error) {
	notas, err := uc.notaRepo.List(ctx, unidadeID)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.List(ctx, unidadeID)
	if err != nil {
		return nil, err
	}
	return domestoque.CalcularSaldos(notas, movs), nil
}

// ListarSaldos devolve a tabela de estoque da unidade.
func (uc *ConsultaEstoqueUseCase) ListarSaldos(ctx context.Context, unidadeID string) ([]dto.SaldoProdutoResponse, error) {
	saldos, err := uc.SaldosCalculados(ctx, unidadeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaldoProdutoResponse, 0, len(saldos))
	for _, s := range saldos {
		out = append(out, toSaldoResponse(s))
	}
	return out, nil
}

// SaldoDeProduto recomputa o saldo de um único produto. Identidade sem
// histórico rende saldo todo zerado, não erro.
func (uc *ConsultaEstoqueUseCase) SaldoDeProduto(ctx context.Context, unidadeID string, produto domestoque.ProdutoID) (*dto.SaldoProdutoResponse, error) {
	produto = uc.normalizador.Aplicar(produto)
	notas, err := uc.notaRepo.List(ctx, unidadeID)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movRepo.List(ctx, unidadeID)
	if err != nil {
		return nil, err
	}
	resp := toSaldoResponse(domestoque.CalcularSaldo(produto, notas, movs))
	return &resp, nil
}

// ListarAlertas devolve os produtos com 0 < estoque ≤ limite, classificados
// por severidade. limite nulo usa o limite configurado.
func (uc *ConsultaEstoqueUseCase) ListarAlertas(ctx context.Context, unidadeID string, limite *decimal.Decimal) ([]dto.AlertaEstoqueResponse, error) {
	saldos, err := uc.SaldosCalculados(ctx, unidadeID)
	if err != nil {
		return nil, err
	}
	lim := uc.limites.Alerta
	if limite != nil && limite.IsPositive() {
		lim = *limite
	}
	baixos := domestoque.FiltrarEstoqueBaixo(saldos, lim)
	out := make([]dto.AlertaEstoqueResponse, 0, len(baixos))
	for _, s := range baixos {
		out = append(out, dto.AlertaEstoqueResponse{
			SaldoProdutoResponse: toSaldoResponse(s),
			Severidade:           string(domestoque.ClassificarSeveridade(s.EstoqueAtual, uc.limites.Critico, lim)),
		})
	}
	return out, nil
}

// ListarMovimentacoes lista as movimentações da unidade com filtros opcionais.
func (uc *ConsultaEstoqueUseCase) ListarMovimentacoes(ctx context.Context, unidadeID string, filtro repository.FiltroMovimentacao) ([]dto.MovimentacaoResponse, error) {
	movs, err := uc.movRepo.ListFiltrada(ctx, unidadeID, filtro)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentacaoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimentacaoResponse{
			ID:            m.ID,
			Tipo:          m.Tipo,
			Data:          m.Data,
			Descricao:     m.ProdutoDescricao,
			UnidadeMedida: m.UnidadeMedida,
			Quantidade:    m.Quantidade,
			ValorUnitario: m.ValorUnitario,
			CustoTotal:    m.CustoTotal,
			Origem:        m.Origem,
			Motivo:        m.Motivo,
			CriadaEm:      m.CriadaEm,
		})
	}
	return out, nil
}

func toSaldoResponse(s domestoque.SaldoProduto) dto.SaldoProdutoResponse {
	return dto.SaldoProdutoResponse{
		Descricao:     s.Produto.Descricao,
		UnidadeMedida: s.Produto.UnidadeMedida,
		TotalEntradas: s.TotalEntradas,
		TotalSaidas:   s.TotalSaidas,
		EstoqueAtual:  s.EstoqueAtual,
		CustoMedio:    s.CustoMedio,
		ValorTotal:    s.ValorTotal,
	}
}
