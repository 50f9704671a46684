package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	appestoque "github.com/ljmsouza/almoxarifado-api/internal/application/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/domain"
	domestoque "github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

// EstoqueHandler consultas de saldo e registro de movimentações (protegido).
type EstoqueHandler struct {
	consulta   *appestoque.ConsultaEstoqueUseCase
	saida      *appestoque.RegistrarSaidaUseCase
	entrada    *appestoque.RegistrarEntradaUseCase
	recalcular *appestoque.RecalcularSaldosUseCase
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(
	consulta *appestoque.ConsultaEstoqueUseCase,
	saida *appestoque.RegistrarSaidaUseCase,
	entrada *appestoque.RegistrarEntradaUseCase,
	recalcular *appestoque.RecalcularSaldosUseCase,
) *EstoqueHandler {
	return &EstoqueHandler{consulta: consulta, saida: saida, entrada: entrada, recalcular: recalcular}
}

// ListarSaldos godoc
// @Summary      Tabela de estoque da unidade
// @Description  Recomputa os saldos a partir do histórico completo de notas
//
//	aprovadas e movimentações, um produto por linha, ordenado por
//	descrição e unidade de medida.
//
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.SaldoProdutoResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/estoque/saldos [get]
func (h *EstoqueHandler) ListarSaldos(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	if unidadeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	saldos, err := h.consulta.ListarSaldos(c.Context(), unidadeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(saldos)
}

// SaldoDeProduto godoc
// @Summary      Saldo de um produto
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        descricao       query  string  true  "descrição exata do produto"
// @Param        unidade_medida  query  string  true  "unidade de medida"
// @Success      200  {object}  dto.SaldoProdutoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/estoque/saldo [get]
func (h *EstoqueHandler) SaldoDeProduto(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	if unidadeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	descricao := c.Query("descricao")
	unidadeMedida := c.Query("unidade_medida")
	if descricao == "" || unidadeMedida == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "descricao e unidade_medida são obrigatórios"})
	}
	saldo, err := h.consulta.SaldoDeProduto(c.Context(), unidadeID, domestoque.ProdutoID{
		Descricao:     descricao,
		UnidadeMedida: unidadeMedida,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(saldo)
}

// ListarAlertas godoc
// @Summary      Alertas de estoque baixo
// @Description  Produtos com 0 < estoque_atual <= limite, com severidade
//
//	critica ou baixa. O limite padrão vem da configuração.
//
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        limite  query  number  false  "limiar de alerta (padrão: configuração da aplicação)"
// @Success      200  {array}   dto.AlertaEstoqueResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/estoque/alertas [get]
func (h *EstoqueHandler) ListarAlertas(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	if unidadeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var limite *decimal.Decimal
	if raw := c.Query("limite"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limite deve ser um número não negativo"})
		}
		limite = &d
	}
	alertas, err := h.consulta.ListarAlertas(c.Context(), unidadeID, limite)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(alertas)
}

// RegistrarSaida godoc
// @Summary      Registrar saída de estoque
// @Description  Valida contra o saldo disponível e grava a saída na mesma
//
//	transação. Saída reprovada devolve 422 com o resultado
//	estruturado; nada é gravado.
//
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarSaidaRequest  true  "descricao, unidade_medida, quantidade, motivo opcional"
// @Success      201  {object}  dto.ResultadoSaidaResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ResultadoSaidaResponse
// @Router       /api/estoque/saidas [post]
func (h *EstoqueHandler) RegistrarSaida(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	userID := GetUserID(c)
	if unidadeID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegistrarSaidaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Descricao == "" || in.UnidadeMedida == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "descricao e unidade_medida são obrigatórios"})
	}
	resultado, err := h.saida.Executar(c.Context(), unidadeID, userID, in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if !resultado.Valida {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resultado)
	}
	return c.Status(fiber.StatusCreated).JSON(resultado)
}

// RegistrarEntrada godoc
// @Summary      Registrar entrada manual de estoque
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarEntradaRequest  true  "descricao, unidade_medida, quantidade, valor_unitario"
// @Success      201  {object}  dto.MovimentacaoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/estoque/entradas [post]
func (h *EstoqueHandler) RegistrarEntrada(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	userID := GetUserID(c)
	if unidadeID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegistrarEntradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	mov, err := h.entrada.Executar(c.Context(), unidadeID, userID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantidade deve ser positiva e valor unitário não negativo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(mov)
}

// ListarMovimentacoes godoc
// @Summary      Histórico de movimentações
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        descricao       query  string  false  "filtrar por produto"
// @Param        unidade_medida  query  string  false  "filtrar por unidade de medida"
// @Param        tipo            query  string  false  "entrada | saida"
// @Param        limit           query  int     false  "tamanho da página (padrão 20)"
// @Param        offset          query  int     false  "deslocamento"
// @Success      200  {array}   dto.MovimentacaoResponse
// @Router       /api/estoque/movimentacoes [get]
func (h *EstoqueHandler) ListarMovimentacoes(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	if unidadeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	page.DefaultPage()

	filtro := repository.FiltroMovimentacao{
		ProdutoDescricao: c.Query("descricao"),
		UnidadeMedida:    c.Query("unidade_medida"),
		Tipo:             c.Query("tipo"),
		Limit:            page.Limit,
		Offset:           page.Offset,
	}
	movs, err := h.consulta.ListarMovimentacoes(c.Context(), unidadeID, filtro)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(movs)
}

// RecalcularSaldos godoc
// @Summary      Reconciliar saldos materializados
// @Description  Recomputa todos os saldos da unidade a partir do histórico e
//
//	substitui o agregado materializado, devolvendo as divergências
//	encontradas. Restrito ao perfil gestor.
//
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RecalculoResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/estoque/recalcular [post]
func (h *EstoqueHandler) RecalcularSaldos(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	if unidadeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.recalcular.Executar(c.Context(), unidadeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
