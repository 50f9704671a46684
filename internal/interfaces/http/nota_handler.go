package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	"github.com/ljmsouza/almoxarifado-api/internal/application/notas"
	"github.com/ljmsouza/almoxarifado-api/internal/domain"
)

// NotaHandler ciclo de vida das notas fiscais de fornecedor (protegido).
type NotaHandler struct {
	uc *notas.NotaFiscalUseCase
}

// NewNotaHandler constrói o handler.
func NewNotaHandler(uc *notas.NotaFiscalUseCase) *NotaHandler {
	return &NotaHandler{uc: uc}
}

// Importar godoc
// @Summary      Importar nota fiscal (JSON)
// @Description  Cria a nota com status pendente. Notas pendentes não afetam
//
//	o estoque até a aprovação.
//
// @Tags         notas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportarNotaRequest  true  "fornecedor, data_emissao, itens"
// @Success      201   {object}  dto.NotaFiscalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/notas [post]
func (h *NotaHandler) Importar(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	if unidadeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ImportarNotaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	nota, err := h.uc.Importar(c.Context(), unidadeID, in)
	if err != nil {
		return notaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(nota)
}

// ImportarXML godoc
// @Summary      Importar NF-e (XML)
// @Description  Recebe o XML da NF-e no corpo da requisição, extrai emitente,
//
//	chave de acesso e itens, e cria a nota com status pendente.
//
// @Tags         notas
// @Security     Bearer
// @Accept       application/xml
// @Produce      json
// @Success      201  {object}  dto.NotaFiscalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/notas/importar-xml [post]
func (h *NotaHandler) ImportarXML(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	if unidadeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	corpo := c.Body()
	if len(corpo) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "XML da NF-e vazio"})
	}
	nota, err := h.uc.ImportarXML(c.Context(), unidadeID, corpo)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrInvalidInput) {
			return notaError(c, err)
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_XML", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(nota)
}

// Listar godoc
// @Summary      Listar notas fiscais da unidade
// @Tags         notas
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NotaFiscalResponse
// @Router       /api/notas [get]
func (h *NotaHandler) Listar(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	if unidadeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	lista, err := h.uc.Listar(c.Context(), unidadeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(lista)
}

// Aprovar godoc
// @Summary      Aprovar nota pendente
// @Description  Muda o status para aprovada e credita os saldos de estoque na
//
//	mesma transação. Só notas pendentes podem ser aprovadas.
//	Restrito ao perfil gestor.
//
// @Tags         notas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da nota"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/notas/{id}/aprovar [post]
func (h *NotaHandler) Aprovar(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	if unidadeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Aprovar(c.Context(), unidadeID, c.Params("id")); err != nil {
		return notaError(c, err)
	}
	return c.JSON(fiber.Map{"message": "nota aprovada"})
}

// Rejeitar godoc
// @Summary      Rejeitar nota pendente
// @Tags         notas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da nota"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/notas/{id}/rejeitar [post]
func (h *NotaHandler) Rejeitar(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	if unidadeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Rejeitar(c.Context(), unidadeID, c.Params("id")); err != nil {
		return notaError(c, err)
	}
	return c.JSON(fiber.Map{"message": "nota rejeitada"})
}

// Desativar godoc
// @Summary      Desativar nota
// @Description  Torna a nota invisível ao razão. Se estava aprovada, os saldos
//
//	são debitados na mesma transação.
//
// @Tags         notas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da nota"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notas/{id}/desativar [post]
func (h *NotaHandler) Desativar(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	if unidadeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Desativar(c.Context(), unidadeID, c.Params("id")); err != nil {
		return notaError(c, err)
	}
	return c.JSON(fiber.Map{"message": "nota desativada"})
}

func notaError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados da nota inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nota não encontrada"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "transição de status não permitida"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "nota com esta chave de acesso já importada"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
