package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ljmsouza/almoxarifado-api/internal/application/auth"
	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	"github.com/ljmsouza/almoxarifado-api/internal/domain"
)

// UnidadeHandler cadastro e listagem de unidades escolares.
type UnidadeHandler struct {
	uc *auth.UnidadeUseCase
}

// NewUnidadeHandler constrói o handler.
func NewUnidadeHandler(uc *auth.UnidadeUseCase) *UnidadeHandler {
	return &UnidadeHandler{uc: uc}
}

// Criar godoc
// @Summary      Cadastrar unidade escolar
// @Tags         unidades
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarUnidadeRequest  true  "nome, cidade opcional"
// @Success      201   {object}  dto.UnidadeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/unidades [post]
func (h *UnidadeHandler) Criar(c *fiber.Ctx) error {
	var in dto.CriarUnidadeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	unidade, err := h.uc.Criar(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nome é obrigatório"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(unidade)
}

// Listar godoc
// @Summary      Listar unidades escolares
// @Tags         unidades
// @Produce      json
// @Success      200  {array}  dto.UnidadeResponse
// @Router       /api/unidades [get]
func (h *UnidadeHandler) Listar(c *fiber.Ctx) error {
	unidades, err := h.uc.Listar(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(unidades)
}
