package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	"github.com/ljmsouza/almoxarifado-api/internal/application/relatorio"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

// RelatorioHandler exportação do relatório de estoque (protegido).
type RelatorioHandler struct {
	uc          *relatorio.ExportarUseCase
	unidadeRepo repository.UnidadeRepository
}

// NewRelatorioHandler constrói o handler.
func NewRelatorioHandler(uc *relatorio.ExportarUseCase, unidadeRepo repository.UnidadeRepository) *RelatorioHandler {
	return &RelatorioHandler{uc: uc, unidadeRepo: unidadeRepo}
}

// ExportarCSV godoc
// @Summary      Exportar estoque em CSV
// @Tags         relatorios
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string  "arquivo CSV"
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/relatorios/estoque.csv [get]
func (h *RelatorioHandler) ExportarCSV(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	if unidadeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	conteudo, err := h.uc.GerarCSV(c.Context(), unidadeID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	nome := fmt.Sprintf("estoque-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nome+`"`)
	return c.Send(conteudo)
}

// ExportarPDF godoc
// @Summary      Exportar estoque em PDF
// @Tags         relatorios
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {string}  string  "arquivo PDF"
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/relatorios/estoque.pdf [get]
func (h *RelatorioHandler) ExportarPDF(c *fiber.Ctx) error {
	unidadeID := GetUnidadeID(c)
	if unidadeID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	unidadeNome := "Unidade Escolar"
	if unidade, err := h.unidadeRepo.GetByID(c.Context(), unidadeID); err == nil && unidade != nil {
		unidadeNome = unidade.Nome
	}
	conteudo, err := h.uc.GerarPDF(c.Context(), unidadeID, unidadeNome)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	nome := fmt.Sprintf("estoque-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nome+`"`)
	return c.Send(conteudo)
}
