package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appestoque "github.com/ljmsouza/almoxarifado-api/internal/application/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/application/relatorio"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	domestoque "github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/infrastructure/memoria"
	apphttp "github.com/ljmsouza/almoxarifado-api/internal/interfaces/http"
)

// gravaNomeUnidade captura o nome de unidade recebido pelo gerador de PDF.
type gravaNomeUnidade struct {
	nome string
}

func (g *gravaNomeUnidade) GerarRelatorioEstoque(_ context.Context, unidadeNome string, _ []domestoque.SaldoProduto) ([]byte, error) {
	g.nome = unidadeNome
	return []byte("%PDF-1.4 teste"), nil
}

func buildRelatorioApp(store *memoria.Store, gerador relatorio.GeradorPDF) *fiber.App {
	consultaUC := appestoque.NewConsultaEstoqueUseCase(
		store.NotaFiscais(), store.Movimentacoes(), appestoque.LimitesAlerta{}, domestoque.Normalizador{})
	exportarUC := relatorio.NewExportarUseCase(consultaUC, gerador)
	handler := apphttp.NewRelatorioHandler(exportarUC, store.Unidades())

	app := fiber.New()
	app.Get("/api/relatorios/estoque.pdf", apphttp.AuthMiddleware(testJWTSecret), handler.ExportarPDF)
	return app
}

func getPDF(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/relatorios/estoque.pdf", nil)
	req.Header.Set("Authorization", tokenComPerfil(t, "gestor"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Token válido cujo unidade_id não existe mais no store (store reiniciado com
// o cliente ainda segurando o token): a exportação não pode falhar, usa o
// nome de unidade padrão.
func TestExportarPDF_UnidadeAusenteUsaNomePadrao(t *testing.T) {
	store := memoria.NewStore()
	gerador := &gravaNomeUnidade{}
	app := buildRelatorioApp(store, gerador)

	resp := getPDF(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"exportação deve responder mesmo sem a unidade cadastrada")
	assert.Equal(t, "Unidade Escolar", gerador.nome,
		"sem a unidade no cadastro, o relatório usa o nome padrão")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "%PDF")
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
}

func TestExportarPDF_UnidadeCadastradaUsaSeuNome(t *testing.T) {
	store := memoria.NewStore()
	gerador := &gravaNomeUnidade{}
	app := buildRelatorioApp(store, gerador)

	require.NoError(t, store.Unidades().Create(context.Background(), &entity.Unidade{
		ID:       testUnidadeID,
		Nome:     "EM Paulo Freire",
		Cidade:   "Recife",
		CriadaEm: time.Now(),
	}))

	resp := getPDF(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "EM Paulo Freire", gerador.nome,
		"o relatório usa o nome da unidade do token")
}
