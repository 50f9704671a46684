package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/ljmsouza/almoxarifado-api/internal/interfaces/http"
	pkgjwt "github.com/ljmsouza/almoxarifado-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testUnidadeID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "almoxarifado-api-test"
	testExpMin    = 60
)

// buildTestApp constrói uma aplicação Fiber mínima com AuthMiddleware,
// RequirePerfilGestor e um handler dummy que devolve 200 se passar.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/protegida",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePerfilGestor(),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "perfil": apphttp.GetPerfil(c)})
		},
	)
	return app
}

// tokenComPerfil gera um JWT com o perfil indicado.
func tokenComPerfil(t *testing.T, perfil string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUnidadeID, perfil, testIssuer, testExpMin)
	require.NoError(t, err, "deve gerar um token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/protegida", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes RequirePerfilGestor
// ──────────────────────────────────────────────────────────────────────────────

func TestRequirePerfilGestor_GestorAcessa(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenComPerfil(t, "gestor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"gestor deve acessar rota restrita a gestor")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "gestor", body["perfil"])
}

func TestRequirePerfilGestor_AlmoxarifeBloqueado(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, tokenComPerfil(t, "almoxarife"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"almoxarife não deve acessar rota restrita a gestor")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"a resposta de erro deve incluir o código FORBIDDEN")
}

func TestAuthMiddleware_SemHeader_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes AuthMiddleware: extração de claims do token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraiClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"unidade_id": apphttp.GetUnidadeID(c),
			"perfil":     apphttp.GetPerfil(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenComPerfil(t, "almoxarife"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testUnidadeID, body["unidade_id"])
	assert.Equal(t, "almoxarife", body["perfil"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes pkg/jwt: integridade do generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUnidadeID, "gestor", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, unidadeID, perfil, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, userID)
	assert.Equal(t, testUnidadeID, unidadeID)
	assert.Equal(t, "gestor", perfil)
}

func TestJWT_TokenExpirado_RetornaErro(t *testing.T) {
	// Expiração -1 minuto (já expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUnidadeID, "gestor", testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado deve retornar erro")
}

func TestJWT_SecretIncorreto_RetornaErro(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testUnidadeID, "gestor", testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("outro-secret-completamente-diferente", tok)
	assert.Error(t, err, "secret incorreto deve invalidar o token")
}
