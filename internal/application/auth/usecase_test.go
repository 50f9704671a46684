package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmsouza/almoxarifado-api/internal/application/auth"
	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	"github.com/ljmsouza/almoxarifado-api/internal/domain"
	"github.com/ljmsouza/almoxarifado-api/internal/infrastructure/memoria"
	"github.com/ljmsouza/almoxarifado-api/pkg/jwt"
)

var jwtCfgTeste = auth.JWTConfig{Secret: "segredo-de-teste", ExpMinutes: 60, Issuer: "almoxarifado-api"}

func novoAuthUC(t *testing.T) (*auth.AuthUseCase, *auth.UnidadeUseCase, *memoria.Store) {
	t.Helper()
	store := memoria.NewStore()
	authUC := auth.NewAuthUseCase(store.Usuarios(), store.Unidades(), jwtCfgTeste)
	unidadeUC := auth.NewUnidadeUseCase(store.Unidades())
	return authUC, unidadeUC, store
}

func criarUnidadeTeste(t *testing.T, uc *auth.UnidadeUseCase) string {
	t.Helper()
	unidade, err := uc.Criar(context.Background(), dto.CriarUnidadeRequest{Nome: "EM Paulo Freire", Cidade: "Recife"})
	require.NoError(t, err)
	return unidade.ID
}

// ─────────────────────────────────────────────────────────────────────────────
// Registro
// ─────────────────────────────────────────────────────────────────────────────

func TestRegistrar_CriaUsuarioComPerfilPadrao(t *testing.T) {
	authUC, unidadeUC, _ := novoAuthUC(t)
	unidadeID := criarUnidadeTeste(t, unidadeUC)

	usuario, err := authUC.Registrar(context.Background(), dto.RegistrarUsuarioRequest{
		UnidadeID: unidadeID,
		Email:     "maria@escola.gov.br",
		Senha:     "senha-forte-123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, usuario.ID, "usuário deve receber ID")
	assert.Equal(t, unidadeID, usuario.UnidadeID)
	assert.Equal(t, "almoxarife", usuario.Perfil, "perfil padrão é almoxarife")
	assert.Equal(t, "maria@escola.gov.br", usuario.Nome, "nome vazio usa o email")
}

func TestRegistrar_EmailDuplicadoNaUnidade(t *testing.T) {
	authUC, unidadeUC, _ := novoAuthUC(t)
	unidadeID := criarUnidadeTeste(t, unidadeUC)

	req := dto.RegistrarUsuarioRequest{UnidadeID: unidadeID, Email: "maria@escola.gov.br", Senha: "senha-forte-123"}
	_, err := authUC.Registrar(context.Background(), req)
	require.NoError(t, err)

	_, err = authUC.Registrar(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrEmailJaCadastrado)
}

func TestRegistrar_UnidadeInexistente(t *testing.T) {
	authUC, _, _ := novoAuthUC(t)

	_, err := authUC.Registrar(context.Background(), dto.RegistrarUsuarioRequest{
		UnidadeID: "nao-existe",
		Email:     "maria@escola.gov.br",
		Senha:     "senha-forte-123",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrar_CamposObrigatorios(t *testing.T) {
	authUC, unidadeUC, _ := novoAuthUC(t)
	unidadeID := criarUnidadeTeste(t, unidadeUC)

	_, err := authUC.Registrar(context.Background(), dto.RegistrarUsuarioRequest{UnidadeID: unidadeID, Email: "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "senha vazia deve ser rejeitada")

	_, err = authUC.Registrar(context.Background(), dto.RegistrarUsuarioRequest{UnidadeID: unidadeID, Senha: "senha-forte-123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "email vazio deve ser rejeitado")
}

// ─────────────────────────────────────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────────────────────────────────────

func TestLogin_GeraTokenComEscopoDaUnidade(t *testing.T) {
	authUC, unidadeUC, _ := novoAuthUC(t)
	unidadeID := criarUnidadeTeste(t, unidadeUC)

	registrado, err := authUC.Registrar(context.Background(), dto.RegistrarUsuarioRequest{
		UnidadeID: unidadeID,
		Email:     "gestor@escola.gov.br",
		Senha:     "senha-forte-123",
		Perfil:    "gestor",
	})
	require.NoError(t, err)

	resp, err := authUC.Login(context.Background(), dto.LoginRequest{Email: "gestor@escola.gov.br", Senha: "senha-forte-123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, tokenUnidade, perfil, err := jwt.Parse(jwtCfgTeste.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registrado.ID, userID)
	assert.Equal(t, unidadeID, tokenUnidade, "token carrega a unidade do usuário")
	assert.Equal(t, "gestor", perfil)
}

func TestLogin_SenhaIncorreta(t *testing.T) {
	authUC, unidadeUC, _ := novoAuthUC(t)
	unidadeID := criarUnidadeTeste(t, unidadeUC)

	_, err := authUC.Registrar(context.Background(), dto.RegistrarUsuarioRequest{
		UnidadeID: unidadeID,
		Email:     "maria@escola.gov.br",
		Senha:     "senha-forte-123",
	})
	require.NoError(t, err)

	_, err = authUC.Login(context.Background(), dto.LoginRequest{Email: "maria@escola.gov.br", Senha: "errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	authUC, _, _ := novoAuthUC(t)

	_, err := authUC.Login(context.Background(), dto.LoginRequest{Email: "ninguem@escola.gov.br", Senha: "x"})
	assert.ErrorIs(t, err, domain.ErrUsuarioNotFound)
}

// ─────────────────────────────────────────────────────────────────────────────
// Unidades
// ─────────────────────────────────────────────────────────────────────────────

func TestUnidades_CriarEListar(t *testing.T) {
	_, unidadeUC, _ := novoAuthUC(t)

	_, err := unidadeUC.Criar(context.Background(), dto.CriarUnidadeRequest{Nome: "EM Paulo Freire", Cidade: "Recife"})
	require.NoError(t, err)
	_, err = unidadeUC.Criar(context.Background(), dto.CriarUnidadeRequest{Nome: "EM Anísio Teixeira", Cidade: "Olinda"})
	require.NoError(t, err)

	unidades, err := unidadeUC.Listar(context.Background())
	require.NoError(t, err)
	assert.Len(t, unidades, 2)

	_, err = unidadeUC.Criar(context.Background(), dto.CriarUnidadeRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nome é obrigatório")
}
