package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	"github.com/ljmsouza/almoxarifado-api/internal/domain"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
	"github.com/ljmsouza/almoxarifado-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: registro e login.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	unidadeRepo repository.UnidadeRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, unidadeRepo repository.UnidadeRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, unidadeRepo: unidadeRepo, jwtCfg: jwtCfg}
}

// Registrar cria um usuário: valida a unidade, faz hash da senha com bcrypt e
// persiste. Devolve ErrEmailJaCadastrado se o email já existe na unidade.
func (uc *AuthUseCase) Registrar(ctx context.Context, in dto.RegistrarUsuarioRequest) (*dto.UsuarioResponse, error) {
	if in.Email == "" || in.Senha == "" || in.UnidadeID == "" {
		return nil, domain.ErrInvalidInput
	}
	existente, _ := uc.usuarioRepo.GetByEmailAndUnidade(ctx, in.Email, in.UnidadeID)
	if existente != nil {
		return nil, domain.ErrEmailJaCadastrado
	}
	unidade, err := uc.unidadeRepo.GetByID(ctx, in.UnidadeID)
	if err != nil {
		return nil, err
	}
	if unidade == nil {
		return nil, domain.ErrNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	nome := in.Nome
	if nome == "" {
		nome = in.Email
	}
	perfil := in.Perfil
	if perfil == "" {
		perfil = entity.PerfilAlmoxarife
	}
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		UnidadeID:    in.UnidadeID,
		Email:        in.Email,
		SenhaHash:    string(hash),
		Nome:         nome,
		Perfil:       perfil,
		Status:       "active",
		CriadoEm:     now,
		AtualizadoEm: now,
	}
	if err := uc.usuarioRepo.Create(ctx, usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// Login verifica email/senha, gera o JWT com o escopo da unidade e devolve
// token + usuário.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(in.Senha)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if usuario.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.UnidadeID, usuario.Perfil, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Usuario: *toUsuarioResponse(usuario),
	}, nil
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:        u.ID,
		UnidadeID: u.UnidadeID,
		Email:     u.Email,
		Nome:      u.Nome,
		Perfil:    u.Perfil,
		CriadoEm:  u.CriadoEm,
	}
}
