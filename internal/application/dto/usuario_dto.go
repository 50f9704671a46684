package dto

import "time"

// RegistrarUsuarioRequest body para POST /api/auth/registrar.
type RegistrarUsuarioRequest struct {
	UnidadeID string `json:"unidade_id"`
	Email     string `json:"email"`
	Senha     string `json:"senha"`
	Nome      string `json:"nome,omitempty"`
	Perfil    string `json:"perfil,omitempty"` // gestor | almoxarife
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// UsuarioResponse usuário sem campos sensíveis.
type UsuarioResponse struct {
	ID        string    `json:"id"`
	UnidadeID string    `json:"unidade_id"`
	Email     string    `json:"email"`
	Nome      string    `json:"nome"`
	Perfil    string    `json:"perfil"`
	CriadoEm  time.Time `json:"criado_em"`
}

// LoginResponse token + usuário autenticado.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

// CriarUnidadeRequest body para POST /api/unidades.
type CriarUnidadeRequest struct {
	Nome   string `json:"nome"`
	Cidade string `json:"cidade,omitempty"`
}

// UnidadeResponse unidade escolar nas listagens.
type UnidadeResponse struct {
	ID     string `json:"id"`
	Nome   string `json:"nome"`
	Cidade string `json:"cidade,omitempty"`
}
