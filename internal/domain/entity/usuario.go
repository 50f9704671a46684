package entity

import "time"

// Perfis de acesso.
const (
	PerfilGestor     = "gestor"
	PerfilAlmoxarife = "almoxarife"
)

// Usuario representa um usuário do sistema, vinculado a uma unidade escolar.
type Usuario struct {
	ID           string
	UnidadeID    string
	Email        string
	SenhaHash    string
	Nome         string
	Perfil       string // gestor | almoxarife
	Status       string // active | disabled
	CriadoEm     time.Time
	AtualizadoEm time.Time
}
