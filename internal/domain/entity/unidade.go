package entity

import "time"

// Unidade representa uma unidade escolar (escopo organizacional).
// Todas as notas, movimentações e saldos são particionados por unidade.
type Unidade struct {
	ID       string
	Nome     string
	Cidade   string
	CriadaEm time.Time
}
