// Package memoria implementa todos os repositórios e o TxRunner em memória,
// para modo de desenvolvimento sem banco e para os testes dos casos de uso.
// O Run segura o mutex do store pela transação inteira: um único escritor
// lógico por vez, o que torna atômica a dupla validar-e-anexar. Não há
// rollback: adequado a dev e testes, não a produção.
package memoria

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ljmsouza/almoxarifado-api/internal/domain"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

var (
	_ repository.NotaFiscalRepository   = (*notaRepo)(nil)
	_ repository.MovimentacaoRepository = (*movRepo)(nil)
	_ repository.SaldoRepository        = (*saldoRepo)(nil)
	_ repository.UnidadeRepository      = (*unidadeRepo)(nil)
	_ repository.UsuarioRepository      = (*usuarioRepo)(nil)
)

// Store guarda todas as coleções em memória, particionadas por unidade.
type Store struct {
	mu       sync.Mutex
	notas    map[string][]entity.NotaFiscal
	movs     map[string][]entity.Movimentacao
	saldos   map[string]map[string]entity.SaldoEstoque
	unidades map[string]entity.Unidade
	usuarios map[string]entity.Usuario // por ID
}

// NewStore constrói o store vazio.
func NewStore() *Store {
	return &Store{
		notas:    make(map[string][]entity.NotaFiscal),
		movs:     make(map[string][]entity.Movimentacao),
		saldos:   make(map[string]map[string]entity.SaldoEstoque),
		unidades: make(map[string]entity.Unidade),
		usuarios: make(map[string]entity.Usuario),
	}
}

func chaveProduto(descricao, unidadeMedida string) string {
	return descricao + "\x00" + unidadeMedida
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// Run executa fn segurando o mutex do store: serializa todos os escritores.
// Os repositórios passados a fn operam sem travar de novo.
func (s *Store) Run(ctx context.Context, fn func(
	notaRepo repository.NotaFiscalRepository,
	movRepo repository.MovimentacaoRepository,
	saldoRepo repository.SaldoRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	destravado := &semTrava{s: s}
	return fn(
		&notaRepo{inner: destravado},
		&movRepo{inner: destravado},
		&saldoRepo{inner: destravado},
	)
}

// semTrava concentra as operações sem aquisição de mutex; os adaptadores
// públicos travam antes de delegar, os de transação não.
type semTrava struct {
	s *Store
}

// ── Notas fiscais ─────────────────────────────────────────────────────────────

type notaRepo struct {
	inner  *semTrava
	travar bool
}

// NotaFiscais devolve o repositório de notas com trava própria (uso fora de tx).
func (s *Store) NotaFiscais() repository.NotaFiscalRepository {
	return &notaRepo{inner: &semTrava{s: s}, travar: true}
}

func (r *notaRepo) lock() func() {
	if !r.travar {
		return func() {}
	}
	r.inner.s.mu.Lock()
	return r.inner.s.mu.Unlock
}

func (r *notaRepo) Create(_ context.Context, nota *entity.NotaFiscal) error {
	defer r.lock()()
	return r.inner.criarNota(nota)
}

func (r *notaRepo) GetByID(_ context.Context, unidadeID, id string) (*entity.NotaFiscal, error) {
	defer r.lock()()
	return r.inner.notaPorID(unidadeID, id)
}

func (r *notaRepo) List(_ context.Context, unidadeID string) ([]entity.NotaFiscal, error) {
	defer r.lock()()
	return r.inner.listarNotas(unidadeID)
}

func (r *notaRepo) UpdateStatus(_ context.Context, unidadeID, id, status string) error {
	defer r.lock()()
	return r.inner.atualizarNota(unidadeID, id, func(n *entity.NotaFiscal) { n.Status = status })
}

func (r *notaRepo) SetAtiva(_ context.Context, unidadeID, id string, ativa bool) error {
	defer r.lock()()
	return r.inner.atualizarNota(unidadeID, id, func(n *entity.NotaFiscal) { n.Ativa = ativa })
}

func (u *semTrava) criarNota(nota *entity.NotaFiscal) error {
	u.s.notas[nota.UnidadeID] = append(u.s.notas[nota.UnidadeID], *nota)
	return nil
}

func (u *semTrava) notaPorID(unidadeID, id string) (*entity.NotaFiscal, error) {
	for _, n := range u.s.notas[unidadeID] {
		if n.ID == id {
			copia := n
			return &copia, nil
		}
	}
	return nil, nil
}

func (u *semTrava) listarNotas(unidadeID string) ([]entity.NotaFiscal, error) {
	notas := u.s.notas[unidadeID]
	out := make([]entity.NotaFiscal, len(notas))
	copy(out, notas)
	return out, nil
}

func (u *semTrava) atualizarNota(unidadeID, id string, aplicar func(*entity.NotaFiscal)) error {
	notas := u.s.notas[unidadeID]
	for i := range notas {
		if notas[i].ID == id {
			aplicar(&notas[i])
			return nil
		}
	}
	return nil
}

// ── Movimentações ─────────────────────────────────────────────────────────────

type movRepo struct {
	inner  *semTrava
	travar bool
}

// Movimentacoes devolve o repositório de movimentações com trava própria.
func (s *Store) Movimentacoes() repository.MovimentacaoRepository {
	return &movRepo{inner: &semTrava{s: s}, travar: true}
}

func (r *movRepo) lock() func() {
	if !r.travar {
		return func() {}
	}
	r.inner.s.mu.Lock()
	return r.inner.s.mu.Unlock
}

func (r *movRepo) Append(_ context.Context, mov *entity.Movimentacao) error {
	defer r.lock()()
	r.inner.s.movs[mov.UnidadeID] = append(r.inner.s.movs[mov.UnidadeID], *mov)
	return nil
}

func (r *movRepo) List(_ context.Context, unidadeID string) ([]entity.Movimentacao, error) {
	defer r.lock()()
	movs := r.inner.s.movs[unidadeID]
	out := make([]entity.Movimentacao, len(movs))
	copy(out, movs)
	return out, nil
}

func (r *movRepo) ListFiltrada(_ context.Context, unidadeID string, filtro repository.FiltroMovimentacao) ([]entity.Movimentacao, error) {
	defer r.lock()()
	var out []entity.Movimentacao
	for _, m := range r.inner.s.movs[unidadeID] {
		if filtro.Tipo != "" && m.Tipo != filtro.Tipo {
			continue
		}
		if filtro.ProdutoDescricao != "" && m.ProdutoDescricao != filtro.ProdutoDescricao {
			continue
		}
		if filtro.UnidadeMedida != "" && m.UnidadeMedida != filtro.UnidadeMedida {
			continue
		}
		if filtro.De != nil && m.Data.Before(*filtro.De) {
			continue
		}
		if filtro.Ate != nil && m.Data.After(*filtro.Ate) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Data.After(out[j].Data) })
	if filtro.Offset > 0 {
		if filtro.Offset >= len(out) {
			return nil, nil
		}
		out = out[filtro.Offset:]
	}
	if filtro.Limit > 0 && filtro.Limit < len(out) {
		out = out[:filtro.Limit]
	}
	return out, nil
}

// ── Saldos materializados ─────────────────────────────────────────────────────

type saldoRepo struct {
	inner  *semTrava
	travar bool
}

// Saldos devolve o repositório de saldos com trava própria.
func (s *Store) Saldos() repository.SaldoRepository {
	return &saldoRepo{inner: &semTrava{s: s}, travar: true}
}

func (r *saldoRepo) lock() func() {
	if !r.travar {
		return func() {}
	}
	r.inner.s.mu.Lock()
	return r.inner.s.mu.Unlock
}

// TravaProduto é no-op: o Run já serializa todos os escritores do store.
func (r *saldoRepo) TravaProduto(_ context.Context, _, _, _ string) error {
	return nil
}

func (r *saldoRepo) Get(_ context.Context, unidadeID, descricao, unidadeMedida string) (*entity.SaldoEstoque, error) {
	defer r.lock()()
	return r.inner.saldoDe(unidadeID, descricao, unidadeMedida), nil
}

func (r *saldoRepo) GetForUpdate(ctx context.Context, unidadeID, descricao, unidadeMedida string) (*entity.SaldoEstoque, error) {
	defer r.lock()()
	return r.inner.saldoDe(unidadeID, descricao, unidadeMedida), nil
}

func (r *saldoRepo) Upsert(_ context.Context, saldo *entity.SaldoEstoque) error {
	defer r.lock()()
	porUnidade := r.inner.s.saldos[saldo.UnidadeID]
	if porUnidade == nil {
		porUnidade = make(map[string]entity.SaldoEstoque)
		r.inner.s.saldos[saldo.UnidadeID] = porUnidade
	}
	porUnidade[chaveProduto(saldo.ProdutoDescricao, saldo.UnidadeMedida)] = *saldo
	return nil
}

func (r *saldoRepo) List(_ context.Context, unidadeID string) ([]entity.SaldoEstoque, error) {
	defer r.lock()()
	porUnidade := r.inner.s.saldos[unidadeID]
	out := make([]entity.SaldoEstoque, 0, len(porUnidade))
	for _, s := range porUnidade {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProdutoDescricao != out[j].ProdutoDescricao {
			return out[i].ProdutoDescricao < out[j].ProdutoDescricao
		}
		return out[i].UnidadeMedida < out[j].UnidadeMedida
	})
	return out, nil
}

func (r *saldoRepo) DeleteAll(_ context.Context, unidadeID string) error {
	defer r.lock()()
	delete(r.inner.s.saldos, unidadeID)
	return nil
}

func (u *semTrava) saldoDe(unidadeID, descricao, unidadeMedida string) *entity.SaldoEstoque {
	if porUnidade := u.s.saldos[unidadeID]; porUnidade != nil {
		if s, ok := porUnidade[chaveProduto(descricao, unidadeMedida)]; ok {
			copia := s
			return &copia
		}
	}
	return &entity.SaldoEstoque{
		UnidadeID:        unidadeID,
		ProdutoDescricao: descricao,
		UnidadeMedida:    unidadeMedida,
	}
}

// ── Unidades ──────────────────────────────────────────────────────────────────

type unidadeRepo struct {
	s *Store
}

// Unidades devolve o repositório de unidades escolares.
func (s *Store) Unidades() repository.UnidadeRepository {
	return &unidadeRepo{s: s}
}

func (r *unidadeRepo) Create(_ context.Context, unidade *entity.Unidade) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.unidades[unidade.ID] = *unidade
	return nil
}

func (r *unidadeRepo) GetByID(_ context.Context, id string) (*entity.Unidade, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.unidades[id]; ok {
		copia := u
		return &copia, nil
	}
	return nil, domain.ErrNotFound
}

func (r *unidadeRepo) List(_ context.Context) ([]entity.Unidade, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.Unidade, 0, len(r.s.unidades))
	for _, u := range r.s.unidades {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nome < out[j].Nome })
	return out, nil
}

// ── Usuários ──────────────────────────────────────────────────────────────────

type usuarioRepo struct {
	s *Store
}

// Usuarios devolve o repositório de usuários.
func (s *Store) Usuarios() repository.UsuarioRepository {
	return &usuarioRepo{s: s}
}

func (r *usuarioRepo) Create(_ context.Context, usuario *entity.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.usuarios[usuario.ID] = *usuario
	return nil
}

func (r *usuarioRepo) FindByEmail(_ context.Context, email string) (*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.usuarios {
		if strings.EqualFold(u.Email, email) {
			copia := u
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *usuarioRepo) GetByEmailAndUnidade(_ context.Context, email, unidadeID string) (*entity.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.usuarios {
		if u.UnidadeID == unidadeID && strings.EqualFold(u.Email, email) {
			copia := u
			return &copia, nil
		}
	}
	return nil, nil
}
