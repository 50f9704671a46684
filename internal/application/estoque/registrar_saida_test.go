package estoque_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	appestoque "github.com/ljmsouza/almoxarifado-api/internal/application/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/domain"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	domestoque "github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/infrastructure/memoria"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

const unidadeTeste = "unidade-1"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedNotaAprovada grava uma nota aprovada e ativa com um único item e
// credita o agregado materializado, como faz a aprovação real.
func seedNotaAprovada(t *testing.T, store *memoria.Store, descricao, un, qtd, valorTotal string) {
	t.Helper()
	ctx := context.Background()
	nota := &entity.NotaFiscal{
		ID:          "nota-" + descricao,
		UnidadeID:   unidadeTeste,
		Fornecedor:  "Fornecedor Teste",
		DataEmissao: time.Now(),
		Status:      entity.NotaStatusAprovada,
		Ativa:       true,
		Itens: []entity.ItemNotaFiscal{{
			ID:            "item-" + descricao,
			Descricao:     descricao,
			UnidadeMedida: un,
			Quantidade:    dec(qtd),
			ValorTotal:    dec(valorTotal),
		}},
	}
	require.NoError(t, store.NotaFiscais().Create(ctx, nota))

	saldo, err := store.Saldos().Get(ctx, unidadeTeste, descricao, un)
	require.NoError(t, err)
	saldo.TotalEntradas = saldo.TotalEntradas.Add(dec(qtd))
	saldo.CustoTotalEntradas = saldo.CustoTotalEntradas.Add(dec(valorTotal))
	require.NoError(t, store.Saldos().Upsert(ctx, saldo))
}

func novoSaidaUC(store *memoria.Store) *appestoque.RegistrarSaidaUseCase {
	return appestoque.NewRegistrarSaidaUseCase(store, domestoque.Normalizador{})
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes RegistrarSaida
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarSaida_ValidaGravaComCustoMedio(t *testing.T) {
	store := memoria.NewStore()
	// 100 PCT a custo total 200.00 -> custo médio 2.00
	seedNotaAprovada(t, store, "Arroz Tipo 1 5kg", "PCT", "100", "200.00")

	uc := novoSaidaUC(store)
	out, err := uc.Executar(context.Background(), unidadeTeste, "user-1", dto.RegistrarSaidaRequest{
		Descricao:     "Arroz Tipo 1 5kg",
		UnidadeMedida: "PCT",
		Quantidade:    dec("30"),
		Motivo:        "merenda semanal",
	})
	require.NoError(t, err)
	require.True(t, out.Valida, "saída dentro do disponível deve ser aprovada")
	require.NotEmpty(t, out.MovimentacaoID)

	movs, err := store.Movimentacoes().List(context.Background(), unidadeTeste)
	require.NoError(t, err)
	require.Len(t, movs, 1, "deve haver exatamente uma movimentação gravada")

	mov := movs[0]
	assert.Equal(t, entity.TipoSaida, mov.Tipo)
	assert.True(t, mov.ValorUnitario.Equal(dec("2")),
		"o preço unitário da saída deve ser o custo médio, não um valor do chamador")
	assert.True(t, mov.CustoTotal.Equal(dec("60")), "custo total = 30 × 2.00")

	saldo, err := store.Saldos().Get(context.Background(), unidadeTeste, "Arroz Tipo 1 5kg", "PCT")
	require.NoError(t, err)
	assert.True(t, saldo.EstoqueAtual().Equal(dec("70")),
		"o agregado materializado deve refletir a saída na mesma transação")
}

func TestRegistrarSaida_ReprovadaNaoGravaNada(t *testing.T) {
	store := memoria.NewStore()
	seedNotaAprovada(t, store, "Feijao Carioca 1kg", "PCT", "70", "140.00")

	uc := novoSaidaUC(store)
	out, err := uc.Executar(context.Background(), unidadeTeste, "user-1", dto.RegistrarSaidaRequest{
		Descricao:     "Feijao Carioca 1kg",
		UnidadeMedida: "PCT",
		Quantidade:    dec("80"),
	})
	require.NoError(t, err, "reprovação de regra de negócio não é erro Go")
	require.False(t, out.Valida)
	assert.True(t, out.EstoqueDisponivel.Equal(dec("70")))
	assert.Contains(t, out.Mensagem, "70", "a mensagem deve informar o disponível")
	assert.Empty(t, out.MovimentacaoID)

	movs, err := store.Movimentacoes().List(context.Background(), unidadeTeste)
	require.NoError(t, err)
	assert.Empty(t, movs, "saída reprovada não deixa nenhuma movimentação")

	saldo, err := store.Saldos().Get(context.Background(), unidadeTeste, "Feijao Carioca 1kg", "PCT")
	require.NoError(t, err)
	assert.True(t, saldo.EstoqueAtual().Equal(dec("70")), "o saldo permanece intacto")
}

func TestRegistrarSaida_QuantidadeNaoPositivaReprovada(t *testing.T) {
	store := memoria.NewStore()
	seedNotaAprovada(t, store, "Sabao em Po 1kg", "UN", "10", "50.00")

	uc := novoSaidaUC(store)
	out, err := uc.Executar(context.Background(), unidadeTeste, "user-1", dto.RegistrarSaidaRequest{
		Descricao:     "Sabao em Po 1kg",
		UnidadeMedida: "UN",
		Quantidade:    dec("0"),
	})
	require.NoError(t, err)
	assert.False(t, out.Valida)
	assert.Contains(t, out.Mensagem, "maior que zero")
}

func TestRegistrarSaida_IdentidadeVaziaRetornaErro(t *testing.T) {
	store := memoria.NewStore()
	uc := novoSaidaUC(store)

	_, err := uc.Executar(context.Background(), unidadeTeste, "user-1", dto.RegistrarSaidaRequest{
		Quantidade: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Saídas concorrentes contra o mesmo produto nunca vendem além do disponível:
// cada execução revalida contra o histórico dentro da seção serializada.
func TestRegistrarSaida_ConcorrenciaNaoVendeAlemDoDisponivel(t *testing.T) {
	store := memoria.NewStore()
	seedNotaAprovada(t, store, "Oleo de Soja 900ml", "UN", "10", "90.00")

	uc := novoSaidaUC(store)

	const tentativas = 20
	var wg sync.WaitGroup
	aprovadas := make(chan string, tentativas)
	for i := 0; i < tentativas; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := uc.Executar(context.Background(), unidadeTeste, "user-1", dto.RegistrarSaidaRequest{
				Descricao:     "Oleo de Soja 900ml",
				UnidadeMedida: "UN",
				Quantidade:    dec("4"),
			})
			if err == nil && out.Valida {
				aprovadas <- out.MovimentacaoID
			}
		}()
	}
	wg.Wait()
	close(aprovadas)

	total := 0
	for range aprovadas {
		total++
	}
	assert.Equal(t, 2, total, "com 10 disponíveis e saídas de 4, só cabem 2 aprovações")

	saldo, err := store.Saldos().Get(context.Background(), unidadeTeste, "Oleo de Soja 900ml", "UN")
	require.NoError(t, err)
	assert.False(t, saldo.TotalEntradas.Sub(saldo.TotalSaidas).IsNegative(),
		"o estoque nunca fica negativo mesmo sob concorrência")
}
