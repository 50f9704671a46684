package estoque_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljmsouza/almoxarifado-api/internal/application/dto"
	appestoque "github.com/ljmsouza/almoxarifado-api/internal/application/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/domain"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/entity"
	domestoque "github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/infrastructure/memoria"
)

func novoEntradaUC(store *memoria.Store) *appestoque.RegistrarEntradaUseCase {
	return appestoque.NewRegistrarEntradaUseCase(store, domestoque.Normalizador{})
}

func TestRegistrarEntrada_CreditaHistoricoEAgregado(t *testing.T) {
	store := memoria.NewStore()
	uc := novoEntradaUC(store)

	out, err := uc.Executar(context.Background(), unidadeTeste, "user-1", dto.RegistrarEntradaRequest{
		Descricao:     "Acucar Cristal 1kg",
		UnidadeMedida: "PCT",
		Quantidade:    dec("50"),
		ValorUnitario: dec("4.50"),
		Motivo:        "doação da comunidade",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TipoEntrada, out.Tipo)
	assert.True(t, out.CustoTotal.Equal(dec("225")), "custo total = 50 × 4.50")

	movs, err := store.Movimentacoes().List(context.Background(), unidadeTeste)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.OrigemManual, movs[0].Origem)

	saldo, err := store.Saldos().Get(context.Background(), unidadeTeste, "Acucar Cristal 1kg", "PCT")
	require.NoError(t, err)
	assert.True(t, saldo.TotalEntradas.Equal(dec("50")))
	assert.True(t, saldo.CustoMedio().Equal(dec("4.5")),
		"o custo médio do agregado acompanha a entrada")
}

func TestRegistrarEntrada_EntradaInvalida(t *testing.T) {
	store := memoria.NewStore()
	uc := novoEntradaUC(store)
	ctx := context.Background()

	_, err := uc.Executar(ctx, unidadeTeste, "user-1", dto.RegistrarEntradaRequest{
		Descricao: "Sem Unidade", Quantidade: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unidade de medida é obrigatória")

	_, err = uc.Executar(ctx, unidadeTeste, "user-1", dto.RegistrarEntradaRequest{
		Descricao: "Qtd Zero", UnidadeMedida: "UN", Quantidade: dec("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "quantidade deve ser positiva")

	_, err = uc.Executar(ctx, unidadeTeste, "user-1", dto.RegistrarEntradaRequest{
		Descricao: "Valor Negativo", UnidadeMedida: "UN", Quantidade: dec("1"), ValorUnitario: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "valor unitário não pode ser negativo")

	movs, err := store.Movimentacoes().List(ctx, unidadeTeste)
	require.NoError(t, err)
	assert.Empty(t, movs, "entradas inválidas não gravam nada")
}

// A entrada manual alimenta o custo médio ponderado junto com as notas.
func TestRegistrarEntrada_MisturaComNotaNoCustoMedio(t *testing.T) {
	store := memoria.NewStore()
	// Nota aprovada: 100 a 2.00
	seedNotaAprovada(t, store, "Arroz Tipo 1 5kg", "PCT", "100", "200.00")

	uc := novoEntradaUC(store)
	_, err := uc.Executar(context.Background(), unidadeTeste, "user-1", dto.RegistrarEntradaRequest{
		Descricao:     "Arroz Tipo 1 5kg",
		UnidadeMedida: "PCT",
		Quantidade:    dec("100"),
		ValorUnitario: dec("4.00"),
	})
	require.NoError(t, err)

	saldo, err := store.Saldos().Get(context.Background(), unidadeTeste, "Arroz Tipo 1 5kg", "PCT")
	require.NoError(t, err)
	assert.True(t, saldo.CustoMedio().Equal(dec("3")),
		"média ponderada: (200 + 400) / 200 = 3.00")
}
