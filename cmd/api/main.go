package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/ljmsouza/almoxarifado-api/internal/application/auth"
	appestoque "github.com/ljmsouza/almoxarifado-api/internal/application/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/application/notas"
	"github.com/ljmsouza/almoxarifado-api/internal/application/relatorio"
	domestoque "github.com/ljmsouza/almoxarifado-api/internal/domain/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
	"github.com/ljmsouza/almoxarifado-api/internal/infrastructure/memoria"
	"github.com/ljmsouza/almoxarifado-api/internal/infrastructure/nfe"
	infrapdf "github.com/ljmsouza/almoxarifado-api/internal/infrastructure/pdf"
	"github.com/ljmsouza/almoxarifado-api/internal/infrastructure/postgres"
	httpRouter "github.com/ljmsouza/almoxarifado-api/internal/interfaces/http"
	"github.com/ljmsouza/almoxarifado-api/pkg/config"
	"github.com/ljmsouza/almoxarifado-api/pkg/logger"
)

// repos agrupa os adaptadores de persistência escolhidos pelo driver.
type repos struct {
	notaRepo    repository.NotaFiscalRepository
	movRepo     repository.MovimentacaoRepository
	saldoRepo   repository.SaldoRepository
	unidadeRepo repository.UnidadeRepository
	usuarioRepo repository.UsuarioRepository
	txRunner    *postgres.TxRunner
	store       *memoria.Store
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.Estoque.Driver).
		Msg("iniciando aplicação")

	ctx := context.Background()

	var r repos
	switch cfg.Estoque.Driver {
	case "memoria":
		store := memoria.NewStore()
		r = repos{
			notaRepo:    store.NotaFiscais(),
			movRepo:     store.Movimentacoes(),
			saldoRepo:   store.Saldos(),
			unidadeRepo: store.Unidades(),
			usuarioRepo: store.Usuarios(),
			store:       store,
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexão com PostgreSQL")
		}
		defer pool.Close()
		r = repos{
			notaRepo:    postgres.NewNotaFiscalRepository(pool),
			movRepo:     postgres.NewMovimentacaoRepository(pool),
			saldoRepo:   postgres.NewSaldoRepository(pool),
			unidadeRepo: postgres.NewUnidadeRepository(pool),
			usuarioRepo: postgres.NewUsuarioRepository(pool),
			txRunner:    postgres.NewTxRunner(pool),
		}
	}

	normalizador := domestoque.Normalizador{Ativo: cfg.Estoque.NormalizarProduto}
	limites := appestoque.LimitesAlerta{
		Alerta:  decimal.NewFromInt(int64(cfg.Estoque.LimiteAlerta)),
		Critico: decimal.NewFromInt(int64(cfg.Estoque.LimiteCritico)),
	}

	// O TxRunner do Postgres e o Store em memória implementam a mesma
	// interface de transação.
	var estoqueTx appestoque.TxRunner = r.txRunner
	var notasTx notas.TxRunner = r.txRunner
	if r.store != nil {
		estoqueTx = r.store
		notasTx = r.store
	}

	consultaUC := appestoque.NewConsultaEstoqueUseCase(r.notaRepo, r.movRepo, limites, normalizador)
	saidaUC := appestoque.NewRegistrarSaidaUseCase(estoqueTx, normalizador)
	entradaUC := appestoque.NewRegistrarEntradaUseCase(estoqueTx, normalizador)
	recalcUC := appestoque.NewRecalcularSaldosUseCase(estoqueTx)
	notaUC := notas.NewNotaFiscalUseCase(notasTx, r.notaRepo, nfe.NewParser(), normalizador)
	exportarUC := relatorio.NewExportarUseCase(consultaUC, infrapdf.NewMarotoGerador())
	authUC := auth.NewAuthUseCase(r.usuarioRepo, r.unidadeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	unidadeUC := auth.NewUnidadeUseCase(r.unidadeRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almoxarifado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UnidadeUC:   unidadeUC,
		NotaUC:      notaUC,
		ConsultaUC:  consultaUC,
		SaidaUC:     saidaUC,
		EntradaUC:   entradaUC,
		RecalcUC:    recalcUC,
		ExportarUC:  exportarUC,
		UnidadeRepo: r.unidadeRepo,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
