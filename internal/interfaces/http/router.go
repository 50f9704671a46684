package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ljmsouza/almoxarifado-api/internal/application/auth"
	appestoque "github.com/ljmsouza/almoxarifado-api/internal/application/estoque"
	"github.com/ljmsouza/almoxarifado-api/internal/application/notas"
	"github.com/ljmsouza/almoxarifado-api/internal/application/relatorio"
	"github.com/ljmsouza/almoxarifado-api/internal/domain/repository"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UnidadeUC   *auth.UnidadeUseCase
	NotaUC      *notas.NotaFiscalUseCase
	ConsultaUC  *appestoque.ConsultaEstoqueUseCase
	SaidaUC     *appestoque.RegistrarSaidaUseCase
	EntradaUC   *appestoque.RegistrarEntradaUseCase
	RecalcUC    *appestoque.RecalcularSaldosUseCase
	ExportarUC  *relatorio.ExportarUseCase
	UnidadeRepo repository.UnidadeRepository
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/registrar", authHandler.Registrar)
	authGroup.Post("/login", authHandler.Login)

	// Unidades (público, bootstrap da instalação)
	unidades := api.Group("/unidades")
	unidadeHandler := NewUnidadeHandler(deps.UnidadeUC)
	unidades.Get("/", unidadeHandler.Listar)
	unidades.Post("/", unidadeHandler.Criar)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Notas fiscais (protegido; aprovação restrita ao gestor)
	notasGroup := protected.Group("/notas")
	notaHandler := NewNotaHandler(deps.NotaUC)
	notasGroup.Post("/", notaHandler.Importar)
	notasGroup.Post("/importar-xml", notaHandler.ImportarXML)
	notasGroup.Get("/", notaHandler.Listar)
	notasGroup.Post("/:id/aprovar", RequirePerfilGestor(), notaHandler.Aprovar)
	notasGroup.Post("/:id/rejeitar", RequirePerfilGestor(), notaHandler.Rejeitar)
	notasGroup.Post("/:id/desativar", RequirePerfilGestor(), notaHandler.Desativar)

	// Estoque (protegido)
	estoqueGroup := protected.Group("/estoque")
	estoqueHandler := NewEstoqueHandler(deps.ConsultaUC, deps.SaidaUC, deps.EntradaUC, deps.RecalcUC)
	estoqueGroup.Get("/saldos", estoqueHandler.ListarSaldos)
	estoqueGroup.Get("/saldo", estoqueHandler.SaldoDeProduto)
	estoqueGroup.Get("/alertas", estoqueHandler.ListarAlertas)
	estoqueGroup.Post("/saidas", estoqueHandler.RegistrarSaida)
	estoqueGroup.Post("/entradas", estoqueHandler.RegistrarEntrada)
	estoqueGroup.Get("/movimentacoes", estoqueHandler.ListarMovimentacoes)
	estoqueGroup.Post("/recalcular", RequirePerfilGestor(), estoqueHandler.RecalcularSaldos)

	// Relatórios (protegido)
	relatoriosGroup := protected.Group("/relatorios")
	relatorioHandler := NewRelatorioHandler(deps.ExportarUC, deps.UnidadeRepo)
	relatoriosGroup.Get("/estoque.csv", relatorioHandler.ExportarCSV)
	relatoriosGroup.Get("/estoque.pdf", relatorioHandler.ExportarPDF)
}
