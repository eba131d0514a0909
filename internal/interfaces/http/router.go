package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ti/internal/application/analytics"
	"github.com/jhoicas/inventario-ti/internal/application/auth"
	"github.com/jhoicas/inventario-ti/internal/application/inventory"
	"github.com/jhoicas/inventario-ti/internal/application/ports"
	"github.com/jhoicas/inventario-ti/internal/application/report"
	"github.com/jhoicas/inventario-ti/internal/application/usecase"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/pkg/logger"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	CategoryUC  *usecase.CategoryUseCase
	ItemUC      *usecase.ItemUseCase
	Engine      *inventory.Engine
	DashboardUC *analytics.DashboardUseCase
	ReportUC    *report.ReportUseCase
	Attachments ports.AttachmentStore
	JWTSecret   string
	Log         *logger.Logger
}

// Grupos de permissão usados nas rotas.
var (
	adminOnly     = []string{entity.RoleAdmin}
	managers      = []string{entity.RoleAdmin, entity.RoleGestor}
	operators     = []string{entity.RoleAdmin, entity.RoleGestor, entity.RoleOperador}
	anyAuthorized = []string{entity.RoleAdmin, entity.RoleGestor, entity.RoleOperador, entity.RoleVisualizador}
)

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	read := RequireRole(anyAuthorized...)
	write := RequireRole(operators...)
	manage := RequireRole(managers...)
	admin := RequireRole(adminOnly...)

	protected.Get("/auth/me", read, authHandler.Me)

	// Usuários
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", read, userHandler.List)
	users.Get("/:id", read, userHandler.GetByID)
	users.Post("/", admin, userHandler.Create)
	users.Put("/:id", admin, userHandler.Update)
	users.Delete("/:id", admin, userHandler.Delete)

	// Categorias
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", read, categoryHandler.List)
	categories.Get("/:id", read, categoryHandler.GetByID)
	categories.Post("/", manage, categoryHandler.Create)
	categories.Put("/:id", manage, categoryHandler.Update)
	categories.Delete("/:id", admin, categoryHandler.Delete)

	reportHandler := NewReportHandler(deps.DashboardUC, deps.ReportUC, deps.Engine)

	// Itens
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.Attachments, deps.Log)
	items.Get("/", read, itemHandler.List)
	items.Get("/qrcode/:qrCode", read, itemHandler.GetByQRCode)
	items.Get("/:id", read, itemHandler.GetByID)
	items.Post("/", write, itemHandler.Create)
	items.Put("/:id", write, itemHandler.Update)
	items.Post("/:id/foto", write, itemHandler.UploadPhoto)
	items.Delete("/:id", admin, itemHandler.Delete)
	items.Get("/:id/reconcile", manage, reportHandler.ReconcileItem)
	items.Post("/:id/reconcile/repair", admin, reportHandler.RepairItem)

	// Entradas
	entries := protected.Group("/entries")
	entryHandler := NewEntryHandler(deps.Engine)
	entries.Get("/", read, entryHandler.List)
	entries.Get("/:id", read, entryHandler.GetByID)
	entries.Post("/", write, entryHandler.Create)
	entries.Put("/:id", write, entryHandler.Update)
	entries.Delete("/:id", manage, entryHandler.Delete)

	// Saídas
	exits := protected.Group("/exits")
	exitHandler := NewExitHandler(deps.Engine, deps.ReportUC)
	exits.Get("/", read, exitHandler.List)
	exits.Get("/:id/receipt.pdf", read, exitHandler.Receipt)
	exits.Get("/:id", read, exitHandler.GetByID)
	exits.Post("/", write, exitHandler.Create)
	exits.Put("/:id", write, exitHandler.Update)
	exits.Delete("/:id", manage, exitHandler.Delete)

	// Devoluções
	returns := protected.Group("/returns")
	returnHandler := NewReturnHandler(deps.Engine, deps.Attachments, deps.Log)
	returns.Get("/", read, returnHandler.List)
	returns.Get("/:id", read, returnHandler.GetByID)
	returns.Post("/", write, returnHandler.Create)
	returns.Put("/:id", write, returnHandler.Update)
	returns.Delete("/:id", manage, returnHandler.Delete)

	// Painel, relatórios e reconciliação
	protected.Get("/dashboard/stats", read, reportHandler.DashboardStats)
	protected.Get("/reports/:kind.xlsx", manage, reportHandler.Workbook)
	protected.Get("/inventory/reconcile", manage, reportHandler.ReconcileAll)
}
