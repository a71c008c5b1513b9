package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/jhoicas/inventario-digital/internal/application/alerts"
	"github.com/jhoicas/inventario-digital/internal/application/auth"
	"github.com/jhoicas/inventario-digital/internal/application/dto"
	"github.com/jhoicas/inventario-digital/internal/application/inventory"
	"github.com/jhoicas/inventario-digital/internal/application/sales"
	"github.com/jhoicas/inventario-digital/internal/application/usecase"
	"github.com/jhoicas/inventario-digital/internal/domain/entity"
	"github.com/jhoicas/inventario-digital/internal/domain/repository"
	"github.com/jhoicas/inventario-digital/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Config       *config.Config
	SessionStore *session.Store
	AuthUC       *auth.AuthUseCase
	InventoryUC  *inventory.UseCase
	SalesUC      *sales.UseCase
	AlertsUC     *alerts.UseCase
	SettingsUC   *usecase.SettingsUseCase
	UserUC       *usecase.UserUseCase
	StatsUC      *usecase.StatsUseCase
	ExportUC     *usecase.ExportUseCase
	AuditRepo    repository.AuditLogRepository
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	store := deps.SessionStore
	exposeInternalErrors = !deps.Config.App.IsProduction()

	api := app.Group("/api")

	// Límite general por IP para toda la API.
	api.Use(limiter.New(limiter.Config{
		Max:        deps.Config.RateLimit.Max,
		Expiration: deps.Config.RateLimit.Window(),
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas peticiones, intente más tarde"})
		},
	}))

	// Toda mutación exige un token CSRF de un solo uso.
	api.Use(CSRFMiddleware(store))

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, store)
	// Límite más estricto para el login: frena fuerza bruta antes del lockout.
	authGroup.Post("/login", limiter.New(limiter.Config{
		Max:        deps.Config.RateLimit.AuthMax,
		Expiration: deps.Config.RateLimit.Window(),
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiados intentos de login, intente más tarde"})
		},
	}), authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.Session)
	authGroup.Get("/csrf-token", RequireAuth(store), IssueCSRFToken(store))
	authGroup.Post("/change-password", RequireAuth(store), authHandler.ChangePassword)

	// Rutas protegidas (requieren sesión)
	protected := api.Group("/", RequireAuth(store))

	// Inventario y categorías
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup := protected.Group("/inventory")
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Post("/", inventoryHandler.Create)
	invGroup.Get("/:id", inventoryHandler.GetByID)
	invGroup.Put("/:id", inventoryHandler.Update)
	invGroup.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleManager), inventoryHandler.Delete)

	categories := protected.Group("/categories")
	categories.Get("/", inventoryHandler.ListCategories)
	categories.Post("/", inventoryHandler.CreateCategory)

	// Ventas
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", salesHandler.Record)
	salesGroup.Get("/daily", salesHandler.Daily)
	salesGroup.Get("/summary", salesHandler.Summary)
	salesGroup.Get("/today", salesHandler.Today)

	// Alertas
	alertHandler := NewAlertHandler(deps.AlertsUC)
	alertGroup := protected.Group("/alerts")
	alertGroup.Get("/", alertHandler.List)
	alertGroup.Post("/refresh", alertHandler.Refresh)
	alertGroup.Delete("/", alertHandler.Clear)

	// Configuración
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settingsGroup := protected.Group("/settings")
	settingsGroup.Get("/", settingsHandler.Get)
	settingsGroup.Put("/", settingsHandler.Update)

	// Estadísticas
	statsHandler := NewStatsHandler(deps.StatsUC)
	protected.Get("/stats/dashboard", statsHandler.Dashboard)

	// Exportación, importación y QR
	exportHandler := NewExportHandler(deps.ExportUC)
	protected.Get("/export", exportHandler.Export)
	protected.Get("/export/pdf", exportHandler.ExportPDF)
	invGroup.Get("/:id/qr", exportHandler.ItemQR)

	// Administración (solo admin)
	admin := protected.Group("/", RequireRole(entity.RoleAdmin))
	admin.Post("/import", exportHandler.Import)
	userHandler := NewUserHandler(deps.UserUC)
	users := admin.Group("/users")
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)

	auditHandler := NewAuditHandler(deps.AuditRepo)
	admin.Get("/audit-logs", auditHandler.List)
}
