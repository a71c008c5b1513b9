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

	"github.com/jhoicas/inventario-digital/internal/application/alerts"
	"github.com/jhoicas/inventario-digital/internal/application/audit"
	"github.com/jhoicas/inventario-digital/internal/application/auth"
	"github.com/jhoicas/inventario-digital/internal/application/inventory"
	"github.com/jhoicas/inventario-digital/internal/application/sales"
	"github.com/jhoicas/inventario-digital/internal/application/usecase"
	"github.com/jhoicas/inventario-digital/internal/infrastructure/memstore"
	infrapdf "github.com/jhoicas/inventario-digital/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-digital/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-digital/internal/infrastructure/qr"
	httpRouter "github.com/jhoicas/inventario-digital/internal/interfaces/http"
	"github.com/jhoicas/inventario-digital/pkg/config"
	"github.com/jhoicas/inventario-digital/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if err := postgres.Migrate(ctx, cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	salesRepo := postgres.NewSalesRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditRec := audit.NewRecorder(auditRepo, log)
	reconciler := alerts.NewReconciler(settingsRepo, inventoryRepo, alertRepo)
	lockout := auth.NewLockoutGuard(
		memstore.NewAttemptStore(),
		cfg.Security.LockoutMaxAttempts,
		cfg.Security.LockoutWindow(),
		nil,
	)

	authUC := auth.NewAuthUseCase(userRepo, lockout, cfg.Security.BcryptCost)
	inventoryUC := inventory.NewUseCase(inventoryRepo, categoryRepo, alertRepo, reconciler, auditRec)
	salesUC := sales.NewUseCase(inventoryRepo, salesRepo, txRunner, reconciler, auditRec)
	alertsUC := alerts.NewUseCase(alertRepo, reconciler, auditRec)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, reconciler, auditRec)
	userUC := usecase.NewUserUseCase(userRepo, auditRec, cfg.Security.BcryptCost, log)
	statsUC := usecase.NewStatsUseCase(inventoryRepo, categoryRepo)
	exportUC := usecase.NewExportUseCase(
		inventoryRepo, categoryRepo, alertRepo,
		inventoryUC, settingsUC, reconciler, auditRec,
		infrapdf.NewInventoryReportGenerator(),
		qr.NewGenerator(cfg.App.BaseURL),
		log,
	)

	if err := userUC.SeedDefaultAdmin(ctx); err != nil {
		log.Fatal().Err(err).Msg("crear usuario admin inicial")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Digital API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	sessionStore := httpRouter.NewSessionStore(cfg)

	httpRouter.Router(app, httpRouter.RouterDeps{
		Config:       cfg,
		SessionStore: sessionStore,
		AuthUC:       authUC,
		InventoryUC:  inventoryUC,
		SalesUC:      salesUC,
		AlertsUC:     alertsUC,
		SettingsUC:   settingsUC,
		UserUC:       userUC,
		StatsUC:      statsUC,
		ExportUC:     exportUC,
		AuditRepo:    auditRepo,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
