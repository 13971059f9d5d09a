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

	"github.com/dmreyes/repuestos-api/internal/application/auth"
	"github.com/dmreyes/repuestos-api/internal/application/inventory"
	"github.com/dmreyes/repuestos-api/internal/application/reports"
	"github.com/dmreyes/repuestos-api/internal/application/sales"
	"github.com/dmreyes/repuestos-api/internal/application/usecase"
	infracache "github.com/dmreyes/repuestos-api/internal/infrastructure/cache"
	infrapdf "github.com/dmreyes/repuestos-api/internal/infrastructure/pdf"
	"github.com/dmreyes/repuestos-api/internal/infrastructure/postgres"
	httpRouter "github.com/dmreyes/repuestos-api/internal/interfaces/http"
	"github.com/dmreyes/repuestos-api/pkg/config"
	"github.com/dmreyes/repuestos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	attemptRepo := postgres.NewLoginAttemptRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := inventory.NewStockLedgerUseCase(txRunner)
	movementQuery := inventory.NewMovementQueryUseCase(movementRepo)
	productUC := usecase.NewProductUseCase(productRepo, settingRepo, ledger, txRunner)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	settingsUC := usecase.NewSettingsUseCase(settingRepo, productRepo)
	createSaleUC := sales.NewCreateSaleUseCase(txRunner, ledger, settingRepo)
	salesQueryUC := sales.NewSalesQueryUseCase(saleRepo)
	authUC := auth.NewAuthUseCase(userRepo, attemptRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := reports.NewReportUseCase(productRepo, analyticsRepo, pdfGenerator)

	// Redis es opcional: sin REDIS_ADDR el dashboard consulta siempre la BD.
	var dashboardCache usecase.DashboardCache = infracache.NewNoopDashboardCache()
	if cfg.Redis.Addr != "" {
		redisCache := infracache.NewRedisDashboardCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, dashboard sin cache")
		} else {
			dashboardCache = redisCache
			defer redisCache.Close()
		}
	}
	dashboardUC := usecase.NewDashboardUseCase(productRepo, analyticsRepo, dashboardCache)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Repuestos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     productUC,
		CategoryUC:    categoryUC,
		SettingsUC:    settingsUC,
		DashboardUC:   dashboardUC,
		Ledger:        ledger,
		MovementQuery: movementQuery,
		CreateSaleUC:  createSaleUC,
		SalesQueryUC:  salesQueryUC,
		ReportUC:      reportUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
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
