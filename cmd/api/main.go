package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nayxus/nayxus-stock/internal/application/analytics"
	"github.com/nayxus/nayxus-stock/internal/application/auth"
	"github.com/nayxus/nayxus-stock/internal/application/catalog"
	"github.com/nayxus/nayxus-stock/internal/application/inventory"
	"github.com/nayxus/nayxus-stock/internal/application/sales"
	"github.com/nayxus/nayxus-stock/internal/application/settings"
	infrapdf "github.com/nayxus/nayxus-stock/internal/infrastructure/pdf"
	"github.com/nayxus/nayxus-stock/internal/infrastructure/postgres"
	httpRouter "github.com/nayxus/nayxus-stock/internal/interfaces/http"
	"github.com/nayxus/nayxus-stock/pkg/config"
	"github.com/nayxus/nayxus-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel)
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

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	categoryUC := catalog.NewCategoryUseCase(categoryRepo, productRepo)
	productUC := catalog.NewProductUseCase(txRunner, productRepo, categoryRepo)
	recordMovementUC := inventory.NewRecordMovementUseCase(txRunner, productRepo)
	inventoryReportUC := inventory.NewReportUseCase(movementRepo, productRepo)
	customerUC := sales.NewCustomerUseCase(customerRepo)
	invoiceUC := sales.NewInvoiceUseCase(txRunner, invoiceRepo, customerRepo, productRepo)
	exportUC := sales.NewExportUseCase(invoiceRepo, customerRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := sales.NewPDFUseCase(invoiceRepo, customerRepo, productRepo, settingsRepo, userRepo, pdfGenerator)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo)
	statisticsUC := analytics.NewStatisticsUseCase(analyticsRepo)
	stockReportUC := analytics.NewInventoryReportUseCase(analyticsRepo)
	settingsUC := settings.NewUseCase(settingsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:            authUC,
		ProductUC:         productUC,
		CategoryUC:        categoryUC,
		RecordMovementUC:  recordMovementUC,
		InventoryReportUC: inventoryReportUC,
		CustomerUC:        customerUC,
		InvoiceUC:         invoiceUC,
		ExportUC:          exportUC,
		PDFUC:             pdfUC,
		DashboardUC:       dashboardUC,
		StatisticsUC:      statisticsUC,
		StockReportUC:     stockReportUC,
		SettingsUC:        settingsUC,
		JWTSecret:         cfg.JWT.Secret,
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
