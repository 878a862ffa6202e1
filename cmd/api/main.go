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

	"github.com/jhoicas/detailing-stock-api/internal/application/auth"
	"github.com/jhoicas/detailing-stock-api/internal/application/inventory"
	"github.com/jhoicas/detailing-stock-api/internal/application/reports"
	"github.com/jhoicas/detailing-stock-api/internal/application/usecase"
	"github.com/jhoicas/detailing-stock-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/detailing-stock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/detailing-stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/detailing-stock-api/internal/interfaces/http"
	"github.com/jhoicas/detailing-stock-api/pkg/config"
	"github.com/jhoicas/detailing-stock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	// Esquema idempotente + usuario admin inicial si la tabla está vacía.
	if err := postgres.InitSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("inicializar esquema")
	}

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	backupStore, err := excel.NewBackupStore(cfg.Backup.Dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Backup.Dir).Msg("directorio de respaldos")
	}

	productUC := usecase.NewProductUseCase(productRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	vendorUC := usecase.NewVendorUseCase(vendorRepo, movementRepo)
	movementUC := inventory.NewMovementUseCase(txRunner, movementRepo, vendorRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	reportUC := reports.NewReportUseCase(
		reportRepo, movementRepo, supplierRepo, vendorRepo,
		excel.NewExporter(), infrapdf.NewInventoryPDFGenerator(), backupStore,
	)

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
		Title:    "Detailing Stock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		SupplierUC: supplierUC,
		VendorUC:   vendorUC,
		MovementUC: movementUC,
		AuthUC:     authUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
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
