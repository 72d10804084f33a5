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

	appcatalog "github.com/jhoicas/ferreteria-pos/internal/application/catalog"
	"github.com/jhoicas/ferreteria-pos/internal/application/restock"
	"github.com/jhoicas/ferreteria-pos/internal/application/sales"
	"github.com/jhoicas/ferreteria-pos/internal/application/supplier"
	"github.com/jhoicas/ferreteria-pos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ferreteria-pos/internal/interfaces/http"
	"github.com/jhoicas/ferreteria-pos/pkg/config"
	"github.com/jhoicas/ferreteria-pos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
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
	variantRepo := postgres.NewVariantRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	restockRepo := postgres.NewRestockingRequestRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	salesCfg := sales.Config{
		VATRate:              cfg.Sales.VATRate,
		HistoryRetentionDays: cfg.Sales.HistoryRetentionDays,
		MaxRetries:           cfg.Sales.SettleMaxRetries,
	}

	// movementRepo y notifRepo atados al pool: se usan tras el Commit.
	settleUC := sales.NewSettleSaleUseCase(txRunner, movementRepo, notifRepo, log, salesCfg)
	voidUC := sales.NewVoidTransactionUseCase(txRunner, movementRepo, log, salesCfg)
	availabilityUC := sales.NewAvailabilityChecker(variantRepo)
	receiveUC := sales.NewReceiveStockUseCase(txRunner)
	adjustUC := sales.NewAdjustStockUseCase(txRunner)
	catalogUC := appcatalog.NewCatalogUseCase(productRepo, variantRepo)
	supplierUC := supplier.NewSupplierUseCase(supplierRepo)
	restockUC := restock.NewRestockUseCase(restockRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ferretería POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:       catalogUC,
		SupplierUC:      supplierUC,
		SettleSale:      settleUC,
		VoidSale:        voidUC,
		Availability:    availabilityUC,
		ReceiveStock:    receiveUC,
		AdjustStock:     adjustUC,
		RestockUC:       restockUC,
		TransactionRepo: transactionRepo,
		MovementRepo:    movementRepo,
		NotifRepo:       notifRepo,
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
