package http

import (
	"github.com/gofiber/fiber/v2"

	appcatalog "github.com/jhoicas/ferreteria-pos/internal/application/catalog"
	"github.com/jhoicas/ferreteria-pos/internal/application/restock"
	"github.com/jhoicas/ferreteria-pos/internal/application/sales"
	"github.com/jhoicas/ferreteria-pos/internal/application/supplier"
	"github.com/jhoicas/ferreteria-pos/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC       *appcatalog.CatalogUseCase
	SupplierUC      *supplier.SupplierUseCase
	SettleSale      *sales.SettleSaleUseCase
	VoidSale        *sales.VoidTransactionUseCase
	Availability    *sales.AvailabilityChecker
	ReceiveStock    *sales.ReceiveStockUseCase
	AdjustStock     *sales.AdjustStockUseCase
	RestockUC       *restock.RestockUseCase
	TransactionRepo repository.TransactionRepository
	MovementRepo    repository.StockMovementRepository
	NotifRepo       repository.NotificationRepository
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo: alta de productos/variantes y vistas mezcladas y agrupadas
	catalogGroup := api.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalogGroup.Get("/products", catalogHandler.ListMergedProducts)
	catalogGroup.Post("/products", catalogHandler.CreateProduct)
	catalogGroup.Get("/products/:id", catalogHandler.GetMergedProduct)
	catalogGroup.Post("/variants", catalogHandler.CreateVariant)
	catalogGroup.Get("/groups", catalogHandler.ListGroups)

	// Proveedores
	supplierGroup := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	supplierGroup.Get("/", supplierHandler.List)
	supplierGroup.Post("/", supplierHandler.Create)
	supplierGroup.Get("/:id", supplierHandler.GetByID)

	// Ventas: chequeo, liquidación, anulación y consulta
	salesGroup := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.SettleSale, deps.VoidSale, deps.Availability,
		deps.TransactionRepo, deps.MovementRepo)
	salesGroup.Post("/", salesHandler.Settle)
	salesGroup.Get("/", salesHandler.ListTransactions)
	salesGroup.Post("/availability", salesHandler.CheckAvailability)
	salesGroup.Get("/:id", salesHandler.GetTransaction)
	salesGroup.Get("/:id/movements", salesHandler.ListTransactionMovements)
	salesGroup.Post("/:id/void", salesHandler.Void)

	// Inventario: entradas, ajustes y auditoría
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ReceiveStock, deps.AdjustStock, deps.MovementRepo)
	invGroup.Post("/receipts", inventoryHandler.ReceiveStock)
	invGroup.Post("/adjustments", inventoryHandler.AdjustStock)
	invGroup.Get("/movements/:variant_id", inventoryHandler.ListMovements)

	// Solicitudes de reposición
	restockGroup := api.Group("/restocking-requests")
	restockHandler := NewRestockHandler(deps.RestockUC)
	restockGroup.Get("/", restockHandler.ListOpen)
	restockGroup.Get("/variant/:variant_id", restockHandler.OpenForVariant)
	restockGroup.Post("/:id/acknowledge", restockHandler.Acknowledge)
	restockGroup.Post("/:id/fulfill", restockHandler.Fulfill)

	// Notificaciones informativas
	notificationHandler := NewNotificationHandler(deps.NotifRepo)
	api.Get("/notifications", notificationHandler.ListRecent)
}
