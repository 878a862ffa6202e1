package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/detailing-stock-api/internal/application/auth"
	"github.com/jhoicas/detailing-stock-api/internal/application/inventory"
	"github.com/jhoicas/detailing-stock-api/internal/application/reports"
	"github.com/jhoicas/detailing-stock-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	SupplierUC *usecase.SupplierUseCase
	VendorUC   *usecase.VendorUseCase
	MovementUC *inventory.MovementUseCase
	AuthUC     *auth.AuthUseCase
	ReportUC   *reports.ReportUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público, el resto requiere Bearer Token)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	authGroup := protected.Group("/auth")
	authGroup.Post("/change-password", authHandler.ChangePassword)
	authGroup.Get("/me", authHandler.Me)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/toggle-active", productHandler.ToggleActive)
	products.Delete("/:id", productHandler.Delete)

	// Movements
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/entry", movementHandler.Entry)
	movements.Post("/exit", movementHandler.Exit)
	movements.Post("/loss", movementHandler.Loss)
	movements.Post("/exit-return", movementHandler.ExitReturn)
	movements.Get("/", movementHandler.List)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Edit)
	movements.Delete("/:id", movementHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Vendors
	vendors := protected.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Post("/", vendorHandler.Create)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Get("/:id/purchases", vendorHandler.Purchases)
	vendors.Put("/:id", vendorHandler.Update)
	vendors.Delete("/:id", vendorHandler.Delete)

	// Reports y respaldos
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup := protected.Group("/reports")
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)
	reportsGroup.Get("/inventory", reportHandler.Inventory)
	reportsGroup.Get("/expenses", reportHandler.Expenses)
	reportsGroup.Get("/export", reportHandler.ExportExcel)
	reportsGroup.Get("/export-pdf", reportHandler.ExportPDF)

	backups := protected.Group("/backups")
	backups.Post("/", reportHandler.CreateBackup)
	backups.Get("/", reportHandler.ListBackups)
}
