package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nayxus/nayxus-stock/internal/application/analytics"
	"github.com/nayxus/nayxus-stock/internal/application/auth"
	"github.com/nayxus/nayxus-stock/internal/application/catalog"
	"github.com/nayxus/nayxus-stock/internal/application/inventory"
	"github.com/nayxus/nayxus-stock/internal/application/sales"
	"github.com/nayxus/nayxus-stock/internal/application/settings"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	ProductUC         *catalog.ProductUseCase
	CategoryUC        *catalog.CategoryUseCase
	RecordMovementUC  *inventory.RecordMovementUseCase
	InventoryReportUC *inventory.ReportUseCase
	CustomerUC        *sales.CustomerUseCase
	InvoiceUC         *sales.InvoiceUseCase
	ExportUC          *sales.ExportUseCase
	PDFUC             *sales.PDFUseCase
	DashboardUC       *analytics.DashboardUseCase
	StatisticsUC      *analytics.StatisticsUseCase
	StockReportUC     *analytics.InventoryReportUseCase
	SettingsUC        *settings.UseCase
	JWTSecret         string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/export", productHandler.ExportCSV)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.Get)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Inventory movements y reportes (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RecordMovementUC, deps.InventoryReportUC)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/reports/entries", inventoryHandler.StockEntryReport)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Invoices (protegido, siempre acotado al vendedor autenticado)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.ExportUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/export", invoiceHandler.ExportCSV)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/:id/items", invoiceHandler.AddItem)
	invoices.Put("/:id/items/:itemID", invoiceHandler.UpdateItem)
	invoices.Delete("/:id/items/:itemID", invoiceHandler.DeleteItem)

	// Dashboard y estadísticas (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.StatisticsUC, deps.StockReportUC)
	protected.Get("/dashboard", dashboardHandler.Dashboard)
	protected.Get("/statistics", dashboardHandler.Statistics)
	protected.Get("/reports/inventory", RequireRole(entity.RoleAdmin), dashboardHandler.InventoryReport)

	// Settings (lectura para todos los autenticados, escritura solo ADMIN)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", RequireRole(entity.RoleAdmin), settingsHandler.Update)
}
