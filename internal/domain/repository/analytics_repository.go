package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
)

// MonthlySalesResult total facturado en un mes (agrupación por mes).
type MonthlySalesResult struct {
	Month time.Time
	Total decimal.Decimal
}

// CategoryStockResult subtotales de inventario de una categoría.
type CategoryStockResult struct {
	CategoryID    string
	CategoryName  string
	Quantity      int64
	PurchaseValue decimal.Decimal
	SellingValue  decimal.Decimal
}

// AnalyticsRepository consultas read-only para dashboard, estadísticas y reportes.
// No muta estado; las cifras se calculan siempre desde las tablas base.
type AnalyticsRepository interface {
	// RevenueSince suma total_amount de las facturas del vendedor desde la fecha.
	RevenueSince(ctx context.Context, userID string, since time.Time) (decimal.Decimal, error)
	// StockPurchaseValue valor del inventario a precio de compra (Σ quantity × purchase_price).
	StockPurchaseValue(ctx context.Context) (decimal.Decimal, error)
	LowStockCount(ctx context.Context) (int, error)
	CustomerCount(ctx context.Context) (int, error)
	ProductCount(ctx context.Context) (int, error)
	InvoiceCount(ctx context.Context, userID string) (int, error)
	RecentInvoices(ctx context.Context, userID string, limit int) ([]*entity.Invoice, error)
	RecentMovements(ctx context.Context, limit int) ([]*entity.StockMovement, error)
	LowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error)
	// MonthlySales totales facturados por mes para el vendedor desde la fecha.
	MonthlySales(ctx context.Context, userID string, since time.Time) ([]MonthlySalesResult, error)
	// StockByCategory subtotales de inventario agrupados por categoría (reporte de inventario).
	StockByCategory(ctx context.Context) ([]CategoryStockResult, error)
}
