package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"` // ENTRY, EXIT, ADJUSTMENT
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
}

// MovementResponse movimiento en respuestas.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Type        string    `json:"type"`
	Quantity    int64     `json:"quantity"`
	Reason      string    `json:"reason,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	Date        time.Time `json:"date"`
}

// StockEntryReportResponse reporte de entradas de stock sobre un período.
type StockEntryReportResponse struct {
	Movements     []MovementResponse `json:"movements"`
	TotalQuantity int64              `json:"total_quantity"`
	TotalValue    decimal.Decimal    `json:"total_value"` // a precio de compra
	StartDate     time.Time          `json:"start_date"`
	EndDate       time.Time          `json:"end_date"`
}

// CategoryStockDTO subtotales por categoría del reporte de inventario.
type CategoryStockDTO struct {
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	Quantity      int64           `json:"quantity"`
	PurchaseValue decimal.Decimal `json:"purchase_value"`
	SellingValue  decimal.Decimal `json:"selling_value"`
}

// InventoryReportResponse estado del inventario agrupado por categoría.
type InventoryReportResponse struct {
	Categories         []CategoryStockDTO `json:"categories"`
	TotalItems         int                `json:"total_items"`
	TotalQuantity      int64              `json:"total_quantity"`
	TotalPurchaseValue decimal.Decimal    `json:"total_purchase_value"`
	TotalSellingValue  decimal.Decimal    `json:"total_selling_value"`
}
