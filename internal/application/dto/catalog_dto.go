package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaveProductRequest body para POST/PUT de productos.
// Quantity solo se toma en cuenta al crear: se materializa como un movimiento
// ENTRY de stock inicial.
type SaveProductRequest struct {
	Name           string          `json:"name"`
	CategoryID     string          `json:"category_id"`
	Description    string          `json:"description,omitempty"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	Quantity       int64           `json:"quantity"`
	AlertThreshold int64           `json:"alert_threshold"`
	Barcode        string          `json:"barcode,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID             string          `json:"id"`
	CategoryID     string          `json:"category_id"`
	CategoryName   string          `json:"category_name,omitempty"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	Quantity       int64           `json:"quantity"`
	AlertThreshold int64           `json:"alert_threshold"`
	Barcode        string          `json:"barcode,omitempty"`
	LowStock       bool            `json:"low_stock"`
	CreatedAt      time.Time       `json:"created_at"`
}

// SaveCategoryRequest body para POST/PUT de categorías. Slug se deriva del nombre.
type SaveCategoryRequest struct {
	Name        string `json:"name"`
	ParentID    string `json:"parent_id,omitempty"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse categoría en respuestas. Path es la ruta raíz→hoja ("A -> B").
type CategoryResponse struct {
	ID          string `json:"id"`
	ParentID    string `json:"parent_id,omitempty"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path"`
}
