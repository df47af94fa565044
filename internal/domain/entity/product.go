package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Quantity es la cantidad en stock; en principio solo se modifica como efecto
// de un StockMovement (el CRUD permite editarla directamente, debilidad conocida).
type Product struct {
	ID             string
	CategoryID     string
	Name           string
	Description    string
	PurchasePrice  decimal.Decimal // precio de compra
	SellingPrice   decimal.Decimal // precio de venta
	Quantity       int64
	AlertThreshold int64
	Barcode        string // código de barras, único si no está vacío
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsLowStock indica si el producto está en o por debajo del umbral de alerta.
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.AlertThreshold
}
