package entity

import "github.com/shopspring/decimal"

// InvoiceItem es una línea de factura.
// Subtotal es derivado (UnitPrice × Quantity) y se recalcula en cada guardado.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	ProductID string // vacío si el producto fue eliminado (SET NULL)
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
