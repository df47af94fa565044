package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una factura. Los fija el caller, no se derivan.
const (
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusUnpaid  = "UNPAID"
	InvoiceStatusPartial = "PARTIAL"
)

// Invoice es la cabecera de una factura.
// Number tiene la forma {año}-{secuencia}; la secuencia reinicia por año.
// TotalAmount es derivado: se recalcula tras cada mutación de líneas y debe
// ser igual a la suma de los subtotales vigentes.
type Invoice struct {
	ID          string
	Number      string
	CustomerID  string // vacío si el cliente fue eliminado
	Date        time.Time
	Status      string
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	UserID      string // vendedor propietario; vacío si fue eliminado
}

// RemainingAmount devuelve el saldo pendiente (vista derivada, no se persiste).
func (i *Invoice) RemainingAmount() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// IsPaid indica si la factura está marcada como pagada.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}
