package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
)

// InvoiceFilter filtros de listado de facturas (siempre acotado al vendedor).
type InvoiceFilter struct {
	UserID    string
	Search    string // por número o nombre de cliente
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

// InvoiceSummary agregado sobre un conjunto filtrado de facturas.
type InvoiceSummary struct {
	Count int
	Total decimal.Decimal
	Paid  decimal.Decimal
}

// InvoiceRepository define el puerto de persistencia para Invoice e InvoiceItem (DIP).
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	Update(invoice *entity.Invoice) error
	// UpdateTotal escribe solo total_amount (recalculado por el motor de líneas).
	UpdateTotal(id string, total decimal.Decimal) error
	List(filter InvoiceFilter) ([]*entity.Invoice, error)
	Summary(filter InvoiceFilter) (*InvoiceSummary, error)
	// NumbersForYearLocked devuelve los números de factura del año bloqueando
	// las filas (FOR UPDATE) para serializar la asignación del consecutivo.
	NumbersForYearLocked(year int) ([]string, error)

	CreateItem(item *entity.InvoiceItem) error
	GetItem(id string) (*entity.InvoiceItem, error)
	UpdateItem(item *entity.InvoiceItem) error
	DeleteItem(id string) error
	ListItems(invoiceID string) ([]*entity.InvoiceItem, error)
	// SumItemSubtotals recalcula el total desde el conjunto vigente de líneas.
	SumItemSubtotals(invoiceID string) (decimal.Decimal, error)
}
