package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// InvoiceItemRequest línea de factura (producto, cantidad, precio unitario).
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// El número se asigna en el servidor ({año}-{consecutivo}); el estado y el
// monto pagado los fija el caller (no se derivan).
type CreateInvoiceRequest struct {
	CustomerID string               `json:"customer_id"`
	Status     string               `json:"status,omitempty"` // por defecto UNPAID
	PaidAmount decimal.Decimal      `json:"paid_amount"`
	Items      []InvoiceItemRequest `json:"items"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id (cabecera solamente;
// el total es derivado y no se acepta del caller).
type UpdateInvoiceRequest struct {
	CustomerID string          `json:"customer_id"`
	Status     string          `json:"status"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// UpdateItemRequest body para PUT /api/invoices/:id/items/:itemID.
type UpdateItemRequest struct {
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// InvoiceItemResponse línea en respuestas.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id,omitempty"`
	ProductName string          `json:"product_name,omitempty"` // "Produit inconnu" si fue eliminado
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse factura con detalle.
type InvoiceResponse struct {
	ID              string                `json:"id"`
	Number          string                `json:"number"`
	CustomerID      string                `json:"customer_id,omitempty"`
	CustomerName    string                `json:"customer_name,omitempty"`
	Date            time.Time             `json:"date"`
	Status          string                `json:"status"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	PaidAmount      decimal.Decimal       `json:"paid_amount"`
	RemainingAmount decimal.Decimal       `json:"remaining_amount"`
	UserID          string                `json:"user_id,omitempty"`
	Items           []InvoiceItemResponse `json:"items,omitempty"`
}

// InvoiceSummaryDTO recapitulativo de un listado filtrado de facturas.
type InvoiceSummaryDTO struct {
	Count     int             `json:"count"`
	Total     decimal.Decimal `json:"total"`
	Paid      decimal.Decimal `json:"paid"`
	Remaining decimal.Decimal `json:"remaining"`
}

// InvoiceListResponse listado con recapitulativo.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Summary  InvoiceSummaryDTO `json:"summary"`
}
