package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/application/sales"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// InvoiceHandler maneja las facturas del vendedor autenticado (protegido).
type InvoiceHandler struct {
	uc       *sales.InvoiceUseCase
	exportUC *sales.ExportUseCase
	pdfUC    *sales.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *sales.InvoiceUseCase, exportUC *sales.ExportUseCase, pdfUC *sales.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, exportUC: exportUC, pdfUC: pdfUC}
}

// Create crea una factura con sus líneas en una sola transacción.
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateInvoice(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get devuelve una factura del vendedor con sus líneas.
func (h *InvoiceHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetInvoice(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// List lista las facturas del vendedor con filtros y recapitulativo.
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	filter := repository.InvoiceFilter{
		UserID: GetUserID(c),
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	if v := c.Query("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start inválido (YYYY-MM-DD)"})
		}
		filter.StartDate = &t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end inválido (YYYY-MM-DD)"})
		}
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &endOfDay
	}
	out, err := h.uc.ListInvoices(c.Context(), filter)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update actualiza la cabecera (cliente, estado, monto pagado).
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateInvoice(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// AddItem agrega una línea a la factura.
func (h *InvoiceHandler) AddItem(c *fiber.Ctx) error {
	var in dto.InvoiceItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddItem(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateItem modifica una línea; el cambio de cantidad se compensa con un ajuste de stock.
func (h *InvoiceHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateItem(c.Context(), GetUserID(c), c.Params("id"), c.Params("itemID"), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem elimina una línea restaurando el stock vendido.
func (h *InvoiceHandler) DeleteItem(c *fiber.Ctx) error {
	if err := h.uc.DeleteItem(c.Context(), GetUserID(c), c.Params("id"), c.Params("itemID")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportCSV descarga las facturas del vendedor en CSV.
func (h *InvoiceHandler) ExportCSV(c *fiber.Ctx) error {
	data, err := h.exportUC.InvoicesCSV(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="factures.csv"`)
	return c.Send(data)
}

// DownloadPDF descarga el PDF de una factura del vendedor.
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	invoiceID := c.Params("id")
	data, err := h.pdfUC.InvoicePDF(c.Context(), GetUserID(c), invoiceID)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="facture-%s.pdf"`, invoiceID))
	return c.Send(data)
}
