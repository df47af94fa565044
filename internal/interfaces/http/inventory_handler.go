package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/application/inventory"
)

// InventoryHandler maneja movimientos de stock y reportes de inventario.
type InventoryHandler struct {
	recordUC *inventory.RecordMovementUseCase
	reportUC *inventory.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(recordUC *inventory.RecordMovementUseCase, reportUC *inventory.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{recordUC: recordUC, reportUC: reportUC}
}

// RegisterMovement registra un movimiento ENTRY/EXIT/ADJUSTMENT y aplica su
// efecto sobre el stock en una sola transacción.
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" || in.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y type son requeridos"})
	}
	id, err := h.recordUC.RecordMovement(c.Context(), inventory.MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// ListMovements lista los últimos movimientos (máximo 50) con búsqueda opcional.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.reportUC.ListMovements(c.Context(), c.Query("search"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// StockEntryReport reporte de entradas de stock entre start y end (YYYY-MM-DD).
// Sin parámetros cubre el mes en curso.
func (h *InventoryHandler) StockEntryReport(c *fiber.Ctx) error {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := now
	if v := c.Query("start"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start inválido (YYYY-MM-DD)"})
		}
		start = t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end inválido (YYYY-MM-DD)"})
		}
		// Fin de día inclusivo
		end = t.Add(24*time.Hour - time.Nanosecond)
	}
	out, err := h.reportUC.StockEntryReport(c.Context(), start, end)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
