package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nayxus/nayxus-stock/internal/application/analytics"
)

// DashboardHandler maneja dashboard, estadísticas y reporte de inventario.
type DashboardHandler struct {
	dashboardUC *analytics.DashboardUseCase
	statsUC     *analytics.StatisticsUseCase
	inventoryUC *analytics.InventoryReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(
	dashboardUC *analytics.DashboardUseCase,
	statsUC *analytics.StatisticsUseCase,
	inventoryUC *analytics.InventoryReportUseCase,
) *DashboardHandler {
	return &DashboardHandler{dashboardUC: dashboardUC, statsUC: statsUC, inventoryUC: inventoryUC}
}

// Dashboard resumen de inicio del vendedor autenticado.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboardUC.GetSummary(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Statistics página de estadísticas del vendedor autenticado.
func (h *DashboardHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.statsUC.GetStatistics(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// InventoryReport estado del inventario agrupado por categoría (solo ADMIN).
func (h *DashboardHandler) InventoryReport(c *fiber.Ctx) error {
	out, err := h.inventoryUC.GetReport(c.Context())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
