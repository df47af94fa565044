// Package analytics contiene los casos de uso read-only del tableau de bord,
// las estadísticas del vendedor y el reporte de inventario.
package analytics

import (
	"context"
	"time"

	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

const dashboardRecentLimit = 5 // elementos por widget del dashboard

// DashboardUseCase arma el resumen de la página de inicio.
// No accede a las tablas base directamente; delega todo en AnalyticsRepository.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardResponse para el vendedor indicado:
// ingresos del mes (solo sus facturas), valor del stock a precio de compra,
// conteos de alerta y clientes, y actividad reciente.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string) (*dto.DashboardResponse, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	revenue, err := uc.analyticsRepo.RevenueSince(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}
	stockValue, err := uc.analyticsRepo.StockPurchaseValue(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.analyticsRepo.LowStockCount(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := uc.analyticsRepo.CustomerCount(ctx)
	if err != nil {
		return nil, err
	}
	recentSales, err := uc.analyticsRepo.RecentInvoices(ctx, userID, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}
	recentMovements, err := uc.analyticsRepo.RecentMovements(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}
	lowStockProducts, err := uc.analyticsRepo.LowStockProducts(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		MonthRevenue:  revenue,
		StockValue:    stockValue,
		LowStockCount: lowStock,
		CustomerCount: customers,
	}
	for _, inv := range recentSales {
		resp.RecentSales = append(resp.RecentSales, dto.InvoiceResponse{
			ID:              inv.ID,
			Number:          inv.Number,
			CustomerID:      inv.CustomerID,
			Date:            inv.Date,
			Status:          inv.Status,
			TotalAmount:     inv.TotalAmount,
			PaidAmount:      inv.PaidAmount,
			RemainingAmount: inv.RemainingAmount(),
			UserID:          inv.UserID,
		})
	}
	for _, m := range recentMovements {
		resp.RecentMovements = append(resp.RecentMovements, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reason:    m.Reason,
			UserID:    m.UserID,
			Date:      m.Date,
		})
	}
	for _, p := range lowStockProducts {
		resp.LowStockProducts = append(resp.LowStockProducts, dto.ProductResponse{
			ID:             p.ID,
			CategoryID:     p.CategoryID,
			Name:           p.Name,
			PurchasePrice:  p.PurchasePrice,
			SellingPrice:   p.SellingPrice,
			Quantity:       p.Quantity,
			AlertThreshold: p.AlertThreshold,
			LowStock:       true,
			CreatedAt:      p.CreatedAt,
		})
	}
	return resp, nil
}
