package analytics

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// InventoryReportUseCase estado del inventario a un instante, agrupado por
// categoría con subtotales y totales globales. Reservado a administradores.
type InventoryReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewInventoryReportUseCase construye el caso de uso.
func NewInventoryReportUseCase(analyticsRepo repository.AnalyticsRepository) *InventoryReportUseCase {
	return &InventoryReportUseCase{analyticsRepo: analyticsRepo}
}

// GetReport arma el reporte de inventario completo.
func (uc *InventoryReportUseCase) GetReport(ctx context.Context) (*dto.InventoryReportResponse, error) {
	byCategory, err := uc.analyticsRepo.StockByCategory(ctx)
	if err != nil {
		return nil, err
	}
	totalItems, err := uc.analyticsRepo.ProductCount(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.InventoryReportResponse{
		TotalItems:         totalItems,
		TotalPurchaseValue: decimal.Zero,
		TotalSellingValue:  decimal.Zero,
	}
	for _, c := range byCategory {
		resp.Categories = append(resp.Categories, dto.CategoryStockDTO{
			CategoryID:    c.CategoryID,
			CategoryName:  c.CategoryName,
			Quantity:      c.Quantity,
			PurchaseValue: c.PurchaseValue,
			SellingValue:  c.SellingValue,
		})
		resp.TotalQuantity += c.Quantity
		resp.TotalPurchaseValue = resp.TotalPurchaseValue.Add(c.PurchaseValue)
		resp.TotalSellingValue = resp.TotalSellingValue.Add(c.SellingValue)
	}
	return resp, nil
}
