package analytics

import (
	"context"
	"time"

	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

const statisticsMonths = 6 // ventana del gráfico de ventas mensuales

// StatisticsUseCase página de estadísticas del vendedor: totales globales y
// ventas agrupadas por mes sobre los últimos 6 meses.
type StatisticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewStatisticsUseCase construye el caso de uso.
func NewStatisticsUseCase(analyticsRepo repository.AnalyticsRepository) *StatisticsUseCase {
	return &StatisticsUseCase{analyticsRepo: analyticsRepo}
}

// GetStatistics arma la respuesta de estadísticas para el vendedor.
func (uc *StatisticsUseCase) GetStatistics(ctx context.Context, userID string) (*dto.StatisticsResponse, error) {
	since := time.Now().AddDate(0, 0, -statisticsMonths*30)

	monthly, err := uc.analyticsRepo.MonthlySales(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	products, err := uc.analyticsRepo.ProductCount(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := uc.analyticsRepo.CustomerCount(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := uc.analyticsRepo.InvoiceCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	revenue, err := uc.analyticsRepo.RevenueSince(ctx, userID, time.Time{})
	if err != nil {
		return nil, err
	}

	resp := &dto.StatisticsResponse{
		TotalProducts:  products,
		TotalCustomers: customers,
		TotalInvoices:  invoices,
		TotalRevenue:   revenue,
	}
	for _, m := range monthly {
		resp.MonthlySales = append(resp.MonthlySales, dto.MonthlySalesDTO{
			Month: m.Month.Format("Jan 2006"),
			Total: m.Total,
		})
	}
	return resp, nil
}
