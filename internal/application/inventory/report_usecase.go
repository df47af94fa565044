package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// ReportUseCase reportes de inventario: listado de movimientos y reporte de
// entradas sobre un período. Solo lecturas.
type ReportUseCase struct {
	movRepo     repository.StockMovementRepository
	productRepo repository.ProductRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) *ReportUseCase {
	return &ReportUseCase{movRepo: movRepo, productRepo: productRepo}
}

const movementListLimit = 50 // los listados muestran los 50 más recientes

// ListMovements lista movimientos recientes con búsqueda por producto o motivo.
func (uc *ReportUseCase) ListMovements(ctx context.Context, search string) ([]dto.MovementResponse, error) {
	movements, err := uc.movRepo.List(repository.MovementFilter{Search: search, Limit: movementListLimit})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		name := ""
		if p, err := uc.productRepo.GetByID(m.ProductID); err == nil && p != nil {
			name = p.Name
		}
		out = append(out, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			ProductName: name,
			Type:        m.Type,
			Quantity:    m.Quantity,
			Reason:      m.Reason,
			UserID:      m.UserID,
			Date:        m.Date,
		})
	}
	return out, nil
}

// StockEntryReport reporte de entradas de stock en un rango de fechas:
// movimientos ENTRY con totales de cantidad y de valor a precio de compra.
func (uc *ReportUseCase) StockEntryReport(ctx context.Context, start, end time.Time) (*dto.StockEntryReportResponse, error) {
	movements, err := uc.movRepo.ListEntriesBetween(start, end)
	if err != nil {
		return nil, err
	}

	var totalQty int64
	totalValue := decimal.Zero
	products := map[string]decimal.Decimal{} // purchase_price por producto
	rows := make([]dto.MovementResponse, 0, len(movements))

	for _, m := range movements {
		price, ok := products[m.ProductID]
		name := ""
		p, err := uc.productRepo.GetByID(m.ProductID)
		if err == nil && p != nil {
			name = p.Name
			if !ok {
				price = p.PurchasePrice
				products[m.ProductID] = price
			}
		}
		totalQty += m.Quantity
		totalValue = totalValue.Add(price.Mul(decimal.NewFromInt(m.Quantity)))
		rows = append(rows, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			ProductName: name,
			Type:        m.Type,
			Quantity:    m.Quantity,
			Reason:      m.Reason,
			UserID:      m.UserID,
			Date:        m.Date,
		})
	}

	return &dto.StockEntryReportResponse{
		Movements:     rows,
		TotalQuantity: totalQty,
		TotalValue:    totalValue,
		StartDate:     start,
		EndDate:       end,
	}, nil
}
