package sales

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/application/inventory"
	"github.com/nayxus/nayxus-stock/internal/domain"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// InvoiceUseCase motor de facturación: crea facturas, muta líneas con su
// movimiento de stock compensatorio y mantiene el invariante
// total_amount == Σ subtotales de las líneas vigentes.
//
// Cada operación de línea corre en una sola transacción que cubre el
// movimiento, la cantidad del producto, la línea y el total de la cabecera.
type InvoiceUseCase struct {
	txRunner     TxRunner
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// allocateNumber calcula el siguiente número {año}-{consecutivo} a partir de
// los números existentes del año (filas ya bloqueadas por el repo): toma el
// entero después del último '-', ignora los que no parsean, y suma 1.
// Sin facturas previas del año: {año}-1.
func allocateNumber(invoiceRepo repository.InvoiceRepository, year int) (string, error) {
	numbers, err := invoiceRepo.NumbersForYearLocked(year)
	if err != nil {
		return "", err
	}
	max := 0
	for _, n := range numbers {
		idx := strings.LastIndex(n, "-")
		if idx < 0 {
			continue
		}
		seq, err := strconv.Atoi(n[idx+1:])
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return fmt.Sprintf("%d-%d", year, max+1), nil
}

// validStatus estados de pago aceptados.
func validStatus(s string) bool {
	switch s {
	case entity.InvoiceStatusPaid, entity.InvoiceStatusUnpaid, entity.InvoiceStatusPartial:
		return true
	}
	return false
}

// CreateInvoice crea la factura con sus líneas en una sola transacción:
// asigna el número del año, registra una salida de stock por cada línea con
// producto y deja total_amount igual a la suma de los subtotales.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.InvoiceStatusUnpaid
	}
	if !validStatus(status) {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	// Productos y precios por defecto (lectura fuera de la tx; el bloqueo de
	// fila ocurre dentro, al aplicar cada salida)
	productsByID := make(map[string]*entity.Product)
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" {
			continue
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[item.ProductID] = product
		if item.UnitPrice.IsZero() {
			item.UnitPrice = product.SellingPrice
		}
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		Date:       now,
		Status:     status,
		PaidAmount: in.PaidAmount,
		UserID:     userID,
	}
	var items []*entity.InvoiceItem

	err = uc.txRunner.RunSales(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		number, err := allocateNumber(invoiceRepo, now.Year())
		if err != nil {
			return err
		}
		inv.Number = number
		inv.TotalAmount = decimal.Zero
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}

		for _, req := range in.Items {
			item := &entity.InvoiceItem{
				ID:        uuid.New().String(),
				InvoiceID: inv.ID,
				ProductID: req.ProductID,
				Quantity:  req.Quantity,
				UnitPrice: req.UnitPrice,
				Subtotal:  req.UnitPrice.Mul(decimal.NewFromInt(req.Quantity)),
			}
			if item.ProductID != "" {
				_, err := inventory.ApplyInTx(movRepo, productRepo, inventory.MovementInput{
					ProductID: item.ProductID,
					Type:      entity.MovementTypeExit,
					Quantity:  item.Quantity,
					Reason:    fmt.Sprintf("Vente - Facture %s", inv.Number),
					UserID:    userID,
				}, now)
				if err != nil {
					return err
				}
			}
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)
		}

		total, err := invoiceRepo.SumItemSubtotals(inv.ID)
		if err != nil {
			return err
		}
		inv.TotalAmount = total
		return invoiceRepo.UpdateTotal(inv.ID, total)
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(inv, items, customer.Name), nil
}

// AddItem agrega una línea a una factura existente: salida de stock, línea y
// recálculo del total, todo en la misma transacción.
func (uc *InvoiceUseCase) AddItem(ctx context.Context, userID, invoiceID string, in dto.InvoiceItemRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.ownedInvoice(userID, invoiceID)
	if err != nil {
		return nil, err
	}
	unitPrice := in.UnitPrice
	if in.ProductID != "" && unitPrice.IsZero() {
		product, err := uc.productRepo.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		unitPrice = product.SellingPrice
	}

	now := time.Now()
	err = uc.txRunner.RunSales(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		item := &entity.InvoiceItem{
			ID:        uuid.New().String(),
			InvoiceID: inv.ID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  unitPrice.Mul(decimal.NewFromInt(in.Quantity)),
		}
		if item.ProductID != "" {
			_, err := inventory.ApplyInTx(movRepo, productRepo, inventory.MovementInput{
				ProductID: item.ProductID,
				Type:      entity.MovementTypeExit,
				Quantity:  item.Quantity,
				Reason:    fmt.Sprintf("Vente - Facture %s", inv.Number),
				UserID:    userID,
			}, now)
			if err != nil {
				return err
			}
		}
		if err := invoiceRepo.CreateItem(item); err != nil {
			return err
		}
		return uc.recomputeTotal(invoiceRepo, inv.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetInvoice(ctx, userID, invoiceID)
}

// UpdateItem modifica una línea. El cambio de cantidad se compensa con un
// ADJUSTMENT de −delta (vender 5 más => el stock baja 5 más); el subtotal y el
// total de la factura se recalculan en la misma transacción.
func (uc *InvoiceUseCase) UpdateItem(ctx context.Context, userID, invoiceID, itemID string, in dto.UpdateItemRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.ownedInvoice(userID, invoiceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = uc.txRunner.RunSales(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		// Cantidad previa leída dentro de la tx: el delta se calcula contra
		// el último estado persistido
		item, err := invoiceRepo.GetItem(itemID)
		if err != nil {
			return err
		}
		if item == nil || item.InvoiceID != inv.ID {
			return domain.ErrNotFound
		}

		delta := in.Quantity - item.Quantity
		if delta != 0 && item.ProductID != "" {
			_, err := inventory.ApplyInTx(movRepo, productRepo, inventory.MovementInput{
				ProductID: item.ProductID,
				Type:      entity.MovementTypeAdjustment,
				Quantity:  -delta,
				Reason:    fmt.Sprintf("Correction Vente - Facture %s", inv.Number),
				UserID:    userID,
			}, now)
			if err != nil {
				return err
			}
		}

		item.Quantity = in.Quantity
		if !in.UnitPrice.IsZero() {
			item.UnitPrice = in.UnitPrice
		}
		item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		if err := invoiceRepo.UpdateItem(item); err != nil {
			return err
		}
		return uc.recomputeTotal(invoiceRepo, inv.ID)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetInvoice(ctx, userID, invoiceID)
}

// DeleteItem elimina una línea restaurando el stock con un ENTRY por la
// cantidad vendida, y recalcula el total (0 si no quedan líneas).
func (uc *InvoiceUseCase) DeleteItem(ctx context.Context, userID, invoiceID, itemID string) error {
	inv, err := uc.ownedInvoice(userID, invoiceID)
	if err != nil {
		return err
	}

	now := time.Now()
	return uc.txRunner.RunSales(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		item, err := invoiceRepo.GetItem(itemID)
		if err != nil {
			return err
		}
		if item == nil || item.InvoiceID != inv.ID {
			return domain.ErrNotFound
		}
		if item.ProductID != "" {
			_, err := inventory.ApplyInTx(movRepo, productRepo, inventory.MovementInput{
				ProductID: item.ProductID,
				Type:      entity.MovementTypeEntry,
				Quantity:  item.Quantity,
				Reason:    fmt.Sprintf("Annulation Ligne - Facture %s", inv.Number),
				UserID:    userID,
			}, now)
			if err != nil {
				return err
			}
		}
		if err := invoiceRepo.DeleteItem(item.ID); err != nil {
			return err
		}
		return uc.recomputeTotal(invoiceRepo, inv.ID)
	})
}

// UpdateInvoice actualiza la cabecera (cliente, estado, monto pagado).
// El total es derivado y nunca se acepta del caller.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, userID, invoiceID string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.ownedInvoice(userID, invoiceID)
	if err != nil {
		return nil, err
	}
	if in.Status != "" {
		if !validStatus(in.Status) {
			return nil, domain.ErrInvalidInput
		}
		inv.Status = in.Status
	}
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		inv.CustomerID = in.CustomerID
	}
	inv.PaidAmount = in.PaidAmount
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	return uc.GetInvoice(ctx, userID, invoiceID)
}

// GetInvoice devuelve la factura con sus líneas (solo del vendedor propietario).
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, userID, invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.ownedInvoice(userID, invoiceID)
	if err != nil {
		return nil, err
	}
	items, err := uc.invoiceRepo.ListItems(inv.ID)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if inv.CustomerID != "" {
		if c, err := uc.customerRepo.GetByID(inv.CustomerID); err == nil && c != nil {
			customerName = c.Name
		}
	}
	return uc.toResponse(inv, items, customerName), nil
}

// ListInvoices lista las facturas del vendedor con filtros y recapitulativo.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, filter repository.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	if filter.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	invoices, err := uc.invoiceRepo.List(filter)
	if err != nil {
		return nil, err
	}
	summary, err := uc.invoiceRepo.Summary(filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		customerName := ""
		if inv.CustomerID != "" {
			if c, err := uc.customerRepo.GetByID(inv.CustomerID); err == nil && c != nil {
				customerName = c.Name
			}
		}
		out = append(out, *uc.toResponse(inv, nil, customerName))
	}
	return &dto.InvoiceListResponse{
		Invoices: out,
		Summary: dto.InvoiceSummaryDTO{
			Count:     summary.Count,
			Total:     summary.Total,
			Paid:      summary.Paid,
			Remaining: summary.Total.Sub(summary.Paid),
		},
	}, nil
}

// ownedInvoice carga la factura y verifica que pertenezca al vendedor.
func (uc *InvoiceUseCase) ownedInvoice(userID, invoiceID string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

// recomputeTotal reimpone el invariante: total = Σ subtotales vigentes.
func (uc *InvoiceUseCase) recomputeTotal(invoiceRepo repository.InvoiceRepository, invoiceID string) error {
	total, err := invoiceRepo.SumItemSubtotals(invoiceID)
	if err != nil {
		return err
	}
	return invoiceRepo.UpdateTotal(invoiceID, total)
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice, items []*entity.InvoiceItem, customerName string) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:              inv.ID,
		Number:          inv.Number,
		CustomerID:      inv.CustomerID,
		CustomerName:    customerName,
		Date:            inv.Date,
		Status:          inv.Status,
		TotalAmount:     inv.TotalAmount,
		PaidAmount:      inv.PaidAmount,
		RemainingAmount: inv.RemainingAmount(),
		UserID:          inv.UserID,
	}
	for _, item := range items {
		name := "Produit inconnu"
		if item.ProductID != "" {
			if p, err := uc.productRepo.GetByID(item.ProductID); err == nil && p != nil {
				name = p.Name
			}
		}
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return resp
}
