package sales_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/application/sales"
	"github.com/nayxus/nayxus-stock/internal/domain"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByBarcode(string) (*entity.Product, error) { return nil, nil }

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateQuantity(id string, quantity int64) error {
	if p, ok := r.products[id]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (r *memProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}

func (r *memProductRepo) CountByCategory(string) (int, error) { return 0, nil }

func (r *memProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type memMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *memMovementRepo) GetByID(string) (*entity.StockMovement, error) { return nil, nil }

func (r *memMovementRepo) List(repository.MovementFilter) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

func (r *memMovementRepo) ListEntriesBetween(time.Time, time.Time) ([]*entity.StockMovement, error) {
	return nil, nil
}

func (r *memMovementRepo) last() *entity.StockMovement {
	if len(r.movements) == 0 {
		return nil
	}
	return r.movements[len(r.movements)-1]
}

type memCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) List(string) ([]*entity.Customer, error) { return nil, nil }
func (r *memCustomerRepo) Update(*entity.Customer) error           { return nil }
func (r *memCustomerRepo) Delete(string) error                     { return nil }

type memInvoiceRepo struct {
	invoices map[string]*entity.Invoice
	items    map[string]*entity.InvoiceItem
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{
		invoices: map[string]*entity.Invoice{},
		items:    map[string]*entity.InvoiceItem{},
	}
}

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	for _, existing := range r.invoices {
		if existing.Number == inv.Number {
			return domain.ErrDuplicate
		}
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) Update(inv *entity.Invoice) error {
	stored, ok := r.invoices[inv.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.CustomerID = inv.CustomerID
	stored.Status = inv.Status
	stored.PaidAmount = inv.PaidAmount
	return nil
}

func (r *memInvoiceRepo) UpdateTotal(id string, total decimal.Decimal) error {
	if inv, ok := r.invoices[id]; ok {
		inv.TotalAmount = total
	}
	return nil
}

func (r *memInvoiceRepo) List(filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.invoices {
		if filter.UserID != "" && inv.UserID != filter.UserID {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memInvoiceRepo) Summary(filter repository.InvoiceFilter) (*repository.InvoiceSummary, error) {
	s := &repository.InvoiceSummary{Total: decimal.Zero, Paid: decimal.Zero}
	for _, inv := range r.invoices {
		if filter.UserID != "" && inv.UserID != filter.UserID {
			continue
		}
		s.Count++
		s.Total = s.Total.Add(inv.TotalAmount)
		s.Paid = s.Paid.Add(inv.PaidAmount)
	}
	return s, nil
}

func (r *memInvoiceRepo) NumbersForYearLocked(year int) ([]string, error) {
	prefix := fmt.Sprintf("%d-", year)
	var out []string
	for _, inv := range r.invoices {
		if strings.HasPrefix(inv.Number, prefix) {
			out = append(out, inv.Number)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) GetItem(id string) (*entity.InvoiceItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memInvoiceRepo) UpdateItem(item *entity.InvoiceItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) DeleteItem(id string) error {
	delete(r.items, id)
	return nil
}

func (r *memInvoiceRepo) ListItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	var out []*entity.InvoiceItem
	for _, it := range r.items {
		if it.InvoiceID == invoiceID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInvoiceRepo) SumItemSubtotals(invoiceID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range r.items {
		if it.InvoiceID == invoiceID {
			total = total.Add(it.Subtotal)
		}
	}
	return total, nil
}

// memTxRunner ejecuta el callback directamente (sin transacción real).
type memTxRunner struct {
	movRepo     *memMovementRepo
	productRepo *memProductRepo
	invoiceRepo *memInvoiceRepo
}

func (r *memTxRunner) RunSales(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return fn(r.movRepo, r.productRepo, r.invoiceRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Arnés
// ──────────────────────────────────────────────────────────────────────────────

type invoiceFixture struct {
	uc        *sales.InvoiceUseCase
	products  *memProductRepo
	movements *memMovementRepo
	invoices  *memInvoiceRepo
}

func newInvoiceFixture() *invoiceFixture {
	products := &memProductRepo{products: map[string]*entity.Product{
		"p1": {ID: "p1", Name: "Savon", Quantity: 50, SellingPrice: decimal.RequireFromString("5.00")},
	}}
	customers := &memCustomerRepo{customers: map[string]*entity.Customer{
		"c1": {ID: "c1", Name: "Aminata"},
	}}
	movements := &memMovementRepo{}
	invoices := newMemInvoiceRepo()
	runner := &memTxRunner{movRepo: movements, productRepo: products, invoiceRepo: invoices}
	return &invoiceFixture{
		uc:        sales.NewInvoiceUseCase(runner, invoices, customers, products),
		products:  products,
		movements: movements,
		invoices:  invoices,
	}
}

func (f *invoiceFixture) productQty(t *testing.T, id string) int64 {
	t.Helper()
	p, err := f.products.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Ciclo de vida completo de una línea: la venta saca stock, la corrección
// compensa el delta y la anulación restaura exactamente lo vendido.
func TestInvoice_CicloDeVidaDeLinea(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()

	// Venta de 10 unidades, precio por defecto del producto (5.00)
	inv, err := f.uc.CreateInvoice(ctx, "u1", dto.CreateInvoiceRequest{
		CustomerID: "c1",
		Items:      []dto.InvoiceItemRequest{{ProductID: "p1", Quantity: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40), f.productQty(t, "p1"))
	assert.True(t, inv.TotalAmount.Equal(decimal.RequireFromString("50.00")),
		"total = 10 × 5.00, got %s", inv.TotalAmount)
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].UnitPrice.Equal(decimal.RequireFromString("5.00")))

	mov := f.movements.last()
	require.NotNil(t, mov)
	assert.Equal(t, entity.MovementTypeExit, mov.Type)
	assert.Equal(t, int64(10), mov.Quantity)
	assert.Equal(t, fmt.Sprintf("Vente - Facture %s", inv.Number), mov.Reason)

	// Corrección a 15 unidades: ADJUSTMENT de -5
	itemID := inv.Items[0].ID
	inv2, err := f.uc.UpdateItem(ctx, "u1", inv.ID, itemID, dto.UpdateItemRequest{Quantity: 15})
	require.NoError(t, err)
	assert.Equal(t, int64(35), f.productQty(t, "p1"))
	assert.True(t, inv2.TotalAmount.Equal(decimal.RequireFromString("75.00")),
		"total = 15 × 5.00, got %s", inv2.TotalAmount)

	mov = f.movements.last()
	assert.Equal(t, entity.MovementTypeAdjustment, mov.Type)
	assert.Equal(t, int64(-5), mov.Quantity)
	assert.Equal(t, fmt.Sprintf("Correction Vente - Facture %s", inv.Number), mov.Reason)

	// Anulación de la línea: ENTRY de 15, total a cero
	require.NoError(t, f.uc.DeleteItem(ctx, "u1", inv.ID, itemID))
	assert.Equal(t, int64(50), f.productQty(t, "p1"))

	mov = f.movements.last()
	assert.Equal(t, entity.MovementTypeEntry, mov.Type)
	assert.Equal(t, int64(15), mov.Quantity)
	assert.Equal(t, fmt.Sprintf("Annulation Ligne - Facture %s", inv.Number), mov.Reason)

	stored, err := f.invoices.GetByID(inv.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.IsZero(), "total debe quedar en 0, got %s", stored.TotalAmount)
}

func TestInvoice_NumeracionPorAnio(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()
	year := time.Now().Year()

	// Números existentes del año, incluido uno que no parsea (se ignora)
	f.invoices.invoices["i1"] = &entity.Invoice{ID: "i1", Number: fmt.Sprintf("%d-1", year)}
	f.invoices.invoices["i2"] = &entity.Invoice{ID: "i2", Number: fmt.Sprintf("%d-7", year)}
	f.invoices.invoices["i3"] = &entity.Invoice{ID: "i3", Number: fmt.Sprintf("%d-draft-x", year)}
	// Factura de otro año: no cuenta
	f.invoices.invoices["i4"] = &entity.Invoice{ID: "i4", Number: fmt.Sprintf("%d-99", year-1)}

	inv, err := f.uc.CreateInvoice(ctx, "u1", dto.CreateInvoiceRequest{CustomerID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d-8", year), inv.Number)
}

func TestInvoice_PrimeraDelAnio(t *testing.T) {
	f := newInvoiceFixture()

	inv, err := f.uc.CreateInvoice(context.Background(), "u1", dto.CreateInvoiceRequest{CustomerID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d-1", time.Now().Year()), inv.Number)
}

func TestInvoice_OtroVendedorNoAccede(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()

	inv, err := f.uc.CreateInvoice(ctx, "u1", dto.CreateInvoiceRequest{CustomerID: "c1"})
	require.NoError(t, err)

	_, err = f.uc.GetInvoice(ctx, "u2", inv.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = f.uc.DeleteItem(ctx, "u2", inv.ID, "cualquiera")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// La cabecera nunca acepta el total del caller: solo status, cliente y pagado.
func TestInvoice_UpdateCabeceraNoTocaTotal(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()

	inv, err := f.uc.CreateInvoice(ctx, "u1", dto.CreateInvoiceRequest{
		CustomerID: "c1",
		Items:      []dto.InvoiceItemRequest{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)

	out, err := f.uc.UpdateInvoice(ctx, "u1", inv.ID, dto.UpdateInvoiceRequest{
		Status:     entity.InvoiceStatusPartial,
		PaidAmount: decimal.RequireFromString("4.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPartial, out.Status)
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, out.RemainingAmount.Equal(decimal.RequireFromString("6.00")))
}

func TestInvoice_EstadoInvalido(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.uc.CreateInvoice(context.Background(), "u1", dto.CreateInvoiceRequest{
		CustomerID: "c1",
		Status:     "CANCELLED",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInvoice_AddItemRecalculaTotal(t *testing.T) {
	f := newInvoiceFixture()
	ctx := context.Background()

	inv, err := f.uc.CreateInvoice(ctx, "u1", dto.CreateInvoiceRequest{
		CustomerID: "c1",
		Items:      []dto.InvoiceItemRequest{{ProductID: "p1", Quantity: 3}},
	})
	require.NoError(t, err)

	out, err := f.uc.AddItem(ctx, "u1", inv.ID, dto.InvoiceItemRequest{
		ProductID: "p1",
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("7.50"),
	})
	require.NoError(t, err)
	// 3×5.00 + 2×7.50 = 30.00
	assert.True(t, out.TotalAmount.Equal(decimal.RequireFromString("30.00")),
		"got %s", out.TotalAmount)
	assert.Equal(t, int64(45), f.productQty(t, "p1"))
}
