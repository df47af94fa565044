package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayxus/nayxus-stock/internal/application/inventory"
	"github.com/nayxus/nayxus-stock/internal/domain"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(id string, quantity int64) error {
	if p, ok := r.products[id]; ok {
		p.Quantity = quantity
	}
	return nil
}

func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeProductRepo) CountByCategory(categoryID string) (int, error) {
	n := 0
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	return r.movements, nil
}

func (r *fakeMovementRepo) ListEntriesBetween(start, end time.Time) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.Type == entity.MovementTypeEntry && !m.Date.Before(start) && !m.Date.After(end) {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback directamente (sin transacción real).
type fakeTxRunner struct {
	movRepo     *fakeMovementRepo
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.movRepo, r.productRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func newUseCaseForTest(initialQty int64) (*inventory.RecordMovementUseCase, *fakeProductRepo, *fakeMovementRepo) {
	productRepo := newFakeProductRepo(&entity.Product{ID: "p1", Name: "Savon", Quantity: initialQty})
	movRepo := &fakeMovementRepo{}
	runner := &fakeTxRunner{movRepo: movRepo, productRepo: productRepo}
	return inventory.NewRecordMovementUseCase(runner, productRepo), productRepo, movRepo
}

func TestRecordMovement_EntryAumentaStock(t *testing.T) {
	uc, products, movements := newUseCaseForTest(10)

	id, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeEntry,
		Quantity:  5,
		Reason:    "Réception fournisseur",
		UserID:    "u1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	p, _ := products.GetByID("p1")
	assert.Equal(t, int64(15), p.Quantity)
	require.Len(t, movements.movements, 1)
	assert.Equal(t, "Réception fournisseur", movements.movements[0].Reason)
	assert.Equal(t, "u1", movements.movements[0].UserID)
}

func TestRecordMovement_ExitDisminuyeStock(t *testing.T) {
	uc, products, _ := newUseCaseForTest(10)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeExit,
		Quantity:  4,
	})
	require.NoError(t, err)

	p, _ := products.GetByID("p1")
	assert.Equal(t, int64(6), p.Quantity)
}

func TestRecordMovement_AdjustmentAplicaDeltaConSigno(t *testing.T) {
	uc, products, _ := newUseCaseForTest(10)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeAdjustment,
		Quantity:  -3,
	})
	require.NoError(t, err)

	p, _ := products.GetByID("p1")
	assert.Equal(t, int64(7), p.Quantity)
}

// Una salida mayor al stock no se rechaza: el stock queda negativo.
func TestRecordMovement_ExitPermiteStockNegativo(t *testing.T) {
	uc, products, _ := newUseCaseForTest(3)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeExit,
		Quantity:  8,
	})
	require.NoError(t, err)

	p, _ := products.GetByID("p1")
	assert.Equal(t, int64(-5), p.Quantity)
}

func TestRecordMovement_TipoInvalido(t *testing.T) {
	uc, _, movements := newUseCaseForTest(10)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1",
		Type:      "TRANSFER",
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, movements.movements)
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	uc, _, movements := newUseCaseForTest(10)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "no-existe",
		Type:      entity.MovementTypeEntry,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, movements.movements)
}

// El stock final es la suma de los efectos con signo de todo el libro.
func TestRecordMovement_StockEsSumaDeEfectos(t *testing.T) {
	uc, products, movements := newUseCaseForTest(0)

	steps := []inventory.MovementInput{
		{ProductID: "p1", Type: entity.MovementTypeEntry, Quantity: 50},
		{ProductID: "p1", Type: entity.MovementTypeExit, Quantity: 10},
		{ProductID: "p1", Type: entity.MovementTypeAdjustment, Quantity: -5},
		{ProductID: "p1", Type: entity.MovementTypeEntry, Quantity: 2},
	}
	for _, in := range steps {
		_, err := uc.RecordMovement(context.Background(), in)
		require.NoError(t, err)
	}

	var sum int64
	for _, m := range movements.movements {
		sum += m.SignedEffect()
	}
	p, _ := products.GetByID("p1")
	assert.Equal(t, sum, p.Quantity)
	assert.Equal(t, int64(37), p.Quantity)
}
