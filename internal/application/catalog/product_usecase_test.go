package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayxus/nayxus-stock/internal/application/catalog"
	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/domain"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// memProductRepo fake con estado para el CRUD de productos. deleteErr simula
// el rechazo por FK del libro de movimientos (RESTRICT -> ErrConflict).
type memProductRepo struct {
	products  map[string]*entity.Product
	deleteErr error
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*entity.Product{}}
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

func (r *memProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

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
	var out []*entity.Product
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) CountByCategory(string) (int, error) { return 0, nil }

func (r *memProductRepo) Delete(id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
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

type memTxRunner struct {
	movRepo     *memMovementRepo
	productRepo *memProductRepo
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.movRepo, r.productRepo)
}

type productFixture struct {
	uc        *catalog.ProductUseCase
	products  *memProductRepo
	movements *memMovementRepo
}

func newProductFixture() *productFixture {
	products := newMemProductRepo()
	movements := &memMovementRepo{}
	categories := newFakeCategoryRepo()
	categories.categories["cat1"] = &entity.Category{ID: "cat1", Name: "Savons", Slug: "savons"}
	runner := &memTxRunner{movRepo: movements, productRepo: products}
	return &productFixture{
		uc:        catalog.NewProductUseCase(runner, products, categories),
		products:  products,
		movements: movements,
	}
}

func TestProduct_CreateConStockInicial(t *testing.T) {
	f := newProductFixture()

	out, err := f.uc.Create(context.Background(), "u1", dto.SaveProductRequest{
		Name:         "Savon noir",
		CategoryID:   "cat1",
		SellingPrice: decimal.RequireFromString("5.00"),
		Quantity:     25,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), out.Quantity)

	stored, err := f.products.GetByID(out.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, int64(25), stored.Quantity)

	// El stock inicial entra por el libro, no por escritura directa
	require.Len(t, f.movements.movements, 1)
	mov := f.movements.movements[0]
	assert.Equal(t, entity.MovementTypeEntry, mov.Type)
	assert.Equal(t, int64(25), mov.Quantity)
	assert.Equal(t, "Stock initial à la création", mov.Reason)
	assert.Equal(t, "u1", mov.UserID)
	assert.Equal(t, out.ID, mov.ProductID)
}

func TestProduct_CreateSinStockNoMueveElLibro(t *testing.T) {
	f := newProductFixture()

	out, err := f.uc.Create(context.Background(), "u1", dto.SaveProductRequest{
		Name:       "Savon noir",
		CategoryID: "cat1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Quantity)
	assert.Empty(t, f.movements.movements)
}

func TestProduct_CreateCategoriaInexistente(t *testing.T) {
	f := newProductFixture()

	_, err := f.uc.Create(context.Background(), "u1", dto.SaveProductRequest{
		Name:       "Savon noir",
		CategoryID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.products.products)
}

func TestProduct_CreateCamposRequeridos(t *testing.T) {
	f := newProductFixture()

	_, err := f.uc.Create(context.Background(), "u1", dto.SaveProductRequest{CategoryID: "cat1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_DeleteConMovimientosRechazado(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	out, err := f.uc.Create(ctx, "u1", dto.SaveProductRequest{
		Name:       "Savon noir",
		CategoryID: "cat1",
		Quantity:   10,
	})
	require.NoError(t, err)

	f.products.deleteErr = domain.ErrConflict
	assert.ErrorIs(t, f.uc.Delete(ctx, out.ID), domain.ErrConflict)

	assert.ErrorIs(t, f.uc.Delete(ctx, "no-existe"), domain.ErrNotFound)
}

func TestProduct_GetByBarcode(t *testing.T) {
	f := newProductFixture()
	ctx := context.Background()

	_, err := f.uc.Create(ctx, "u1", dto.SaveProductRequest{
		Name:       "Savon noir",
		CategoryID: "cat1",
		Barcode:    "6181234567890",
	})
	require.NoError(t, err)

	out, err := f.uc.GetByBarcode(ctx, "6181234567890")
	require.NoError(t, err)
	assert.Equal(t, "Savon noir", out.Name)

	_, err = f.uc.GetByBarcode(ctx, "0000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.GetByBarcode(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
