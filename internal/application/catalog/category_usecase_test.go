package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nayxus/nayxus-stock/internal/application/catalog"
	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/domain"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*entity.Category{}}
}

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) SlugExists(slug, excludeID string) (bool, error) {
	for _, c := range r.categories {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) List(search string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(id string) error {
	delete(r.categories, id)
	return nil
}

// fakeCountingProductRepo solo cuenta productos por categoría; el resto no se usa.
type fakeCountingProductRepo struct {
	countByCategory map[string]int
}

func (r *fakeCountingProductRepo) Create(*entity.Product) error                 { return nil }
func (r *fakeCountingProductRepo) GetByID(string) (*entity.Product, error)      { return nil, nil }
func (r *fakeCountingProductRepo) GetByBarcode(string) (*entity.Product, error) { return nil, nil }
func (r *fakeCountingProductRepo) GetForUpdate(string) (*entity.Product, error) { return nil, nil }
func (r *fakeCountingProductRepo) Update(*entity.Product) error                 { return nil }
func (r *fakeCountingProductRepo) UpdateQuantity(string, int64) error           { return nil }
func (r *fakeCountingProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeCountingProductRepo) CountByCategory(categoryID string) (int, error) {
	return r.countByCategory[categoryID], nil
}
func (r *fakeCountingProductRepo) Delete(string) error { return nil }

func newCategoryUseCase() (*catalog.CategoryUseCase, *fakeCategoryRepo, *fakeCountingProductRepo) {
	categories := newFakeCategoryRepo()
	products := &fakeCountingProductRepo{countByCategory: map[string]int{}}
	return catalog.NewCategoryUseCase(categories, products), categories, products
}

func TestCategory_SlugSeDesambigua(t *testing.T) {
	uc, _, _ := newCategoryUseCase()
	ctx := context.Background()

	first, err := uc.Create(ctx, dto.SaveCategoryRequest{Name: "Fruits"})
	require.NoError(t, err)
	assert.Equal(t, "fruits", first.Slug)

	// Mismo slug derivado: la unicidad del nombre vive en la BD, aquí solo
	// importa que el slug no colisione
	second, err := uc.Create(ctx, dto.SaveCategoryRequest{Name: "FRUITS"})
	require.NoError(t, err)
	assert.Equal(t, "fruits-1", second.Slug)

	third, err := uc.Create(ctx, dto.SaveCategoryRequest{Name: "fruits"})
	require.NoError(t, err)
	assert.Equal(t, "fruits-2", third.Slug)
}

func TestCategory_PathRaizHoja(t *testing.T) {
	uc, _, _ := newCategoryUseCase()
	ctx := context.Background()

	root, err := uc.Create(ctx, dto.SaveCategoryRequest{Name: "Boissons"})
	require.NoError(t, err)
	child, err := uc.Create(ctx, dto.SaveCategoryRequest{Name: "Jus", ParentID: root.ID})
	require.NoError(t, err)

	got, err := uc.Get(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Boissons -> Jus", got.Path)
	assert.Equal(t, "Boissons", root.Path)
}

func TestCategory_PadreInexistente(t *testing.T) {
	uc, _, _ := newCategoryUseCase()

	_, err := uc.Create(context.Background(), dto.SaveCategoryRequest{
		Name:     "Jus",
		ParentID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategory_NombreRequerido(t *testing.T) {
	uc, _, _ := newCategoryUseCase()

	_, err := uc.Create(context.Background(), dto.SaveCategoryRequest{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategory_DeleteConProductosRechazado(t *testing.T) {
	uc, _, products := newCategoryUseCase()
	ctx := context.Background()

	cat, err := uc.Create(ctx, dto.SaveCategoryRequest{Name: "Épices"})
	require.NoError(t, err)

	products.countByCategory[cat.ID] = 3
	assert.ErrorIs(t, uc.Delete(ctx, cat.ID), domain.ErrConflict)

	products.countByCategory[cat.ID] = 0
	require.NoError(t, uc.Delete(ctx, cat.ID))
	_, err = uc.Get(ctx, cat.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El update conserva el slug aunque el nombre cambie.
func TestCategory_UpdateConservaSlug(t *testing.T) {
	uc, _, _ := newCategoryUseCase()
	ctx := context.Background()

	cat, err := uc.Create(ctx, dto.SaveCategoryRequest{Name: "Fruits"})
	require.NoError(t, err)

	out, err := uc.Update(ctx, cat.ID, dto.SaveCategoryRequest{Name: "Fruits et Légumes"})
	require.NoError(t, err)
	assert.Equal(t, "Fruits et Légumes", out.Name)
	assert.Equal(t, "fruits", out.Slug)
}
