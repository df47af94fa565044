package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nayxus/nayxus-stock/internal/application/dto"
	"github.com/nayxus/nayxus-stock/internal/domain"
	"github.com/nayxus/nayxus-stock/internal/domain/entity"
	"github.com/nayxus/nayxus-stock/internal/domain/repository"
)

// CategoryUseCase gestiona el árbol de categorías y la asignación de slugs.
// El slug se deriva del nombre y se desambigua al guardar probando sufijos
// -1, -2, ... hasta no colisionar (excluyendo la propia fila al actualizar).
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, productRepo: productRepo}
}

// Create crea una categoría con slug único derivado del nombre.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.SaveCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != "" {
		parent, err := uc.categoryRepo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		ParentID:    in.ParentID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	slug, err := uc.uniqueSlug(Slugify(in.Name), category.ID)
	if err != nil {
		return nil, err
	}
	category.Slug = slug
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return uc.toResponse(category)
}

// Update modifica una categoría. El slug existente se conserva; solo se
// re-desambigua si quedó vacío.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.SaveCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	// Sin guardia de ciclos sobre ParentID: A→B→A es posible y rompería el
	// renderizado de la ruta; pendiente de decisión de producto
	if in.ParentID != "" {
		parent, err := uc.categoryRepo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	category.Name = in.Name
	category.ParentID = in.ParentID
	category.Description = in.Description
	category.UpdatedAt = time.Now()
	if category.Slug == "" {
		slug, err := uc.uniqueSlug(Slugify(in.Name), category.ID)
		if err != nil {
			return nil, err
		}
		category.Slug = slug
	}
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return uc.toResponse(category)
}

// Get obtiene una categoría con su ruta completa.
func (uc *CategoryUseCase) Get(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(category)
}

// List lista categorías con búsqueda por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, search string) ([]dto.CategoryResponse, error) {
	categories, err := uc.categoryRepo.List(search)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		resp, err := uc.toResponse(c)
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// Delete elimina una categoría. Se rechaza (ErrConflict) si tiene productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.productRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.categoryRepo.Delete(id)
}

// uniqueSlug prueba base, base-1, base-2, ... hasta encontrar un slug libre
// (la propia fila no cuenta como colisión).
func (uc *CategoryUseCase) uniqueSlug(base, excludeID string) (string, error) {
	slug := base
	for counter := 1; ; counter++ {
		exists, err := uc.categoryRepo.SlugExists(slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// Path renderiza la ruta raíz→hoja unida por " -> " caminando los padres.
// Un ciclo en ParentID haría este recorrido infinito (sin guardia, a propósito).
func (uc *CategoryUseCase) Path(category *entity.Category) (string, error) {
	names := []string{category.Name}
	parentID := category.ParentID
	for parentID != "" {
		parent, err := uc.categoryRepo.GetByID(parentID)
		if err != nil {
			return "", err
		}
		if parent == nil {
			break
		}
		names = append(names, parent.Name)
		parentID = parent.ParentID
	}
	// invertir: el recorrido junta hoja→raíz
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " -> "), nil
}

func (uc *CategoryUseCase) toResponse(c *entity.Category) (*dto.CategoryResponse, error) {
	path, err := uc.Path(c)
	if err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		ParentID:    c.ParentID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Path:        path,
	}, nil
}
