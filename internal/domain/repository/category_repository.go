package repository

import "github.com/nayxus/nayxus-stock/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	// SlugExists indica si otro registro (distinto de excludeID) ya usa el slug.
	SlugExists(slug, excludeID string) (bool, error)
	Update(category *entity.Category) error
	List(search string) ([]*entity.Category, error)
	Delete(id string) error
}
