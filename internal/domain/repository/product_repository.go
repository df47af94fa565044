package repository

import "github.com/nayxus/nayxus-stock/internal/domain/entity"

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	Search     string // por nombre
	CategoryID string
	LowStock   *bool // true: en alerta; false: por encima del umbral
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// Es el punto de serialización del motor de stock.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateQuantity escribe solo la columna quantity (usada por el libro de movimientos).
	UpdateQuantity(id string, quantity int64) error
	List(filter ProductFilter) ([]*entity.Product, error)
	CountByCategory(categoryID string) (int, error)
	Delete(id string) error
}
