package repository

import (
	"time"

	"github.com/nayxus/nayxus-stock/internal/domain/entity"
)

// MovementFilter filtros de listado de movimientos.
type MovementFilter struct {
	Search string // por nombre de producto o motivo
	Type   string
	Limit  int
}

// StockMovementRepository define el puerto del libro de movimientos.
// El libro es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	List(filter MovementFilter) ([]*entity.StockMovement, error)
	// ListEntriesBetween lista movimientos ENTRY en el rango (para el reporte de entradas).
	ListEntriesBetween(start, end time.Time) ([]*entity.StockMovement, error)
}
