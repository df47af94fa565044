package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntry      = "ENTRY"      // entrada: suma Quantity al stock
	MovementTypeExit       = "EXIT"       // salida: resta Quantity del stock
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste: delta con signo, se suma directo
)

// StockMovement es una entrada inmutable del libro de movimientos.
// Su efecto sobre Product.Quantity se aplica exactamente una vez, al crearlo;
// nunca se actualiza ni se borra en operación normal.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int64 // positiva para ENTRY/EXIT; con signo para ADJUSTMENT
	Reason    string
	UserID    string // vacío si el usuario fue eliminado
	Date      time.Time
}

// SignedEffect devuelve el delta que el movimiento aplica sobre el stock.
func (m *StockMovement) SignedEffect() int64 {
	switch m.Type {
	case MovementTypeExit:
		return -m.Quantity
	default: // ENTRY y ADJUSTMENT suman tal cual
		return m.Quantity
	}
}
