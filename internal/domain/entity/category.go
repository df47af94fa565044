package entity

import "time"

// Category representa una categoría de productos (árbol vía ParentID).
// Slug se deriva del nombre y se desambigua con sufijos -1, -2, ... al guardar.
type Category struct {
	ID          string
	ParentID    string // vacío si es raíz
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
