package entity

import "time"

// Customer representa un cliente. Solo el nombre es obligatorio.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
}
