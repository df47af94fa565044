package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "ADMIN"
	RoleSeller = "SELLER"
)

// User representa un usuario del sistema (administrador o vendedor).
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // hash bcrypt, nunca en claro después de persistir
	Role         string // ADMIN, SELLER
	Phone        string
	CreatedAt    time.Time
}

// IsAdmin indica si el usuario tiene rol de administrador.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
