package entity

import "time"

// Roles de usuario. El rol staff tiene la vista de ventas restringida al día actual.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User representa un usuario del back office, asociado a una tienda.
// PasswordHash es bcrypt; la emisión de credenciales (JWT) es externa.
type User struct {
	ID           string
	ShopID       string
	Name         string
	Email        string
	PasswordHash string
	Role         string // admin | manager | staff
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
