package entity

import "time"

// Roles válidos para User. El rol se deriva por lista blanca de correos
// (no existe claim de rol en el servidor): ver config.AdminConfig.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un usuario del portal.
type User struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, user — recalculado contra la lista blanca en cada login
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
