package entity

import "time"

// Roles válidos para User. El rol se fija al registrarse; no existe flujo de cambio de rol.
const (
	RoleAdmin    = "admin"
	RoleStandard = "standard"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, standard
	CreatedAt    time.Time
}
