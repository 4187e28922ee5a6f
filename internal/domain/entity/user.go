package entity

import "time"

// Roles válidos para User.
const (
	RoleCliente = "cliente"
	RoleAdmin   = "admin"
)

// User representa un usuario de la tienda.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // cliente, admin
	Token        string // sesión activa; vacío si nunca inició sesión
	CreatedAt    time.Time
}

// IsAdmin indica si el usuario tiene rol administrador.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	return role == RoleCliente || role == RoleAdmin
}
