package entity

import "time"

// Roles de usuario del sistema.
const (
	RolAdmin      = "ADMIN"
	RolSupervisor = "SUPERVISOR"
	RolOperario   = "OPERARIO"
)

// Usuario cuenta de acceso al sistema de gestión de insumos.
type Usuario struct {
	ID           string
	Email        string
	PasswordHash string
	Nombre       string
	Rol          string // RolAdmin | RolSupervisor | RolOperario
	Estado       string // "activo" | "suspendido"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
