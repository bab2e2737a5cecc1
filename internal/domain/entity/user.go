package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

// User representa un usuario del sistema, asignado a una bodega.
// UniqueCode es el código visible de 8 dígitos generado por el sistema.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Phone        string // único entre usuarios no eliminados
	UniqueCode   string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // ADMIN, MANAGER, EMPLOYEE
	WarehouseID  string
	Status       string // ACTIVE, INACTIVE
	Deleted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
