package dto

import "time"

// RegisterUserRequest entrada para registrar un usuario.
type RegisterUserRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
	Role        string `json:"role"` // ADMIN, MANAGER, EMPLOYEE
	WarehouseID string `json:"warehouse_id"`
}

// UpdateUserRequest entrada para actualizar un usuario. Campos nil no cambian.
type UpdateUserRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Phone       *string `json:"phone"`
	Password    *string `json:"password"`
	Role        *string `json:"role"`
	WarehouseID *string `json:"warehouse_id"`
	Status      *string `json:"status"`
}

// UserResponse salida de un usuario (nunca incluye el hash de password).
type UserResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	UniqueCode  string    `json:"unique_code"`
	Role        string    `json:"role"`
	WarehouseID string    `json:"warehouse_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest credenciales de acceso (el teléfono es el username).
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginResponse token JWT más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
