package dto

import "time"

// CreateProductRequest entrada para crear un producto. El código único
// de 9 dígitos lo genera el sistema, nunca el cliente.
type CreateProductRequest struct {
	Name              string `json:"name"`
	CategoryID        string `json:"category_id"`
	MeasurementUnitID string `json:"measurement_unit_id"`
}

// UpdateProductRequest entrada para actualizar un producto. Campos nil no cambian.
type UpdateProductRequest struct {
	Name              *string `json:"name"`
	CategoryID        *string `json:"category_id"`
	MeasurementUnitID *string `json:"measurement_unit_id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	UniqueCode        string    `json:"unique_code"`
	CategoryID        string    `json:"category_id"`
	MeasurementUnitID string    `json:"measurement_unit_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
