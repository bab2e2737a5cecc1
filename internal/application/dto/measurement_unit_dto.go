package dto

import "time"

// CreateMeasurementUnitRequest entrada para crear una unidad de medida.
type CreateMeasurementUnitRequest struct {
	Name string `json:"name"`
}

// UpdateMeasurementUnitRequest entrada para actualizar una unidad de medida.
type UpdateMeasurementUnitRequest struct {
	Name   *string `json:"name"`
	Status *string `json:"status"`
}

// MeasurementUnitResponse salida de una unidad de medida.
type MeasurementUnitResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MeasurementUnitListResponse lista paginada de unidades de medida.
type MeasurementUnitListResponse struct {
	Items []MeasurementUnitResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
