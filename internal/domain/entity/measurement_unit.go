package entity

import "time"

// MeasurementUnit representa una unidad de medida (kg, litro, caja...).
type MeasurementUnit struct {
	ID        string
	Name      string // único entre unidades no eliminadas
	Status    string // ACTIVE, INACTIVE
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
