package entity

import "time"

// Product representa un producto del catálogo. UniqueCode es un código
// numérico de 9 dígitos generado por el sistema, único en la base.
type Product struct {
	ID                string
	Name              string
	UniqueCode        string
	CategoryID        string
	MeasurementUnitID string
	Deleted           bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
