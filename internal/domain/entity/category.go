package entity

import "time"

// Category representa una categoría de productos (jerárquica opcional).
type Category struct {
	ID        string
	Name      string // único entre categorías no eliminadas
	ParentID  string // vacío si es raíz
	Status    string // ACTIVE, INACTIVE
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
