package entity

import "time"

// Supplier representa un proveedor, contraparte opcional de las entradas (IN).
type Supplier struct {
	ID        string
	Name      string
	Phone     string // único entre proveedores no eliminados
	Status    string // ACTIVE, INACTIVE
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
