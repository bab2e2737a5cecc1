package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario.
// Name es único entre bodegas no eliminadas; Deleted marca borrado lógico.
type Warehouse struct {
	ID        string
	Name      string
	Status    string // ACTIVE, INACTIVE
	Deleted   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
