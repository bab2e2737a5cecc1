package entity

// Estados de ciclo de vida de los catálogos (bodega, categoría, proveedor, usuario...).
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)
