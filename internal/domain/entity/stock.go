package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock es la existencia actual de un producto en una bodega. A lo sumo una
// fila viva por par (bodega, producto); se crea de forma perezosa con el
// primer movimiento de entrada y Quantity nunca queda negativa tras un commit.
type Stock struct {
	ID          string
	WarehouseID string
	ProductID   string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
