package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por
// (bodega, producto). Usado solo por el motor de conciliación, dentro de
// transacciones de BD.
type StockRepository interface {
	// Get devuelve la fila de stock o (nil, nil) si el par no existe todavía.
	Get(ctx context.Context, warehouseID, productID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) y la devuelve, o
	// (nil, nil) si no existe. Serializa el check-then-decrement de ventas y
	// de cancelación de entradas frente a peticiones concurrentes.
	GetForUpdate(ctx context.Context, warehouseID, productID string) (*entity.Stock, error)
	// AddQuantity es la primitiva crear-o-sumar: inserta la fila con qty si el
	// par no existe, o suma qty a la cantidad existente, en una sola sentencia
	// atómica (INSERT ... ON CONFLICT ... DO UPDATE). La usan la entrada y la
	// cancelación de ventas.
	AddQuantity(ctx context.Context, warehouseID, productID string, qty decimal.Decimal) error
	// UpdateQuantity fija la cantidad de una fila existente, previamente
	// bloqueada con GetForUpdate.
	UpdateQuantity(ctx context.Context, warehouseID, productID string, qty decimal.Decimal) error
}
