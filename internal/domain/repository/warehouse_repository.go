package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse.
// Todos los Get devuelven (nil, nil) si no hay fila visible.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	// GetByID busca por id entre las bodegas no eliminadas.
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	// GetActive busca por id entre las bodegas no eliminadas con estado ACTIVE.
	// Es la resolución que usa el motor de conciliación.
	GetActive(ctx context.Context, id string) (*entity.Warehouse, error)
	// GetByName busca por nombre entre las bodegas no eliminadas (unicidad de nombre).
	GetByName(ctx context.Context, name string) (*entity.Warehouse, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	// SoftDelete marca deleted=true; devuelve false si no existía fila visible.
	SoftDelete(ctx context.Context, id string) (bool, error)
}
