package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	// GetActive busca por id entre proveedores no eliminados con estado ACTIVE
	// (resolución del motor de conciliación para entradas con proveedor).
	GetActive(ctx context.Context, id string) (*entity.Supplier, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Supplier, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	SoftDelete(ctx context.Context, id string) (bool, error)
}
