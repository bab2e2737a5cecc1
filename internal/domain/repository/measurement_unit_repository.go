package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// MeasurementUnitRepository define el puerto de persistencia para MeasurementUnit.
type MeasurementUnitRepository interface {
	Create(ctx context.Context, unit *entity.MeasurementUnit) error
	GetByID(ctx context.Context, id string) (*entity.MeasurementUnit, error)
	GetByName(ctx context.Context, name string) (*entity.MeasurementUnit, error)
	List(ctx context.Context, limit, offset int) ([]*entity.MeasurementUnit, error)
	Update(ctx context.Context, unit *entity.MeasurementUnit) error
	SoftDelete(ctx context.Context, id string) (bool, error)
}
