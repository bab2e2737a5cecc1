package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.MeasurementUnitRepository = (*MeasurementUnitRepo)(nil)

// MeasurementUnitRepo implementación del puerto MeasurementUnitRepository sobre PostgreSQL.
type MeasurementUnitRepo struct {
	q Querier
}

// NewMeasurementUnitRepository construye el adaptador de persistencia para unidades de medida.
func NewMeasurementUnitRepository(q Querier) *MeasurementUnitRepo {
	return &MeasurementUnitRepo{q: q}
}

const measurementUnitColumns = `id, name, status, deleted, created_at, updated_at`

// Create persiste una nueva unidad de medida.
func (r *MeasurementUnitRepo) Create(ctx context.Context, u *entity.MeasurementUnit) error {
	query := `
		INSERT INTO measurement_units (` + measurementUnitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, u.ID, u.Name, u.Status, u.Deleted, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert measurement unit: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad no eliminada por id, o (nil, nil).
func (r *MeasurementUnitRepo) GetByID(ctx context.Context, id string) (*entity.MeasurementUnit, error) {
	query := `
		SELECT ` + measurementUnitColumns + `
		FROM measurement_units WHERE id = $1 AND deleted = false`
	return r.scanOne(ctx, query, id)
}

// GetByName obtiene una unidad no eliminada por nombre, o (nil, nil).
func (r *MeasurementUnitRepo) GetByName(ctx context.Context, name string) (*entity.MeasurementUnit, error) {
	query := `
		SELECT ` + measurementUnitColumns + `
		FROM measurement_units WHERE name = $1 AND deleted = false`
	return r.scanOne(ctx, query, name)
}

// List lista unidades no eliminadas con paginación.
func (r *MeasurementUnitRepo) List(ctx context.Context, limit, offset int) ([]*entity.MeasurementUnit, error) {
	query := `
		SELECT ` + measurementUnitColumns + `
		FROM measurement_units WHERE deleted = false
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list measurement units: %w", err)
	}
	defer rows.Close()
	var list []*entity.MeasurementUnit
	for rows.Next() {
		var u entity.MeasurementUnit
		if err := rows.Scan(&u.ID, &u.Name, &u.Status, &u.Deleted, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan measurement unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update actualiza una unidad existente.
func (r *MeasurementUnitRepo) Update(ctx context.Context, u *entity.MeasurementUnit) error {
	query := `
		UPDATE measurement_units SET name = $2, status = $3, updated_at = $4
		WHERE id = $1 AND deleted = false`
	_, err := r.q.Exec(ctx, query, u.ID, u.Name, u.Status, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update measurement unit: %w", err)
	}
	return nil
}

// SoftDelete marca deleted=true; devuelve false si no existía fila visible.
func (r *MeasurementUnitRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE measurement_units SET deleted = true, updated_at = now()
		WHERE id = $1 AND deleted = false`
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete measurement unit: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *MeasurementUnitRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.MeasurementUnit, error) {
	var u entity.MeasurementUnit
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Name, &u.Status, &u.Deleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get measurement unit: %w", err)
	}
	return &u, nil
}
