package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, phone, status, deleted, created_at, updated_at`

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Phone, s.Status, s.Deleted, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor no eliminado por id, o (nil, nil).
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `
		SELECT ` + supplierColumns + `
		FROM suppliers WHERE id = $1 AND deleted = false`
	return r.scanOne(ctx, query, id)
}

// GetActive obtiene un proveedor no eliminado en estado ACTIVE, o (nil, nil).
func (r *SupplierRepo) GetActive(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `
		SELECT ` + supplierColumns + `
		FROM suppliers WHERE id = $1 AND deleted = false AND status = $2`
	return r.scanOne(ctx, query, id, entity.StatusActive)
}

// GetByPhone obtiene un proveedor no eliminado por teléfono, o (nil, nil).
func (r *SupplierRepo) GetByPhone(ctx context.Context, phone string) (*entity.Supplier, error) {
	query := `
		SELECT ` + supplierColumns + `
		FROM suppliers WHERE phone = $1 AND deleted = false`
	return r.scanOne(ctx, query, phone)
}

// List lista proveedores no eliminados con paginación.
func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT ` + supplierColumns + `
		FROM suppliers WHERE deleted = false
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.Status, &s.Deleted, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza un proveedor existente.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, phone = $3, status = $4, updated_at = $5
		WHERE id = $1 AND deleted = false`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Phone, s.Status, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// SoftDelete marca deleted=true; devuelve false si no existía fila visible.
func (r *SupplierRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE suppliers SET deleted = true, updated_at = now()
		WHERE id = $1 AND deleted = false`
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete supplier: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *SupplierRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.Name, &s.Phone, &s.Status, &s.Deleted, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}
