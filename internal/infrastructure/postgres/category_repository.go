package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría. ParentID vacío se guarda como NULL.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, parent_id, status, deleted, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.ParentID, c.Status, c.Deleted, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría no eliminada por id, o (nil, nil).
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := categorySelect + ` WHERE id = $1 AND deleted = false`
	return r.scanOne(ctx, query, id)
}

// GetByName obtiene una categoría no eliminada por nombre, o (nil, nil).
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	query := categorySelect + ` WHERE name = $1 AND deleted = false`
	return r.scanOne(ctx, query, name)
}

// List lista categorías no eliminadas con paginación.
func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	query := categorySelect + ` WHERE deleted = false ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.Status, &c.Deleted, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza una categoría existente.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, parent_id = NULLIF($3, ''), status = $4, updated_at = $5
		WHERE id = $1 AND deleted = false`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.ParentID, c.Status, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// SoftDelete marca deleted=true; devuelve false si no existía fila visible.
func (r *CategoryRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE categories SET deleted = true, updated_at = now()
		WHERE id = $1 AND deleted = false`
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

const categorySelect = `
	SELECT id, name, COALESCE(parent_id, ''), status, deleted, created_at, updated_at
	FROM categories`

func (r *CategoryRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.ParentID, &c.Status, &c.Deleted, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}
