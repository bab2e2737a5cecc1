package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, first_name, last_name, phone, unique_code, password_hash,
		role, warehouse_id, status, deleted, created_at, updated_at`

// Create persiste un nuevo usuario. Los constraints UNIQUE sobre phone y
// unique_code hacen fallar el insert en colisión.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Phone, u.UniqueCode, u.PasswordHash,
		u.Role, u.WarehouseID, u.Status, u.Deleted, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario no eliminado por id, o (nil, nil).
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE id = $1 AND deleted = false`
	return r.scanOne(ctx, query, id)
}

// GetByPhone obtiene un usuario no eliminado por teléfono, o (nil, nil).
func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE phone = $1 AND deleted = false`
	return r.scanOne(ctx, query, phone)
}

// List lista usuarios no eliminados con paginación.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE deleted = false
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.FirstName, &u.LastName, &u.Phone, &u.UniqueCode, &u.PasswordHash,
			&u.Role, &u.WarehouseID, &u.Status, &u.Deleted, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update actualiza un usuario existente. El código único nunca cambia.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET first_name = $2, last_name = $3, phone = $4, password_hash = $5,
			role = $6, warehouse_id = $7, status = $8, updated_at = $9
		WHERE id = $1 AND deleted = false`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Phone, u.PasswordHash,
		u.Role, u.WarehouseID, u.Status, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// SoftDelete marca deleted=true; devuelve false si no existía fila visible.
func (r *UserRepo) SoftDelete(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE users SET deleted = true, updated_at = now()
		WHERE id = $1 AND deleted = false`
	cmd, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Phone, &u.UniqueCode, &u.PasswordHash,
		&u.Role, &u.WarehouseID, &u.Status, &u.Deleted, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
