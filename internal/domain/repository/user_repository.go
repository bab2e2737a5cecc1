package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByPhone busca incluso entre todos los no eliminados (login usa el teléfono como username).
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SoftDelete(ctx context.Context, id string) (bool, error)
}
