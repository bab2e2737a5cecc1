package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// UserUseCase casos de uso de administración de usuarios. El registro y el
// login viven en el paquete auth.
type UserUseCase struct {
	repo          repository.UserRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, warehouseRepo repository.WarehouseRepository) *UserUseCase {
	return &UserUseCase{repo: repo, warehouseRepo: warehouseRepo}
}

// GetByID obtiene un usuario por id.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound()
	}
	return ToUserResponse(user), nil
}

// Update actualiza datos del usuario. Campos nil no cambian; el password se
// re-hashea con bcrypt.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound()
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone == "" {
			return nil, domain.ErrValidation("el teléfono es obligatorio")
		}
		if phone != user.Phone {
			existing, err := uc.repo.GetByPhone(ctx, phone)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrPhoneAlreadyExists(phone)
			}
		}
		user.Phone = phone
	}
	if in.Password != nil {
		if err := ValidatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != nil {
		if err := ValidateRole(*in.Role); err != nil {
			return nil, err
		}
		user.Role = *in.Role
	}
	if in.WarehouseID != nil {
		warehouse, err := uc.warehouseRepo.GetByID(ctx, *in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, domain.ErrWarehouseNotFound()
		}
		user.WarehouseID = warehouse.ID
	}
	if in.Status != nil {
		if err := validateStatus(*in.Status); err != nil {
			return nil, err
		}
		user.Status = *in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List lista usuarios no eliminados con paginación.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, user := range list {
		items = append(items, *ToUserResponse(user))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete hace borrado lógico del usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUserNotFound()
	}
	return nil
}

// ToUserResponse mapea la entidad a su DTO. Nunca expone el hash de password.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		UniqueCode:  u.UniqueCode,
		Role:        u.Role,
		WarehouseID: u.WarehouseID,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ValidateRole valida el rol de un usuario.
func ValidateRole(role string) error {
	switch role {
	case entity.RoleAdmin, entity.RoleManager, entity.RoleEmployee:
		return nil
	default:
		return domain.ErrValidation("rol inválido: %s", role)
	}
}

// ValidatePassword exige una longitud mínima del password en claro.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return domain.ErrValidation("el password debe tener al menos 8 caracteres")
	}
	return nil
}
