// Package auth implementa registro y login. El teléfono es el username y el
// token es un JWT con usuario, bodega y rol.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/pkg/jwt"
	"github.com/jhoicas/bodega-api/pkg/numgen"
)

// maxCodeAttempts reintentos de registro cuando el código de usuario generado
// colisiona con el constraint UNIQUE de la base.
const maxCodeAttempts = 3

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo      repository.UserRepository
	warehouseRepo repository.WarehouseRepository
	jwtCfg        JWTConfig
	genNumber     func(length int) (string, error)
	isUniqueViol  func(err error) bool
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	warehouseRepo repository.WarehouseRepository,
	jwtCfg JWTConfig,
	genNumber func(length int) (string, error),
	isUniqueViol func(err error) bool,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:      userRepo,
		warehouseRepo: warehouseRepo,
		jwtCfg:        jwtCfg,
		genNumber:     genNumber,
		isUniqueViol:  isUniqueViol,
	}
}

// Register crea un usuario: valida rol y bodega, hashea el password con
// bcrypt y le asigna un código de 8 dígitos generado por el sistema.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return nil, domain.ErrValidation("el teléfono es obligatorio")
	}
	if err := usecase.ValidatePassword(in.Password); err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	if err := usecase.ValidateRole(role); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPhoneAlreadyExists(phone)
	}
	warehouse, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrWarehouseNotFound()
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := uc.genNumber(numgen.UserCodeLength)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		user := &entity.User{
			ID:           uuid.New().String(),
			FirstName:    strings.TrimSpace(in.FirstName),
			LastName:     strings.TrimSpace(in.LastName),
			Phone:        phone,
			UniqueCode:   code,
			PasswordHash: string(hash),
			Role:         role,
			WarehouseID:  warehouse.ID,
			Status:       entity.StatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		err = uc.userRepo.Create(ctx, user)
		if err != nil && uc.isUniqueViol(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return usecase.ToUserResponse(user), nil
	}
	return nil, domain.ErrNumberConflict()
}

// Login verifica teléfono/password, genera el JWT y devuelve token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByPhone(ctx, strings.TrimSpace(in.Phone))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized()
	}
	if user.Status != entity.StatusActive {
		return nil, domain.ErrForbidden()
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.WarehouseID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *usecase.ToUserResponse(user)}, nil
}
