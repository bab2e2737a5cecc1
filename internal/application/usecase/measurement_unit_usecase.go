package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// MeasurementUnitUseCase casos de uso CRUD para unidades de medida.
type MeasurementUnitUseCase struct {
	repo repository.MeasurementUnitRepository
}

// NewMeasurementUnitUseCase construye el caso de uso.
func NewMeasurementUnitUseCase(repo repository.MeasurementUnitRepository) *MeasurementUnitUseCase {
	return &MeasurementUnitUseCase{repo: repo}
}

// Create crea una unidad de medida. El nombre es único entre unidades no eliminadas.
func (uc *MeasurementUnitUseCase) Create(ctx context.Context, in dto.CreateMeasurementUnitRequest) (*dto.MeasurementUnitResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrValidation("el nombre de la unidad de medida es obligatorio")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrNameAlreadyExists(name)
	}
	now := time.Now()
	unit := &entity.MeasurementUnit{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return toMeasurementUnitResponse(unit), nil
}

// GetByID obtiene una unidad de medida por id.
func (uc *MeasurementUnitUseCase) GetByID(ctx context.Context, id string) (*dto.MeasurementUnitResponse, error) {
	unit, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrMeasurementUnitNotFound()
	}
	return toMeasurementUnitResponse(unit), nil
}

// Update actualiza nombre y/o estado. Campos nil no cambian.
func (uc *MeasurementUnitUseCase) Update(ctx context.Context, id string, in dto.UpdateMeasurementUnitRequest) (*dto.MeasurementUnitResponse, error) {
	unit, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrMeasurementUnitNotFound()
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrValidation("el nombre de la unidad de medida es obligatorio")
		}
		if name != unit.Name {
			existing, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrNameAlreadyExists(name)
			}
		}
		unit.Name = name
	}
	if in.Status != nil {
		if err := validateStatus(*in.Status); err != nil {
			return nil, err
		}
		unit.Status = *in.Status
	}
	unit.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return toMeasurementUnitResponse(unit), nil
}

// List lista unidades de medida no eliminadas con paginación.
func (uc *MeasurementUnitUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.MeasurementUnitListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MeasurementUnitResponse, 0, len(list))
	for _, unit := range list {
		items = append(items, *toMeasurementUnitResponse(unit))
	}
	return &dto.MeasurementUnitListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete hace borrado lógico de la unidad de medida.
func (uc *MeasurementUnitUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrMeasurementUnitNotFound()
	}
	return nil
}

func toMeasurementUnitResponse(u *entity.MeasurementUnit) *dto.MeasurementUnitResponse {
	return &dto.MeasurementUnitResponse{
		ID:        u.ID,
		Name:      u.Name,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
