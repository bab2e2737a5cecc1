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
	"github.com/jhoicas/bodega-api/pkg/numgen"
)

// maxCodeAttempts reintentos de alta cuando el código generado colisiona
// con el constraint UNIQUE de la base.
const maxCodeAttempts = 3

// ProductUseCase casos de uso CRUD para productos. El código único de 9
// dígitos lo genera el sistema en el alta; el stock se maneja solo vía el
// motor de conciliación.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	unitRepo     repository.MeasurementUnitRepository
	genNumber    func(length int) (string, error)
	isUniqueViol func(err error) bool
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	unitRepo repository.MeasurementUnitRepository,
	genNumber func(length int) (string, error),
	isUniqueViol func(err error) bool,
) *ProductUseCase {
	return &ProductUseCase{
		repo:         repo,
		categoryRepo: categoryRepo,
		unitRepo:     unitRepo,
		genNumber:    genNumber,
		isUniqueViol: isUniqueViol,
	}
}

// Create crea un producto con código único de 9 dígitos generado por el
// sistema; si el código colisiona, regenera y reintenta el alta.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrValidation("el nombre del producto es obligatorio")
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrCategoryNotFound()
	}
	unit, err := uc.unitRepo.GetByID(ctx, in.MeasurementUnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrMeasurementUnitNotFound()
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := uc.genNumber(numgen.ProductCodeLength)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		product := &entity.Product{
			ID:                uuid.New().String(),
			Name:              name,
			UniqueCode:        code,
			CategoryID:        category.ID,
			MeasurementUnitID: unit.ID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		err = uc.repo.Create(ctx, product)
		if err != nil && uc.isUniqueViol(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return toProductResponse(product), nil
	}
	return nil, domain.ErrNumberConflict()
}

// GetByID obtiene un producto por id.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound()
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, categoría y/o unidad. El código único nunca cambia.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound()
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrValidation("el nombre del producto es obligatorio")
		}
		product.Name = name
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrCategoryNotFound()
		}
		product.CategoryID = category.ID
	}
	if in.MeasurementUnitID != nil {
		unit, err := uc.unitRepo.GetByID(ctx, *in.MeasurementUnitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, domain.ErrMeasurementUnitNotFound()
		}
		product.MeasurementUnitID = unit.ID
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos no eliminados con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, product := range list {
		items = append(items, *toProductResponse(product))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete hace borrado lógico; las líneas históricas del libro conservan la referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	ok, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProductNotFound()
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		UniqueCode:        p.UniqueCode,
		CategoryID:        p.CategoryID,
		MeasurementUnitID: p.MeasurementUnitID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
