package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ─────────────────────────── fakes en memoria ───────────────────────────

var errCodigoDuplicado = errors.New("duplicate key value violates unique constraint")

type memProductRepo struct {
	byID    map[string]*entity.Product
	byCode  map[string]bool
	created int
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{byID: map[string]*entity.Product{}, byCode: map[string]bool{}}
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	if r.byCode[p.UniqueCode] {
		return fmt.Errorf("insert product: %w", errCodigoDuplicado)
	}
	cp := *p
	r.byID[p.ID] = &cp
	r.byCode[p.UniqueCode] = true
	r.created++
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok || p.Deleted {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := map[string]*entity.Product{}
	for _, id := range ids {
		if p, ok := r.byID[id]; ok && !p.Deleted {
			cp := *p
			out[id] = &cp
		}
	}
	return out, nil
}

func (r *memProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if !p.Deleted {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *memProductRepo) SoftDelete(_ context.Context, id string) (bool, error) {
	p, ok := r.byID[id]
	if !ok || p.Deleted {
		return false, nil
	}
	p.Deleted = true
	return true, nil
}

type memCategoryRepo struct {
	repository.CategoryRepository
	byID map[string]*entity.Category
}

func (r *memCategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

type memUnitRepo struct {
	repository.MeasurementUnitRepository
	byID map[string]*entity.MeasurementUnit
}

func (r *memUnitRepo) GetByID(_ context.Context, id string) (*entity.MeasurementUnit, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

type productEnv struct {
	repo  *memProductRepo
	uc    *usecase.ProductUseCase
	codes []string // cola de códigos a devolver; vacía = secuencial
	seq   int
}

func newProductEnv() *productEnv {
	env := &productEnv{repo: newMemProductRepo()}
	catRepo := &memCategoryRepo{byID: map[string]*entity.Category{
		"cat-granos": {ID: "cat-granos", Name: "Granos"},
	}}
	unitRepo := &memUnitRepo{byID: map[string]*entity.MeasurementUnit{
		"unit-bolsa": {ID: "unit-bolsa", Name: "Bolsa"},
	}}
	gen := func(length int) (string, error) {
		if len(env.codes) > 0 {
			code := env.codes[0]
			env.codes = env.codes[1:]
			return code, nil
		}
		env.seq++
		return fmt.Sprintf("%09d", env.seq), nil
	}
	isUniqueViol := func(err error) bool { return errors.Is(err, errCodigoDuplicado) }
	env.uc = usecase.NewProductUseCase(env.repo, catRepo, unitRepo, gen, isUniqueViol)
	return env
}

func validProductRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:              "Arroz 500g",
		CategoryID:        "cat-granos",
		MeasurementUnitID: "unit-bolsa",
	}
}

// ─────────────────────────── tests ───────────────────────────

func TestProductCreate_GeneraCodigoDeNueveDigitos(t *testing.T) {
	env := newProductEnv()

	out, err := env.uc.Create(context.Background(), validProductRequest())
	require.NoError(t, err)
	assert.Len(t, out.UniqueCode, 9)
	assert.Equal(t, "Arroz 500g", out.Name)
	assert.Equal(t, "cat-granos", out.CategoryID)
}

func TestProductCreate_ReintentaTrasColisionDeCodigo(t *testing.T) {
	env := newProductEnv()
	env.repo.byCode["111111111"] = true
	env.codes = []string{"111111111", "222222222"}

	out, err := env.uc.Create(context.Background(), validProductRequest())
	require.NoError(t, err)
	assert.Equal(t, "222222222", out.UniqueCode)
}

func TestProductCreate_AgotaReintentosDeCodigo(t *testing.T) {
	env := newProductEnv()
	env.repo.byCode["111111111"] = true
	env.codes = []string{"111111111", "111111111", "111111111"}

	_, err := env.uc.Create(context.Background(), validProductRequest())
	assert.Equal(t, domain.CodeNumberConflict, domain.CodeOf(err))
	assert.Equal(t, 0, env.repo.created)
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	env := newProductEnv()
	in := validProductRequest()
	in.CategoryID = "cat-no-existe"

	_, err := env.uc.Create(context.Background(), in)
	assert.Equal(t, domain.CodeCategoryNotFound, domain.CodeOf(err))
}

func TestProductCreate_UnidadInexistente(t *testing.T) {
	env := newProductEnv()
	in := validProductRequest()
	in.MeasurementUnitID = "unit-no-existe"

	_, err := env.uc.Create(context.Background(), in)
	assert.Equal(t, domain.CodeMeasurementUnitNotFound, domain.CodeOf(err))
}

func TestProductUpdate_ElCodigoNoCambia(t *testing.T) {
	env := newProductEnv()
	created, err := env.uc.Create(context.Background(), validProductRequest())
	require.NoError(t, err)

	name := "Arroz premium 500g"
	out, err := env.uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Arroz premium 500g", out.Name)
	assert.Equal(t, created.UniqueCode, out.UniqueCode)
}

func TestProductDelete_BorradoLogico(t *testing.T) {
	env := newProductEnv()
	created, err := env.uc.Create(context.Background(), validProductRequest())
	require.NoError(t, err)

	require.NoError(t, env.uc.Delete(context.Background(), created.ID))

	_, err = env.uc.GetByID(context.Background(), created.ID)
	assert.Equal(t, domain.CodeProductNotFound, domain.CodeOf(err))

	err = env.uc.Delete(context.Background(), created.ID)
	assert.Equal(t, domain.CodeProductNotFound, domain.CodeOf(err))
}
