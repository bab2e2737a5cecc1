package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ─────────────────────────── fake en memoria ───────────────────────────

type memWarehouseRepo struct {
	byID map[string]*entity.Warehouse
}

func newMemWarehouseRepo() *memWarehouseRepo {
	return &memWarehouseRepo{byID: map[string]*entity.Warehouse{}}
}

func (r *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	cp := *w
	r.byID[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := r.byID[id]
	if !ok || w.Deleted {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWarehouseRepo) GetActive(_ context.Context, id string) (*entity.Warehouse, error) {
	w, err := r.GetByID(context.Background(), id)
	if err != nil || w == nil || w.Status != entity.StatusActive {
		return nil, err
	}
	return w, nil
}

func (r *memWarehouseRepo) GetByName(_ context.Context, name string) (*entity.Warehouse, error) {
	for _, w := range r.byID {
		if !w.Deleted && w.Name == name {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memWarehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.byID {
		if !w.Deleted {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	cp := *w
	r.byID[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) SoftDelete(_ context.Context, id string) (bool, error) {
	w, ok := r.byID[id]
	if !ok || w.Deleted {
		return false, nil
	}
	w.Deleted = true
	return true, nil
}

// ─────────────────────────── tests ───────────────────────────

func TestWarehouseCreate_NuevaBodegaActiva(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newMemWarehouseRepo())

	out, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "Bodega Central"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Bodega Central", out.Name)
	assert.Equal(t, entity.StatusActive, out.Status)
}

func TestWarehouseCreate_NombreVacio(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newMemWarehouseRepo())

	_, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "   "})
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
}

func TestWarehouseCreate_NombreDuplicado(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newMemWarehouseRepo())

	_, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "Bodega Central"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "Bodega Central"})
	assert.Equal(t, domain.CodeNameAlreadyExists, domain.CodeOf(err))
}

func TestWarehouseUpdate_CambiaNombreYEstado(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newMemWarehouseRepo())
	created, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "Bodega Central"})
	require.NoError(t, err)

	name := "Sucursal Norte"
	status := entity.StatusInactive
	out, err := uc.Update(context.Background(), created.ID, dto.UpdateWarehouseRequest{
		Name:   &name,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sucursal Norte", out.Name)
	assert.Equal(t, entity.StatusInactive, out.Status)
}

func TestWarehouseUpdate_MismoNombreNoEsConflicto(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newMemWarehouseRepo())
	created, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "Bodega Central"})
	require.NoError(t, err)

	// Renombrar al nombre actual es un no-op válido.
	name := "Bodega Central"
	_, err = uc.Update(context.Background(), created.ID, dto.UpdateWarehouseRequest{Name: &name})
	assert.NoError(t, err)
}

func TestWarehouseUpdate_EstadoInvalido(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newMemWarehouseRepo())
	created, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "Bodega Central"})
	require.NoError(t, err)

	status := "PAUSADA"
	_, err = uc.Update(context.Background(), created.ID, dto.UpdateWarehouseRequest{Status: &status})
	assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
}

func TestWarehouseUpdate_NoExiste(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newMemWarehouseRepo())

	name := "Otra"
	_, err := uc.Update(context.Background(), "no-existe", dto.UpdateWarehouseRequest{Name: &name})
	assert.Equal(t, domain.CodeWarehouseNotFound, domain.CodeOf(err))
}

func TestWarehouseDelete_BorradoLogico(t *testing.T) {
	repo := newMemWarehouseRepo()
	uc := usecase.NewWarehouseUseCase(repo)
	created, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "Bodega Central"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	_, err = uc.GetByID(context.Background(), created.ID)
	assert.Equal(t, domain.CodeWarehouseNotFound, domain.CodeOf(err))

	// Segundo borrado sobre la misma bodega ya no encuentra fila visible.
	err = uc.Delete(context.Background(), created.ID)
	assert.Equal(t, domain.CodeWarehouseNotFound, domain.CodeOf(err))

	// El nombre queda libre tras el borrado lógico.
	_, err = uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "Bodega Central"})
	assert.NoError(t, err)
}

func TestWarehouseList_SoloNoEliminadas(t *testing.T) {
	uc := usecase.NewWarehouseUseCase(newMemWarehouseRepo())
	a, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "A"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateWarehouseRequest{Name: "B"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), a.ID))

	out, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "B", out.Items[0].Name)
}
