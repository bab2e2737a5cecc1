package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
)

// MeasurementUnitHandler maneja las peticiones HTTP para MeasurementUnit (protegido).
type MeasurementUnitHandler struct {
	uc *usecase.MeasurementUnitUseCase
}

// NewMeasurementUnitHandler construye el handler.
func NewMeasurementUnitHandler(uc *usecase.MeasurementUnitUseCase) *MeasurementUnitHandler {
	return &MeasurementUnitHandler{uc: uc}
}

// Create godoc
// @Summary      Crear unidad de medida
// @Tags         measurement-units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMeasurementUnitRequest  true  "Datos de la unidad"
// @Success      201   {object}  dto.MeasurementUnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/measurement-units [post]
func (h *MeasurementUnitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMeasurementUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener unidad de medida por ID
// @Tags         measurement-units
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.MeasurementUnitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/measurement-units/{id} [get]
func (h *MeasurementUnitHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar unidad de medida
// @Tags         measurement-units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la unidad"
// @Param        body  body  dto.UpdateMeasurementUnitRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.MeasurementUnitResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/measurement-units/{id} [put]
func (h *MeasurementUnitHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMeasurementUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar unidades de medida
// @Tags         measurement-units
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.MeasurementUnitListResponse
// @Router       /api/measurement-units [get]
func (h *MeasurementUnitHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar unidad de medida (borrado lógico)
// @Tags         measurement-units
// @Security     Bearer
// @Param        id  path  string  true  "ID de la unidad"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/measurement-units/{id} [delete]
func (h *MeasurementUnitHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
