package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/usecase"
)

// StatisticsHandler maneja los reportes de solo lectura (protegido).
type StatisticsHandler struct {
	uc *usecase.StatisticsUseCase
}

// NewStatisticsHandler construye el handler.
func NewStatisticsHandler(uc *usecase.StatisticsUseCase) *StatisticsHandler {
	return &StatisticsHandler{uc: uc}
}

// DailyIncome godoc
// @Summary      Ingresos diarios por producto
// @Tags         statistics
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Param        date          query  string  true  "Fecha (YYYY-MM-DD)"
// @Success      200  {object}  dto.DailyIncomeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/statistics/daily-income [get]
func (h *StatisticsHandler) DailyIncome(c *fiber.Ctx) error {
	out, err := h.uc.DailyIncome(c.UserContext(), c.Query("warehouse_id"), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DailyIncomePDF godoc
// @Summary      Ingresos diarios en PDF
// @Tags         statistics
// @Security     Bearer
// @Produce      application/pdf
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Param        date          query  string  true  "Fecha (YYYY-MM-DD)"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/statistics/daily-income/pdf [get]
func (h *StatisticsHandler) DailyIncomePDF(c *fiber.Ctx) error {
	raw, err := h.uc.DailyIncomePDF(c.UserContext(), c.Query("warehouse_id"), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ingresos-diarios.pdf"`)
	return c.Send(raw)
}

// DailyTopSales godoc
// @Summary      Productos más vendidos del día
// @Tags         statistics
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Param        date          query  string  true  "Fecha (YYYY-MM-DD)"
// @Success      200  {object}  dto.DailyTopSalesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/statistics/daily-top-sales [get]
func (h *StatisticsHandler) DailyTopSales(c *fiber.Ctx) error {
	out, err := h.uc.DailyTopSales(c.UserContext(), c.Query("warehouse_id"), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExpiredProducts godoc
// @Summary      Productos vencidos con stock vivo
// @Tags         statistics
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {object}  dto.ExpiredProductsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/statistics/expired-products [get]
func (h *StatisticsHandler) ExpiredProducts(c *fiber.Ctx) error {
	out, err := h.uc.ExpiredProducts(c.UserContext(), c.Query("warehouse_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
