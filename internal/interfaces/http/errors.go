package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
)

// statusFor mapea cada código de error de negocio a su estado HTTP. El
// conjunto de códigos es cerrado; lo que no se reconoce es un 500.
func statusFor(code domain.Code) int {
	switch code {
	case domain.CodeValidation:
		return fiber.StatusBadRequest
	case domain.CodeWarehouseNotFound,
		domain.CodeCategoryNotFound,
		domain.CodeMeasurementUnitNotFound,
		domain.CodeSupplierNotFound,
		domain.CodeProductNotFound,
		domain.CodeUserNotFound,
		domain.CodeStockNotFound,
		domain.CodeTransactionNotFound:
		return fiber.StatusNotFound
	case domain.CodeInsufficientStock,
		domain.CodeAlreadyCanceled,
		domain.CodeNameAlreadyExists,
		domain.CodePhoneAlreadyExists,
		domain.CodeNumberConflict:
		return fiber.StatusConflict
	case domain.CodeUnauthorized:
		return fiber.StatusUnauthorized
	case domain.CodeForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError serializa un error de negocio como dto.ErrorResponse. Los
// errores sin código (infraestructura) no exponen su detalle al cliente.
func respondError(c *fiber.Ctx, err error) error {
	var domErr *domain.Error
	if !errors.As(err, &domErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTERNAL",
			Message: "error interno",
		})
	}
	return c.Status(statusFor(domErr.Code)).JSON(dto.ErrorResponse{
		Code:    string(domErr.Code),
		Message: domErr.Message,
	})
}

// badBody respuesta estándar para cuerpos JSON inválidos.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    string(domain.CodeValidation),
		Message: "cuerpo de la petición inválido",
	})
}
