package domain

import (
	"errors"
	"fmt"
)

// Code identifica cada clase de error de negocio. El conjunto es cerrado:
// los handlers HTTP hacen switch exhaustivo sobre estos códigos.
type Code string

const (
	CodeValidation              Code = "VALIDATION"
	CodeWarehouseNotFound       Code = "WAREHOUSE_NOT_FOUND"
	CodeCategoryNotFound        Code = "CATEGORY_NOT_FOUND"
	CodeMeasurementUnitNotFound Code = "MEASUREMENT_UNIT_NOT_FOUND"
	CodeSupplierNotFound        Code = "SUPPLIER_NOT_FOUND"
	CodeProductNotFound         Code = "PRODUCT_NOT_FOUND"
	CodeUserNotFound            Code = "USER_NOT_FOUND"
	CodeStockNotFound           Code = "STOCK_NOT_FOUND"
	CodeTransactionNotFound     Code = "TRANSACTION_NOT_FOUND"
	CodeInsufficientStock       Code = "INSUFFICIENT_STOCK"
	CodeAlreadyCanceled         Code = "ALREADY_CANCELED"
	CodeNameAlreadyExists       Code = "NAME_ALREADY_EXISTS"
	CodePhoneAlreadyExists      Code = "PHONE_ALREADY_EXISTS"
	CodeNumberConflict          Code = "NUMBER_CONFLICT"
	CodeUnauthorized            Code = "UNAUTHORIZED"
	CodeForbidden               Code = "FORBIDDEN"
)

// Error es el error de negocio estructurado: código cerrado + mensaje ya interpolado
// con los argumentos del caso (nombre de producto, id de transacción, etc.).
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return string(e.Code) + ": " + e.Message }

// Is compara por código, para que errors.Is funcione entre instancias
// construidas con los mismos constructores.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// CodeOf extrae el código de negocio de un error; devuelve "" si no es *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Constructores del conjunto cerrado de errores.

func ErrValidation(format string, args ...any) *Error {
	return newError(CodeValidation, format, args...)
}

func ErrWarehouseNotFound() *Error {
	return newError(CodeWarehouseNotFound, "bodega no encontrada o inactiva")
}

func ErrCategoryNotFound() *Error {
	return newError(CodeCategoryNotFound, "categoría no encontrada")
}

func ErrMeasurementUnitNotFound() *Error {
	return newError(CodeMeasurementUnitNotFound, "unidad de medida no encontrada")
}

func ErrSupplierNotFound() *Error {
	return newError(CodeSupplierNotFound, "proveedor no encontrado o inactivo")
}

func ErrProductNotFound() *Error {
	return newError(CodeProductNotFound, "producto no encontrado")
}

func ErrUserNotFound() *Error {
	return newError(CodeUserNotFound, "usuario no encontrado")
}

// ErrStockNotFound lleva el nombre del producto para el mensaje al usuario.
func ErrStockNotFound(productName string) *Error {
	return newError(CodeStockNotFound, "no hay registro de stock para el producto %s", productName)
}

// ErrInsufficientStock lleva el nombre del producto para el mensaje al usuario.
func ErrInsufficientStock(productName string) *Error {
	return newError(CodeInsufficientStock, "stock insuficiente para el producto %s", productName)
}

func ErrTransactionNotFound(id string) *Error {
	return newError(CodeTransactionNotFound, "transacción %s no encontrada", id)
}

func ErrAlreadyCanceled(id string) *Error {
	return newError(CodeAlreadyCanceled, "la transacción %s ya fue cancelada", id)
}

func ErrNameAlreadyExists(name string) *Error {
	return newError(CodeNameAlreadyExists, "el nombre %s ya está registrado", name)
}

func ErrPhoneAlreadyExists(phone string) *Error {
	return newError(CodePhoneAlreadyExists, "el teléfono %s ya está registrado", phone)
}

// ErrNumberConflict indica que se agotaron los reintentos de generación
// del número único (colisión repetida del constraint UNIQUE).
func ErrNumberConflict() *Error {
	return newError(CodeNumberConflict, "no fue posible generar un número único")
}

func ErrUnauthorized() *Error {
	return newError(CodeUnauthorized, "credenciales inválidas")
}

func ErrForbidden() *Error {
	return newError(CodeForbidden, "acceso denegado")
}
