package dto

import "github.com/shopspring/decimal"

// Las fechas de negocio viajan como "YYYY-MM-DD" (fecha contable, sin hora).

// IncomeItemRequest línea de una entrada de inventario.
type IncomeItemRequest struct {
	ProductID    string           `json:"product_id"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Price        decimal.Decimal  `json:"price"`
	ExpireDate   string           `json:"expire_date,omitempty"`   // opcional, YYYY-MM-DD
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"` // opcional
}

// IncomeRequest entrada de inventario (transacción IN).
type IncomeRequest struct {
	WarehouseID   string              `json:"warehouse_id"`
	SupplierID    string              `json:"supplier_id,omitempty"` // opcional
	InvoiceNumber string              `json:"invoice_number"`
	Date          string              `json:"date"` // YYYY-MM-DD
	Items         []IncomeItemRequest `json:"items"`
}

// IncomeResponse resultado de registrar una entrada. El total es derivable
// por agregación, no se calcula aquí.
type IncomeResponse struct {
	TransactionID string `json:"transaction_id"`
	UniqueNumber  string `json:"unique_number"`
}

// SaleItemRequest línea de una venta.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// SaleRequest venta (transacción OUT). Las ventas nunca llevan proveedor.
type SaleRequest struct {
	WarehouseID   string            `json:"warehouse_id"`
	InvoiceNumber string            `json:"invoice_number"`
	Date          string            `json:"date"` // YYYY-MM-DD
	Items         []SaleItemRequest `json:"items"`
}

// SaleItemResponse línea de venta con el importe calculado (cantidad × precio).
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
}

// SaleResponse resultado de registrar una venta: líneas con importe y total.
type SaleResponse struct {
	TransactionID string             `json:"transaction_id"`
	UniqueNumber  string             `json:"unique_number"`
	Items         []SaleItemResponse `json:"items"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
}

// CancelTransactionRequest solicitud de cancelación de una transacción.
type CancelTransactionRequest struct {
	TransactionID string `json:"transaction_id"`
}
