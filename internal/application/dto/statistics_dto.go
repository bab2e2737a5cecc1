package dto

import "github.com/shopspring/decimal"

// DailyIncomeItem ingreso agregado por producto en un día.
type DailyIncomeItem struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// DailyIncomeResponse reporte de ingresos diarios de una bodega.
type DailyIncomeResponse struct {
	WarehouseID string            `json:"warehouse_id"`
	Date        string            `json:"date"` // YYYY-MM-DD
	Items       []DailyIncomeItem `json:"items"`
}

// DailyTopSaleItem venta agregada por producto, ordenada por cantidad.
type DailyTopSaleItem struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// DailyTopSalesResponse productos más vendidos de una bodega en un día.
type DailyTopSalesResponse struct {
	WarehouseID string             `json:"warehouse_id"`
	Date        string             `json:"date"` // YYYY-MM-DD
	Items       []DailyTopSaleItem `json:"items"`
}

// ExpiredProductItem producto con líneas de entrada ya vencidas.
type ExpiredProductItem struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ExpiredQuantity decimal.Decimal `json:"expired_quantity"`
	ExpireDate      string          `json:"expire_date"` // YYYY-MM-DD
}

// ExpiredProductsResponse productos vencidos de una bodega.
type ExpiredProductsResponse struct {
	WarehouseID string               `json:"warehouse_id"`
	Items       []ExpiredProductItem `json:"items"`
}
