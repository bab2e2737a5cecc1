package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailyIncomeRow ingreso agregado por producto en un día (transacciones IN completadas).
type DailyIncomeRow struct {
	ProductID     string
	ProductName   string
	TotalQuantity decimal.Decimal
	TotalAmount   decimal.Decimal
}

// DailyTopSaleRow venta agregada por producto en un día, ordenada por cantidad descendente.
type DailyTopSaleRow struct {
	ProductID     string
	ProductName   string
	TotalQuantity decimal.Decimal
}

// ExpiredProductRow producto con líneas de entrada ya vencidas.
type ExpiredProductRow struct {
	ProductID       string
	ProductName     string
	ExpiredQuantity decimal.Decimal
	ExpireDate      time.Time
}

// ExpiringItemRow línea de entrada próxima a vencer con stock vivo, para el notificador.
type ExpiringItemRow struct {
	ProductID     string
	ProductName   string
	WarehouseID   string
	WarehouseName string
	ExpireDate    time.Time
	StockQuantity decimal.Decimal
}

// StatisticsRepository consultas de solo lectura sobre el libro de
// transacciones. No contiene lógica de negocio: solo agregación.
type StatisticsRepository interface {
	DailyIncome(ctx context.Context, warehouseID string, date time.Time) ([]DailyIncomeRow, error)
	DailyTopSales(ctx context.Context, warehouseID string, date time.Time) ([]DailyTopSaleRow, error)
	ExpiredProducts(ctx context.Context, warehouseID string) ([]ExpiredProductRow, error)
	// ExpiringItems devuelve líneas cuyo expire_date cae dentro de los próximos
	// warningDays días y cuyo par (bodega, producto) aún tiene stock > 0.
	ExpiringItems(ctx context.Context, warningDays int) ([]ExpiringItemRow, error)
}
