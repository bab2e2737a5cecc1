package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del libro de inventario.
const (
	TransactionTypeIn  = "IN"  // entrada: compra a proveedor
	TransactionTypeOut = "OUT" // salida: venta
)

// Estados de transacción. CANCELED es terminal: no existe des-cancelación.
const (
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusCanceled  = "CANCELED"
)

// Transaction es la cabecera de un movimiento de inventario (entrada o venta).
// Tipo e ítems son inmutables después de la creación; el único campo que
// muta es Status, y solo por cancelación.
type Transaction struct {
	ID            string
	Type          string // IN, OUT
	Date          time.Time
	WarehouseID   string
	SupplierID    string // solo con significado en IN; vacío en OUT
	InvoiceNumber string
	UniqueNumber  string // 12 dígitos generados por el sistema, único en la base
	Status        string // COMPLETED, CANCELED
	Deleted       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TransactionItem es una línea de una transacción. Inmutable: la cancelación
// revierte el stock pero nunca borra ni modifica las líneas, que quedan como
// registro histórico del movimiento original.
type TransactionItem struct {
	ID            string
	TransactionID string
	ProductID     string
	Quantity      decimal.Decimal // > 0
	Price         decimal.Decimal // >= 0
	ExpireDate    *time.Time      // solo ítems IN
	SellingPrice  *decimal.Decimal // solo ítems IN
	CreatedAt     time.Time
}
