package ledger

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del motor: o todas
// las escrituras del libro y del stock quedan, o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// NumberFunc genera un número de length dígitos decimales (pkg/numgen).
type NumberFunc func(length int) (string, error)

// UniqueViolationFunc reporta si err es una violación de constraint único
// del storage (colisión del número generado). Permite al motor reintentar
// la generación sin acoplarse al driver.
type UniqueViolationFunc func(err error) bool
