package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para las cabeceras
// del libro de transacciones. El libro es append-mostly: después de crear,
// el único cambio permitido es el paso de status a CANCELED.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// MarkCanceled pasa la transacción a CANCELED solo si no lo estaba ya
	// (UPDATE condicional que además bloquea la fila dentro de la tx).
	// Devuelve false si la transacción ya estaba en estado terminal CANCELED.
	MarkCanceled(ctx context.Context, id string) (bool, error)
}

// TransactionItemRepository define el puerto para las líneas del libro.
// Las líneas son inmutables: solo alta y lectura.
type TransactionItemRepository interface {
	Create(ctx context.Context, item *entity.TransactionItem) error
	ListByTransaction(ctx context.Context, transactionID string) ([]*entity.TransactionItem, error)
}
