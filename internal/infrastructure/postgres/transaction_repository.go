package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)
var _ repository.TransactionItemRepository = (*TransactionItemRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL
// (usable con pool o tx).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, type, date, warehouse_id, supplier_id, invoice_number,
		unique_number, status, deleted, created_at, updated_at`

// Create persiste una cabecera. El constraint UNIQUE sobre unique_number
// hace fallar el insert en colisión (el caller reintenta con otro número).
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Type, t.Date, t.WarehouseID, t.SupplierID, t.InvoiceNumber,
		t.UniqueNumber, t.Status, t.Deleted, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una cabecera por id, o (nil, nil) si no existe.
func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `
		SELECT id, type, date, warehouse_id, COALESCE(supplier_id, ''), invoice_number,
		       unique_number, status, deleted, created_at, updated_at
		FROM transactions WHERE id = $1 AND deleted = false`
	var t entity.Transaction
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Type, &t.Date, &t.WarehouseID, &t.SupplierID, &t.InvoiceNumber,
		&t.UniqueNumber, &t.Status, &t.Deleted, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// MarkCanceled pasa la cabecera a CANCELED solo si no lo estaba ya. El UPDATE
// condicional bloquea la fila dentro de la tx, de modo que dos cancelaciones
// concurrentes nunca revierten el stock dos veces.
func (r *TransactionRepo) MarkCanceled(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE transactions SET status = $2, updated_at = now()
		WHERE id = $1 AND deleted = false AND status <> $2`
	cmd, err := r.q.Exec(ctx, query, id, entity.TransactionStatusCanceled)
	if err != nil {
		return false, fmt.Errorf("mark transaction canceled: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// TransactionItemRepo implementación de TransactionItemRepository sobre
// PostgreSQL (usable con pool o tx). Las líneas son inmutables.
type TransactionItemRepo struct {
	q Querier
}

// NewTransactionItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionItemRepository(q Querier) *TransactionItemRepo {
	return &TransactionItemRepo{q: q}
}

// Create persiste una línea.
func (r *TransactionItemRepo) Create(ctx context.Context, item *entity.TransactionItem) error {
	query := `
		INSERT INTO transaction_items (id, transaction_id, product_id, quantity, price,
			expire_date, selling_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.TransactionID, item.ProductID, item.Quantity, item.Price,
		item.ExpireDate, item.SellingPrice, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction item: %w", err)
	}
	return nil
}

// ListByTransaction lista las líneas de una transacción en orden de inserción.
func (r *TransactionItemRepo) ListByTransaction(ctx context.Context, transactionID string) ([]*entity.TransactionItem, error) {
	query := `
		SELECT id, transaction_id, product_id, quantity, price, expire_date, selling_price, created_at
		FROM transaction_items WHERE transaction_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionItem
	for rows.Next() {
		var item entity.TransactionItem
		if err := rows.Scan(
			&item.ID, &item.TransactionID, &item.ProductID, &item.Quantity, &item.Price,
			&item.ExpireDate, &item.SellingPrice, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}
