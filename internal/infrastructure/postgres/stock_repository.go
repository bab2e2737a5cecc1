package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, warehouse_id, product_id, quantity, updated_at`

// Get obtiene la fila de stock o (nil, nil) si el par no existe todavía.
func (r *StockRepo) Get(ctx context.Context, warehouseID, productID string) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE warehouse_id = $1 AND product_id = $2`
	return r.scanOne(ctx, query, warehouseID, productID)
}

// GetForUpdate obtiene la fila bloqueándola (SELECT ... FOR UPDATE), o
// (nil, nil) si no existe.
func (r *StockRepo) GetForUpdate(ctx context.Context, warehouseID, productID string) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE warehouse_id = $1 AND product_id = $2
		FOR UPDATE`
	return r.scanOne(ctx, query, warehouseID, productID)
}

// AddQuantity crea la fila con qty o suma qty a la existente, en una sola
// sentencia atómica.
func (r *StockRepo) AddQuantity(ctx context.Context, warehouseID, productID string, qty decimal.Decimal) error {
	query := `
		INSERT INTO stock (id, warehouse_id, product_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (warehouse_id, product_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, uuid.New().String(), warehouseID, productID, qty)
	if err != nil {
		return fmt.Errorf("add stock quantity: %w", err)
	}
	return nil
}

// UpdateQuantity fija la cantidad de una fila existente.
func (r *StockRepo) UpdateQuantity(ctx context.Context, warehouseID, productID string, qty decimal.Decimal) error {
	query := `
		UPDATE stock SET quantity = $3, updated_at = now()
		WHERE warehouse_id = $1 AND product_id = $2`
	cmd, err := r.q.Exec(ctx, query, warehouseID, productID, qty)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update stock quantity: fila inexistente (%s, %s)", warehouseID, productID)
	}
	return nil
}

func (r *StockRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Stock, error) {
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.WarehouseID, &s.ProductID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}
