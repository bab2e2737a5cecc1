package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.StatisticsRepository = (*StatisticsRepo)(nil)

// StatisticsRepo consultas de agregación sobre el libro de transacciones.
// Solo lectura; la lógica de negocio vive en los usecases.
type StatisticsRepo struct {
	q Querier
}

// NewStatisticsRepository construye el adaptador de estadísticas.
func NewStatisticsRepository(q Querier) *StatisticsRepo {
	return &StatisticsRepo{q: q}
}

// DailyIncome mercancía ingresada por producto (entradas completadas) de una
// bodega en un día, valorizada a precio de compra y ordenada por importe
// descendente.
func (r *StatisticsRepo) DailyIncome(ctx context.Context, warehouseID string, date time.Time) ([]repository.DailyIncomeRow, error) {
	query := `
		SELECT i.product_id, COALESCE(p.name, i.product_id),
		       SUM(i.quantity), SUM(i.quantity * i.price)
		FROM transactions t
		JOIN transaction_items i ON i.transaction_id = t.id
		LEFT JOIN products p ON p.id = i.product_id
		WHERE t.warehouse_id = $1 AND t.date = $2
		  AND t.type = $3 AND t.status = $4 AND t.deleted = false
		GROUP BY i.product_id, p.name
		ORDER BY SUM(i.quantity * i.price) DESC`
	rows, err := r.q.Query(ctx, query, warehouseID, date,
		entity.TransactionTypeIn, entity.TransactionStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("daily income: %w", err)
	}
	defer rows.Close()
	var list []repository.DailyIncomeRow
	for rows.Next() {
		var row repository.DailyIncomeRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.TotalQuantity, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan daily income: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// DailyTopSales productos más vendidos de una bodega en un día, por cantidad
// descendente.
func (r *StatisticsRepo) DailyTopSales(ctx context.Context, warehouseID string, date time.Time) ([]repository.DailyTopSaleRow, error) {
	query := `
		SELECT i.product_id, COALESCE(p.name, i.product_id), SUM(i.quantity)
		FROM transactions t
		JOIN transaction_items i ON i.transaction_id = t.id
		LEFT JOIN products p ON p.id = i.product_id
		WHERE t.warehouse_id = $1 AND t.date = $2
		  AND t.type = $3 AND t.status = $4 AND t.deleted = false
		GROUP BY i.product_id, p.name
		ORDER BY SUM(i.quantity) DESC
		LIMIT 10`
	rows, err := r.q.Query(ctx, query, warehouseID, date,
		entity.TransactionTypeOut, entity.TransactionStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("daily top sales: %w", err)
	}
	defer rows.Close()
	var list []repository.DailyTopSaleRow
	for rows.Next() {
		var row repository.DailyTopSaleRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan daily top sale: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ExpiredProducts líneas de entrada ya vencidas de una bodega cuyo par
// (bodega, producto) aún tiene stock vivo, agrupadas por producto y fecha.
func (r *StatisticsRepo) ExpiredProducts(ctx context.Context, warehouseID string) ([]repository.ExpiredProductRow, error) {
	query := `
		SELECT i.product_id, COALESCE(p.name, i.product_id), SUM(i.quantity), i.expire_date
		FROM transactions t
		JOIN transaction_items i ON i.transaction_id = t.id
		JOIN stock s ON s.warehouse_id = t.warehouse_id AND s.product_id = i.product_id
		LEFT JOIN products p ON p.id = i.product_id
		WHERE t.warehouse_id = $1 AND t.type = $2 AND t.status = $3 AND t.deleted = false
		  AND i.expire_date IS NOT NULL AND i.expire_date < CURRENT_DATE
		  AND s.quantity > 0
		GROUP BY i.product_id, p.name, i.expire_date
		ORDER BY i.expire_date`
	rows, err := r.q.Query(ctx, query, warehouseID,
		entity.TransactionTypeIn, entity.TransactionStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("expired products: %w", err)
	}
	defer rows.Close()
	var list []repository.ExpiredProductRow
	for rows.Next() {
		var row repository.ExpiredProductRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.ExpiredQuantity, &row.ExpireDate); err != nil {
			return nil, fmt.Errorf("scan expired product: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ExpiringItems líneas de entrada que vencen dentro de los próximos
// warningDays días con stock vivo, en todas las bodegas (notificador).
func (r *StatisticsRepo) ExpiringItems(ctx context.Context, warningDays int) ([]repository.ExpiringItemRow, error) {
	query := `
		SELECT i.product_id, COALESCE(p.name, i.product_id),
		       t.warehouse_id, COALESCE(w.name, t.warehouse_id),
		       i.expire_date, s.quantity
		FROM transactions t
		JOIN transaction_items i ON i.transaction_id = t.id
		JOIN stock s ON s.warehouse_id = t.warehouse_id AND s.product_id = i.product_id
		LEFT JOIN products p ON p.id = i.product_id
		LEFT JOIN warehouses w ON w.id = t.warehouse_id
		WHERE t.type = $1 AND t.status = $2 AND t.deleted = false
		  AND i.expire_date IS NOT NULL
		  AND i.expire_date >= CURRENT_DATE
		  AND i.expire_date < CURRENT_DATE + ($3 || ' days')::interval
		  AND s.quantity > 0
		ORDER BY i.expire_date, p.name`
	rows, err := r.q.Query(ctx, query,
		entity.TransactionTypeIn, entity.TransactionStatusCompleted, warningDays)
	if err != nil {
		return nil, fmt.Errorf("expiring items: %w", err)
	}
	defer rows.Close()
	var list []repository.ExpiringItemRow
	for rows.Next() {
		var row repository.ExpiringItemRow
		if err := rows.Scan(
			&row.ProductID, &row.ProductName, &row.WarehouseID, &row.WarehouseName,
			&row.ExpireDate, &row.StockQuantity,
		); err != nil {
			return nil, fmt.Errorf("scan expiring item: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
