// Package ledger implementa el motor de conciliación transacción→stock:
// registra entradas (IN) y ventas (OUT), y cancela transacciones revirtiendo
// su efecto sobre el stock. Cada operación corre dentro de una sola
// transacción de BD; cualquier error la aborta completa (sin commits
// parciales) y el stock nunca queda negativo.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/pkg/numgen"
)

// maxNumberAttempts reintentos de la operación completa cuando el número
// único generado colisiona con el constraint UNIQUE de la base.
const maxNumberAttempts = 3

// dateLayout formato de las fechas de negocio en los DTOs.
const dateLayout = "2006-01-02"

// Engine orquesta las tres operaciones del motor de conciliación.
// Las resoluciones de catálogo (bodega, proveedor, producto) se hacen con
// repositorios de solo lectura fuera de la tx; las mutaciones del libro y
// del stock van dentro de TxRunner.Run.
type Engine struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
	productRepo   repository.ProductRepository
	genNumber     NumberFunc
	isUniqueViol  UniqueViolationFunc
}

// NewEngine construye el motor.
func NewEngine(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	genNumber NumberFunc,
	isUniqueViol UniqueViolationFunc,
) *Engine {
	return &Engine{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		supplierRepo:  supplierRepo,
		productRepo:   productRepo,
		genNumber:     genNumber,
		isUniqueViol:  isUniqueViol,
	}
}

// ── Entrada (IN) ──────────────────────────────────────────────────────────────

// RecordIncome registra una entrada de inventario: crea la cabecera IN con
// sus líneas y suma cada cantidad al stock del par (bodega, producto),
// creando la fila de stock si no existe. La entrada no verifica suficiencia:
// solo incrementa.
func (e *Engine) RecordIncome(ctx context.Context, in dto.IncomeRequest) (*dto.IncomeResponse, error) {
	date, err := parseBusinessDate(in.Date)
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrValidation("la entrada debe tener al menos una línea")
	}

	warehouse, err := e.warehouseRepo.GetActive(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrWarehouseNotFound()
	}

	supplierID := ""
	if in.SupplierID != "" {
		supplier, err := e.supplierRepo.GetActive(ctx, in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrSupplierNotFound()
		}
		supplierID = supplier.ID
	}

	products, err := e.resolveProducts(ctx, incomeProductIDs(in.Items))
	if err != nil {
		return nil, err
	}

	type incomeLine struct {
		productID    string
		quantity     decimal.Decimal
		price        decimal.Decimal
		expireDate   *time.Time
		sellingPrice *decimal.Decimal
	}
	lines := make([]incomeLine, 0, len(in.Items))
	for _, item := range in.Items {
		if _, ok := products[item.ProductID]; !ok {
			return nil, domain.ErrProductNotFound()
		}
		if err := validateQuantityPrice(item.Quantity, item.Price); err != nil {
			return nil, err
		}
		if item.SellingPrice != nil && item.SellingPrice.IsNegative() {
			return nil, domain.ErrValidation("el precio de venta no puede ser negativo")
		}
		var expire *time.Time
		if item.ExpireDate != "" {
			d, err := time.Parse(dateLayout, item.ExpireDate)
			if err != nil {
				return nil, domain.ErrValidation("fecha de vencimiento inválida: %s", item.ExpireDate)
			}
			expire = &d
		}
		lines = append(lines, incomeLine{
			productID:    item.ProductID,
			quantity:     item.Quantity,
			price:        item.Price,
			expireDate:   expire,
			sellingPrice: item.SellingPrice,
		})
	}

	var resp *dto.IncomeResponse
	err = e.runWithUniqueNumber(ctx, func(number string) func(
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
		stockRepo repository.StockRepository,
	) error {
		return func(
			txRepo repository.TransactionRepository,
			itemRepo repository.TransactionItemRepository,
			stockRepo repository.StockRepository,
		) error {
			now := time.Now()
			header := &entity.Transaction{
				ID:            uuid.New().String(),
				Type:          entity.TransactionTypeIn,
				Date:          date,
				WarehouseID:   warehouse.ID,
				SupplierID:    supplierID,
				InvoiceNumber: in.InvoiceNumber,
				UniqueNumber:  number,
				Status:        entity.TransactionStatusCompleted,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := txRepo.Create(ctx, header); err != nil {
				return err
			}
			// Líneas y stock en el orden recibido
			for _, line := range lines {
				item := &entity.TransactionItem{
					ID:            uuid.New().String(),
					TransactionID: header.ID,
					ProductID:     line.productID,
					Quantity:      line.quantity,
					Price:         line.price,
					ExpireDate:    line.expireDate,
					SellingPrice:  line.sellingPrice,
					CreatedAt:     now,
				}
				if err := itemRepo.Create(ctx, item); err != nil {
					return err
				}
				if err := stockRepo.AddQuantity(ctx, warehouse.ID, line.productID, line.quantity); err != nil {
					return err
				}
			}
			resp = &dto.IncomeResponse{TransactionID: header.ID, UniqueNumber: number}
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ── Venta (OUT) ───────────────────────────────────────────────────────────────

// RecordSale registra una venta: crea la cabecera OUT y, línea por línea en
// el orden recibido, bloquea la fila de stock, verifica suficiencia y
// descuenta. La ausencia de fila de stock es fatal (una venta contra stock
// no registrado es inválida); cualquier fallo revierte el lote completo.
// Devuelve las líneas con su importe (cantidad × precio) y el total.
func (e *Engine) RecordSale(ctx context.Context, in dto.SaleRequest) (*dto.SaleResponse, error) {
	date, err := parseBusinessDate(in.Date)
	if err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrValidation("la venta debe tener al menos una línea")
	}

	warehouse, err := e.warehouseRepo.GetActive(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrWarehouseNotFound()
	}

	ids := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := e.resolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, item := range in.Items {
		if _, ok := products[item.ProductID]; !ok {
			return nil, domain.ErrProductNotFound()
		}
		if err := validateQuantityPrice(item.Quantity, item.Price); err != nil {
			return nil, err
		}
	}

	var resp *dto.SaleResponse
	err = e.runWithUniqueNumber(ctx, func(number string) func(
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
		stockRepo repository.StockRepository,
	) error {
		return func(
			txRepo repository.TransactionRepository,
			itemRepo repository.TransactionItemRepository,
			stockRepo repository.StockRepository,
		) error {
			now := time.Now()
			header := &entity.Transaction{
				ID:            uuid.New().String(),
				Type:          entity.TransactionTypeOut,
				Date:          date,
				WarehouseID:   warehouse.ID,
				InvoiceNumber: in.InvoiceNumber,
				UniqueNumber:  number,
				Status:        entity.TransactionStatusCompleted,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := txRepo.Create(ctx, header); err != nil {
				return err
			}

			itemsResp := make([]dto.SaleItemResponse, 0, len(in.Items))
			total := decimal.Zero
			for _, item := range in.Items {
				product := products[item.ProductID]

				// check-then-decrement bajo FOR UPDATE: serializa ventas
				// concurrentes sobre el mismo par (bodega, producto)
				stock, err := stockRepo.GetForUpdate(ctx, warehouse.ID, item.ProductID)
				if err != nil {
					return err
				}
				if stock == nil {
					return domain.ErrStockNotFound(product.Name)
				}
				if stock.Quantity.LessThan(item.Quantity) {
					return domain.ErrInsufficientStock(product.Name)
				}
				if err := stockRepo.UpdateQuantity(ctx, warehouse.ID, item.ProductID, stock.Quantity.Sub(item.Quantity)); err != nil {
					return err
				}

				line := &entity.TransactionItem{
					ID:            uuid.New().String(),
					TransactionID: header.ID,
					ProductID:     item.ProductID,
					Quantity:      item.Quantity,
					Price:         item.Price,
					CreatedAt:     now,
				}
				if err := itemRepo.Create(ctx, line); err != nil {
					return err
				}

				amount := item.Quantity.Mul(item.Price)
				total = total.Add(amount)
				itemsResp = append(itemsResp, dto.SaleItemResponse{
					ProductID:   item.ProductID,
					ProductName: product.Name,
					Quantity:    item.Quantity,
					Price:       item.Price,
					Amount:      amount,
				})
			}

			resp = &dto.SaleResponse{
				TransactionID: header.ID,
				UniqueNumber:  number,
				Items:         itemsResp,
				TotalAmount:   total,
			}
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ── Cancelación ───────────────────────────────────────────────────────────────

// CancelTransaction revierte el efecto de stock de una transacción y la pasa
// a CANCELED. Revertir una entrada descuenta stock y exige que la cantidad
// siga presente (el invariante de no-negatividad manda); revertir una venta
// devuelve stock con la misma primitiva crear-o-sumar de la entrada y siempre
// puede completarse. Las líneas nunca se tocan: quedan como registro
// histórico del movimiento original.
func (e *Engine) CancelTransaction(ctx context.Context, transactionID string) error {
	return e.txRunner.Run(ctx, func(
		txRepo repository.TransactionRepository,
		itemRepo repository.TransactionItemRepository,
		stockRepo repository.StockRepository,
	) error {
		header, err := txRepo.GetByID(ctx, transactionID)
		if err != nil {
			return err
		}
		if header == nil {
			return domain.ErrTransactionNotFound(transactionID)
		}

		// El UPDATE condicional bloquea la cabecera: dos cancelaciones
		// concurrentes nunca revierten el stock dos veces.
		transitioned, err := txRepo.MarkCanceled(ctx, transactionID)
		if err != nil {
			return err
		}
		if !transitioned {
			return domain.ErrAlreadyCanceled(transactionID)
		}

		items, err := itemRepo.ListByTransaction(ctx, transactionID)
		if err != nil {
			return err
		}
		names, err := e.productNames(ctx, items)
		if err != nil {
			return err
		}

		switch header.Type {
		case entity.TransactionTypeIn:
			// Revertir una entrada retira inventario: debe seguir presente
			for _, item := range items {
				stock, err := stockRepo.GetForUpdate(ctx, header.WarehouseID, item.ProductID)
				if err != nil {
					return err
				}
				if stock == nil {
					return domain.ErrStockNotFound(names[item.ProductID])
				}
				if stock.Quantity.LessThan(item.Quantity) {
					return domain.ErrInsufficientStock(names[item.ProductID])
				}
				if err := stockRepo.UpdateQuantity(ctx, header.WarehouseID, item.ProductID, stock.Quantity.Sub(item.Quantity)); err != nil {
					return err
				}
			}
		case entity.TransactionTypeOut:
			// Revertir una venta restaura inventario: crear-o-sumar, como la entrada
			for _, item := range items {
				if err := stockRepo.AddQuantity(ctx, header.WarehouseID, item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		default:
			return domain.ErrValidation("tipo de transacción desconocido: %s", header.Type)
		}
		return nil
	})
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// runWithUniqueNumber genera el número de 12 dígitos y ejecuta la operación
// completa dentro de una tx; si el commit choca con el constraint UNIQUE del
// número, regenera y reintenta la operación entera hasta maxNumberAttempts.
func (e *Engine) runWithUniqueNumber(ctx context.Context, buildFn func(number string) func(
	repository.TransactionRepository,
	repository.TransactionItemRepository,
	repository.StockRepository,
) error) error {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number, err := e.genNumber(numgen.TransactionNumberLength)
		if err != nil {
			return err
		}
		err = e.txRunner.Run(ctx, buildFn(number))
		if err != nil && e.isUniqueViol(err) {
			continue
		}
		return err
	}
	return domain.ErrNumberConflict()
}

// resolveProducts resuelve el lote de productos y devuelve el mapa id->producto.
func (e *Engine) resolveProducts(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	if len(ids) == 0 {
		return map[string]*entity.Product{}, nil
	}
	return e.productRepo.GetByIDs(ctx, ids)
}

// productNames resuelve nombres para mensajes de diagnóstico en la
// cancelación. Un producto ya eliminado del catálogo no bloquea la
// cancelación: se usa su id como nombre.
func (e *Engine) productNames(ctx context.Context, items []*entity.TransactionItem) (map[string]string, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := e.resolveProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(items))
	for _, item := range items {
		if p, ok := products[item.ProductID]; ok {
			names[item.ProductID] = p.Name
		} else {
			names[item.ProductID] = item.ProductID
		}
	}
	return names, nil
}

func incomeProductIDs(items []dto.IncomeItemRequest) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

func parseBusinessDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrValidation("fecha inválida: %s (formato esperado YYYY-MM-DD)", s)
	}
	return d, nil
}

// validateQuantityPrice valida una línea: la cantidad debe ser positiva y el
// precio no puede ser negativo (precio cero es válido, p. ej. bonificaciones).
func validateQuantityPrice(quantity, price decimal.Decimal) error {
	if !quantity.IsPositive() {
		return domain.ErrValidation("la cantidad debe ser mayor que cero")
	}
	if price.IsNegative() {
		return domain.ErrValidation("el precio no puede ser negativo")
	}
	return nil
}
