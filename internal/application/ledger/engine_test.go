package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mundo en memoria: estado compartido por los repos fake
// ──────────────────────────────────────────────────────────────────────────────

// errUniqueViolation simula la violación del constraint UNIQUE del número.
var errUniqueViolation = errors.New("duplicate key value violates unique constraint")

func stockKey(warehouseID, productID string) string {
	return warehouseID + "|" + productID
}

// memWorld es el estado persistente del test: libro, líneas y stock.
type memWorld struct {
	transactions map[string]*entity.Transaction
	items        map[string][]*entity.TransactionItem // por transactionID
	stocks       map[string]decimal.Decimal           // por stockKey
	usedNumbers  map[string]bool
}

func newMemWorld() *memWorld {
	return &memWorld{
		transactions: map[string]*entity.Transaction{},
		items:        map[string][]*entity.TransactionItem{},
		stocks:       map[string]decimal.Decimal{},
		usedNumbers:  map[string]bool{},
	}
}

func (w *memWorld) snapshot() *memWorld {
	s := newMemWorld()
	for k, v := range w.transactions {
		cp := *v
		s.transactions[k] = &cp
	}
	for k, list := range w.items {
		cps := make([]*entity.TransactionItem, 0, len(list))
		for _, it := range list {
			cp := *it
			cps = append(cps, &cp)
		}
		s.items[k] = cps
	}
	for k, v := range w.stocks {
		s.stocks[k] = v
	}
	for k := range w.usedNumbers {
		s.usedNumbers[k] = true
	}
	return s
}

func (w *memWorld) restore(s *memWorld) {
	w.transactions = s.transactions
	w.items = s.items
	w.stocks = s.stocks
	w.usedNumbers = s.usedNumbers
}

// ──────────────────────────────────────────────────────────────────────────────
// Repos fake sobre el mundo
// ──────────────────────────────────────────────────────────────────────────────

type memTxRepo struct{ w *memWorld }

func (r *memTxRepo) Create(_ context.Context, tx *entity.Transaction) error {
	if r.w.usedNumbers[tx.UniqueNumber] {
		return fmt.Errorf("insertando transacción: %w", errUniqueViolation)
	}
	cp := *tx
	r.w.transactions[tx.ID] = &cp
	r.w.usedNumbers[tx.UniqueNumber] = true
	return nil
}

func (r *memTxRepo) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	tx, ok := r.w.transactions[id]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (r *memTxRepo) MarkCanceled(_ context.Context, id string) (bool, error) {
	tx, ok := r.w.transactions[id]
	if !ok || tx.Status == entity.TransactionStatusCanceled {
		return false, nil
	}
	tx.Status = entity.TransactionStatusCanceled
	return true, nil
}

type memItemRepo struct{ w *memWorld }

func (r *memItemRepo) Create(_ context.Context, item *entity.TransactionItem) error {
	cp := *item
	r.w.items[item.TransactionID] = append(r.w.items[item.TransactionID], &cp)
	return nil
}

func (r *memItemRepo) ListByTransaction(_ context.Context, transactionID string) ([]*entity.TransactionItem, error) {
	return r.w.items[transactionID], nil
}

type memStockRepo struct{ w *memWorld }

func (r *memStockRepo) Get(_ context.Context, warehouseID, productID string) (*entity.Stock, error) {
	qty, ok := r.w.stocks[stockKey(warehouseID, productID)]
	if !ok {
		return nil, nil
	}
	return &entity.Stock{WarehouseID: warehouseID, ProductID: productID, Quantity: qty}, nil
}

func (r *memStockRepo) GetForUpdate(ctx context.Context, warehouseID, productID string) (*entity.Stock, error) {
	return r.Get(ctx, warehouseID, productID)
}

func (r *memStockRepo) AddQuantity(_ context.Context, warehouseID, productID string, qty decimal.Decimal) error {
	key := stockKey(warehouseID, productID)
	r.w.stocks[key] = r.w.stocks[key].Add(qty)
	return nil
}

func (r *memStockRepo) UpdateQuantity(_ context.Context, warehouseID, productID string, qty decimal.Decimal) error {
	key := stockKey(warehouseID, productID)
	if _, ok := r.w.stocks[key]; !ok {
		return errors.New("fila de stock inexistente")
	}
	r.w.stocks[key] = qty
	return nil
}

// memTxRunner simula la atomicidad de la BD: toma un snapshot del mundo y lo
// restaura si la función devuelve error.
type memTxRunner struct{ w *memWorld }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	repository.TransactionRepository,
	repository.TransactionItemRepository,
	repository.StockRepository,
) error) error {
	snap := r.w.snapshot()
	err := fn(&memTxRepo{w: r.w}, &memItemRepo{w: r.w}, &memStockRepo{w: r.w})
	if err != nil {
		r.w.restore(snap)
	}
	return err
}

// Repos de catálogo de solo lectura. Embeben la interfaz para no implementar
// los métodos que el motor nunca llama.
type memWarehouseRepo struct {
	repository.WarehouseRepository
	warehouses map[string]*entity.Warehouse
}

func (r *memWarehouseRepo) GetActive(_ context.Context, id string) (*entity.Warehouse, error) {
	wh, ok := r.warehouses[id]
	if !ok || wh.Deleted || wh.Status != entity.StatusActive {
		return nil, nil
	}
	return wh, nil
}

type memSupplierRepo struct {
	repository.SupplierRepository
	suppliers map[string]*entity.Supplier
}

func (r *memSupplierRepo) GetActive(_ context.Context, id string) (*entity.Supplier, error) {
	s, ok := r.suppliers[id]
	if !ok || s.Deleted || s.Status != entity.StatusActive {
		return nil, nil
	}
	return s, nil
}

type memProductRepo struct {
	repository.ProductRepository
	products map[string]*entity.Product
}

func (r *memProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.products[id]; ok && !p.Deleted {
			out[id] = p
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testWarehouseID = "wh-001"
	testSupplierID  = "sup-001"
	testProductA    = "prod-arroz"
	testProductB    = "prod-frijol"
	testDate        = "2026-08-15"
)

type testEnv struct {
	world  *memWorld
	engine *ledger.Engine
	// numbers, si no es nil, se consume en orden en lugar del generador real
	numbers []string
	numIdx  int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{world: newMemWorld()}

	warehouses := map[string]*entity.Warehouse{
		testWarehouseID: {ID: testWarehouseID, Name: "Bodega Central", Status: entity.StatusActive},
		"wh-inactive":   {ID: "wh-inactive", Name: "Bodega Cerrada", Status: entity.StatusInactive},
	}
	suppliers := map[string]*entity.Supplier{
		testSupplierID: {ID: testSupplierID, Name: "Distribuidora Andina", Status: entity.StatusActive},
		"sup-inactive": {ID: "sup-inactive", Name: "Proveedor Retirado", Status: entity.StatusInactive},
	}
	products := map[string]*entity.Product{
		testProductA: {ID: testProductA, Name: "Arroz 500g", UniqueCode: "100000001"},
		testProductB: {ID: testProductB, Name: "Frijol 500g", UniqueCode: "100000002"},
	}

	seq := 0
	genNumber := func(length int) (string, error) {
		if env.numbers != nil {
			require.Less(t, env.numIdx, len(env.numbers), "el generador fake se quedó sin números")
			n := env.numbers[env.numIdx]
			env.numIdx++
			return n, nil
		}
		seq++
		return fmt.Sprintf("%012d", seq), nil
	}
	isUniqueViol := func(err error) bool { return errors.Is(err, errUniqueViolation) }

	env.engine = ledger.NewEngine(
		&memTxRunner{w: env.world},
		&memWarehouseRepo{warehouses: warehouses},
		&memSupplierRepo{suppliers: suppliers},
		&memProductRepo{products: products},
		genNumber,
		isUniqueViol,
	)
	return env
}

func (e *testEnv) stockOf(productID string) decimal.Decimal {
	return e.world.stocks[stockKey(testWarehouseID, productID)]
}

func (e *testEnv) hasStockRow(productID string) bool {
	_, ok := e.world.stocks[stockKey(testWarehouseID, productID)]
	return ok
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func incomeOf(productID, qty, price string) dto.IncomeRequest {
	return dto.IncomeRequest{
		WarehouseID:   testWarehouseID,
		SupplierID:    testSupplierID,
		InvoiceNumber: "FAC-100",
		Date:          testDate,
		Items: []dto.IncomeItemRequest{
			{ProductID: productID, Quantity: dec(qty), Price: dec(price)},
		},
	}
}

func saleOf(productID, qty, price string) dto.SaleRequest {
	return dto.SaleRequest{
		WarehouseID:   testWarehouseID,
		InvoiceNumber: "VTA-100",
		Date:          testDate,
		Items: []dto.SaleItemRequest{
			{ProductID: productID, Quantity: dec(qty), Price: dec(price)},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas (IN)
// ──────────────────────────────────────────────────────────────────────────────

// Caso: una entrada nueva crea la cabecera, sus líneas y las filas de stock.
func TestRecordIncome_CreaLibroYStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	expire := "2026-12-31"
	selling := dec("2500")
	resp, err := env.engine.RecordIncome(ctx, dto.IncomeRequest{
		WarehouseID:   testWarehouseID,
		SupplierID:    testSupplierID,
		InvoiceNumber: "FAC-001",
		Date:          testDate,
		Items: []dto.IncomeItemRequest{
			{ProductID: testProductA, Quantity: dec("100"), Price: dec("1800"), ExpireDate: expire, SellingPrice: &selling},
			{ProductID: testProductB, Quantity: dec("40"), Price: dec("3200")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Len(t, resp.UniqueNumber, 12, "el número de transacción debe tener 12 dígitos")

	header := env.world.transactions[resp.TransactionID]
	require.NotNil(t, header, "la cabecera debe quedar persistida")
	assert.Equal(t, entity.TransactionTypeIn, header.Type)
	assert.Equal(t, entity.TransactionStatusCompleted, header.Status)
	assert.Equal(t, testSupplierID, header.SupplierID)
	assert.Equal(t, "FAC-001", header.InvoiceNumber)

	items := env.world.items[resp.TransactionID]
	require.Len(t, items, 2)
	assert.Equal(t, testProductA, items[0].ProductID, "las líneas conservan el orden recibido")
	require.NotNil(t, items[0].ExpireDate)
	assert.Equal(t, expire, items[0].ExpireDate.Format("2006-01-02"))
	require.NotNil(t, items[0].SellingPrice)
	assert.True(t, items[0].SellingPrice.Equal(selling))
	assert.Nil(t, items[1].ExpireDate)

	assert.True(t, env.stockOf(testProductA).Equal(dec("100")))
	assert.True(t, env.stockOf(testProductB).Equal(dec("40")))
}

// Caso: la entrada es aditiva sobre stock ya existente.
func TestRecordIncome_SumaSobreStockExistente(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.engine.RecordIncome(ctx, incomeOf(testProductA, "100", "1800"))
	require.NoError(t, err)
	_, err = env.engine.RecordIncome(ctx, incomeOf(testProductA, "25", "1750"))
	require.NoError(t, err)

	assert.True(t, env.stockOf(testProductA).Equal(dec("125")))
}

// Caso: el proveedor es opcional en la entrada.
func TestRecordIncome_SinProveedor(t *testing.T) {
	env := newTestEnv(t)
	in := incomeOf(testProductA, "10", "1000")
	in.SupplierID = ""

	resp, err := env.engine.RecordIncome(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, env.world.transactions[resp.TransactionID].SupplierID)
}

// Caso: entradas inválidas se rechazan antes de tocar el mundo.
func TestRecordIncome_Validacion(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(in *dto.IncomeRequest)
		wantCode domain.Code
	}{
		{
			name:     "sin líneas",
			mutate:   func(in *dto.IncomeRequest) { in.Items = nil },
			wantCode: domain.CodeValidation,
		},
		{
			name:     "fecha inválida",
			mutate:   func(in *dto.IncomeRequest) { in.Date = "15/08/2026" },
			wantCode: domain.CodeValidation,
		},
		{
			name:     "cantidad cero",
			mutate:   func(in *dto.IncomeRequest) { in.Items[0].Quantity = decimal.Zero },
			wantCode: domain.CodeValidation,
		},
		{
			name:     "cantidad negativa",
			mutate:   func(in *dto.IncomeRequest) { in.Items[0].Quantity = dec("-5") },
			wantCode: domain.CodeValidation,
		},
		{
			name:     "precio negativo",
			mutate:   func(in *dto.IncomeRequest) { in.Items[0].Price = dec("-1") },
			wantCode: domain.CodeValidation,
		},
		{
			name:     "fecha de vencimiento inválida",
			mutate:   func(in *dto.IncomeRequest) { in.Items[0].ExpireDate = "mañana" },
			wantCode: domain.CodeValidation,
		},
		{
			name:     "bodega inexistente",
			mutate:   func(in *dto.IncomeRequest) { in.WarehouseID = "wh-nope" },
			wantCode: domain.CodeWarehouseNotFound,
		},
		{
			name:     "bodega inactiva",
			mutate:   func(in *dto.IncomeRequest) { in.WarehouseID = "wh-inactive" },
			wantCode: domain.CodeWarehouseNotFound,
		},
		{
			name:     "proveedor inactivo",
			mutate:   func(in *dto.IncomeRequest) { in.SupplierID = "sup-inactive" },
			wantCode: domain.CodeSupplierNotFound,
		},
		{
			name:     "producto inexistente",
			mutate:   func(in *dto.IncomeRequest) { in.Items[0].ProductID = "prod-nope" },
			wantCode: domain.CodeProductNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			in := incomeOf(testProductA, "10", "1000")
			tc.mutate(&in)

			resp, err := env.engine.RecordIncome(context.Background(), in)
			assert.Nil(t, resp)
			assert.Equal(t, tc.wantCode, domain.CodeOf(err))
			assert.Empty(t, env.world.transactions, "el rechazo no debe dejar rastro en el libro")
			assert.Empty(t, env.world.stocks, "el rechazo no debe tocar el stock")
		})
	}
}

// Caso: precio cero es válido (bonificaciones).
func TestRecordIncome_PrecioCeroEsValido(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.engine.RecordIncome(context.Background(), incomeOf(testProductA, "10", "0"))
	require.NoError(t, err)
	assert.True(t, env.stockOf(testProductA).Equal(dec("10")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas (OUT)
// ──────────────────────────────────────────────────────────────────────────────

// Caso: la venta descuenta stock y devuelve líneas con importe y total.
func TestRecordSale_DescuentaStockYCalculaTotal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.engine.RecordIncome(ctx, incomeOf(testProductA, "100", "5"))
	require.NoError(t, err)
	_, err = env.engine.RecordIncome(ctx, incomeOf(testProductB, "50", "10"))
	require.NoError(t, err)

	resp, err := env.engine.RecordSale(ctx, dto.SaleRequest{
		WarehouseID:   testWarehouseID,
		InvoiceNumber: "VTA-001",
		Date:          testDate,
		Items: []dto.SaleItemRequest{
			{ProductID: testProductA, Quantity: dec("30"), Price: dec("7")},
			{ProductID: testProductB, Quantity: dec("5"), Price: dec("12")},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)

	assert.Equal(t, "Arroz 500g", resp.Items[0].ProductName)
	assert.True(t, resp.Items[0].Amount.Equal(dec("210")), "30 × 7 = 210")
	assert.True(t, resp.Items[1].Amount.Equal(dec("60")), "5 × 12 = 60")
	assert.True(t, resp.TotalAmount.Equal(dec("270")))

	assert.True(t, env.stockOf(testProductA).Equal(dec("70")))
	assert.True(t, env.stockOf(testProductB).Equal(dec("45")))

	header := env.world.transactions[resp.TransactionID]
	require.NotNil(t, header)
	assert.Equal(t, entity.TransactionTypeOut, header.Type)
	assert.Empty(t, header.SupplierID, "una venta nunca lleva proveedor")
}

// Caso: vender más de lo disponible se rechaza y no deja rastro.
func TestRecordSale_StockInsuficiente(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.engine.RecordIncome(ctx, incomeOf(testProductA, "10", "5"))
	require.NoError(t, err)

	resp, err := env.engine.RecordSale(ctx, saleOf(testProductA, "11", "7"))
	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeInsufficientStock, domain.CodeOf(err))
	assert.Contains(t, err.Error(), "Arroz 500g", "el error identifica el producto por nombre")

	assert.True(t, env.stockOf(testProductA).Equal(dec("10")), "el stock no debe cambiar")
	assert.Len(t, env.world.transactions, 1, "solo la entrada original debe existir en el libro")
}

// Caso: vender exactamente el stock disponible lo deja en cero (fila viva).
func TestRecordSale_StockExactoQuedaEnCero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.engine.RecordIncome(ctx, incomeOf(testProductA, "10", "5"))
	require.NoError(t, err)

	_, err = env.engine.RecordSale(ctx, saleOf(testProductA, "10", "7"))
	require.NoError(t, err)

	assert.True(t, env.hasStockRow(testProductA), "la fila de stock no se elimina al llegar a cero")
	assert.True(t, env.stockOf(testProductA).IsZero())
}

// Caso: vender un producto sin fila de stock es fatal.
func TestRecordSale_SinFilaDeStock(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.engine.RecordSale(context.Background(), saleOf(testProductA, "1", "7"))
	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeStockNotFound, domain.CodeOf(err))
	assert.Empty(t, env.world.transactions)
}

// Caso: si la segunda línea falla, la primera ya descontada se revierte
// completa (atomicidad del lote).
func TestRecordSale_FalloEnSegundaLineaRevierteTodo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.engine.RecordIncome(ctx, incomeOf(testProductA, "100", "5"))
	require.NoError(t, err)
	_, err = env.engine.RecordIncome(ctx, incomeOf(testProductB, "3", "10"))
	require.NoError(t, err)

	resp, err := env.engine.RecordSale(ctx, dto.SaleRequest{
		WarehouseID:   testWarehouseID,
		InvoiceNumber: "VTA-002",
		Date:          testDate,
		Items: []dto.SaleItemRequest{
			{ProductID: testProductA, Quantity: dec("30"), Price: dec("7")},
			{ProductID: testProductB, Quantity: dec("5"), Price: dec("12")}, // solo hay 3
		},
	})
	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeInsufficientStock, domain.CodeOf(err))

	assert.True(t, env.stockOf(testProductA).Equal(dec("100")), "la primera línea debe revertirse")
	assert.True(t, env.stockOf(testProductB).Equal(dec("3")))
	assert.Len(t, env.world.transactions, 2, "la cabecera de la venta no debe quedar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

// Caso: cancelar una venta restaura el stock y marca CANCELED; las líneas
// quedan intactas como registro histórico.
func TestCancel_VentaRestauraStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.engine.RecordIncome(ctx, incomeOf(testProductA, "100", "5"))
	require.NoError(t, err)
	sale, err := env.engine.RecordSale(ctx, saleOf(testProductA, "30", "7"))
	require.NoError(t, err)
	require.True(t, env.stockOf(testProductA).Equal(dec("70")))

	require.NoError(t, env.engine.CancelTransaction(ctx, sale.TransactionID))

	assert.True(t, env.stockOf(testProductA).Equal(dec("100")))
	assert.Equal(t, entity.TransactionStatusCanceled, env.world.transactions[sale.TransactionID].Status)
	assert.Len(t, env.world.items[sale.TransactionID], 1, "las líneas no se tocan al cancelar")
}

// Caso: cancelar una entrada descuenta el stock que aportó.
func TestCancel_EntradaRevierteStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	income, err := env.engine.RecordIncome(ctx, incomeOf(testProductA, "100", "5"))
	require.NoError(t, err)

	require.NoError(t, env.engine.CancelTransaction(ctx, income.TransactionID))

	assert.True(t, env.stockOf(testProductA).IsZero())
	assert.Equal(t, entity.TransactionStatusCanceled, env.world.transactions[income.TransactionID].Status)
}

// Caso: cancelar una entrada cuyo stock ya se vendió parcialmente falla por
// insuficiencia y deja la transacción COMPLETED (rollback del marcado).
func TestCancel_EntradaConStockYaVendidoFalla(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	income, err := env.engine.RecordIncome(ctx, incomeOf(testProductA, "100", "5"))
	require.NoError(t, err)
	_, err = env.engine.RecordSale(ctx, saleOf(testProductA, "40", "7"))
	require.NoError(t, err)

	err = env.engine.CancelTransaction(ctx, income.TransactionID)
	assert.Equal(t, domain.CodeInsufficientStock, domain.CodeOf(err))

	assert.Equal(t, entity.TransactionStatusCompleted, env.world.transactions[income.TransactionID].Status,
		"la cancelación fallida no debe dejar la transacción cancelada")
	assert.True(t, env.stockOf(testProductA).Equal(dec("60")), "el stock no debe cambiar")
}

// Caso: cancelar una venta siempre puede completarse, incluso con stock en cero.
func TestCancel_VentaConStockEnCero(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.engine.RecordIncome(ctx, incomeOf(testProductA, "10", "5"))
	require.NoError(t, err)
	sale, err := env.engine.RecordSale(ctx, saleOf(testProductA, "10", "7"))
	require.NoError(t, err)
	require.True(t, env.stockOf(testProductA).IsZero())

	require.NoError(t, env.engine.CancelTransaction(ctx, sale.TransactionID))
	assert.True(t, env.stockOf(testProductA).Equal(dec("10")))
}

// Caso: CANCELED es terminal; el segundo intento falla y no toca el stock.
func TestCancel_DobleCancelacion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.engine.RecordIncome(ctx, incomeOf(testProductA, "100", "5"))
	require.NoError(t, err)
	sale, err := env.engine.RecordSale(ctx, saleOf(testProductA, "30", "7"))
	require.NoError(t, err)

	require.NoError(t, env.engine.CancelTransaction(ctx, sale.TransactionID))
	require.True(t, env.stockOf(testProductA).Equal(dec("100")))

	err = env.engine.CancelTransaction(ctx, sale.TransactionID)
	assert.Equal(t, domain.CodeAlreadyCanceled, domain.CodeOf(err))
	assert.True(t, env.stockOf(testProductA).Equal(dec("100")), "la reversión no debe aplicarse dos veces")
}

// Caso: cancelar una transacción inexistente.
func TestCancel_TransaccionInexistente(t *testing.T) {
	env := newTestEnv(t)
	err := env.engine.CancelTransaction(context.Background(), "tx-nope")
	assert.Equal(t, domain.CodeTransactionNotFound, domain.CodeOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo completo
// ──────────────────────────────────────────────────────────────────────────────

// Entrada de 100 → venta de 30 a 7 (total 210, stock 70) → cancelar la venta
// (stock 100) → cancelar la entrada (stock 0).
func TestCicloCompleto(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	income, err := env.engine.RecordIncome(ctx, incomeOf(testProductA, "100", "5"))
	require.NoError(t, err)
	require.True(t, env.stockOf(testProductA).Equal(dec("100")))

	sale, err := env.engine.RecordSale(ctx, saleOf(testProductA, "30", "7"))
	require.NoError(t, err)
	require.True(t, sale.TotalAmount.Equal(dec("210")))
	require.True(t, env.stockOf(testProductA).Equal(dec("70")))

	require.NoError(t, env.engine.CancelTransaction(ctx, sale.TransactionID))
	require.True(t, env.stockOf(testProductA).Equal(dec("100")))

	require.NoError(t, env.engine.CancelTransaction(ctx, income.TransactionID))
	assert.True(t, env.stockOf(testProductA).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Número único
// ──────────────────────────────────────────────────────────────────────────────

// Caso: una colisión del número único reintenta la operación con otro número.
func TestNumeroUnico_ReintentaTrasColision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.world.usedNumbers["111111111111"] = true
	env.numbers = []string{"111111111111", "222222222222"}

	resp, err := env.engine.RecordIncome(ctx, incomeOf(testProductA, "10", "5"))
	require.NoError(t, err)
	assert.Equal(t, "222222222222", resp.UniqueNumber)
	assert.True(t, env.stockOf(testProductA).Equal(dec("10")), "el reintento no debe duplicar el efecto sobre el stock")
}

// Caso: agotar los reintentos devuelve conflicto y no deja rastro.
func TestNumeroUnico_AgotaReintentos(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.world.usedNumbers["111111111111"] = true
	env.numbers = []string{"111111111111", "111111111111", "111111111111"}

	resp, err := env.engine.RecordIncome(ctx, incomeOf(testProductA, "10", "5"))
	assert.Nil(t, resp)
	assert.Equal(t, domain.CodeNumberConflict, domain.CodeOf(err))
	assert.Empty(t, env.world.transactions)
	assert.Empty(t, env.world.stocks)
}
