package notifier_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/notifier"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// ─────────────────────────── fakes ───────────────────────────

type fakeStatsRepo struct {
	repository.StatisticsRepository

	mu    sync.Mutex
	items []repository.ExpiringItemRow
	err   error
	calls int
}

func (f *fakeStatsRepo) ExpiringItems(_ context.Context, _ int) ([]repository.ExpiringItemRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.items, f.err
}

func (f *fakeStatsRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeMessenger struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeMessenger) SendMessage(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeMessenger) sentMessages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Writer: io.Discard})
}

func expiringRows() []repository.ExpiringItemRow {
	return []repository.ExpiringItemRow{
		{
			ProductID:     "prod-arroz",
			ProductName:   "Arroz 500g",
			WarehouseID:   "wh-001",
			WarehouseName: "Bodega Central",
			ExpireDate:    time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC),
			StockQuantity: decimal.NewFromInt(40),
		},
		{
			ProductID:     "prod-leche",
			ProductName:   "Leche entera 1L",
			WarehouseID:   "wh-002",
			WarehouseName: "Sucursal Norte",
			ExpireDate:    time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC),
			StockQuantity: decimal.RequireFromString("12.5"),
		},
	}
}

// ─────────────────────────── ComposeMessage ───────────────────────────

func TestComposeMessage_UnaLineaPorProducto(t *testing.T) {
	got := notifier.ComposeMessage(expiringRows(), 3)

	assert.Contains(t, got, "siguientes 3 días")
	assert.Contains(t, got, "- Arroz 500g en Bodega Central: vence 2025-09-03 (stock 40)")
	assert.Contains(t, got, "- Leche entera 1L en Sucursal Norte: vence 2025-09-05 (stock 12.5)")
}

// ─────────────────────────── ciclo del notificador ───────────────────────────

func TestStart_EnviaAlertaInmediata(t *testing.T) {
	repo := &fakeStatsRepo{items: expiringRows()}
	msgr := &fakeMessenger{}
	n := notifier.New(repo, msgr, testLogger(), time.Hour, 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	n.Start(ctx)

	require.Eventually(t, func() bool {
		return len(msgr.sentMessages()) == 1
	}, time.Second, 10*time.Millisecond, "el primer chequeo corre sin esperar el ticker")
	assert.Contains(t, msgr.sentMessages()[0], "Arroz 500g")
}

func TestStart_SinVencimientosNoEnvia(t *testing.T) {
	repo := &fakeStatsRepo{}
	msgr := &fakeMessenger{}
	n := notifier.New(repo, msgr, testLogger(), time.Hour, 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	n.Start(ctx)

	require.Eventually(t, func() bool {
		return repo.callCount() >= 1
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, msgr.sentMessages())
}

func TestStart_ErrorDeConsultaNoTumbaElBucle(t *testing.T) {
	repo := &fakeStatsRepo{err: errors.New("conexión perdida")}
	msgr := &fakeMessenger{}
	n := notifier.New(repo, msgr, testLogger(), 20*time.Millisecond, 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	n.Start(ctx)

	// Tras el error inicial, el ticker sigue disparando chequeos.
	require.Eventually(t, func() bool {
		return repo.callCount() >= 3
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, msgr.sentMessages())
}

func TestStart_CancelarContextoDetiene(t *testing.T) {
	repo := &fakeStatsRepo{}
	msgr := &fakeMessenger{}
	n := notifier.New(repo, msgr, testLogger(), 20*time.Millisecond, 3)

	ctx, cancel := context.WithCancel(context.Background())
	n.Start(ctx)

	require.Eventually(t, func() bool {
		return repo.callCount() >= 1
	}, time.Second, 10*time.Millisecond)
	cancel()

	time.Sleep(60 * time.Millisecond)
	calls := repo.callCount()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, calls, repo.callCount(), "tras cancelar no debe haber más chequeos")
}
