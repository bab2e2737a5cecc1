// Package notifier implementa la alerta periódica de productos próximos a
// vencer: consulta las líneas de entrada con vencimiento dentro de la ventana
// de aviso y stock vivo, y envía el resumen por mensajería.
package notifier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// Messenger puerto de salida del notificador (Telegram en producción).
type Messenger interface {
	SendMessage(ctx context.Context, text string) error
}

// Notifier corre el chequeo de vencimientos en un ticker.
type Notifier struct {
	statsRepo   repository.StatisticsRepository
	messenger   Messenger
	log         *logger.Logger
	interval    time.Duration
	warningDays int
}

// New construye el notificador.
func New(
	statsRepo repository.StatisticsRepository,
	messenger Messenger,
	log *logger.Logger,
	interval time.Duration,
	warningDays int,
) *Notifier {
	return &Notifier{
		statsRepo:   statsRepo,
		messenger:   messenger,
		log:         log,
		interval:    interval,
		warningDays: warningDays,
	}
}

// Start lanza el bucle en una goroutine propia y retorna. El bucle hace un
// chequeo inmediato y luego uno por intervalo, hasta que ctx se cancele.
func (n *Notifier) Start(ctx context.Context) {
	go func() {
		n.runOnce(ctx)
		ticker := time.NewTicker(n.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				n.log.Info().Msg("notificador de vencimientos detenido")
				return
			case <-ticker.C:
				n.runOnce(ctx)
			}
		}
	}()
}

// runOnce ejecuta un chequeo. Los errores se loguean y no tumban el bucle.
func (n *Notifier) runOnce(ctx context.Context) {
	items, err := n.statsRepo.ExpiringItems(ctx, n.warningDays)
	if err != nil {
		n.log.Error().Err(err).Msg("consultando productos próximos a vencer")
		return
	}
	if len(items) == 0 {
		n.log.Debug().Msg("sin productos próximos a vencer")
		return
	}
	if err := n.messenger.SendMessage(ctx, ComposeMessage(items, n.warningDays)); err != nil {
		n.log.Error().Err(err).Int("items", len(items)).Msg("enviando alerta de vencimientos")
		return
	}
	n.log.Info().Int("items", len(items)).Msg("alerta de vencimientos enviada")
}

// ComposeMessage arma el texto de la alerta, una línea por producto.
func ComposeMessage(items []repository.ExpiringItemRow, warningDays int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ Productos próximos a vencer (siguientes %d días):\n", warningDays)
	for _, item := range items {
		fmt.Fprintf(&b, "- %s en %s: vence %s (stock %s)\n",
			item.ProductName,
			item.WarehouseName,
			item.ExpireDate.Format("2006-01-02"),
			item.StockQuantity.String(),
		)
	}
	return b.String()
}
