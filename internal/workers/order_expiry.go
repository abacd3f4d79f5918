package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/service"
)

// OrderExpiryWorker cancels orders that stayed pending longer than ttl.
// Cancellation restocks their items.
type OrderExpiryWorker struct {
	orders   service.OrderService
	interval time.Duration
	ttl      time.Duration

	now    func() time.Time
	logger *logger.Logger
}

func NewOrderExpiryWorker(orders service.OrderService, interval, ttl time.Duration, logger *logger.Logger) *OrderExpiryWorker {
	return &OrderExpiryWorker{
		orders:   orders,
		interval: interval,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Run sweeps once right away and then on every tick. A failed sweep is
// logged and retried on the next tick.
func (w *OrderExpiryWorker) Run(ctx context.Context) error {
	log := w.logger.With().Str("worker", "order_expiry").Logger()
	log.Info().Dur("interval", w.interval).Dur("ttl", w.ttl).Msg("order expiry worker started")

	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("order expiry worker stopped")
			return nil
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *OrderExpiryWorker) sweep(ctx context.Context) {
	cutoff := w.now().Add(-w.ttl)

	expired, err := w.orders.ExpirePendingOrders(ctx, cutoff)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Err(err).Str("func", "*OrderExpiryWorker.sweep").Msg("expiring pending orders failed")
		return
	}
	if expired > 0 {
		w.logger.Info().Int("expired", expired).Time("cutoff", cutoff).Msg("pending orders cancelled")
	}
}
