package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
)

const defaultCartSyncInterval = time.Minute

// LocalCartSyncer is the part of [ClientCartService] the background job needs.
type LocalCartSyncer interface {
	SyncLocalCart(ctx context.Context) error
}

type cartSyncJob struct {
	syncer LocalCartSyncer
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCartSyncJob creates a cartSyncJob that calls syncer.SyncLocalCart on a
// ticker. The job is idle until Start is called.
func NewCartSyncJob(syncer LocalCartSyncer, logger *logger.Logger) CartSyncJob {
	return &cartSyncJob{syncer: syncer, logger: logger}
}

// Start implements CartSyncJob. It stops any previously running job, then
// launches a background goroutine that calls SyncLocalCart every interval.
// The goroutine exits when ctx is cancelled or Stop is called.
func (j *cartSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultCartSyncInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.syncer.SyncLocalCart(jobCtx); err != nil {
					j.logger.Warn().Err(err).Str("func", "cartSyncJob.Start").Msg("cart sync failed")
				}
			}
		}
	}()
}

// Stop implements CartSyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *cartSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
