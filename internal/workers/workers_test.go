// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ferrari-store/internal/config"
	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/MKhiriev/go-ferrari-store/internal/mock"
	"github.com/MKhiriev/go-ferrari-store/internal/service"
)

// ── Workers ──

// blockingWorker runs until ctx is cancelled, or fails right away when err
// is set.
type blockingWorker struct {
	started atomic.Bool
	stopped atomic.Bool
	err     error
}

func (b *blockingWorker) Run(ctx context.Context) error {
	b.started.Store(true)
	defer b.stopped.Store(true)
	if b.err != nil {
		return b.err
	}
	<-ctx.Done()
	return nil
}

func TestWorkers_Run_StopsAllOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	w1, w2 := &blockingWorker{}, &blockingWorker{}
	ws := &Workers{workers: []Worker{w1, w2}, logger: logger.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	require.Eventually(t, func() bool { return w1.started.Load() && w2.started.Load() }, time.Second, time.Millisecond)
	cancel()

	require.NoError(t, <-done)
	assert.True(t, w1.stopped.Load())
	assert.True(t, w2.stopped.Load())
}

func TestWorkers_Run_FailureCancelsOthers(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	healthy, failing := &blockingWorker{}, &blockingWorker{err: boom}
	ws := &Workers{workers: []Worker{healthy, failing}, logger: logger.Nop()}

	err := ws.Run(context.Background())

	require.ErrorIs(t, err, boom)
	assert.True(t, healthy.stopped.Load())
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}

	assert.NoError(t, ws.Run(context.Background()))
}

func TestNewWorkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mock.NewMockOrderService(ctrl)

	ws := NewWorkers(&service.Services{OrderService: orders}, config.Workers{
		OrderExpiryInterval: time.Minute,
		PendingOrderTTL:     48 * time.Hour,
	}, logger.Nop())

	require.Len(t, ws.workers, 1)
	expiry, ok := ws.workers[0].(*OrderExpiryWorker)
	require.True(t, ok)
	assert.Equal(t, time.Minute, expiry.interval)
	assert.Equal(t, 48*time.Hour, expiry.ttl)
}

// ── OrderExpiryWorker ──

func TestOrderExpiryWorker_SweepsWithCutoff(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctrl := gomock.NewController(t)
	orders := mock.NewMockOrderService(ctrl)

	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	ttl := 48 * time.Hour

	var sweeps atomic.Int32
	orders.EXPECT().ExpirePendingOrders(gomock.Any(), now.Add(-ttl)).
		DoAndReturn(func(context.Context, time.Time) (int, error) {
			sweeps.Add(1)
			return 2, nil
		}).MinTimes(2)

	w := NewOrderExpiryWorker(orders, 5*time.Millisecond, ttl, logger.Nop())
	w.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return sweeps.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	require.NoError(t, <-done)
}

func TestOrderExpiryWorker_FailedSweepIsRetried(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctrl := gomock.NewController(t)
	orders := mock.NewMockOrderService(ctrl)

	var calls atomic.Int32
	orders.EXPECT().ExpirePendingOrders(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Time) (int, error) {
			if calls.Add(1) == 1 {
				return 0, errors.New("connection reset")
			}
			return 0, nil
		}).MinTimes(2)

	w := NewOrderExpiryWorker(orders, 5*time.Millisecond, time.Hour, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()
	assert.NoError(t, <-done, "a failed sweep must not stop the worker")
}
