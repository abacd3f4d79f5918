// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// spyCartSyncer counts SyncLocalCart calls.
type spyCartSyncer struct {
	calls atomic.Int64
	err   error
}

func (s *spyCartSyncer) SyncLocalCart(_ context.Context) error {
	s.calls.Add(1)
	return s.err
}

func newTestSyncJob(syncer LocalCartSyncer) CartSyncJob {
	return NewCartSyncJob(syncer, logger.Nop())
}

func TestNewCartSyncJob_ReturnsInterface(t *testing.T) {
	job := newTestSyncJob(&spyCartSyncer{})
	require.NotNil(t, job)
}

func TestCartSyncJob_Start_CallsSync(t *testing.T) {
	defer goleak.VerifyNone(t)

	spy := &spyCartSyncer{}
	job := newTestSyncJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "SyncLocalCart should run several times, ran %d", got)
}

func TestCartSyncJob_Stop_StopsGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t)

	spy := &spyCartSyncer{}
	job := newTestSyncJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no calls after Stop")
}

func TestCartSyncJob_Stop_Idempotent(t *testing.T) {
	job := newTestSyncJob(&spyCartSyncer{})

	assert.NotPanics(t, func() { job.Stop() })

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()
	assert.NotPanics(t, func() { job.Stop() })
}

func TestCartSyncJob_Start_DefaultInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
	}{
		{name: "zero", interval: 0},
		{name: "negative", interval: -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := &spyCartSyncer{}
			job := newTestSyncJob(spy)

			job.Start(context.Background(), tt.interval)
			time.Sleep(20 * time.Millisecond)
			job.Stop()

			assert.Equal(t, int64(0), spy.calls.Load())
		})
	}
}

func TestCartSyncJob_Restart_KeepsSyncing(t *testing.T) {
	defer goleak.VerifyNone(t)

	spy := &spyCartSyncer{}
	job := newTestSyncJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	callsBefore := spy.calls.Load()
	assert.Greater(t, callsBefore, int64(0))

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore)
}

func TestCartSyncJob_ContextCancel_StopsJob(t *testing.T) {
	job := newTestSyncJob(&spyCartSyncer{})
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancel")
	}
}

func TestCartSyncJob_SyncError_DoesNotStopJob(t *testing.T) {
	spy := &spyCartSyncer{err: assert.AnError}
	job := newTestSyncJob(spy)

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(3))
}
