package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-ferrari-store/internal/logger"
)

func TestDB_withRetry(t *testing.T) {
	restore := retryDelays
	retryDelays = []time.Duration{time.Millisecond, time.Millisecond}
	t.Cleanup(func() { retryDelays = restore })

	db := &DB{errorClassificator: NewPostgresErrorClassifier(), logger: logger.Nop()}

	t.Run("retries transient errors until success", func(t *testing.T) {
		calls := 0
		err := db.withRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return pgError(pgerrcode.SerializationFailure)
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the last delay", func(t *testing.T) {
		calls := 0
		err := db.withRetry(context.Background(), func() error {
			calls++
			return pgError(pgerrcode.DeadlockDetected)
		})
		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		calls := 0
		permanent := errors.New("syntax error")
		err := db.withRetry(context.Background(), func() error {
			calls++
			return permanent
		})
		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := db.withRetry(ctx, func() error {
			return pgError(pgerrcode.SerializationFailure)
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
