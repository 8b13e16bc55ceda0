package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDoStopsOnSuccess(t *testing.T) {
	calls := 0
	var retried []int
	err := Do(context.Background(), Config{
		MaxAttempts:    5,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		OnRetry:        func(attempt int, _ error, _ time.Duration) { retried = append(retried, attempt) },
	}, func() error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestDoReturnsLastError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Do(context.Background(), Config{MaxAttempts: 2, InitialBackoff: time.Millisecond}, func() error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestDoHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, Config{MaxAttempts: 3}, func() error {
		calls++
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestApplyJitterWithoutFactor(t *testing.T) {
	assert.Equal(t, time.Second, applyJitter(time.Second, 0))
	d := applyJitter(time.Second, 0.2)
	assert.GreaterOrEqual(t, d, 800*time.Millisecond)
	assert.Less(t, d, 1200*time.Millisecond)
}
