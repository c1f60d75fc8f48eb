package xadvice_test

import (
	"context"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xaop/pkg/aop/xadvice"
	"github.com/omeyang/xaop/pkg/aop/xintercept"
)

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	logger, buf := newLogger(t)
	b := xadvice.Breaker("orders",
		xadvice.WithLogger(logger),
		xadvice.WithTripAfter(2),
		xadvice.WithOpenTimeout(time.Hour),
	)
	ic := b.Interceptor()
	down := &counter{failures: 100}

	for range 2 {
		_, err := ic(context.Background(), inv("Save"), down.handler)
		require.ErrorIs(t, err, errDown, "business errors pass through unchanged")
		assert.False(t, xadvice.IsRejected(err))
	}
	assert.Equal(t, gobreaker.StateOpen, b.State("OrderService.Save()"))

	_, err := ic(context.Background(), inv("Save"), down.handler)
	require.Error(t, err)
	assert.True(t, xadvice.IsOpen(err))
	assert.True(t, xadvice.IsRejected(err))
	var be *xadvice.BreakerError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "orders:OrderService.Save()", be.Name)
	assert.Equal(t, int64(2), down.calls.Load(), "open breaker does not call downstream")
	assert.Contains(t, buf.String(), "xadvice: breaker state changed")

	// 其他方法不受影响
	assert.Equal(t, gobreaker.StateClosed, b.State("OrderService.Load()"))
	ok := &counter{}
	_, err = ic(context.Background(), inv("Load"), ok.handler)
	require.NoError(t, err)
}

func TestBreaker_CanceledContext(t *testing.T) {
	b := xadvice.Breaker("orders")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	down := &counter{}
	_, err := b.Interceptor()(ctx, inv("Save"), down.handler)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), down.calls.Load())
}

func TestBreaker_RetryDoesNotRetryRejections(t *testing.T) {
	logger, _ := newLogger(t)
	b := xadvice.Breaker("orders", xadvice.WithLogger(logger), xadvice.WithTripAfter(1), xadvice.WithOpenTimeout(time.Hour))
	retry := xadvice.Retry(xadvice.WithLogger(logger), xadvice.WithDelay(time.Microsecond, 0), xadvice.WithAttempts(5))

	down := &counter{failures: 100}
	breaker := b.Interceptor()
	_, err := retry(context.Background(), inv("Save"), func(ctx context.Context, i *xintercept.Invocation) ([]any, error) {
		return breaker(ctx, i, down.handler)
	})
	require.Error(t, err)
	assert.True(t, xadvice.IsRejected(err))
	assert.Equal(t, int64(1), down.calls.Load())
}
