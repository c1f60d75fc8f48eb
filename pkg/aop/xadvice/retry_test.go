package xadvice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xaop/pkg/aop/xadvice"
	"github.com/omeyang/xaop/pkg/aop/xintercept"
)

func fastRetry(t *testing.T, opts ...xadvice.Option) xintercept.Interceptor {
	t.Helper()
	logger, _ := newLogger(t)
	return xadvice.Retry(append([]xadvice.Option{
		xadvice.WithLogger(logger),
		xadvice.WithDelay(time.Microsecond, time.Millisecond),
	}, opts...)...)
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	down := &counter{failures: 2}
	out, err := fastRetry(t)(context.Background(), inv("Save"), down.handler)
	require.NoError(t, err)
	assert.Equal(t, []any{"Save", int64(3)}, out)
}

func TestRetry_ReturnsLastError(t *testing.T) {
	down := &counter{failures: 10}
	_, err := fastRetry(t, xadvice.WithAttempts(4))(context.Background(), inv("Save"), down.handler)
	require.ErrorIs(t, err, errDown)
	assert.Equal(t, int64(4), down.calls.Load())
}

func TestRetry_RetryIf(t *testing.T) {
	down := &counter{failures: 10}
	ic := fastRetry(t, xadvice.WithRetryIf(func(err error) bool { return !errors.Is(err, errDown) }))
	_, err := ic(context.Background(), inv("Save"), down.handler)
	require.ErrorIs(t, err, errDown)
	assert.Equal(t, int64(1), down.calls.Load())
}

func TestRetry_ContextCanceledNotRetried(t *testing.T) {
	var calls int
	ic := fastRetry(t)
	_, err := ic(context.Background(), inv("Save"), func(context.Context, *xintercept.Invocation) ([]any, error) {
		calls++
		return nil, context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
