package xadvice_test

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/omeyang/xaop/pkg/aop/xintercept"
	"github.com/omeyang/xaop/pkg/observability/xlog"
)

var errDown = errors.New("downstream down")

func newLogger(t *testing.T) (xlog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, _, err := xlog.New().SetOutput(&buf).SetLevel(xlog.LevelDebug).Build()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	return l, &buf
}

func stepClock(step time.Duration) func() time.Time {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var n atomic.Int64
	return func() time.Time { return base.Add(time.Duration(n.Add(1)-1) * step) }
}

func inv(method string, args ...any) *xintercept.Invocation {
	return &xintercept.Invocation{Type: "OrderService", Method: method, Namespace: "demo", Args: args}
}

// counter 记录调用次数，前 failures 次返回 errDown
type counter struct {
	calls    atomic.Int64
	failures int64
}

func (c *counter) handler(ctx context.Context, inv *xintercept.Invocation) ([]any, error) {
	n := c.calls.Add(1)
	if n <= c.failures {
		return nil, errDown
	}
	return []any{inv.Method, n}, nil
}
