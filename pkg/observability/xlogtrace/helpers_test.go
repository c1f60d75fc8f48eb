package xlogtrace_test

import (
	"bytes"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/omeyang/xaop/pkg/observability/xlog"
	"github.com/omeyang/xaop/pkg/observability/xlogtrace"
)

// stepClock 每次调用前进 step
func stepClock(step time.Duration) func() time.Time {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var n atomic.Int64
	return func() time.Time {
		return base.Add(time.Duration(n.Add(1)-1) * step)
	}
}

// seqIDs 依次返回 tx-1, tx-2 ...
func seqIDs() func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("tx-%d", n.Add(1)) }
}

func newTestTracer(t *testing.T) (*xlogtrace.Tracer, *xlogtrace.MemorySink, *bytes.Buffer) {
	t.Helper()
	sink := xlogtrace.NewMemorySink()
	var logs bytes.Buffer
	logger, _, err := xlog.New().SetOutput(&logs).SetLevel(xlog.LevelDebug).Build()
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	tr := xlogtrace.New(
		xlogtrace.WithSink(sink),
		xlogtrace.WithClock(stepClock(time.Millisecond)),
		xlogtrace.WithIDGenerator(seqIDs()),
		xlogtrace.WithLogger(logger),
	)
	return tr, sink, &logs
}
