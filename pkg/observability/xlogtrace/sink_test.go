package xlogtrace_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/omeyang/xaop/pkg/observability/xlog"
	"github.com/omeyang/xaop/pkg/observability/xlogtrace"
)

func kindIs(k xlogtrace.Kind) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		line, ok := x.(xlogtrace.Line)
		return ok && line.Kind == k
	})
}

func TestTracer_EmitsThroughSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := NewMockSink(ctrl)

	gomock.InOrder(
		sink.EXPECT().Emit(gomock.Any(), kindIs(xlogtrace.KindBegin)),
		sink.EXPECT().Emit(gomock.Any(), kindIs(xlogtrace.KindFail)),
	)

	tr := xlogtrace.New(xlogtrace.WithSink(sink))
	ctx, s := tr.Begin(context.Background(), "A.b()")
	tr.Fail(ctx, s, errors.New("x"))
}

func TestLoggerSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, _, err := xlog.New().SetOutput(&buf).SetFormat("json").Build()
	require.NoError(t, err)

	tr := xlogtrace.New(
		xlogtrace.WithSink(xlogtrace.NewLoggerSink(logger)),
		xlogtrace.WithIDGenerator(func() string { return "cafebabe" }),
		xlogtrace.WithClock(stepClock(2*time.Millisecond)),
	)
	ctx, s := tr.Begin(context.Background(), "OrderRepository.Save()")
	tr.Fail(ctx, s, errors.New("ex"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"INFO"`)
	assert.Contains(t, lines[0], `"msg":"[cafebabe] OrderRepository.Save()"`)
	assert.Contains(t, lines[0], `"tx_id":"cafebabe"`, "enrich handler sees the active transaction")
	assert.Contains(t, lines[1], `"level":"WARN"`)
	assert.Contains(t, lines[1], `"elapsed_ms":2`)
	assert.Contains(t, lines[1], `"error":"ex"`)
	assert.Contains(t, lines[1], `"tx_id":"cafebabe"`, "root exit line still carries tx_id")
}

func TestLoggerSink_DefaultLogger(t *testing.T) {
	xlog.ResetDefault()
	defer xlog.ResetDefault()

	var buf bytes.Buffer
	logger, _, err := xlog.New().SetOutput(&buf).Build()
	require.NoError(t, err)
	xlog.SetDefault(logger)

	tr := xlogtrace.New()
	ctx, s := tr.Begin(context.Background(), "A.b()")
	tr.End(ctx, s)
	assert.Contains(t, buf.String(), "A.b() time=")
}

func TestWriterSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := xlogtrace.New(
		xlogtrace.WithSink(xlogtrace.NewWriterSink(&buf)),
		xlogtrace.WithIDGenerator(func() string { return "t" }),
		xlogtrace.WithClock(stepClock(0)),
	)
	ctx, s := tr.Begin(context.Background(), "A.b()")
	tr.End(ctx, s)
	assert.Equal(t, "[t] A.b()\n[t] A.b() time=0ms\n", buf.String())
}

func TestWriterSink_Color(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink := xlogtrace.NewWriterSink(&buf, xlogtrace.WithColor(true))
	sink.Emit(context.Background(), xlogtrace.Line{Kind: xlogtrace.KindFail, Text: "fail"})
	sink.Emit(context.Background(), xlogtrace.Line{Kind: xlogtrace.KindBegin, Text: "begin"})

	out := buf.String()
	assert.Contains(t, out, "\x1b[31mfail")
	assert.Contains(t, out, "begin\n")
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestWriterSink_WriteError(t *testing.T) {
	t.Parallel()

	var got error
	sink := xlogtrace.NewWriterSink(brokenWriter{}, xlogtrace.WithWriteErrorHandler(func(err error) { got = err }))
	sink.Emit(context.Background(), xlogtrace.Line{Text: "x"})
	require.Error(t, got)
}

func TestWriterSink_LinesDoNotInterleave(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink := xlogtrace.NewWriterSink(&buf)
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				sink.Emit(context.Background(), xlogtrace.Line{Text: "0123456789"})
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 200)
	for _, l := range lines {
		assert.Equal(t, "0123456789", l)
	}
}

func TestMemorySinkAndMulti(t *testing.T) {
	t.Parallel()

	a, b := xlogtrace.NewMemorySink(), xlogtrace.NewMemorySink()
	multi := xlogtrace.MultiSink(a, nil, b)
	multi.Emit(context.Background(), xlogtrace.Line{Text: "x", ID: xlogtrace.TraceID{TxID: "1"}})

	assert.Equal(t, []string{"x"}, a.Texts())
	assert.Equal(t, []string{"x"}, b.Texts())
	assert.Len(t, a.ByTx()["1"], 1)

	a.Reset()
	assert.Empty(t, a.Lines())
}
