//go:build e2e

package e2e

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xaop/internal/app"
	"github.com/omeyang/xaop/internal/demo/orderv1"
	"github.com/omeyang/xaop/pkg/aop/xautowrap"
	"github.com/omeyang/xaop/pkg/aop/xintercept"
	"github.com/omeyang/xaop/pkg/aop/xpointcut"
	"github.com/omeyang/xaop/pkg/aop/xproxy"
	"github.com/omeyang/xaop/pkg/config/xconf"
	"github.com/omeyang/xaop/pkg/observability/xlog"
	"github.com/omeyang/xaop/pkg/observability/xlogtrace"
)

const demoPrefix = "github.com/omeyang/xaop/internal/demo"

func startApp(t *testing.T) *app.App {
	t.Helper()
	s := xconf.DefaultSettings()
	s.Trace.Sink = xconf.SinkMemory
	s.Autowrap = []xconf.AutowrapRule{{Prefix: demoPrefix, Patterns: []string{"Request*", "Order*", "Save*"}}}

	a, err := app.New(context.Background(), s, app.WithLogOutput(&strings.Builder{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func controller(t *testing.T, a *app.App, variant string) app.Controller {
	t.Helper()
	c, err := a.Controller(variant)
	require.NoError(t, err)
	return c
}

// checkPairing 每棵调用树中进入行与退出行按栈配对，层级逐级嵌套
func checkPairing(t *testing.T, lines []xlogtrace.Line) {
	t.Helper()
	var stack []xlogtrace.Line
	for _, l := range lines {
		if l.Kind == xlogtrace.KindBegin {
			require.Equal(t, len(stack), l.ID.Level, l.Text)
			stack = append(stack, l)
			continue
		}
		require.NotEmpty(t, stack, "exit without entry: %s", l.Text)
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		assert.Equal(t, top.Label, l.Label)
		assert.Equal(t, top.ID, l.ID)
	}
	assert.Empty(t, stack, "unclosed entries")
}

func TestPairingAndSelectiveTracing(t *testing.T) {
	a := startApp(t)
	for _, variant := range []string{app.VariantInterface, app.VariantConcrete} {
		t.Run(variant, func(t *testing.T) {
			a.Memory.Reset()
			c := controller(t, a, variant)

			for _, item := range []string{"item", orderv1.ItemFailSave, orderv1.ItemBad} {
				_, _ = c.Request(xlogtrace.NewContext(context.Background()), item)
			}
			assert.Equal(t, "ok", c.NoLog())

			byTx := a.Memory.ByTx()
			require.Len(t, byTx, 3)
			for _, lines := range byTx {
				checkPairing(t, lines)
			}
			for _, l := range a.Memory.Lines() {
				assert.NotContains(t, l.Label, "NoLog")
			}
		})
	}
}

func TestTransparency(t *testing.T) {
	a := startApp(t)
	raw := orderv1.NewController(orderv1.NewService(orderv1.NewRepository(0)))
	proxied := controller(t, a, app.VariantInterface)

	for _, item := range []string{"item", orderv1.ItemFailSave, orderv1.ItemBad, ""} {
		want, wantErr := raw.Request(context.Background(), item)
		got, gotErr := proxied.Request(context.Background(), item)
		assert.Equal(t, want, got, item)
		assert.Equal(t, wantErr, gotErr, item)
	}
	assert.Equal(t, raw.NoLog(), proxied.NoLog())
}

func TestErrorPassthrough(t *testing.T) {
	a := startApp(t)
	c := controller(t, a, app.VariantInterface)

	_, err := c.Request(context.Background(), orderv1.ItemBad)
	var iae *orderv1.IllegalArgumentError
	require.ErrorAs(t, err, &iae)
	assert.Equal(t, orderv1.ItemBad, iae.Error())

	var serviceFails, repoLines int
	for _, l := range a.Memory.Lines() {
		if l.Kind == xlogtrace.KindFail && l.Label == "OrderService.OrderItem()" {
			serviceFails++
			assert.Same(t, iae, l.Err, "the recorded error is the returned error")
		}
		if strings.Contains(l.Label, "OrderRepository") {
			repoLines++
		}
	}
	assert.Equal(t, 1, serviceFails)
	assert.Zero(t, repoLines, "the repository is never reached")
}

func TestIdempotentWrapping(t *testing.T) {
	a := startApp(t)
	c := controller(t, a, app.VariantInterface)

	registry, err := xautowrap.NewPostProcessor(demoPrefix,
		xproxy.NewAdvisor(xpointcut.NameMatch("Request*"), xlogtrace.NewInterceptor(a.Tracer)))
	require.NoError(t, err)
	again, err := registry.AfterConstruction(c, orderv1.NameController)
	require.NoError(t, err)

	wrapped, ok := again.(orderv1.OrderController)
	require.True(t, ok)
	assert.Same(t, xproxy.Unwrap(c), xproxy.Unwrap(wrapped))

	a.Memory.Reset()
	_, err = wrapped.Request(context.Background(), "item")
	require.NoError(t, err)

	assert.Equal(t, 2, requestBegins(a.Memory), "a second distinct advisor adds one layer; the existing one is not duplicated")

	// 用相同的 Advisor 再包装一次，拦截层数不变
	same, err := xproxy.NewFactory(xproxy.WithAdvisors(xproxy.DispatcherOf(wrapped).Advisors()...)).Proxy(wrapped)
	require.NoError(t, err)
	assert.Len(t, xproxy.DispatcherOf(same).Advisors(), len(xproxy.DispatcherOf(wrapped).Advisors()))

	a.Memory.Reset()
	_, err = same.(orderv1.OrderController).Request(context.Background(), "item")
	require.NoError(t, err)
	assert.Equal(t, 2, requestBegins(a.Memory))
}

func requestBegins(m *xlogtrace.MemorySink) int {
	var n int
	for _, l := range m.Lines() {
		if l.Kind == xlogtrace.KindBegin && l.Label == "OrderController.Request()" {
			n++
		}
	}
	return n
}

func TestConcurrentIsolation(t *testing.T) {
	a := startApp(t)
	c := controller(t, a, app.VariantConcrete)

	const callers = 16
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			item := "item"
			if i%3 == 0 {
				item = orderv1.ItemFailSave
			}
			_, _ = c.Request(xlogtrace.NewContext(context.Background()), item)
		}()
	}
	wg.Wait()

	byTx := a.Memory.ByTx()
	require.Len(t, byTx, callers)
	for tx, lines := range byTx {
		require.Len(t, lines, 6, tx)
		checkPairing(t, lines)
	}
}

func TestChainOrdering(t *testing.T) {
	var (
		mu    sync.Mutex
		trail []string
	)
	record := func(name string) xintercept.Interceptor {
		return func(ctx context.Context, inv *xintercept.Invocation, next xintercept.Handler) ([]any, error) {
			mu.Lock()
			trail = append(trail, name+">")
			mu.Unlock()
			out, err := next(ctx, inv)
			mu.Lock()
			trail = append(trail, "<"+name)
			mu.Unlock()
			return out, err
		}
	}
	registry, err := xautowrap.NewPostProcessor(demoPrefix,
		xproxy.NewAdvisor(xpointcut.True, record("A")),
		xproxy.NewAdvisor(xpointcut.True, record("B")),
		xproxy.NewAdvisor(xpointcut.True, record("C")),
	)
	require.NoError(t, err)
	p, err := registry.AfterConstruction(orderv1.NewRepository(0), orderv1.NameRepository)
	require.NoError(t, err)

	require.NoError(t, p.(orderv1.OrderRepository).Save(context.Background(), "item"))
	assert.Equal(t, []string{"A>", "B>", "C>", "<C", "<B", "<A"}, trail)

	trail = nil
	err = p.(orderv1.OrderRepository).Save(context.Background(), orderv1.ItemFailSave)
	var ise *orderv1.IllegalStateError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, []string{"A>", "B>", "C>", "<C", "<B", "<A"}, trail, "errors unwind through every layer")
}

type captureHandler struct {
	mu   sync.Mutex
	txID []string
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "tx_id" {
			h.mu.Lock()
			h.txID = append(h.txID, a.Value.String())
			h.mu.Unlock()
		}
		return true
	})
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func TestLogsInsideTracedCallsCarryTxID(t *testing.T) {
	capture := &captureHandler{}
	enrich, err := xlog.NewEnrichHandler(capture)
	require.NoError(t, err)
	logger := slog.New(enrich)

	sink := xlogtrace.NewMemorySink()
	tracer := xlogtrace.New(xlogtrace.WithSink(sink))
	inner := func(ctx context.Context, inv *xintercept.Invocation, next xintercept.Handler) ([]any, error) {
		logger.InfoContext(ctx, fmt.Sprintf("inside %s", inv.Signature()))
		return next(ctx, inv)
	}
	registry, err := xautowrap.NewPostProcessor(demoPrefix,
		xproxy.NewAdvisor(xpointcut.True, xlogtrace.NewInterceptor(tracer)),
		xproxy.NewAdvisor(xpointcut.True, inner),
	)
	require.NoError(t, err)
	p, err := registry.AfterConstruction(orderv1.NewRepository(0), orderv1.NameRepository)
	require.NoError(t, err)
	require.NoError(t, p.(orderv1.OrderRepository).Save(context.Background(), "item"))

	lines := sink.Lines()
	require.Len(t, lines, 2)
	require.Len(t, capture.txID, 1)
	assert.Equal(t, lines[0].ID.TxID, capture.txID[0])
}

func TestUnwrappableTargetIsFatal(t *testing.T) {
	type unstubbed struct{ orderv1.Repository }

	registry, err := xautowrap.NewPostProcessor("github.com/omeyang/xaop/internal/e2e",
		xproxy.NewAdvisor(xpointcut.True, xlogtrace.NewInterceptor(nil)))
	require.NoError(t, err)
	c := xautowrap.NewContainer()
	require.NoError(t, c.AddHook(registry))
	require.NoError(t, c.ProvideValue("unstubbed", &unstubbed{}))

	err = c.Start(context.Background())
	require.ErrorIs(t, err, xautowrap.ErrStartFailed)
	require.ErrorIs(t, err, xproxy.ErrUnproxyable)
	assert.True(t, errors.Is(err, xautowrap.ErrWrapFailed))
}
