package xmetrics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"

	"github.com/omeyang/xaop/pkg/aop/xintercept"
	"github.com/omeyang/xaop/pkg/aop/xpointcut"
)

func invocation(method string) *xintercept.Invocation {
	return &xintercept.Invocation{Type: "OrderService", Method: method, Namespace: "demo/order"}
}

func TestInterceptor_RecordsCall(t *testing.T) {
	p := newProviders(t)
	ic := NewInterceptor(p.observer(t))

	out, err := ic(context.Background(), invocation("Save"), func(context.Context, *xintercept.Invocation) ([]any, error) {
		return []any{"ok"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"ok"}, out)

	spans := p.exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "OrderService.Save()", spans[0].Name)
	ns, _ := spanAttr(spans[0].Attributes, "namespace")
	assert.Equal(t, "demo/order", ns)
}

func TestInterceptor_ErrorPassthrough(t *testing.T) {
	p := newProviders(t)
	ic := NewInterceptor(p.observer(t))
	boom := errors.New("boom")

	_, err := ic(context.Background(), invocation("Save"), func(context.Context, *xintercept.Invocation) ([]any, error) {
		return nil, boom
	})
	assert.Same(t, boom, err)

	spans := p.exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

func TestInterceptor_PanicPassthrough(t *testing.T) {
	p := newProviders(t)
	ic := NewInterceptor(p.observer(t))

	assert.PanicsWithValue(t, "kaboom", func() {
		_, _ = ic(context.Background(), invocation("Save"), func(context.Context, *xintercept.Invocation) ([]any, error) {
			panic("kaboom")
		})
	})

	spans := p.exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	isPanic, _ := spanAttr(spans[0].Attributes, "panic")
	assert.Equal(t, "true", isPanic)
}

func TestInterceptor_Pointcut(t *testing.T) {
	p := newProviders(t)
	ic := NewInterceptor(p.observer(t), WithPointcut(xpointcut.NameMatch("*save*")), WithKind(KindServer), nil)

	next := func(context.Context, *xintercept.Invocation) ([]any, error) { return nil, nil }
	_, _ = ic(context.Background(), invocation("Load"), next)
	_, _ = ic(context.Background(), invocation("presave"), next)

	spans := p.exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "OrderService.presave()", spans[0].Name)
}

func TestInterceptor_NilObserver(t *testing.T) {
	ic := NewInterceptor(nil, WithPointcut(nil))
	out, err := ic(context.Background(), invocation("Save"), func(context.Context, *xintercept.Invocation) ([]any, error) {
		return []any{1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []any{1}, out)
}
