package xlogtrace_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xaop/pkg/aop/xintercept"
	"github.com/omeyang/xaop/pkg/aop/xpointcut"
	"github.com/omeyang/xaop/pkg/context/xctx"
	"github.com/omeyang/xaop/pkg/observability/xlogtrace"
)

func invocation(typ, method string) *xintercept.Invocation {
	return &xintercept.Invocation{Type: typ, Method: method, Namespace: "github.com/acme/app"}
}

func TestInterceptor_Selective(t *testing.T) {
	t.Parallel()

	tr, sink, _ := newTestTracer(t)
	ic := xlogtrace.NewInterceptor(tr, xlogtrace.WithPointcut(xpointcut.NameMatch("Request*")))
	target := func(context.Context, *xintercept.Invocation) ([]any, error) { return []any{"ok"}, nil }

	out, err := ic(context.Background(), invocation("OrderController", "Request"), target)
	require.NoError(t, err)
	assert.Equal(t, []any{"ok"}, out)

	out, err = ic(context.Background(), invocation("OrderController", "NoLog"), target)
	require.NoError(t, err)
	assert.Equal(t, []any{"ok"}, out)

	assert.Equal(t, []string{
		"[tx-1] OrderController.Request()",
		"[tx-1] OrderController.Request() time=1ms",
	}, sink.Texts())
}

func TestInterceptor_NestedThroughContext(t *testing.T) {
	t.Parallel()

	tr, sink, _ := newTestTracer(t)
	ic := xlogtrace.NewInterceptor(tr)

	inner := func(ctx context.Context, _ *xintercept.Invocation) ([]any, error) {
		assert.Equal(t, 2, xctx.CallLevel(ctx))
		return nil, nil
	}
	outer := func(ctx context.Context, _ *xintercept.Invocation) ([]any, error) {
		return ic(ctx, invocation("OrderService", "OrderItem"), inner)
	}
	_, err := ic(context.Background(), invocation("OrderController", "Request"), outer)
	require.NoError(t, err)

	texts := sink.Texts()
	require.Len(t, texts, 4)
	assert.Equal(t, "[tx-1] |-->OrderService.OrderItem()", texts[1])
}

type illegalArgument struct{ msg string }

func (e *illegalArgument) Error() string { return e.msg }

func TestInterceptor_ErrorPassthrough(t *testing.T) {
	t.Parallel()

	tr, sink, _ := newTestTracer(t)
	ic := xlogtrace.NewInterceptor(tr)
	sentinel := &illegalArgument{msg: "bad-item"}

	_, err := ic(context.Background(), invocation("OrderService", "OrderItem"),
		func(context.Context, *xintercept.Invocation) ([]any, error) { return nil, sentinel })

	assert.Same(t, sentinel, err, "error value is returned unchanged")
	var target *illegalArgument
	assert.True(t, errors.As(err, &target))

	lines := sink.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, xlogtrace.KindFail, lines[1].Kind)
	assert.Equal(t, "[tx-1] OrderService.OrderItem() EX time=1ms ex=*xlogtrace_test.illegalArgument: bad-item", lines[1].Text)
}

func TestInterceptor_PanicPassthrough(t *testing.T) {
	t.Parallel()

	tr, sink, _ := newTestTracer(t)
	ic := xlogtrace.NewInterceptor(tr, xlogtrace.WithLabel(func(inv *xintercept.Invocation) string {
		return inv.Method
	}))
	ctx := xlogtrace.NewContext(context.Background())

	type custom struct{ code int }
	value := custom{code: 7}
	assert.PanicsWithValue(t, value, func() {
		_, _ = ic(ctx, invocation("T", "Boom"), func(context.Context, *xintercept.Invocation) ([]any, error) {
			panic(value)
		})
	})

	lines := sink.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Boom", lines[0].Label)
	var pe *xlogtrace.PanicError
	require.ErrorAs(t, lines[1].Err, &pe)
	assert.Equal(t, value, pe.Value)
	assert.Equal(t, xlogtrace.KindFail, lines[1].Kind)
	assert.Zero(t, xctx.CallLevel(ctx), "caller context is unchanged by the panicking call")
}
