package xintercept_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xaop/pkg/aop/xintercept"
)

type ctxKey struct{}

func recorder(name string, log *[]string) xintercept.Interceptor {
	return func(ctx context.Context, inv *xintercept.Invocation, next xintercept.Handler) ([]any, error) {
		*log = append(*log, name+"-before")
		out, err := next(ctx, inv)
		*log = append(*log, name+"-after")
		return out, err
	}
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var log []string
	final := func(context.Context, *xintercept.Invocation) ([]any, error) {
		log = append(log, "T.Save")
		return []any{"ok"}, nil
	}

	chain := xintercept.Chain(recorder("A", &log), nil, recorder("B", &log))
	out, err := chain(context.Background(), &xintercept.Invocation{Type: "T", Method: "Save"}, final)
	require.NoError(t, err)
	assert.Equal(t, []any{"ok"}, out)
	assert.Equal(t, []string{"A-before", "B-before", "T.Save", "B-after", "A-after"}, log)
}

func TestChain_Empty(t *testing.T) {
	t.Parallel()

	called := false
	out, err := xintercept.Chain()(context.Background(), &xintercept.Invocation{},
		func(context.Context, *xintercept.Invocation) ([]any, error) {
			called = true
			return nil, nil
		})
	require.NoError(t, err)
	assert.Nil(t, out)
	assert.True(t, called)
}

func TestChain_ErrorPassthrough(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("bad-item")
	var log []string
	final := func(context.Context, *xintercept.Invocation) ([]any, error) { return nil, sentinel }

	_, err := xintercept.Then(final, recorder("A", &log), recorder("B", &log))(context.Background(), &xintercept.Invocation{})
	assert.Same(t, sentinel, err)
	assert.Equal(t, []string{"A-before", "B-before", "B-after", "A-after"}, log)
}

func TestChain_ContextAndArgsFlow(t *testing.T) {
	t.Parallel()

	withValue := func(ctx context.Context, inv *xintercept.Invocation, next xintercept.Handler) ([]any, error) {
		inv.Args[0] = "rewritten"
		return next(context.WithValue(ctx, ctxKey{}, "v"), inv)
	}
	final := func(ctx context.Context, inv *xintercept.Invocation) ([]any, error) {
		return []any{ctx.Value(ctxKey{}), inv.Arg(0)}, nil
	}

	out, err := xintercept.Then(final, withValue)(context.Background(), &xintercept.Invocation{Args: []any{"orig"}})
	require.NoError(t, err)
	assert.Equal(t, []any{"v", "rewritten"}, out)
}

func TestChain_ShortCircuit(t *testing.T) {
	t.Parallel()

	cached := func(context.Context, *xintercept.Invocation, xintercept.Handler) ([]any, error) {
		return []any{"cached"}, nil
	}
	final := func(context.Context, *xintercept.Invocation) ([]any, error) {
		t.Fatal("target must not be called")
		return nil, nil
	}
	out, err := xintercept.Chain(cached)(context.Background(), &xintercept.Invocation{}, final)
	require.NoError(t, err)
	assert.Equal(t, []any{"cached"}, out)
}

func TestInvocation(t *testing.T) {
	t.Parallel()

	inv := &xintercept.Invocation{Type: "OrderService", Method: "OrderItem", Namespace: "ns", Args: []any{1}}
	assert.Equal(t, "OrderService.OrderItem()", inv.Signature())
	assert.Equal(t, "ns", inv.JoinPoint().Namespace)
	assert.Equal(t, 1, inv.Arg(0))
	assert.Nil(t, inv.Arg(1))
	assert.Nil(t, inv.Arg(-1))
}
