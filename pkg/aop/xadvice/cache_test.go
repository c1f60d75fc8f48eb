package xadvice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xaop/pkg/aop/xadvice"
	"github.com/omeyang/xaop/pkg/aop/xintercept"
	"github.com/omeyang/xaop/pkg/aop/xpointcut"
)

func TestCache_Validation(t *testing.T) {
	_, err := xadvice.Cache(0, 0)
	require.ErrorIs(t, err, xadvice.ErrInvalidSize)
	_, err = xadvice.Cache(1, -time.Second)
	require.ErrorIs(t, err, xadvice.ErrInvalidTTL)
}

func TestCache_HitsSkipDownstream(t *testing.T) {
	c, err := xadvice.Cache(8, time.Minute)
	require.NoError(t, err)
	defer c.Close()
	ic := c.Interceptor()

	down := &counter{}
	first, err := ic(context.Background(), inv("Find", "a"), down.handler)
	require.NoError(t, err)
	second, err := ic(context.Background(), inv("Find", "a"), down.handler)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	second[0] = "mutated"
	third, err := ic(context.Background(), inv("Find", "a"), down.handler)
	require.NoError(t, err)
	assert.Equal(t, "Find", third[0], "callers get copies")

	_, err = ic(context.Background(), inv("Find", "b"), down.handler)
	require.NoError(t, err)

	assert.Equal(t, int64(2), down.calls.Load())
	st := c.Stats()
	assert.Equal(t, uint64(2), st.Hits)
	assert.Equal(t, uint64(2), st.Misses)
	assert.Equal(t, 2, st.Len)

	c.Purge()
	assert.Equal(t, 0, c.Stats().Len)
}

func TestCache_ErrorsNotCached(t *testing.T) {
	c, err := xadvice.Cache(8, 0)
	require.NoError(t, err)
	defer c.Close()
	ic := c.Interceptor()

	down := &counter{failures: 1}
	_, err = ic(context.Background(), inv("Find", 1), down.handler)
	require.ErrorIs(t, err, errDown)
	out, err := ic(context.Background(), inv("Find", 1), down.handler)
	require.NoError(t, err)
	assert.Equal(t, []any{"Find", int64(2)}, out)
}

func TestCache_KeyFuncAndPointcut(t *testing.T) {
	c, err := xadvice.Cache(8, 0,
		xadvice.WithKeyFunc(func(inv *xintercept.Invocation) string { return inv.Method }),
		xadvice.WithPointcut(xpointcut.NameMatch("Find")),
	)
	require.NoError(t, err)
	defer c.Close()
	ic := c.Interceptor()

	down := &counter{}
	_, _ = ic(context.Background(), inv("Find", 1), down.handler)
	_, _ = ic(context.Background(), inv("Find", 2), down.handler)
	_, _ = ic(context.Background(), inv("Save", 1), down.handler)
	_, _ = ic(context.Background(), inv("Save", 1), down.handler)
	assert.Equal(t, int64(3), down.calls.Load())
}

func TestCache_ClosedPassesThrough(t *testing.T) {
	c, err := xadvice.Cache(8, time.Minute)
	require.NoError(t, err)
	ic := c.Interceptor()
	c.Close()
	c.Close()

	down := &counter{}
	_, _ = ic(context.Background(), inv("Find"), down.handler)
	_, _ = ic(context.Background(), inv("Find"), down.handler)
	assert.Equal(t, int64(2), down.calls.Load())
	assert.Equal(t, 0, c.Stats().Len)
}

func TestDefaultKey(t *testing.T) {
	assert.Equal(t, `OrderService.Find()|"a"|1`, xadvice.DefaultKey(inv("Find", "a", 1)))
	assert.Equal(t, "OrderService.Find()", xadvice.DefaultKey(inv("Find")))
}
