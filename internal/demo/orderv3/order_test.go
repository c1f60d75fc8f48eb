package orderv3

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xaop/pkg/aop/xproxy"
)

func TestStubs_ConcreteStrategy(t *testing.T) {
	repo := NewOrderRepository()
	p, err := xproxy.NewFactory().Proxy(repo)
	require.NoError(t, err)
	assert.True(t, xproxy.IsConcreteProxy(p))
	assert.Same(t, repo, xproxy.Unwrap(p))

	s, ok := p.(saver)
	require.True(t, ok)
	require.NoError(t, s.Save(context.Background(), "item"))
	assert.Equal(t, int64(1), repo.Stored(), "calls reach the wrapped instance")
	assert.Equal(t, int64(1), p.(*orderRepositoryProxy).Stored())
}

func TestStubs_Transparent(t *testing.T) {
	f := xproxy.NewFactory()
	proxy := func(v any) any {
		p, err := f.Proxy(v)
		require.NoError(t, err)
		return p
	}

	repo := proxy(NewOrderRepository()).(saver)
	svc := proxy(NewOrderService(repo)).(orderer)
	ctrl := proxy(NewOrderController(svc)).(Controller)

	got, err := ctrl.Request(context.Background(), "item")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, "ok", ctrl.NoLog())

	_, err = ctrl.Request(context.Background(), ItemBad)
	require.ErrorIs(t, err, ErrBadItem)
	_, err = ctrl.Request(context.Background(), ItemFailSave)
	require.ErrorIs(t, err, ErrSaveFailed)
}
