package xproxy_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/omeyang/xaop/pkg/aop/xproxy"
)

type ctxKey struct{}

var errEmptyName = errors.New("empty name")

// =============================================================================
// 接口策略夹具
// =============================================================================

type Greeter interface {
	Greet(ctx context.Context, name string) (string, error)
	Count() int
	Join(sep string, parts ...string) string
}

type greeter struct {
	prefix  string
	calls   atomic.Int64
	lastCtx atomic.Value
}

func (g *greeter) Greet(ctx context.Context, name string) (string, error) {
	g.calls.Add(1)
	if v := ctx.Value(ctxKey{}); v != nil {
		g.lastCtx.Store(v)
	}
	if name == "" {
		return "", errEmptyName
	}
	return g.prefix + name, nil
}

func (g *greeter) Count() int { return int(g.calls.Load()) }

func (g *greeter) Join(sep string, parts ...string) string { return strings.Join(parts, sep) }

type greeterProxy struct{ xproxy.Stub }

func (p greeterProxy) Greet(ctx context.Context, name string) (string, error) {
	out := p.Dispatcher.Invoke("Greet", ctx, name)
	return xproxy.Out[string](out, 0), xproxy.Err(out, 1)
}

func (p greeterProxy) Count() int {
	out := p.Dispatcher.Invoke("Count")
	return xproxy.Out[int](out, 0)
}

func (p greeterProxy) Join(sep string, parts ...string) string {
	out := p.Dispatcher.Invoke("Join", sep, parts)
	return xproxy.Out[string](out, 0)
}

// =============================================================================
// 具体类型策略夹具
// =============================================================================

type Counter struct {
	n           atomic.Int64
	initialized bool
}

func NewCounter() *Counter { return &Counter{initialized: true} }

func (c *Counter) Add(_ context.Context, delta int) (int, error) {
	if delta < 0 {
		return 0, errors.New("negative delta")
	}
	return int(c.n.Add(int64(delta))), nil
}

func (c *Counter) Initialized() bool { return c.initialized }

type counterProxy struct {
	*Counter
	xproxy.Stub
}

func (p *counterProxy) Add(ctx context.Context, delta int) (int, error) {
	out := p.Dispatcher.Invoke("Add", ctx, delta)
	return xproxy.Out[int](out, 0), xproxy.Err(out, 1)
}

func (p *counterProxy) Initialized() bool {
	out := p.Dispatcher.Invoke("Initialized")
	return xproxy.Out[bool](out, 0)
}

// Labeled 通过内嵌 *Counter 获得 Add 与 Initialized
type Labeled struct {
	*Counter
	label string
}

func NewLabeled(label string) *Labeled { return &Labeled{Counter: NewCounter(), label: label} }

func (l *Labeled) Label() string { return l.label }

// labeledProxy 与 xproxygen 的输出一致：提升的方法同样被覆盖
type labeledProxy struct {
	*Labeled
	xproxy.Stub
}

func (p *labeledProxy) Add(ctx context.Context, delta int) (int, error) {
	out := p.Dispatcher.Invoke("Add", ctx, delta)
	return xproxy.Out[int](out, 0), xproxy.Err(out, 1)
}

func (p *labeledProxy) Initialized() bool {
	out := p.Dispatcher.Invoke("Initialized")
	return xproxy.Out[bool](out, 0)
}

func (p *labeledProxy) Label() string {
	out := p.Dispatcher.Invoke("Label")
	return xproxy.Out[string](out, 0)
}

// adder 调用方为具体类型替身定义的接口
type adder interface {
	Add(ctx context.Context, delta int) (int, error)
	Initialized() bool
}

// plain 没有注册任何桩
type plain struct{}

func (plain) Do() {}

func init() {
	xproxy.RegisterInterface(func(s xproxy.Stub) Greeter { return greeterProxy{s} })
	xproxy.RegisterConcrete[*Counter](func(s xproxy.Stub) any {
		return &counterProxy{Counter: new(Counter), Stub: s}
	})
	xproxy.RegisterConcrete[*Labeled](func(s xproxy.Stub) any {
		return &labeledProxy{Labeled: new(Labeled), Stub: s}
	})
}
