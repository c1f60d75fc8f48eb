package xproxy

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/omeyang/xaop/pkg/observability/xlog"
)

// Factory 按配置为目标生成替身
//
// 构造后只读，可并发使用。同一个 Factory 的 Advisor 身份固定，
// 因此对同一目标重复包装不会叠加拦截。
type Factory struct {
	opts options
}

// NewFactory 创建 Factory
func NewFactory(opts ...Option) *Factory {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	o.advisors = mergeAdvisors(o.advisors)
	return &Factory{opts: o}
}

// Advisors 返回 Factory 的 Advisor（副本）
func (f *Factory) Advisors() []*Advisor {
	return append([]*Advisor(nil), f.opts.advisors...)
}

// Proxy 为 target 生成替身
//
// target 已是替身时，先取出真实目标，再合并新旧 Advisor。
func (f *Factory) Proxy(target any) (any, error) {
	if isNil(target) {
		return nil, ErrNilTarget
	}

	advisors := f.opts.advisors
	if d := DispatcherOf(target); d != nil {
		target = d.target
		advisors = mergeAdvisors(d.advisors, f.opts.advisors)
	}
	targetType := reflect.TypeOf(target)

	p, d, err := f.build(target, targetType, advisors)
	if err != nil {
		return nil, err
	}
	f.logger().Debug(context.Background(), "xproxy: proxy created",
		xlog.Component(d.typeName),
		slog.String("strategy", d.strategy.String()),
		slog.String("namespace", d.namespace),
		slog.Int("advisors", len(advisors)),
	)
	return p, nil
}

func (f *Factory) build(target any, targetType reflect.Type, advisors []*Advisor) (any, *Dispatcher, error) {
	if f.opts.iface != nil {
		return f.buildExact(target, targetType, advisors)
	}

	if !f.opts.proxyTargetClass {
		if e, ok := registry.lookupInterface(targetType, f.opts.prefer); ok {
			d := newDispatcher(target, e.typ, e.typ.Name(), StrategyInterface, advisors)
			return e.build(Stub{Dispatcher: d}), d, nil
		}
	}

	if build, ok := registry.lookupConcrete(targetType); ok {
		d := newDispatcher(target, targetType, targetType.Elem().Name(), StrategyConcrete, advisors)
		return build(Stub{Dispatcher: d}), d, nil
	}

	return nil, nil, fmt.Errorf("%w: no interface or concrete stub registered for %s", ErrUnproxyable, targetType)
}

func (f *Factory) buildExact(target any, targetType reflect.Type, advisors []*Advisor) (any, *Dispatcher, error) {
	iface := f.opts.iface
	if iface.Kind() != reflect.Interface {
		return nil, nil, fmt.Errorf("%w: %s is not an interface", ErrUnproxyable, iface)
	}
	if !targetType.Implements(iface) {
		return nil, nil, fmt.Errorf("%w: %s does not implement %s", ErrUnproxyable, targetType, iface)
	}
	e, ok := registry.lookupExact(iface)
	if !ok {
		return nil, nil, fmt.Errorf("%w: no stub registered for %s", ErrUnproxyable, iface)
	}
	d := newDispatcher(target, iface, iface.Name(), StrategyInterface, advisors)
	return e.build(Stub{Dispatcher: d}), d, nil
}

func (f *Factory) logger() xlog.Logger {
	if f.opts.logger != nil {
		return f.opts.logger
	}
	return xlog.Default()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// New 为 target 生成类型为 T 的替身
//
// T 为已注册接口时优先使用它的桩；生成的替身不能赋值给 T 时返回 ErrNotAssignable。
func New[T any](target T, opts ...Option) (T, error) {
	var zero T
	typ := reflect.TypeFor[T]()
	if typ.Kind() == reflect.Interface {
		opts = append([]Option{preferInterface(typ)}, opts...)
	}
	p, err := NewFactory(opts...).Proxy(target)
	if err != nil {
		return zero, err
	}
	out, ok := p.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %T is not %s", ErrNotAssignable, p, typ)
	}
	return out, nil
}

// Must 包装 New 的返回值，出错时 panic，用于启动期装配
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
