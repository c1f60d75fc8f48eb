package xmetrics

import (
	"context"
	"fmt"

	"github.com/omeyang/xaop/pkg/aop/xintercept"
	"github.com/omeyang/xaop/pkg/aop/xpointcut"
)

type interceptorConfig struct {
	pointcut xpointcut.Pointcut
	kind     Kind
}

// InterceptorOption 拦截器选项
type InterceptorOption func(*interceptorConfig)

// WithPointcut 只观测匹配的调用
func WithPointcut(pc xpointcut.Pointcut) InterceptorOption {
	return func(c *interceptorConfig) { c.pointcut = pc }
}

// WithKind 设置跨度类型，默认 KindInternal
func WithKind(k Kind) InterceptorOption {
	return func(c *interceptorConfig) { c.kind = k }
}

// NewInterceptor 把 Observer 包装为拦截器
//
// 每次匹配的调用产生一个跨度；下游返回的错误原样返回，panic 记为错误后原值重新抛出。
// observer 为 nil 时等价于 NoopObserver。
func NewInterceptor(observer Observer, opts ...InterceptorOption) xintercept.Interceptor {
	cfg := interceptorConfig{pointcut: xpointcut.True}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.pointcut == nil {
		cfg.pointcut = xpointcut.True
	}

	return func(ctx context.Context, inv *xintercept.Invocation, next xintercept.Handler) (out []any, err error) {
		if !cfg.pointcut.Matches(inv.JoinPoint()) {
			return next(ctx, inv)
		}
		ctx, span := Start(ctx, observer, SpanOptions{
			Component: inv.Type,
			Operation: inv.Signature(),
			Namespace: inv.Namespace,
			Kind:      cfg.kind,
		})
		defer func() {
			if r := recover(); r != nil {
				span.End(Result{Err: fmt.Errorf("panic: %v", r), Panicked: true})
				panic(r)
			}
			span.End(Result{Err: err})
		}()
		return next(ctx, inv)
	}
}
