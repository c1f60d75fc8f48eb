package xlogtrace

import (
	"context"
	"fmt"

	"github.com/omeyang/xaop/pkg/aop/xintercept"
	"github.com/omeyang/xaop/pkg/aop/xpointcut"
)

// PanicError 包装被拦截调用中的 panic 值，仅用于失败行的描述
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

type interceptorOptions struct {
	pointcut xpointcut.Pointcut
	label    func(*xintercept.Invocation) string
}

// InterceptorOption 追踪拦截器选项
type InterceptorOption func(*interceptorOptions)

// WithPointcut 只追踪匹配的调用，默认追踪全部
func WithPointcut(pc xpointcut.Pointcut) InterceptorOption {
	return func(o *interceptorOptions) {
		if pc != nil {
			o.pointcut = pc
		}
	}
}

// WithLabel 自定义标签，默认 "Type.Method()"
func WithLabel(fn func(*xintercept.Invocation) string) InterceptorOption {
	return func(o *interceptorOptions) {
		if fn != nil {
			o.label = fn
		}
	}
}

// NewInterceptor 把 Tracer 接入拦截链
//
// 不匹配的调用直接交给 next。匹配的调用 Begin -> next -> End，
// next 返回错误时 Fail 并原样返回该错误；next panic 时 Fail 后以同一个值重新 panic。
// next 收到的是 Begin 派生的 ctx，嵌套调用因此进入同一棵树。
func NewInterceptor(t *Tracer, opts ...InterceptorOption) xintercept.Interceptor {
	o := interceptorOptions{
		pointcut: xpointcut.True,
		label:    (*xintercept.Invocation).Signature,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return func(ctx context.Context, inv *xintercept.Invocation, next xintercept.Handler) (out []any, err error) {
		if !o.pointcut.Matches(inv.JoinPoint()) {
			return next(ctx, inv)
		}

		ctx, scope := t.Begin(ctx, o.label(inv))
		defer func() {
			if r := recover(); r != nil {
				t.Fail(ctx, scope, &PanicError{Value: r})
				panic(r)
			}
		}()

		out, err = next(ctx, inv)
		if err != nil {
			t.Fail(ctx, scope, err)
			return out, err
		}
		t.End(ctx, scope)
		return out, nil
	}
}
