package xintercept

import (
	"context"
)

// Handler 调用链上的下一跳
//
// 返回值为目标方法的结果（不含尾部 error）与错误。
type Handler func(ctx context.Context, inv *Invocation) ([]any, error)

// Interceptor 拦截器
//
// 必须恰好调用一次 next，或者不调用（短路）。返回的错误会原样交给上一层。
type Interceptor func(ctx context.Context, inv *Invocation, next Handler) ([]any, error)

// Chain 把多个拦截器合成一个，先注册的在最外层，nil 被跳过
func Chain(interceptors ...Interceptor) Interceptor {
	list := make([]Interceptor, 0, len(interceptors))
	for _, ic := range interceptors {
		if ic != nil {
			list = append(list, ic)
		}
	}
	switch len(list) {
	case 0:
		return passThrough
	case 1:
		return list[0]
	}
	return func(ctx context.Context, inv *Invocation, final Handler) ([]any, error) {
		return Then(final, list...)(ctx, inv)
	}
}

// Then 把拦截器套在 final 之外，返回可直接调用的 Handler
func Then(final Handler, interceptors ...Interceptor) Handler {
	h := final
	for i := len(interceptors) - 1; i >= 0; i-- {
		ic := interceptors[i]
		if ic == nil {
			continue
		}
		h = bind(ic, h)
	}
	return h
}

func bind(ic Interceptor, next Handler) Handler {
	return func(ctx context.Context, inv *Invocation) ([]any, error) {
		return ic(ctx, inv, next)
	}
}

func passThrough(ctx context.Context, inv *Invocation, next Handler) ([]any, error) {
	return next(ctx, inv)
}
