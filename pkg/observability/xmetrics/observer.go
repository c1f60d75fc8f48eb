package xmetrics

import (
	"context"
	"strconv"
)

// Kind 观测跨度类型
type Kind int

const (
	// KindInternal 进程内调用，替身拦截的默认类型
	KindInternal Kind = iota
	// KindServer 服务端处理
	KindServer
	// KindClient 客户端调用
	KindClient
)

// String 返回可读名称
func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "Internal"
	case KindServer:
		return "Server"
	case KindClient:
		return "Client"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Status 调用结果
type Status string

const (
	// StatusOK 正常返回
	StatusOK Status = "ok"
	// StatusError 返回错误或 panic
	StatusError Status = "error"
)

// Attr 观测属性
type Attr struct {
	Key   string
	Value any
}

// SpanOptions 一次被拦截调用的描述
type SpanOptions struct {
	// Component 被代理的类型名
	Component string
	// Operation 方法签名，同时作为跨度名
	Operation string
	// Namespace 目标所在包路径
	Namespace string
	Kind      Kind
	// Attrs 额外属性
	Attrs []Attr
}

// Result 调用结束时的结果，Status 为空时由 Err 推导
type Result struct {
	Status Status
	Err    error
	// Panicked 目标或下游拦截器 panic，Err 描述 panic 值
	Panicked bool
	Attrs    []Attr
}

// Span 一次观测跨度
type Span interface {
	End(result Result)
}

// Observer 观测入口
type Observer interface {
	Start(ctx context.Context, opts SpanOptions) (context.Context, Span)
}

// NoopObserver 空实现
type NoopObserver struct{}

// Start 返回原 ctx 与空跨度
func (NoopObserver) Start(ctx context.Context, _ SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, NoopSpan{}
}

// NoopSpan 空跨度
type NoopSpan struct{}

// End 空实现
func (NoopSpan) End(Result) {}

// Start 使用 observer 开始观测
//
// 保证返回非 nil 的 ctx 与 Span：nil ctx 归一为 Background，
// nil observer 或自定义实现返回的 nil 值兜底为空实现。
func Start(ctx context.Context, observer Observer, opts SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if observer == nil {
		return ctx, NoopSpan{}
	}
	retCtx, span := observer.Start(ctx, opts)
	if retCtx == nil {
		retCtx = ctx
	}
	if span == nil {
		span = NoopSpan{}
	}
	return retCtx, span
}
