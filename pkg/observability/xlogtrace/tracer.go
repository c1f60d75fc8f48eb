package xlogtrace

import (
	"context"
	"log/slog"

	"github.com/omeyang/xaop/pkg/context/xctx"
	"github.com/omeyang/xaop/pkg/observability/xlog"
)

// Tracer 调用树追踪引擎
//
// 无内部可变状态，可在多个 goroutine 间共享。
// nil *Tracer 的所有方法都是空操作，Begin 返回 nil Scope。
type Tracer struct {
	opts options
}

// New 创建 Tracer
func New(opts ...Option) *Tracer {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.sink == nil {
		o.sink = NewLoggerSink(nil)
	}
	return &Tracer{opts: o}
}

// NewContext 让 ctx 之后的调用开始一棵新的调用树，父级的树不受影响
//
// 从同一个 ctx 分出的 goroutine 默认处在父调用的下一层；需要各自独立的事务时使用它。
func NewContext(ctx context.Context) context.Context {
	return xctx.DetachCallFrame(ctx)
}

// Begin 开始一次调用：分配或复用事务 ID，输出进入行。
//
// 返回的 ctx 携带下一层的调用帧，嵌套调用必须使用它；传入的 ctx 不受影响，
// 因此同一个 ctx 上先后发起的调用（包括并发的兄弟调用）处在同一层级。
func (t *Tracer) Begin(ctx context.Context, label string) (context.Context, *Scope) {
	if t == nil {
		return ctx, nil
	}
	ctx, frame, level := xctx.EnterCall(ctx, t.opts.newID)
	s := &Scope{
		ID:    TraceID{TxID: frame.TxID, Level: level},
		Label: label,
		Start: t.opts.now(),
	}
	t.emit(ctx, newLine(KindBegin, s.ID, label, 0, nil))
	return ctx, s
}

// End 正常结束 Scope，输出退出行与耗时
func (t *Tracer) End(ctx context.Context, s *Scope) {
	t.finish(ctx, s, KindEnd, nil)
}

// Fail 以错误结束 Scope，输出失败行。错误只被记录，不会被吞掉或改写。
func (t *Tracer) Fail(ctx context.Context, s *Scope, err error) {
	t.finish(ctx, s, KindFail, err)
}

func (t *Tracer) finish(ctx context.Context, s *Scope, kind Kind, err error) {
	if t == nil || s == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if !s.closed.CompareAndSwap(false, true) {
		t.anomaly(ctx, "scope closed twice", s)
		return
	}

	elapsed := t.opts.now().Sub(s.Start)
	t.emit(ctx, newLine(kind, s.ID, s.Label, elapsed, err))
}

// emit 隔离输出目标的 panic，追踪失败不影响业务调用
func (t *Tracer) emit(ctx context.Context, line Line) {
	defer func() {
		if r := recover(); r != nil {
			t.logger().Error(ctx, "xlogtrace: sink panicked",
				xlog.Panic(r), xlog.Label(line.Label), slog.String("kind", line.Kind.String()))
		}
	}()
	t.opts.sink.Emit(ctx, line)
}

func (t *Tracer) anomaly(ctx context.Context, msg string, s *Scope) {
	t.logger().Warn(ctx, "xlogtrace: "+msg,
		xlog.Label(s.Label),
		xlog.TxID(s.ID.TxID),
		slog.Int("scope_level", s.ID.Level),
	)
}

func (t *Tracer) logger() xlog.Logger {
	if t.opts.logger != nil {
		return t.opts.logger
	}
	return xlog.Default()
}
