package xctx

import "context"

// =============================================================================
// Key 常量
// =============================================================================

const (
	// KeyTxID 日志属性 key：事务 ID
	KeyTxID = "tx_id"

	// KeyTraceLevel 日志属性 key：调用嵌套深度
	KeyTraceLevel = "trace_level"

	// callTraceFieldCount 用于 slog 属性预分配
	callTraceFieldCount = 2
)

const keyCallFrame = contextKey("xctx:call_frame")

// =============================================================================
// CallFrame 调用树中的位置
// =============================================================================

// CallFrame 是 context 中记录的调用树位置：事务 ID 与已打开的调用数。
//
// 按值存放，不可变。进入一层调用时派生新的 context 携带子帧，父 context
// 中的帧保持不变；调用返回后调用方手里的 ctx 自然回到进入前的位置。
// 零值表示不在任何调用树内。
type CallFrame struct {
	// TxID 事务 ID，同一棵调用树内相同
	TxID string
	// Depth 已打开且未关闭的调用数，0 表示没有活动事务
	Depth int
}

// Active 报告是否处于活动事务中。
func (f CallFrame) Active() bool {
	return f.Depth > 0
}

// Enter 返回进入一层调用后的子帧，以及本次调用的层级。
//
// 没有活动事务时调用 newID 分配事务 ID，本次调用为根（层级 0）。
// newID 为 nil 时事务 ID 为空。
func (f CallFrame) Enter(newID func() string) (child CallFrame, level int) {
	if !f.Active() {
		var txID string
		if newID != nil {
			txID = newID()
		}
		return CallFrame{TxID: txID, Depth: 1}, 0
	}
	return CallFrame{TxID: f.TxID, Depth: f.Depth + 1}, f.Depth
}

// =============================================================================
// Context 操作
// =============================================================================

// WithCallFrame 将调用帧注入 context。
func WithCallFrame(ctx context.Context, f CallFrame) (context.Context, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if f.Depth < 0 {
		return nil, ErrInvalidCallFrame
	}
	return context.WithValue(ctx, keyCallFrame, f), nil
}

// CallFrameFrom 从 context 读取调用帧，不存在时返回零值。
func CallFrameFrom(ctx context.Context) CallFrame {
	if ctx == nil {
		return CallFrame{}
	}
	f, _ := ctx.Value(keyCallFrame).(CallFrame)
	return f
}

// RequireCallFrame 读取活动的调用帧，没有活动事务时返回 ErrMissingCallFrame。
func RequireCallFrame(ctx context.Context) (CallFrame, error) {
	if ctx == nil {
		return CallFrame{}, ErrNilContext
	}
	f := CallFrameFrom(ctx)
	if !f.Active() {
		return CallFrame{}, ErrMissingCallFrame
	}
	return f, nil
}

// EnterCall 在 ctx 上进入一层调用，返回携带子帧的 ctx 与本次调用的层级。
//
// nil ctx 按 context.Background() 处理。它位于拦截热路径上，不返回错误。
func EnterCall(ctx context.Context, newID func() string) (context.Context, CallFrame, int) {
	if ctx == nil {
		ctx = context.Background()
	}
	child, level := CallFrameFrom(ctx).Enter(newID)
	return context.WithValue(ctx, keyCallFrame, child), child, level
}

// DetachCallFrame 返回不属于任何调用树的 ctx，其后的调用开始新的事务。
//
// ctx 上的取消与其他值保持不变。
func DetachCallFrame(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if !CallFrameFrom(ctx).Active() {
		return ctx
	}
	return context.WithValue(ctx, keyCallFrame, CallFrame{})
}

// TxID 返回 context 中活动事务的 ID，没有时返回空字符串。
func TxID(ctx context.Context) string {
	return CallFrameFrom(ctx).TxID
}

// CallLevel 返回 context 中已打开的调用数。
func CallLevel(ctx context.Context) int {
	return CallFrameFrom(ctx).Depth
}
