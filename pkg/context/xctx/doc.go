// Package xctx 提供调用树（call tree）级别的上下文状态管理。
//
// Go 没有线程局部存储，调用树中的位置（事务 ID、已打开的调用数）
// 以不可变的 CallFrame 值挂在 context.Context 上，沿调用链向下传递。
// 每进入一层调用派生一个携带子帧的 ctx，父 ctx 不受影响：
// 从同一个父 ctx 分出的 goroutine 各自处在父调用的下一层，互不干扰；
// 调用返回后调用方的 ctx 仍是进入前的位置，根调用返回即释放事务。
//
// # 核心功能
//
//   - tx_id       : 事务 ID，根调用进入时分配
//   - trace_level : 已打开且未关闭的调用数
//
// # 命名约定
//
//	WithCallFrame(ctx, f)    - 注入：将调用帧写入 context
//	CallFrameFrom(ctx)       - 读取：缺失时返回零值
//	RequireCallFrame(ctx)    - 强制读取：没有活动事务时返回 ErrMissingCallFrame
//	EnterCall(ctx, newID)    - 进入一层调用：返回携带子帧的 ctx
//	DetachCallFrame(ctx)     - 脱离：其后的调用开始新的事务
//
// # 日志集成
//
// AppendCallTraceAttrs / CallTraceAttrs 把 tx_id 与 trace_level 转成 slog.Attr，
// 由 xlog 的 EnrichHandler 自动注入每条日志。
package xctx
