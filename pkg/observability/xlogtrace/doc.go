// Package xlogtrace 实现调用树追踪：为每次被拦截的调用输出进入、退出、失败三类行，
// 按嵌套深度缩进，并在同一棵调用树内共享事务 ID。
//
// # 输出格式
//
//	[1f3a9c2e] OrderController.Request()
//	[1f3a9c2e] |-->OrderService.OrderItem()
//	[1f3a9c2e] |   |-->OrderRepository.Save()
//	[1f3a9c2e] |   |<--OrderRepository.Save() time=1001ms
//	[1f3a9c2e] |<--OrderService.OrderItem() time=1002ms
//	[1f3a9c2e] OrderController.Request() time=1003ms
//
// 失败行以 "<X-" 标记，耗时前加 "EX"，末尾追加 "ex=<错误类型>: <错误信息>"。
//
// # 调用树状态
//
// 调用树中的位置以不可变的调用帧挂在 context 上（见 xctx.CallFrame）。
// [Tracer.Begin] 返回携带下一层帧的派生 ctx，嵌套调用必须使用该 ctx 才能共享同一棵树。
// 从同一个 ctx 并发发起的调用是兄弟，处在同一层级。
// [NewContext] 显式开启一棵新树，用于新请求的入口或需要独立事务的 goroutine。
//
// # 配对
//
// 每个 [Scope] 只能由 [Tracer.End] 或 [Tracer.Fail] 关闭一次。
// nil Scope 被静默跳过；重复关闭只记一条告警，不会影响业务调用。
//
// # 输出目标
//
// [Sink] 决定行写到哪里：[LoggerSink]（xlog）、[WriterSink]（io.Writer，可着色）、
// [MemorySink]（测试）、[MultiSink]（扇出）。
//
// # 拦截器
//
// [NewInterceptor] 把 Tracer 接入 xintercept 拦截链，按切点选择性追踪，
// 错误与 panic 原样向上传递。
package xlogtrace
