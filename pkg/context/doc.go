// Package context 提供上下文相关的子包。
//
// 子包列表：
//   - xctx: 调用树状态（事务 ID、调用深度）在 context.Context 中的存取
//
// 设计原则：
//   - 调用树状态通过 context.Context 传递，不使用全局变量或 goroutine 局部存储
//   - 一个没有调用树状态的 context 就是一个新的执行上下文
package context
