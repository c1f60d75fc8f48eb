// Package xrun 协调一组长期运行的服务。
//
// Group 基于 errgroup：任一服务返回错误、调用 Cancel 或收到配置的信号时，
// 其余服务的 context 都会被取消。Wait 区分三种退出原因：
// 服务错误原样返回；信号返回 *SignalError（errors.Is(err, ErrSignal)）；
// 主动 Cancel(nil) 或父 context 取消返回 nil。
//
// 服务构造器：
//   - Ticker：立即执行一次，之后按间隔执行，可限定次数
//   - Hold：启动后保持到 context 取消，再执行清理
package xrun
