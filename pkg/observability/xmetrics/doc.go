// Package xmetrics 为被拦截的方法调用提供 OpenTelemetry 观测。
//
// 业务与替身只依赖 [Observer]/[Span] 两个最小接口，默认实现基于 OpenTelemetry。
// [NewInterceptor] 把 Observer 包装成拦截器，与 xlogtrace 的调用树日志并列挂在同一条链上：
//
//	obs, _ := xmetrics.NewOTelObserver(xmetrics.WithMeterProvider(mp))
//	factory := xproxy.NewFactory(xproxy.WithInterceptors(
//		xlogtrace.NewInterceptor(tracer),
//		xmetrics.NewInterceptor(obs),
//	))
//
// # 指标
//
//   - xaop.call.total     调用次数
//   - xaop.call.duration  调用耗时（秒）
//
// 统一属性：component（类型名）/ operation（方法签名）/ status。
// Span 额外携带 namespace 与 tx_id（若 context 中存在调用树），panic 的调用标记 panic=true。
package xmetrics
