// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，自动注入调用树字段
//   - xlogtrace: 调用树日志（进入/退出/失败行、缩进、耗时），以及对应的拦截器
//   - xmetrics: 观测接口与 OpenTelemetry 实现，按调用记录 span 与指标
//
// 设计原则：
//   - 日志只观察调用，不改变参数、返回值与错误
//   - 自动从 context 中提取调用树信息注入日志
//   - 支持运行期调整日志级别
package observability
