// Package xlog 基于 log/slog 的结构化日志库。
//
// # 核心功能
//
//   - Builder 模式配置（输出目标、级别、格式、文件轮转）
//   - 自动从 context 注入调用树字段 tx_id、trace_level（EnrichHandler，默认启用）
//   - 动态级别调整（配置热更新时使用）
//   - 全局 Logger 便利函数
//
// # 创建 Logger
//
// Builder 采用 first-error-wins：遇到第一个配置错误后，Build 返回该错误。
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetRotation("trace.log", xlog.RotateMaxSize(100)).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// # 全局 Logger
//
// 适用于 CLI、示例程序等简单场景，库代码通过 Option 显式注入 Logger。
//
//   - [Default]: 惰性初始化（stderr、Info 级别、text 格式）
//   - [SetDefault]: 替换全局 Logger（nil 会被忽略）
//   - [ResetDefault]: 重置为未初始化状态（仅用于测试）
//
// # EnrichHandler 注意事项
//
// 对启用 enrich 的 logger 调用 WithGroup 后，tx_id 等注入字段会被归入 group 下。
package xlog
