// Package xautowrap 在对象构造完成后按命名空间前缀自动替换为替身。
//
// # Hook
//
// 生命周期容器在每个对象构造完成后调用一次 [Hook.AfterConstruction]，
// 返回值成为该对象的正式实例。不需要包装时原样返回。
//
// # Registry
//
// [Registry] 是“命名空间前缀 -> 切点 + 拦截链”的决策表：
//
//	reg := xautowrap.NewRegistry()
//	_ = reg.Register(xautowrap.Entry{
//		Prefix:   "github.com/acme/app",
//		Advisors: []*xproxy.Advisor{xproxy.NewAdvisor(pc, tracing)},
//	})
//
// 对象类型的包路径以某个前缀开头时包装，多个前缀命中时取最长者。
// 包装失败返回 [ErrWrapFailed]，应当中止启动。
//
// # Container
//
// [Container] 是最小的构造边界：按注册顺序急切构造、逐个调用 Hook、保存正式实例，
// 用于示例程序与端到端测试。
package xautowrap
