// Package xproxy 为任意对象生成可拦截的替身（proxy），调用方无需修改即可被追踪。
//
// Go 不能在运行时合成类型，因此替身是预先生成的桩类型（见 cmd/xproxygen），
// 在 init 中注册到本包。所有桩都把调用转交给同一个 [Dispatcher]，
// 由它匹配 [Advisor]、组装拦截链并通过反射调用真实目标。
//
// # 两种策略
//
//   - 接口策略：桩只实现某个已注册接口，持有真实目标并委托。声明类型名为接口名。
//   - 具体类型策略：桩内嵌目标类型的零值（不运行目标的构造逻辑）并覆盖全部导出方法，
//     方法集与目标一致，调用方通过自己定义的接口使用它。声明类型名为结构体名。
//
// [Factory.Proxy] 的选择规则：
//
//  1. 未开启 proxy-target-class 且目标实现了已注册接口：接口策略；
//  2. 目标的指针类型注册了具体类型桩：具体类型策略；
//  3. 否则返回 [ErrUnproxyable]，属于配置错误。
//
// # 重复包装
//
// 对替身再次调用 Proxy 会先取出真实目标，再把新旧 Advisor 按身份去重合并，
// 因此同一 Factory 包装多次不会重复追踪。
//
// # 桩的形态
//
//	type orderServiceProxy struct{ xproxy.Stub }
//
//	func (p orderServiceProxy) OrderItem(ctx context.Context, itemID string) error {
//		out := p.Dispatcher.Invoke("OrderItem", ctx, itemID)
//		return xproxy.Err(out, 0)
//	}
//
//	func init() {
//		xproxy.RegisterInterface(func(s xproxy.Stub) OrderService { return orderServiceProxy{s} })
//	}
//
// Invoke 返回全部结果（含尾部 error），按声明顺序排列。
package xproxy
