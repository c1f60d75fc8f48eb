// Package orderv1 是按接口寻址的示例订单应用：控制器、服务、仓储各有接口与实现，
// 替身使用接口策略（zz_xaop_stubs.go 由 xproxygen 生成）。
//
// 业务代码不感知替身：依赖通过构造函数注入接口，容器注入的是替身还是真实对象对它们没有区别。
package orderv1

//go:generate go run github.com/omeyang/xaop/cmd/xproxygen --type OrderController,OrderService,OrderRepository --output zz_xaop_stubs.go
