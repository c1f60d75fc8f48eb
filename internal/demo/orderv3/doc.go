// Package orderv3 是只有具体类型的下单示例
//
// 控制器、服务、仓储都没有声明接口，依赖通过调用方定义的小接口持有，
// 替身走具体类型策略：生成的桩内嵌目标类型并覆盖全部导出方法。
package orderv3

//go:generate go run github.com/omeyang/xaop/cmd/xproxygen --type OrderController,OrderService,OrderRepository --output zz_xaop_stubs.go
