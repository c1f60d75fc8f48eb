// Package xintercept 定义方法调用拦截链。
//
// 一次被代理的方法调用表示为 [Invocation]，沿 [Interceptor] 链传递，
// 链尾的 [Handler] 调用真实目标。形态与 gRPC 一元拦截器一致：
//
//	func(ctx, inv, next) (results, err)
//
// 拦截器可以在 next 前后做事、改写 ctx、短路返回，或者原样透传错误。
//
// # 顺序
//
// [Chain] 按注册顺序嵌套，先注册的在最外层：
//
//	Chain(A, B) + target  =>  A.before -> B.before -> target -> B.after -> A.after
package xintercept
