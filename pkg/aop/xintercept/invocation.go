package xintercept

import (
	"github.com/omeyang/xaop/pkg/aop/xpointcut"
)

// Invocation 一次被拦截的方法调用
//
// Args 不含首位的 context.Context（它作为 Handler 的 ctx 参数单独传递），
// 也不含被拆出的尾部 error 结果。拦截器可以改写 Args，链尾使用改写后的值。
type Invocation struct {
	// Type 声明类型名（接口名或结构体名）
	Type string
	// Method 方法名
	Method string
	// Namespace 目标所在包路径
	Namespace string
	// Args 调用参数（不含 ctx）
	Args []any
	// Target 真实目标对象，拦截器只读
	Target any
}

// JoinPoint 返回用于切点匹配的连接点
func (inv *Invocation) JoinPoint() xpointcut.JoinPoint {
	return xpointcut.JoinPoint{Type: inv.Type, Method: inv.Method, Namespace: inv.Namespace}
}

// Signature 返回 "Type.Method()"
func (inv *Invocation) Signature() string {
	return inv.JoinPoint().Signature()
}

// Arg 返回第 i 个参数，越界返回 nil
func (inv *Invocation) Arg(i int) any {
	if i < 0 || i >= len(inv.Args) {
		return nil
	}
	return inv.Args[i]
}
