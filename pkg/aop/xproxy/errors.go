package xproxy

import "errors"

var (
	// ErrNilTarget 目标为 nil
	ErrNilTarget = errors.New("xproxy: nil target")

	// ErrUnproxyable 目标既没有已注册接口可用，也没有具体类型桩
	ErrUnproxyable = errors.New("xproxy: target cannot be proxied")

	// ErrNotAssignable 生成的替身不能赋值给请求的类型
	ErrNotAssignable = errors.New("xproxy: proxy not assignable to requested type")

	// ErrUnknownMethod 桩调用了目标不存在的方法（桩与目标不同步）
	ErrUnknownMethod = errors.New("xproxy: unknown method")

	// ErrArgType 参数类型与目标方法签名不符
	ErrArgType = errors.New("xproxy: argument type mismatch")

	// ErrResultArity 拦截器返回的结果个数与方法签名不符
	ErrResultArity = errors.New("xproxy: result arity mismatch")
)
