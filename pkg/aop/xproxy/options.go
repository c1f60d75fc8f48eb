package xproxy

import (
	"reflect"

	"github.com/omeyang/xaop/pkg/aop/xintercept"
	"github.com/omeyang/xaop/pkg/observability/xlog"
)

type options struct {
	advisors         []*Advisor
	proxyTargetClass bool
	iface            reflect.Type // 强制使用的接口
	prefer           reflect.Type // 优先使用的接口，不可用时按默认规则
	logger           xlog.Logger
}

// Option Factory 配置选项
type Option func(*options)

// WithAdvisors 追加 Advisor，注册顺序即拦截链顺序（先注册的在外层）
func WithAdvisors(advisors ...*Advisor) Option {
	return func(o *options) {
		o.advisors = append(o.advisors, advisors...)
	}
}

// WithInterceptors 追加作用于全部方法的拦截器
func WithInterceptors(ics ...xintercept.Interceptor) Option {
	return func(o *options) {
		for _, ic := range ics {
			if ic != nil {
				o.advisors = append(o.advisors, NewAdvisor(nil, ic))
			}
		}
	}
}

// WithProxyTargetClass 为 true 时跳过接口策略，始终使用具体类型桩
func WithProxyTargetClass(enable bool) Option {
	return func(o *options) { o.proxyTargetClass = enable }
}

// WithInterface 强制使用接口 t 的桩；目标未实现或 t 未注册时 Proxy 返回 ErrUnproxyable
func WithInterface(t reflect.Type) Option {
	return func(o *options) { o.iface = t }
}

// ForInterface 同 WithInterface(reflect.TypeFor[T]())
func ForInterface[T any]() Option {
	return WithInterface(reflect.TypeFor[T]())
}

// WithLogger 设置创建替身时的调试日志记录器，默认 xlog.Default()
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func preferInterface(t reflect.Type) Option {
	return func(o *options) { o.prefer = t }
}
