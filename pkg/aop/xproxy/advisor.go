package xproxy

import (
	"github.com/omeyang/xaop/pkg/aop/xintercept"
	"github.com/omeyang/xaop/pkg/aop/xpointcut"
)

// Advisor 切点 + 拦截器
//
// 以指针身份区分：同一个 *Advisor 在一个替身上最多生效一次。
type Advisor struct {
	Pointcut    xpointcut.Pointcut
	Interceptor xintercept.Interceptor
}

// NewAdvisor 创建 Advisor，pc 为 nil 时匹配全部方法
func NewAdvisor(pc xpointcut.Pointcut, ic xintercept.Interceptor) *Advisor {
	if pc == nil {
		pc = xpointcut.True
	}
	return &Advisor{Pointcut: pc, Interceptor: ic}
}

func (a *Advisor) matches(jp xpointcut.JoinPoint) bool {
	if a == nil || a.Interceptor == nil {
		return false
	}
	if a.Pointcut == nil {
		return true
	}
	return a.Pointcut.Matches(jp)
}

// mergeAdvisors 保持顺序拼接，按指针去重，nil 被忽略
func mergeAdvisors(lists ...[]*Advisor) []*Advisor {
	seen := make(map[*Advisor]struct{})
	var out []*Advisor
	for _, list := range lists {
		for _, a := range list {
			if a == nil {
				continue
			}
			if _, dup := seen[a]; dup {
				continue
			}
			seen[a] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}
