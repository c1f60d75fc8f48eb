package xpointcut

import (
	"strings"
)

// JoinPoint 一次方法调用的静态身份
type JoinPoint struct {
	// Type 声明类型名（接口名或结构体名），如 "OrderService"
	Type string
	// Method 方法名，如 "OrderItem"
	Method string
	// Namespace 目标所在包路径，如 "github.com/acme/app/order"
	Namespace string
}

// Signature 返回 "Type.Method()"，与调用追踪使用的标签一致
func (jp JoinPoint) Signature() string {
	return jp.Type + "." + jp.Method + "()"
}

// Pointcut 切点：决定某个连接点是否需要被拦截
//
// 实现必须是纯函数，可并发调用。
type Pointcut interface {
	Matches(jp JoinPoint) bool
}

// PointcutFunc 函数适配器
type PointcutFunc func(jp JoinPoint) bool

// Matches 实现 Pointcut
func (f PointcutFunc) Matches(jp JoinPoint) bool { return f(jp) }

type constPointcut bool

func (c constPointcut) Matches(JoinPoint) bool { return bool(c) }

func (c constPointcut) String() string {
	if c {
		return "true"
	}
	return "false"
}

var (
	// True 匹配所有连接点
	True Pointcut = constPointcut(true)
	// False 不匹配任何连接点
	False Pointcut = constPointcut(false)
)

// =============================================================================
// 组合
// =============================================================================

type andPointcut []Pointcut

func (a andPointcut) Matches(jp JoinPoint) bool {
	for _, p := range a {
		if !p.Matches(jp) {
			return false
		}
	}
	return true
}

type orPointcut []Pointcut

func (o orPointcut) Matches(jp JoinPoint) bool {
	for _, p := range o {
		if p.Matches(jp) {
			return true
		}
	}
	return false
}

type notPointcut struct{ p Pointcut }

func (n notPointcut) Matches(jp JoinPoint) bool { return !n.p.Matches(jp) }

func compact(ps []Pointcut) []Pointcut {
	out := make([]Pointcut, 0, len(ps))
	for _, p := range ps {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// And 全部匹配才匹配；nil 元素被忽略，没有元素时等价于 True
func And(ps ...Pointcut) Pointcut {
	ps = compact(ps)
	switch len(ps) {
	case 0:
		return True
	case 1:
		return ps[0]
	}
	return andPointcut(ps)
}

// Or 任一匹配即匹配；nil 元素被忽略，没有元素时等价于 False
func Or(ps ...Pointcut) Pointcut {
	ps = compact(ps)
	switch len(ps) {
	case 0:
		return False
	case 1:
		return ps[0]
	}
	return orPointcut(ps)
}

// Not 取反；Not(nil) 等价于 False
func Not(p Pointcut) Pointcut {
	if p == nil {
		return False
	}
	if n, ok := p.(notPointcut); ok {
		return n.p
	}
	return notPointcut{p: p}
}

// =============================================================================
// 基础切点
// =============================================================================

type nameMatch struct {
	patterns []string
	field    func(JoinPoint) string
}

func (m nameMatch) Matches(jp JoinPoint) bool {
	s := m.field(jp)
	for _, p := range m.patterns {
		if SimpleMatch(p, s) {
			return true
		}
	}
	return false
}

func methodOf(jp JoinPoint) string { return jp.Method }
func typeOf(jp JoinPoint) string   { return jp.Type }

// NameMatch 方法名匹配任一模式即匹配，空模式被忽略
func NameMatch(patterns ...string) Pointcut {
	return nameMatch{patterns: nonEmpty(patterns), field: methodOf}
}

// TypeMatch 声明类型名匹配任一模式即匹配
func TypeMatch(patterns ...string) Pointcut {
	return nameMatch{patterns: nonEmpty(patterns), field: typeOf}
}

type within string

func (w within) Matches(jp JoinPoint) bool { return HasNamespacePrefix(jp.Namespace, string(w)) }

// Within 命名空间以 prefix 开头即匹配，prefix 末尾的 "/..." 会被去掉
func Within(prefix string) Pointcut {
	return within(strings.TrimSuffix(prefix, "/..."))
}

// HasNamespacePrefix 报告 ns 是否位于 prefix 之下
//
// 前缀按字符串比较，"acme/app" 同时覆盖 "acme/app/order" 与 "acme/apple"，
// 与基于包名前缀的扫描行为一致。空前缀匹配一切。
func HasNamespacePrefix(ns, prefix string) bool {
	return strings.HasPrefix(ns, prefix)
}

func nonEmpty(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =============================================================================
// 通配匹配
// =============================================================================

// SimpleMatch 判断 s 是否匹配带 '*' 通配的 pattern，大小写敏感
//
// '*' 匹配任意长度（含空）的子串，其余字符逐字比较。
func SimpleMatch(pattern, s string) bool {
	if pattern == "" {
		return s == ""
	}
	first := strings.IndexByte(pattern, '*')
	if first < 0 {
		return pattern == s
	}
	if pattern == "*" {
		return true
	}

	// 首段必须是前缀
	if !strings.HasPrefix(s, pattern[:first]) {
		return false
	}
	s = s[first:]
	rest := pattern[first+1:]

	for {
		next := strings.IndexByte(rest, '*')
		if next < 0 {
			// 末段必须是后缀
			return strings.HasSuffix(s, rest)
		}
		part := rest[:next]
		rest = rest[next+1:]
		if part == "" {
			continue
		}
		idx := strings.Index(s, part)
		if idx < 0 {
			return false
		}
		s = s[idx+len(part):]
	}
}
