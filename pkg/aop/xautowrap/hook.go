package xautowrap

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/omeyang/xaop/pkg/aop/xpointcut"
	"github.com/omeyang/xaop/pkg/aop/xproxy"
	"github.com/omeyang/xaop/pkg/observability/xlog"
	"github.com/omeyang/xaop/pkg/observability/xmetrics"
)

// Hook 对象构造完成后的回调
type Hook interface {
	// AfterConstruction 返回对象的正式实例（原对象或替身）
	AfterConstruction(obj any, name string) (any, error)
}

// HookFunc 函数适配器
type HookFunc func(obj any, name string) (any, error)

// AfterConstruction 实现 Hook
func (f HookFunc) AfterConstruction(obj any, name string) (any, error) { return f(obj, name) }

// Entry 一条包装规则
type Entry struct {
	// Prefix 命名空间（包路径）前缀
	Prefix string
	// Advisors 命中后生效的 Advisor，顺序即拦截链顺序
	Advisors []*xproxy.Advisor
	// Options 额外的 xproxy 选项（如 WithProxyTargetClass）
	Options []xproxy.Option
}

type rule struct {
	prefix  string
	factory *xproxy.Factory
}

// Option Registry 与 Container 的选项
type Option func(*config)

type config struct {
	logger   xlog.Logger
	observer xmetrics.Observer
}

// WithLogger 设置日志记录器，默认 xlog.Default()
func WithLogger(l xlog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver 设置 FromSettings 中 observe 规则使用的 Observer，默认基于全局 OTel provider
func WithObserver(obs xmetrics.Observer) Option {
	return func(c *config) {
		if obs != nil {
			c.observer = obs
		}
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}

func (c config) log() xlog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return xlog.Default()
}

// Registry 命名空间前缀决策表，实现 Hook
type Registry struct {
	mu    sync.RWMutex
	rules []rule // 按前缀长度降序
	cfg   config
}

var _ Hook = (*Registry)(nil)

// NewRegistry 创建空的 Registry
func NewRegistry(opts ...Option) *Registry {
	return &Registry{cfg: newConfig(opts)}
}

// NewPostProcessor 创建只含一条规则的 Registry：prefix 之下的对象全部套上 advisors。
// 前缀为空返回 ErrEmptyPrefix。
func NewPostProcessor(prefix string, advisors ...*xproxy.Advisor) (*Registry, error) {
	r := NewRegistry()
	if err := r.Register(Entry{Prefix: prefix, Advisors: advisors}); err != nil {
		return nil, err
	}
	return r, nil
}

// Register 增加一条规则，前缀为空返回 ErrEmptyPrefix，重复返回 ErrDuplicatePrefix
func (r *Registry) Register(e Entry) error {
	prefix := normalizePrefix(e.Prefix)
	if prefix == "" {
		return ErrEmptyPrefix
	}
	opts := append([]xproxy.Option{
		xproxy.WithAdvisors(e.Advisors...),
		xproxy.WithLogger(r.cfg.log()),
	}, e.Options...)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rules {
		if existing.prefix == prefix {
			return fmt.Errorf("%w: %q", ErrDuplicatePrefix, prefix)
		}
	}
	r.rules = append(r.rules, rule{prefix: prefix, factory: xproxy.NewFactory(opts...)})
	sort.SliceStable(r.rules, func(i, j int) bool {
		return len(r.rules[i].prefix) > len(r.rules[j].prefix)
	})
	return nil
}

// Prefixes 返回已注册的前缀（最长优先）
func (r *Registry) Prefixes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.rules))
	for i, rl := range r.rules {
		out[i] = rl.prefix
	}
	return out
}

// Lookup 返回命中 namespace 的最长前缀规则
func (r *Registry) Lookup(namespace string) (prefix string, factory *xproxy.Factory, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rl := range r.rules {
		if xpointcut.HasNamespacePrefix(namespace, rl.prefix) {
			return rl.prefix, rl.factory, true
		}
	}
	return "", nil, false
}

// AfterConstruction 实现 Hook
//
// nil 对象与未命中前缀的对象原样返回；已是替身的对象按其真实目标的命名空间判断。
func (r *Registry) AfterConstruction(obj any, name string) (any, error) {
	if obj == nil {
		return nil, nil
	}
	ns := Namespace(obj)
	prefix, factory, ok := r.Lookup(ns)
	if !ok {
		return obj, nil
	}

	proxy, err := factory.Proxy(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%T) under %q: %w", ErrWrapFailed, name, obj, prefix, err)
	}
	r.cfg.log().Info(context.Background(), "xautowrap: wrapped",
		slog.String("name", name),
		slog.String("prefix", prefix),
		slog.String("type", fmt.Sprintf("%T", xproxy.Unwrap(obj))),
	)
	return proxy, nil
}

// Namespace 返回对象的命名空间：替身取真实目标，指针取元素类型的包路径
func Namespace(obj any) string {
	if d := xproxy.DispatcherOf(obj); d != nil {
		return d.Namespace()
	}
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.PkgPath()
}

// normalizePrefix 去掉 "/..." 后缀，与 xpointcut.Within 的写法一致
func normalizePrefix(p string) string {
	return strings.TrimSuffix(strings.TrimSpace(p), "/...")
}
