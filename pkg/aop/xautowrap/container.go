package xautowrap

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Constructor 构造一个对象，可通过 c.Get 取得先前构造的对象（已是正式实例）
type Constructor func(ctx context.Context, c *Container) (any, error)

// Container 急切构造的最小对象容器
//
// 按 Provide 的顺序构造，每个对象依次经过所有 Hook，结果保存为正式实例。
// Start 之后容器只读。
type Container struct {
	mu      sync.RWMutex
	order   []string
	ctors   map[string]Constructor
	objects map[string]any
	hooks   []Hook
	started bool
	cfg     config
}

// NewContainer 创建容器
func NewContainer(opts ...Option) *Container {
	return &Container{
		ctors:   make(map[string]Constructor),
		objects: make(map[string]any),
		cfg:     newConfig(opts),
	}
}

// Provide 注册构造函数
func (c *Container) Provide(name string, ctor Constructor) error {
	if ctor == nil {
		return fmt.Errorf("%w: %s", ErrNilConstructor, name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrAlreadyStarted
	}
	if _, ok := c.ctors[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	c.ctors[name] = ctor
	c.order = append(c.order, name)
	return nil
}

// ProvideValue 注册一个已构造的值，它同样经过 Hook
func (c *Container) ProvideValue(name string, v any) error {
	return c.Provide(name, func(context.Context, *Container) (any, error) { return v, nil })
}

// AddHook 追加 Hook，按追加顺序调用
func (c *Container) AddHook(h Hook) error {
	if h == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrAlreadyStarted
	}
	c.hooks = append(c.hooks, h)
	return nil
}

// Start 构造所有对象
//
// 任一构造函数或 Hook 失败即返回包装了 ErrStartFailed 的错误，容器保持未启动。
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	order := append([]string(nil), c.order...)
	hooks := append([]Hook(nil), c.hooks...)
	c.mu.Unlock()

	for _, name := range order {
		if err := ctx.Err(); err != nil {
			c.reset()
			return fmt.Errorf("%w: %w", ErrStartFailed, err)
		}
		obj, err := c.construct(ctx, name, hooks)
		if err != nil {
			c.reset()
			return fmt.Errorf("%w: %s: %w", ErrStartFailed, name, err)
		}
		c.mu.Lock()
		c.objects[name] = obj
		c.mu.Unlock()
	}

	c.mu.Lock()
	c.started = true
	c.mu.Unlock()
	c.cfg.log().Debug(ctx, "xautowrap: container started", slog.Int("objects", len(order)))
	return nil
}

func (c *Container) construct(ctx context.Context, name string, hooks []Hook) (any, error) {
	c.mu.RLock()
	ctor := c.ctors[name]
	c.mu.RUnlock()

	obj, err := ctor(ctx, c)
	if err != nil {
		return nil, err
	}
	for _, h := range hooks {
		if obj, err = h.AfterConstruction(obj, name); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func (c *Container) reset() {
	c.mu.Lock()
	c.objects = make(map[string]any)
	c.mu.Unlock()
}

// Get 返回正式实例
//
// Start 期间可取到已构造的对象；未启动且对象不存在时返回 ErrNotStarted。
func (c *Container) Get(name string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if obj, ok := c.objects[name]; ok {
		return obj, nil
	}
	if !c.started {
		return nil, fmt.Errorf("%w: %s", ErrNotStarted, name)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Names 返回按构造顺序排列的名称
func (c *Container) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// Resolve 取得正式实例并断言为 T
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	obj, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	v, ok := obj.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T", ErrTypeMismatch, name, obj)
	}
	return v, nil
}
