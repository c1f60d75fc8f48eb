package xadvice

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/omeyang/xaop/pkg/aop/xintercept"
)

// KeyFunc 计算缓存键
type KeyFunc func(inv *xintercept.Invocation) string

// DefaultKey 方法签名加参数的 %#v 表示
func DefaultKey(inv *xintercept.Invocation) string {
	var b strings.Builder
	b.WriteString(inv.Signature())
	for _, a := range inv.Args {
		b.WriteByte('|')
		fmt.Fprintf(&b, "%#v", a)
	}
	return b.String()
}

// CacheStats 缓存计数
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Len    int
}

// Cacher 调用结果缓存
//
// 只缓存无错误的结果；命中时不调用下游，返回结果的副本。
// 必须通过 [Cache] 创建，使用完毕调用 Close。
type Cacher struct {
	lru       *expirable.LRU[string, []any]
	key       KeyFunc
	s         settings
	hits      atomic.Uint64
	misses    atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

// Cache 创建容量为 size、条目存活 ttl 的缓存，ttl 为 0 表示不过期
func Cache(size int, ttl time.Duration, opts ...Option) (*Cacher, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if ttl < 0 {
		return nil, ErrInvalidTTL
	}
	s := apply(opts)
	key := s.key
	if key == nil {
		key = DefaultKey
	}
	return &Cacher{
		lru: expirable.NewLRU[string, []any](size, nil, ttl),
		key: key,
		s:   s,
	}, nil
}

// Interceptor 返回缓存拦截器
func (c *Cacher) Interceptor() xintercept.Interceptor {
	return c.s.guard(func(ctx context.Context, inv *xintercept.Invocation, next xintercept.Handler) ([]any, error) {
		if c.closed.Load() {
			return next(ctx, inv)
		}
		k := c.key(inv)
		if out, ok := c.lru.Get(k); ok {
			c.hits.Add(1)
			return append([]any(nil), out...), nil
		}
		c.misses.Add(1)

		out, err := next(ctx, inv)
		if err == nil && !c.closed.Load() {
			c.lru.Add(k, append([]any(nil), out...))
		}
		return out, err
	})
}

// Stats 返回命中统计
func (c *Cacher) Stats() CacheStats {
	n := 0
	if !c.closed.Load() {
		n = c.lru.Len()
	}
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Len: n}
}

// Purge 清空缓存
func (c *Cacher) Purge() {
	if !c.closed.Load() {
		c.lru.Purge()
	}
}

// Close 清空缓存并停止过期清理 goroutine，幂等
//
// 关闭后拦截器退化为直接透传。
func (c *Cacher) Close() {
	c.closed.Store(true)
	c.closeOnce.Do(func() {
		c.lru.Purge()
		stopCleanup(c.lru)
	})
}

// stopCleanup 关闭 expirable.LRU 内部的 done 通道，使 TTL 清理 goroutine 退出
//
// golang-lru v2.0.7 在 TTL > 0 时启动后台 goroutine 但未提供公开的 Close。
// 上游字段变化时返回 false（goroutine 随进程结束）。升级版本时检查是否已有公开 Close。
func stopCleanup(lru any) (stopped bool) {
	defer func() {
		if r := recover(); r != nil {
			stopped = false
		}
	}()

	v := reflect.ValueOf(lru)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return false
	}
	done := v.Elem().FieldByName("done")
	if !done.IsValid() || done.Type() != reflect.TypeFor[chan struct{}]() || done.IsNil() {
		return false
	}
	ch := *(*chan struct{})(unsafe.Pointer(done.UnsafeAddr())) //nolint:gosec // 访问上游未导出字段
	close(ch)
	return true
}
