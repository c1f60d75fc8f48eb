package xadvice

import (
	"context"
	"time"

	"github.com/omeyang/xaop/pkg/aop/xintercept"
	"github.com/omeyang/xaop/pkg/aop/xpointcut"
	"github.com/omeyang/xaop/pkg/observability/xlog"
)

// common 各通知共享的配置
type common struct {
	pointcut xpointcut.Pointcut
	logger   xlog.Logger
	now      func() time.Time
}

func newCommon() common {
	return common{pointcut: xpointcut.True, now: time.Now}
}

func (c common) log() xlog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return xlog.Default()
}

// guard 未匹配切点的调用直接透传
func (c common) guard(ic xintercept.Interceptor) xintercept.Interceptor {
	pc := c.pointcut
	return func(ctx context.Context, inv *xintercept.Invocation, next xintercept.Handler) ([]any, error) {
		if !pc.Matches(inv.JoinPoint()) {
			return next(ctx, inv)
		}
		return ic(ctx, inv, next)
	}
}

// Option 通知选项
type Option func(*settings)

type settings struct {
	common

	// Timing
	slow time.Duration

	// Cache
	size int
	ttl  time.Duration
	key  KeyFunc

	// Retry
	attempts uint
	delay    time.Duration
	maxDelay time.Duration
	retryIf  func(error) bool

	// Breaker
	threshold   uint32
	timeout     time.Duration
	interval    time.Duration
	maxRequests uint32
}

func apply(opts []Option) settings {
	s := settings{common: newCommon()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.pointcut == nil {
		s.pointcut = xpointcut.True
	}
	return s
}

// WithPointcut 只作用于匹配的调用
func WithPointcut(pc xpointcut.Pointcut) Option {
	return func(s *settings) { s.pointcut = pc }
}

// WithLogger 设置日志记录器，默认 xlog.Default()
func WithLogger(l xlog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock 替换时钟，用于测试
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSlowThreshold Timing 的告警阈值，0 表示不告警
func WithSlowThreshold(d time.Duration) Option {
	return func(s *settings) { s.slow = d }
}

// WithKeyFunc Cache 的键函数
func WithKeyFunc(f KeyFunc) Option {
	return func(s *settings) {
		if f != nil {
			s.key = f
		}
	}
}

// WithAttempts Retry 的最大尝试次数（含首次），默认 3
func WithAttempts(n uint) Option {
	return func(s *settings) {
		if n > 0 {
			s.attempts = n
		}
	}
}

// WithDelay Retry 的初始退避，默认 10ms；maxDelay 为 0 时不设上限
func WithDelay(delay, maxDelay time.Duration) Option {
	return func(s *settings) {
		if delay >= 0 {
			s.delay = delay
		}
		if maxDelay >= 0 {
			s.maxDelay = maxDelay
		}
	}
}

// WithRetryIf Retry 的错误判定，默认重试除 context 取消以外的所有错误
func WithRetryIf(f func(error) bool) Option {
	return func(s *settings) {
		if f != nil {
			s.retryIf = f
		}
	}
}

// WithTripAfter Breaker 连续失败多少次后打开，默认 5
func WithTripAfter(n uint32) Option {
	return func(s *settings) {
		if n > 0 {
			s.threshold = n
		}
	}
}

// WithOpenTimeout Breaker 从打开到半开的等待时间，默认 60s
func WithOpenTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithInterval Breaker 关闭状态下清零计数的周期，0 表示不清零
func WithInterval(d time.Duration) Option {
	return func(s *settings) {
		if d >= 0 {
			s.interval = d
		}
	}
}

// WithHalfOpenRequests Breaker 半开状态允许的请求数，默认 1
func WithHalfOpenRequests(n uint32) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxRequests = n
		}
	}
}
