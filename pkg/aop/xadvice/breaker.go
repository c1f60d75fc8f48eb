package xadvice

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/omeyang/xaop/pkg/aop/xintercept"
)

const (
	defaultTripAfter   = 5
	defaultOpenTimeout = 60 * time.Second
)

// CircuitBreaker 按方法签名划分的熔断器集合
//
// 每个被拦截的方法有独立的 gobreaker 实例，首次调用时创建。
type CircuitBreaker struct {
	name     string
	s        settings
	breakers sync.Map // signature -> *gobreaker.CircuitBreaker[[]any]
}

// Breaker 创建熔断器集合
func Breaker(name string, opts ...Option) *CircuitBreaker {
	s := apply(opts)
	if s.threshold == 0 {
		s.threshold = defaultTripAfter
	}
	if s.timeout == 0 {
		s.timeout = defaultOpenTimeout
	}
	if s.maxRequests == 0 {
		s.maxRequests = 1
	}
	return &CircuitBreaker{name: name, s: s}
}

func (b *CircuitBreaker) breakerFor(sig string) *gobreaker.CircuitBreaker[[]any] {
	if cb, ok := b.breakers.Load(sig); ok {
		return cb.(*gobreaker.CircuitBreaker[[]any])
	}
	threshold := b.s.threshold
	cb := gobreaker.NewCircuitBreaker[[]any](gobreaker.Settings{
		Name:        b.name + ":" + sig,
		MaxRequests: b.s.maxRequests,
		Interval:    b.s.interval,
		Timeout:     b.s.timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= threshold
		},
		// 调用方取消不算下游故障
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			b.s.log().Warn(context.Background(), "xadvice: breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
	actual, _ := b.breakers.LoadOrStore(sig, cb)
	return actual.(*gobreaker.CircuitBreaker[[]any])
}

// State 返回某个方法签名的熔断器状态，未调用过的方法为关闭
func (b *CircuitBreaker) State(signature string) gobreaker.State {
	if cb, ok := b.breakers.Load(signature); ok {
		return cb.(*gobreaker.CircuitBreaker[[]any]).State()
	}
	return gobreaker.StateClosed
}

// Interceptor 返回熔断拦截器
//
// 业务错误原样返回；熔断器拒绝时返回 *BreakerError，下游不被调用。
func (b *CircuitBreaker) Interceptor() xintercept.Interceptor {
	return b.s.guard(func(ctx context.Context, inv *xintercept.Invocation, next xintercept.Handler) ([]any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cb := b.breakerFor(inv.Signature())
		out, err := cb.Execute(func() ([]any, error) {
			return next(ctx, inv)
		})
		// 只认本熔断器的哨兵错误，内层熔断器的拒绝原样向外传
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests { //nolint:errorlint // 不沿错误链归因
			return nil, &BreakerError{Name: cb.Name(), State: cb.State(), Err: err}
		}
		return out, err
	})
}
