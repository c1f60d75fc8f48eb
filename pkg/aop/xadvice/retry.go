package xadvice

import (
	"context"
	"errors"
	"log/slog"
	"time"

	retry "github.com/avast/retry-go/v5"

	"github.com/omeyang/xaop/pkg/aop/xintercept"
	"github.com/omeyang/xaop/pkg/observability/xlog"
)

const (
	defaultAttempts = 3
	defaultDelay    = 10 * time.Millisecond
)

// Retry 失败重试
//
// 每次尝试都重新调用下游（包括链上更内层的拦截器）。最终失败时返回最后一次的错误，
// 不做包装，调用方仍可用 errors.Is 判断原始错误。context 取消立即停止重试。
func Retry(opts ...Option) xintercept.Interceptor {
	s := apply(opts)
	if s.attempts == 0 {
		s.attempts = defaultAttempts
	}
	if s.delay == 0 {
		s.delay = defaultDelay
	}
	retryIf := s.retryIf
	if retryIf == nil {
		retryIf = retryable
	}

	return s.guard(func(ctx context.Context, inv *xintercept.Invocation, next xintercept.Handler) ([]any, error) {
		ropts := []retry.Option{
			retry.Context(ctx),
			retry.Attempts(s.attempts),
			retry.Delay(s.delay),
			retry.DelayType(retry.BackOffDelay),
			retry.RetryIf(retryIf),
			retry.LastErrorOnly(true),
			retry.OnRetry(func(n uint, err error) {
				s.log().Warn(ctx, "xadvice: retrying",
					xlog.Operation(inv.Signature()),
					slog.Uint64("attempt", uint64(n)+1),
					xlog.Err(err),
				)
			}),
		}
		if s.maxDelay > 0 {
			ropts = append(ropts, retry.MaxDelay(s.maxDelay))
		}
		return retry.NewWithData[[]any](ropts...).Do(func() ([]any, error) {
			return next(ctx, inv)
		})
	})
}

// retryable 默认判定：context 取消、超时与熔断拒绝都不重试
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !IsRejected(err)
}
