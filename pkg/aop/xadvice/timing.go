package xadvice

import (
	"context"
	"log/slog"

	"github.com/omeyang/xaop/pkg/aop/xintercept"
	"github.com/omeyang/xaop/pkg/observability/xlog"
)

// Timing 记录调用耗时
//
// 每次调用输出一条 Debug 日志；设置了 WithSlowThreshold 且耗时超过阈值时改为 Warn。
// 日志通过 ctx 携带调用树的 tx_id。
func Timing(opts ...Option) xintercept.Interceptor {
	s := apply(opts)
	return s.guard(func(ctx context.Context, inv *xintercept.Invocation, next xintercept.Handler) ([]any, error) {
		start := s.now()
		out, err := next(ctx, inv)
		elapsed := s.now().Sub(start)

		attrs := []slog.Attr{
			xlog.Operation(inv.Signature()),
			xlog.Duration(elapsed),
		}
		if err != nil {
			attrs = append(attrs, xlog.Err(err))
		}
		if s.slow > 0 && elapsed > s.slow {
			s.log().Warn(ctx, "xadvice: slow call", append(attrs, slog.Duration("threshold", s.slow))...)
		} else {
			s.log().Debug(ctx, "xadvice: call timed", attrs...)
		}
		return out, err
	})
}
