package xrun

import (
	"context"
	"time"
)

// Ticker 立即执行一次 fn，之后每 interval 执行一次
//
// count 大于 0 时执行 count 次后返回 nil；fn 出错时返回该错误。
func Ticker(interval time.Duration, count int, fn func(ctx context.Context) error) Service {
	return func(ctx context.Context) error {
		if interval <= 0 {
			return ErrInvalidInterval
		}
		if fn == nil {
			return ErrNilService
		}
		t := time.NewTicker(interval)
		defer t.Stop()

		for n := 1; ; n++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx); err != nil {
				return err
			}
			if count > 0 && n >= count {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
		}
	}
}

// Hold 执行 start 后保持运行，ctx 取消时调用 stop
func Hold(start func() error, stop func()) Service {
	return func(ctx context.Context) error {
		if start != nil {
			if err := start(); err != nil {
				return err
			}
		}
		<-ctx.Done()
		if stop != nil {
			stop()
		}
		return nil
	}
}
