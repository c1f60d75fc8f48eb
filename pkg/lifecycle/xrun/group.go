package xrun

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xaop/pkg/observability/xlog"
)

// Service 一个服务，应在 ctx 取消后尽快返回
type Service func(ctx context.Context) error

// Group 一组协同退出的服务
//
// Go 与 Cancel 可并发调用，Wait 只应调用一次。
type Group struct {
	eg     *errgroup.Group
	ctx    context.Context
	parent context.Context
	cancel context.CancelCauseFunc
	opts   options
}

// NewGroup 创建 Group，返回的 ctx 在 Group 退出时取消
//
// 配置了信号时，返回前已完成信号注册。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	o := options{name: "xrun"}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = xlog.Default()
	}

	parent, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(parent)
	g := &Group{eg: eg, ctx: egCtx, parent: parent, cancel: cancel, opts: o}
	if len(o.signals) > 0 {
		g.watchSignals()
	}
	return g, egCtx
}

func (g *Group) watchSignals() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, g.opts.signals...)
	g.eg.Go(func() error {
		defer signal.Stop(ch)
		select {
		case sig := <-ch:
			g.opts.logger.Info(g.ctx, "xrun: received signal",
				slog.String("group", g.opts.name),
				slog.String("signal", sig.String()),
			)
			g.cancel(&SignalError{Signal: sig})
		case <-g.ctx.Done():
		}
		return nil
	})
}

// Go 启动服务；服务返回非 nil 错误时取消整个 Group
func (g *Group) Go(name string, svc Service) {
	g.eg.Go(func() error {
		if svc == nil {
			return ErrNilService
		}
		attrs := []slog.Attr{slog.String("group", g.opts.name), slog.String("service", name)}
		g.opts.logger.Debug(g.ctx, "xrun: service started", attrs...)
		err := svc(g.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			g.opts.logger.Warn(g.ctx, "xrun: service failed", append(attrs, xlog.Err(err))...)
		} else {
			g.opts.logger.Debug(g.ctx, "xrun: service stopped", attrs...)
		}
		return err
	})
}

// Cancel 取消所有服务；cause 非 nil 时由 Wait 返回
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Wait 等待全部服务退出
func (g *Group) Wait() error {
	defer g.cancel(nil)
	err := g.eg.Wait()

	// Group 被取消时，服务返回的 context.Canceled 不算错误，显式原因优先
	if g.parent.Err() != nil && (err == nil || errors.Is(err, context.Canceled)) {
		if cause := context.Cause(g.parent); !errors.Is(cause, context.Canceled) {
			return cause
		}
		return nil
	}
	return err
}
