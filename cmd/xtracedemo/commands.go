package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xaop/internal/app"
	"github.com/omeyang/xaop/pkg/config/xconf"
	"github.com/omeyang/xaop/pkg/lifecycle/xrun"
	"github.com/omeyang/xaop/pkg/observability/xlog"
	"github.com/omeyang/xaop/pkg/observability/xlogtrace"
)

func newVariantFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "variant",
		Usage: "示例版本：v1 接口替身，v3 具体类型替身",
		Value: app.VariantInterface,
	}
}

func createRequestCommand() *cli.Command {
	return &cli.Command{
		Name:      "request",
		Usage:     "调用 Controller.Request，每个商品一次",
		ArgsUsage: "[item...]",
		Flags: []cli.Flag{
			newVariantFlag(),
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"n"},
				Usage:   "并发调用方数量，每个调用方各自一棵调用树",
				Value:   1,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) (err error) {
			a, err := buildApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeApp(a, &err)

			items := cmd.Args().Slice()
			if len(items) == 0 {
				items = []string{"item"}
			}
			results, err := request(ctx, a, cmd.String("variant"), items, cmd.Int("concurrency"))
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintln(cmd.Root().Writer, r)
			}
			return nil
		},
	}
}

// request 每个调用方依次请求 items，结果在全部完成后按调用方顺序返回
func request(ctx context.Context, a *app.App, variant string, items []string, callers int) ([]string, error) {
	ctrl, err := a.Controller(variant)
	if err != nil {
		return nil, err
	}
	callers = max(callers, 1)

	results := make([][]string, callers)
	g, ctx := errgroup.WithContext(ctx)
	for i := range callers {
		g.Go(func() error {
			for _, item := range items {
				if err := ctx.Err(); err != nil {
					return err
				}
				got, err := ctrl.Request(xlogtrace.NewContext(ctx), item)
				line := fmt.Sprintf("caller=%d item=%s result=%s", i, item, got)
				if err != nil {
					line = fmt.Sprintf("caller=%d item=%s error=%s", i, item, xlogtrace.DescribeError(err))
				}
				results[i] = append(results[i], line)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []string
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func createNoLogCommand() *cli.Command {
	return &cli.Command{
		Name:  "nolog",
		Usage: "调用不在追踪范围内的 NoLog",
		Flags: []cli.Flag{newVariantFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) (err error) {
			a, err := buildApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeApp(a, &err)

			ctrl, err := a.Controller(cmd.String("variant"))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.Root().Writer, "result=%s\n", ctrl.NoLog())
			return nil
		},
	}
}

func createCheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "校验配置并打印自动包装规则",
		Action: func(ctx context.Context, cmd *cli.Command) (err error) {
			a, err := buildApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeApp(a, &err)

			w := cmd.Root().Writer
			s := a.Settings
			fmt.Fprintf(w, "sink=%s level=%s proxy_target_class=%t\n", s.Trace.Sink, s.Trace.Level, s.Proxy.ProxyTargetClass)
			for _, r := range s.Autowrap {
				fmt.Fprintf(w, "rule prefix=%s patterns=%s expression=%q advice=%s\n",
					r.Prefix, strings.Join(r.Patterns, ","), r.Expression, adviceOf(r))
			}
			names := a.Container.Names()
			sort.Strings(names)
			fmt.Fprintf(w, "objects=%s\n", strings.Join(names, ","))
			return nil
		},
	}
}

func adviceOf(r xconf.AutowrapRule) string {
	parts := []string{"trace"}
	if r.Observe {
		parts = append(parts, "observe")
	}
	if r.Cache.Enabled() {
		parts = append(parts, "cache")
	}
	if r.Retry.Enabled() {
		parts = append(parts, "retry")
	}
	if r.Breaker.Enabled() {
		parts = append(parts, "breaker")
	}
	return strings.Join(parts, ",")
}

func createLoopCommand() *cli.Command {
	return &cli.Command{
		Name:  "loop",
		Usage: "周期性调用 Request，配置文件变更时热更新日志级别",
		Flags: []cli.Flag{
			newVariantFlag(),
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "调用间隔",
				Value: time.Second,
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "调用次数，0 表示直到收到信号",
			},
			&cli.StringFlag{
				Name:  "item",
				Usage: "商品 ID",
				Value: "item",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) (err error) {
			a, err := buildApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeApp(a, &err)
			return loop(ctx, a, cmd)
		},
	}
}

// loop 请求、配置监视与信号处理作为一组服务运行，请求次数用完或收到信号时一起退出
func loop(ctx context.Context, a *app.App, cmd *cli.Command) error {
	ctrl, err := a.Controller(cmd.String("variant"))
	if err != nil {
		return err
	}

	g, _ := xrun.NewGroup(ctx,
		xrun.WithName("xtracedemo"),
		xrun.WithLogger(a.Logger),
		xrun.WithSignals(xrun.DefaultSignals()...),
	)
	if path := cmd.Root().String("config"); path != "" {
		var w *xconf.Watcher
		g.Go("watch", xrun.Hold(func() error {
			var werr error
			w, werr = watchLevel(ctx, a, path)
			return werr
		}, func() { _ = w.Stop() }))
	}

	item := cmd.String("item")
	tick := xrun.Ticker(intervalOrDefault(cmd.Duration("interval")), cmd.Int("count"), func(ctx context.Context) error {
		if _, err := ctrl.Request(xlogtrace.NewContext(ctx), item); err != nil {
			a.Logger.Warn(ctx, "xtracedemo: request failed", xlog.Err(err))
		}
		return nil
	})
	g.Go("request", func(ctx context.Context) error {
		err := tick(ctx)
		g.Cancel(nil)
		return err
	})

	err = g.Wait()
	if errors.Is(err, xrun.ErrSignal) {
		return nil
	}
	return err
}

// watchLevel 监视配置文件，变更后只热更新 trace.level，其余配置需要重启
func watchLevel(ctx context.Context, a *app.App, path string) (*xconf.Watcher, error) {
	cfg, err := xconf.New(path)
	if err != nil {
		return nil, err
	}
	w, err := xconf.Watch(cfg, func(cfg xconf.Config, err error) {
		if err != nil {
			a.Logger.Warn(ctx, "xtracedemo: config reload failed", xlog.Err(err))
			return
		}
		s, err := xconf.LoadSettings(cfg)
		if err != nil {
			a.Logger.Warn(ctx, "xtracedemo: invalid config ignored", xlog.Err(err))
			return
		}
		if err := a.SetLevel(s.Trace.Level); err != nil {
			a.Logger.Warn(ctx, "xtracedemo: level not applied", xlog.Err(err))
			return
		}
		a.Logger.Info(ctx, "xtracedemo: trace level applied", xlog.Operation("reload"))
	})
	if err != nil {
		return nil, err
	}
	w.StartAsync()
	return w, nil
}
