// xtracedemo 按配置装配示例下单应用并发起调用，演示调用树日志。
//
// 用法:
//
//	xtracedemo [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config   配置文件（yaml/json），为空时使用内置示例配置
//	    --delay    仓储 Save 模拟的耗时
//
// 命令:
//
//	request [item...]  调用 Controller.Request，每个商品一次
//	nolog              调用不在追踪范围内的 NoLog
//	check              校验配置并打印自动包装规则
//	loop               周期性调用 Request，配置文件变更时热更新日志级别，SIGINT/SIGTERM 退出
//
// 示例:
//
//	xtracedemo request item ex bad-item
//	xtracedemo request --variant v3 --concurrency 4 item
//	xtracedemo -c xaop.yaml loop --interval 500ms
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xaop/internal/app"
)

// 版本信息（可通过 -ldflags 注入）
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xtracedemo",
		Usage:     "调用树日志示例",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径，为空时使用内置示例配置",
			},
			&cli.DurationFlag{
				Name:  "delay",
				Usage: "仓储 Save 模拟的耗时",
			},
		},
		Commands: []*cli.Command{
			createRequestCommand(),
			createNoLogCommand(),
			createCheckCommand(),
			createLoopCommand(),
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := createApp(stdout, stderr).Run(ctx, args); err != nil {
		if errors.Is(err, context.Canceled) {
			return 0
		}
		fmt.Fprintf(stderr, "xtracedemo: %v\n", err)
		return 1
	}
	return 0
}

// buildApp 读取全局选项并装配应用
func buildApp(ctx context.Context, cmd *cli.Command) (*app.App, error) {
	root := cmd.Root()
	_, s, err := app.LoadConfig(root.String("config"))
	if err != nil {
		return nil, err
	}
	return app.New(ctx, s,
		app.WithTraceOutput(root.Writer),
		app.WithLogOutput(root.ErrWriter),
		app.WithRepositoryDelay(root.Duration("delay")),
	)
}

func closeApp(a *app.App, errp *error) {
	*errp = errors.Join(*errp, a.Close())
}

// intervalOrDefault 非正的间隔取 1s
func intervalOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Second
	}
	return d
}
