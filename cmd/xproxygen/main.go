// xproxygen 为接口或具体类型生成 xproxy 替身桩。
//
// 用法（通常写在 go:generate 指令中）:
//
//	xproxygen --type OrderController,OrderService [--dir .] [--output zz_xaop_stubs.go]
//
// 接口生成值接收者的桩并以 RegisterInterface 注册；结构体生成内嵌 *T 的桩，
// 覆盖 *T 的全部导出方法（包括内嵌字段提升的方法），并以 RegisterConcrete 注册。
//
// 退出码:
//
//	0: 生成成功
//	1: 解析或写入失败
//	2: 参数错误
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
)

const defaultOutput = "zz_xaop_stubs.go"

// 版本信息（可通过 -ldflags 注入）
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args))
}

func createApp() *cli.Command {
	return &cli.Command{
		Name:    "xproxygen",
		Usage:   "生成 xproxy 替身桩",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "type",
				Aliases:  []string{"t"},
				Usage:    "逗号分隔的类型名（接口或结构体）",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "目标包目录",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "输出文件名，相对路径基于 --dir",
				Value:   defaultOutput,
			},
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return generateFile(cmd.String("dir"), cmd.String("output"), splitTypes(cmd.String("type")))
		},
	}
}

func run(ctx context.Context, args []string) int {
	if err := createApp().Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "xproxygen: %v\n", err)
		if errors.Is(err, ErrNoTypes) || isUsageError(err) {
			return 2
		}
		return 1
	}
	return 0
}

// isUsageError 识别 urfave/cli 的参数错误
func isUsageError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "flag provided but not defined") ||
		strings.Contains(msg, "Required flag") ||
		strings.Contains(msg, "required flag")
}

func splitTypes(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// generateFile 生成桩并写入 dir/output
func generateFile(dir, output string, types []string) error {
	if !filepath.IsAbs(output) {
		output = filepath.Join(dir, output)
	}
	src, err := Generate(dir, types, filepath.Base(output))
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, src, 0o644); err != nil { //nolint:gosec // 生成的源码文件需要可读
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}
