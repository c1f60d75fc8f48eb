// Package app 按配置装配示例下单应用：日志、调用树输出、自动包装 Hook 与容器。
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/omeyang/xaop/internal/demo/orderv1"
	"github.com/omeyang/xaop/internal/demo/orderv3"
	"github.com/omeyang/xaop/pkg/aop/xautowrap"
	"github.com/omeyang/xaop/pkg/config/xconf"
	"github.com/omeyang/xaop/pkg/observability/xlog"
	"github.com/omeyang/xaop/pkg/observability/xlogtrace"
	"github.com/omeyang/xaop/pkg/observability/xmetrics"
)

// ErrUnknownVariant 未知的示例版本
var ErrUnknownVariant = errors.New("app: unknown demo variant")

// 示例版本
const (
	VariantInterface = "v1" // 接口替身
	VariantConcrete  = "v3" // 具体类型替身
)

// Controller 两个版本的控制器共同满足的接口
type Controller interface {
	Request(ctx context.Context, itemID string) (string, error)
	NoLog() string
}

type options struct {
	logOut   io.Writer
	traceOut io.Writer
	delay    time.Duration
	observer xmetrics.Observer
}

// Option 装配选项
type Option func(*options)

// WithLogOutput 结构化日志输出，默认 stderr
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOut = w }
}

// WithTraceOutput stdout 输出目标实际写入的位置，默认 stdout
func WithTraceOutput(w io.Writer) Option {
	return func(o *options) { o.traceOut = w }
}

// WithRepositoryDelay 仓储 Save 模拟的耗时
func WithRepositoryDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithObserver 替换 observe 规则使用的观测器
func WithObserver(obs xmetrics.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// App 装配完成的示例应用
type App struct {
	Settings  xconf.Settings
	Logger    xlog.LoggerWithLevel
	Tracer    *xlogtrace.Tracer
	Container *xautowrap.Container
	// Memory sink 为 memory 时保存全部追踪行，否则为 nil
	Memory *xlogtrace.MemorySink

	closers []func() error
}

// New 按 s 装配并启动容器
func New(ctx context.Context, s xconf.Settings, opts ...Option) (*App, error) {
	o := options{logOut: os.Stderr, traceOut: os.Stdout}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	a := &App{Settings: s}
	logger, cleanup, err := xlog.New().
		SetOutput(o.logOut).
		SetLevelString(s.Trace.Level).
		Build()
	if err != nil {
		return nil, fmt.Errorf("app: build logger: %w", err)
	}
	a.Logger = logger
	a.closers = append(a.closers, cleanup)

	sink, err := a.newSink(s.Trace, o.traceOut)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Tracer = xlogtrace.New(xlogtrace.WithSink(sink), xlogtrace.WithLogger(logger))

	hookOpts := []xautowrap.Option{xautowrap.WithLogger(logger)}
	if o.observer != nil {
		hookOpts = append(hookOpts, xautowrap.WithObserver(o.observer))
	}
	registry, release, err := xautowrap.FromSettings(s, a.Tracer, hookOpts...)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.closers = append(a.closers, func() error { release(); return nil })

	c := xautowrap.NewContainer(xautowrap.WithLogger(logger))
	err = errors.Join(
		c.AddHook(registry),
		orderv1.Provide(c, o.delay),
		orderv3.Provide(c),
	)
	if err == nil {
		err = c.Start(ctx)
	}
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Container = c

	logger.Info(ctx, "app: started",
		xlog.Component("app"),
		slog.String("sink", s.Trace.Sink),
		slog.Int("rules", len(s.Autowrap)),
	)
	return a, nil
}

func (a *App) newSink(t xconf.TraceSettings, stdout io.Writer) (xlogtrace.Sink, error) {
	switch t.Sink {
	case xconf.SinkStdout:
		return xlogtrace.NewWriterSink(stdout, xlogtrace.WithColor(t.Color)), nil
	case xconf.SinkFile:
		w := newFileWriter(t.File)
		a.closers = append(a.closers, w.Close)
		return xlogtrace.NewWriterSink(w, xlogtrace.WithWriteErrorHandler(func(err error) {
			a.Logger.Error(context.Background(), "app: write trace file", xlog.Err(err))
		})), nil
	case xconf.SinkMemory:
		a.Memory = xlogtrace.NewMemorySink()
		return a.Memory, nil
	case xconf.SinkLogger, "":
		return xlogtrace.NewLoggerSink(a.Logger), nil
	default:
		return nil, fmt.Errorf("%w: trace.sink %q", xconf.ErrInvalidSettings, t.Sink)
	}
}

// newFileWriter 纯文本调用树写入滚动文件，0 值取 xlog 的轮转默认值
func newFileWriter(f xconf.FileSettings) *lumberjack.Logger {
	orDefault := func(v, def int) int {
		if v > 0 {
			return v
		}
		return def
	}
	return &lumberjack.Logger{
		Filename:   f.Path,
		MaxSize:    orDefault(f.MaxSizeMB, xlog.DefaultRotateMaxSizeMB),
		MaxBackups: orDefault(f.MaxBackups, xlog.DefaultRotateMaxBackups),
		MaxAge:     orDefault(f.MaxAgeDays, xlog.DefaultRotateMaxAgeDays),
		Compress:   f.Compress,
	}
}

// Controller 返回指定版本的控制器（已经过 Hook 处理）
func (a *App) Controller(variant string) (Controller, error) {
	switch variant {
	case VariantInterface, "":
		c, err := xautowrap.Resolve[orderv1.OrderController](a.Container, orderv1.NameController)
		if err != nil {
			return nil, err
		}
		return c, nil
	case VariantConcrete:
		c, err := xautowrap.Resolve[orderv3.Controller](a.Container, orderv3.NameController)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
}

// SetLevel 热更新日志级别，logger 输出目标下调用树行同样受影响
func (a *App) SetLevel(level string) error {
	l, err := xlog.ParseLevel(level)
	if err != nil {
		return err
	}
	a.Logger.SetLevel(l)
	return nil
}

// Close 逆序释放资源，可重复调用
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
