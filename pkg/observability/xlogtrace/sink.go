package xlogtrace

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/fatih/color"

	"github.com/omeyang/xaop/pkg/observability/xlog"
)

// Sink 追踪行的输出目标
//
// 实现必须可并发调用。Emit 不返回错误：输出失败由实现自行处理，不得影响业务调用。
type Sink interface {
	Emit(ctx context.Context, line Line)
}

// SinkFunc 函数适配器
type SinkFunc func(ctx context.Context, line Line)

// Emit 实现 Sink
func (f SinkFunc) Emit(ctx context.Context, line Line) { f(ctx, line) }

// =============================================================================
// LoggerSink
// =============================================================================

type loggerSink struct {
	logger xlog.Logger
}

// NewLoggerSink 把追踪行写入 xlog：进入与退出为 Info，失败为 Warn。
//
// logger 为 nil 时每次输出都使用 xlog.Default()，可跟随 SetDefault 切换。
func NewLoggerSink(logger xlog.Logger) Sink {
	return &loggerSink{logger: logger}
}

func (s *loggerSink) Emit(ctx context.Context, line Line) {
	l := s.logger
	if l == nil {
		l = xlog.Default()
	}
	attrs := []slog.Attr{
		xlog.Label(line.Label),
		slog.Int("call_level", line.ID.Level),
	}
	switch line.Kind {
	case KindBegin:
		l.Info(ctx, line.Text, attrs...)
	case KindEnd:
		l.Info(ctx, line.Text, append(attrs, slog.Int64("elapsed_ms", line.Elapsed.Milliseconds()))...)
	default:
		l.Warn(ctx, line.Text, append(attrs,
			slog.Int64("elapsed_ms", line.Elapsed.Milliseconds()),
			xlog.Err(line.Err))...)
	}
}

// =============================================================================
// WriterSink
// =============================================================================

type writerConfig struct {
	colored bool
	onError func(error)
}

// WriterOption WriterSink 选项
type WriterOption func(*writerConfig)

// WithColor 强制开启或关闭着色：失败行红色，退出行暗色
func WithColor(enable bool) WriterOption {
	return func(c *writerConfig) { c.colored = enable }
}

// WithWriteErrorHandler 设置写入失败回调
func WithWriteErrorHandler(fn func(error)) WriterOption {
	return func(c *writerConfig) { c.onError = fn }
}

type writerSink struct {
	mu      sync.Mutex
	w       io.Writer
	cfg     writerConfig
	failure *color.Color
	exit    *color.Color
}

// NewWriterSink 每行一条写入 w，内部加锁保证行不交错
func NewWriterSink(w io.Writer, opts ...WriterOption) Sink {
	var cfg writerConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	s := &writerSink{
		w:       w,
		cfg:     cfg,
		failure: color.New(color.FgRed),
		exit:    color.New(color.Faint),
	}
	if cfg.colored {
		s.failure.EnableColor()
		s.exit.EnableColor()
	}
	return s
}

func (s *writerSink) Emit(_ context.Context, line Line) {
	text := line.Text
	if s.cfg.colored {
		switch line.Kind {
		case KindFail:
			text = s.failure.Sprint(text)
		case KindEnd:
			text = s.exit.Sprint(text)
		}
	}

	s.mu.Lock()
	_, err := io.WriteString(s.w, text+"\n")
	s.mu.Unlock()
	if err != nil && s.cfg.onError != nil {
		s.cfg.onError(err)
	}
}

// =============================================================================
// MemorySink
// =============================================================================

// MemorySink 把追踪行保存在内存中，主要用于测试与 CLI 演练
type MemorySink struct {
	mu    sync.Mutex
	lines []Line
}

// NewMemorySink 创建 MemorySink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Emit 实现 Sink
func (m *MemorySink) Emit(_ context.Context, line Line) {
	m.mu.Lock()
	m.lines = append(m.lines, line)
	m.mu.Unlock()
}

// Lines 返回已记录行的副本
func (m *MemorySink) Lines() []Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out
}

// Texts 返回已记录行的文本
func (m *MemorySink) Texts() []string {
	lines := m.Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// ByTx 按事务 ID 分组，组内保持输出顺序
func (m *MemorySink) ByTx() map[string][]Line {
	out := make(map[string][]Line)
	for _, l := range m.Lines() {
		out[l.ID.TxID] = append(out[l.ID.TxID], l)
	}
	return out
}

// Reset 清空已记录行
func (m *MemorySink) Reset() {
	m.mu.Lock()
	m.lines = nil
	m.mu.Unlock()
}

// =============================================================================
// MultiSink
// =============================================================================

type multiSink []Sink

func (ms multiSink) Emit(ctx context.Context, line Line) {
	for _, s := range ms {
		s.Emit(ctx, line)
	}
}

// MultiSink 依次写入多个 Sink，nil 被忽略
func MultiSink(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
