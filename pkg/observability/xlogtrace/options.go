package xlogtrace

import (
	"time"

	"github.com/google/uuid"

	"github.com/omeyang/xaop/pkg/observability/xlog"
)

// txIDLength 事务 ID 长度（UUID 前 8 个十六进制字符）
const txIDLength = 8

// NewTxID 生成 8 位十六进制事务 ID
func NewTxID() string {
	return uuid.NewString()[:txIDLength]
}

type options struct {
	sink   Sink
	now    func() time.Time
	newID  func() string
	logger xlog.Logger
}

// Option Tracer 配置选项
type Option func(*options)

// WithSink 设置输出目标，默认 LoggerSink(nil)（使用 xlog 全局 Logger）
func WithSink(s Sink) Option {
	return func(o *options) {
		if s != nil {
			o.sink = s
		}
	}
}

// WithClock 设置时钟，测试中用于固定耗时
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator 设置事务 ID 生成器
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithLogger 设置配对异常、输出失败等内部事件的日志记录器
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultOptions() options {
	return options{
		now:   time.Now,
		newID: NewTxID,
	}
}
