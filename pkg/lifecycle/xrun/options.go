package xrun

import (
	"os"
	"syscall"

	"github.com/omeyang/xaop/pkg/observability/xlog"
)

type options struct {
	name    string
	logger  xlog.Logger
	signals []os.Signal
}

// Option Group 选项
type Option func(*options)

// WithName 日志中的 Group 名称，默认 "xrun"
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger 记录服务启停，默认 xlog.Default()
func WithLogger(l xlog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSignals 收到任一信号时取消 Group，默认不监听信号
func WithSignals(signals ...os.Signal) Option {
	copied := append([]os.Signal(nil), signals...)
	return func(o *options) { o.signals = copied }
}

// DefaultSignals 返回 SIGINT、SIGTERM
func DefaultSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}
