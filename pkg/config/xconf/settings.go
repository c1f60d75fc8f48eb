package xconf

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/omeyang/xaop/pkg/aop/xpointcut"
	"github.com/omeyang/xaop/pkg/observability/xlog"
)

// 调用树日志的输出目标
const (
	SinkLogger = "logger" // 写入 xlog 结构化日志
	SinkStdout = "stdout" // 纯文本写到标准输出
	SinkFile   = "file"   // 纯文本写到滚动文件
	SinkMemory = "memory" // 保存在内存中，用于测试
)

// Settings xaop 的领域配置
type Settings struct {
	Trace    TraceSettings  `koanf:"trace"`
	Proxy    ProxySettings  `koanf:"proxy"`
	Autowrap []AutowrapRule `koanf:"autowrap"`
}

// TraceSettings 调用树日志
type TraceSettings struct {
	Sink  string       `koanf:"sink"`
	Color bool         `koanf:"color"`
	Level string       `koanf:"level"`
	File  FileSettings `koanf:"file"`
}

// FileSettings 文件输出的滚动参数，0 值使用 xlog 的默认值
type FileSettings struct {
	Path       string `koanf:"path"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
	Compress   bool   `koanf:"compress"`
}

// ProxySettings 替身策略
type ProxySettings struct {
	// ProxyTargetClass 为 true 时始终使用具体类型替身
	ProxyTargetClass bool `koanf:"proxy_target_class"`
}

// AutowrapRule 一条自动包装规则
//
// Patterns/Expression 决定哪些方法记录调用树，都为空时记录全部方法。
type AutowrapRule struct {
	Prefix     string          `koanf:"prefix"`
	Patterns   []string        `koanf:"patterns"`
	Expression string          `koanf:"expression"`
	Observe    bool            `koanf:"observe"`
	Cache      CacheSettings   `koanf:"cache"`
	Retry      RetrySettings   `koanf:"retry"`
	Breaker    BreakerSettings `koanf:"breaker"`
}

// TraceRule 返回调用树的匹配规则
func (r AutowrapRule) TraceRule() xpointcut.Rule {
	return xpointcut.Rule{Patterns: r.Patterns, Expression: r.Expression}
}

// CacheSettings 结果缓存，Patterns 为空时不启用
type CacheSettings struct {
	Patterns []string      `koanf:"patterns"`
	Size     int           `koanf:"size"`
	TTL      time.Duration `koanf:"ttl"`
}

// Enabled 报告是否启用
func (c CacheSettings) Enabled() bool { return len(c.Patterns) > 0 }

// RetrySettings 失败重试，Patterns 为空时不启用
type RetrySettings struct {
	Patterns []string      `koanf:"patterns"`
	Attempts uint          `koanf:"attempts"`
	Delay    time.Duration `koanf:"delay"`
}

// Enabled 报告是否启用
func (r RetrySettings) Enabled() bool { return len(r.Patterns) > 0 }

// BreakerSettings 按方法熔断，Patterns 为空时不启用
type BreakerSettings struct {
	Patterns    []string      `koanf:"patterns"`
	TripAfter   uint32        `koanf:"trip_after"`
	OpenTimeout time.Duration `koanf:"open_timeout"`
}

// Enabled 报告是否启用
func (b BreakerSettings) Enabled() bool { return len(b.Patterns) > 0 }

// DefaultSettings 返回默认配置：结构化日志输出、info 级别、无自动包装规则
func DefaultSettings() Settings {
	return Settings{
		Trace: TraceSettings{Sink: SinkLogger, Level: "info"},
	}
}

// LoadSettings 从 cfg 读取 Settings，缺省项取默认值并校验
func LoadSettings(cfg Config) (Settings, error) {
	s := DefaultSettings()
	if err := cfg.Unmarshal("", &s); err != nil {
		return Settings{}, err
	}
	if s.Trace.Sink == "" {
		s.Trace.Sink = SinkLogger
	}
	if s.Trace.Level == "" {
		s.Trace.Level = "info"
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate 校验配置，所有问题合并在一个错误中返回
func (s Settings) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSettings}, args...)...))
	}

	switch s.Trace.Sink {
	case SinkLogger, SinkStdout, SinkMemory:
	case SinkFile:
		if strings.TrimSpace(s.Trace.File.Path) == "" {
			add("trace.file.path is required for sink %q", SinkFile)
		}
	default:
		add("trace.sink %q", s.Trace.Sink)
	}
	if _, err := xlog.ParseLevel(s.Trace.Level); err != nil {
		add("trace.level: %v", err)
	}

	seen := make(map[string]int, len(s.Autowrap))
	for i, r := range s.Autowrap {
		prefix := strings.TrimSpace(r.Prefix)
		if prefix == "" {
			add("autowrap[%d].prefix is empty", i)
		} else if j, dup := seen[prefix]; dup {
			add("autowrap[%d].prefix %q duplicates autowrap[%d]", i, prefix, j)
		} else {
			seen[prefix] = i
		}

		if rule := r.TraceRule(); len(rule.Patterns) > 0 || !rule.IsZero() {
			if _, err := rule.Compile(); err != nil {
				add("autowrap[%d]: %v", i, err)
			}
		}
		if r.Cache.Size < 0 || r.Cache.TTL < 0 {
			add("autowrap[%d].cache: size and ttl must not be negative", i)
		}
		if r.Retry.Delay < 0 {
			add("autowrap[%d].retry.delay must not be negative", i)
		}
		if r.Breaker.OpenTimeout < 0 {
			add("autowrap[%d].breaker.open_timeout must not be negative", i)
		}
	}
	return errors.Join(errs...)
}
