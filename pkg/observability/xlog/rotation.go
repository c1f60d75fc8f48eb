package xlog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// 轮转默认值
const (
	DefaultRotateMaxSizeMB  = 100
	DefaultRotateMaxBackups = 7
	DefaultRotateMaxAgeDays = 30

	maxRotateSizeMB = 10240
)

var (
	// ErrEmptyFilename 轮转文件路径为空
	ErrEmptyFilename = errors.New("xlog: empty rotation filename")

	// ErrInvalidRotation 轮转参数越界
	ErrInvalidRotation = errors.New("xlog: invalid rotation option")
)

type rotationConfig struct {
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool
	localTime  bool
}

// RotateOption 文件轮转选项
type RotateOption func(*rotationConfig)

// RotateMaxSize 单个文件最大大小（MB），取值 1~10240
func RotateMaxSize(mb int) RotateOption {
	return func(c *rotationConfig) { c.maxSizeMB = mb }
}

// RotateMaxBackups 保留的备份数量，0 表示不限
func RotateMaxBackups(n int) RotateOption {
	return func(c *rotationConfig) { c.maxBackups = n }
}

// RotateMaxAge 备份保留天数，0 表示不按天数清理
func RotateMaxAge(days int) RotateOption {
	return func(c *rotationConfig) { c.maxAgeDays = days }
}

// RotateCompress 是否 gzip 压缩备份
func RotateCompress(enable bool) RotateOption {
	return func(c *rotationConfig) { c.compress = enable }
}

// RotateLocalTime 备份文件名是否使用本地时间
func RotateLocalTime(enable bool) RotateOption {
	return func(c *rotationConfig) { c.localTime = enable }
}

// newRotator 创建基于 lumberjack 的轮转写入器，父目录不存在时自动创建。
func newRotator(filename string, opts ...RotateOption) (*lumberjack.Logger, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}
	cfg := rotationConfig{
		maxSizeMB:  DefaultRotateMaxSizeMB,
		maxBackups: DefaultRotateMaxBackups,
		maxAgeDays: DefaultRotateMaxAgeDays,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.maxSizeMB <= 0 || cfg.maxSizeMB > maxRotateSizeMB {
		return nil, fmt.Errorf("%w: max size %dMB", ErrInvalidRotation, cfg.maxSizeMB)
	}
	if cfg.maxBackups < 0 || cfg.maxAgeDays < 0 {
		return nil, fmt.Errorf("%w: negative retention", ErrInvalidRotation)
	}

	clean := filepath.Clean(filename)
	if err := os.MkdirAll(filepath.Dir(clean), 0o750); err != nil {
		return nil, fmt.Errorf("xlog: create log dir: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   clean,
		MaxSize:    cfg.maxSizeMB,
		MaxBackups: cfg.maxBackups,
		MaxAge:     cfg.maxAgeDays,
		Compress:   cfg.compress,
		LocalTime:  cfg.localTime,
	}, nil
}
