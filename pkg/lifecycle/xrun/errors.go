package xrun

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrSignal 因收到信号而退出
	ErrSignal = errors.New("xrun: received signal")
	// ErrNilService 服务函数为 nil
	ErrNilService = errors.New("xrun: nil service")
	// ErrInvalidInterval Ticker 间隔必须为正数
	ErrInvalidInterval = errors.New("xrun: interval must be positive")
)

// SignalError 记录触发退出的信号
type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("xrun: received signal %v", e.Signal)
}

// Unwrap 使 errors.Is(err, ErrSignal) 成立
func (e *SignalError) Unwrap() error { return ErrSignal }
