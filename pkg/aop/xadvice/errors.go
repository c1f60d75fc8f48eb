package xadvice

import (
	"errors"
	"fmt"

	"github.com/sony/gobreaker/v2"
)

var (
	// ErrInvalidSize 缓存容量无效
	ErrInvalidSize = errors.New("xadvice: cache size must be positive")
	// ErrInvalidTTL 缓存 TTL 为负
	ErrInvalidTTL = errors.New("xadvice: cache ttl must not be negative")
	// ErrCacheClosed 缓存已关闭
	ErrCacheClosed = errors.New("xadvice: cache closed")
)

// BreakerError 熔断器拒绝调用时返回的错误
//
// 业务错误原样返回，只有熔断器自身的拒绝（打开或半开请求过多）才包装成 BreakerError。
type BreakerError struct {
	// Name 熔断器名称（方法签名）
	Name string
	// State 拒绝时的状态
	State gobreaker.State
	Err   error
}

func (e *BreakerError) Error() string {
	return fmt.Sprintf("xadvice: breaker %s %s: %v", e.Name, e.State, e.Err)
}

func (e *BreakerError) Unwrap() error { return e.Err }

// IsOpen 判断 err 是否为熔断器打开导致的拒绝
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState)
}

// IsRejected 判断 err 是否为熔断器拒绝（打开或半开请求过多）
func IsRejected(err error) bool {
	var be *BreakerError
	return errors.As(err, &be)
}
