package xlog

import (
	"log/slog"
	"time"

	"github.com/omeyang/xaop/pkg/context/xctx"
)

// 常用属性 Key
const (
	KeyError     = "error"
	KeyStack     = "stack"
	KeyDuration  = "duration"
	KeyComponent = "component"
	KeyOperation = "operation"
	KeyLabel     = "label"
	KeyPanic     = "panic"

	// KeyTxID 与 EnrichHandler 注入的字段同名
	KeyTxID = xctx.KeyTxID
)

// Err 创建错误属性，err 为 nil 时返回会被 slog 忽略的空属性
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建人类可读的耗时属性（如 "1.5ms"）
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 标识日志来源组件（被拦截对象的类型名）
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 标识当前操作（被拦截的方法名）
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Label 调用标签，形如 "OrderService.OrderItem()"
func Label(label string) slog.Attr {
	return slog.String(KeyLabel, label)
}

// TxID 显式记录事务 ID（不经过 EnrichHandler 的场景）
func TxID(id string) slog.Attr {
	return slog.String(KeyTxID, id)
}

// Panic 记录 panic 值
func Panic(v any) slog.Attr {
	return slog.Any(KeyPanic, v)
}
