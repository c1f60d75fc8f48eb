package xctx

import "errors"

// =============================================================================
// Context Key 类型定义
// =============================================================================

// 包私有 string 类型，调试时 key 可读，且不会与其他包的 key 冲突。
type contextKey string

// =============================================================================
// 通用错误
// =============================================================================

var (
	// ErrNilContext 表示传入的 context 为 nil。
	ErrNilContext = errors.New("xctx: nil context")

	// ErrInvalidCallFrame 表示注入的调用帧深度为负。
	ErrInvalidCallFrame = errors.New("xctx: invalid call frame")

	// ErrMissingCallFrame 表示 context 中没有活动的调用帧。
	ErrMissingCallFrame = errors.New("xctx: missing call frame")
)
