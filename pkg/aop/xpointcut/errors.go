package xpointcut

import "errors"

var (
	// ErrEmptyExpression 表达式为空
	ErrEmptyExpression = errors.New("xpointcut: empty expression")

	// ErrSyntax 表达式语法错误
	ErrSyntax = errors.New("xpointcut: syntax error")

	// ErrUnknownFunc 表达式引用了未知函数
	ErrUnknownFunc = errors.New("xpointcut: unknown function")

	// ErrEmptyRule Rule 既没有名称模式也没有表达式
	ErrEmptyRule = errors.New("xpointcut: rule has neither patterns nor expression")

	// ErrEmptyPattern 名称模式为空字符串
	ErrEmptyPattern = errors.New("xpointcut: empty pattern")
)
