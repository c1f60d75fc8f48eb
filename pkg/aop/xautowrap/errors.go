package xautowrap

import "errors"

var (
	// ErrWrapFailed 命中前缀的对象无法被包装，属于启动期配置错误
	ErrWrapFailed = errors.New("xautowrap: wrap failed")

	// ErrEmptyPrefix 前缀为空（会匹配所有对象）
	ErrEmptyPrefix = errors.New("xautowrap: empty prefix")

	// ErrDuplicatePrefix 同一前缀注册了两次
	ErrDuplicatePrefix = errors.New("xautowrap: duplicate prefix")

	// ErrDuplicateName 容器中名称重复
	ErrDuplicateName = errors.New("xautowrap: duplicate name")

	// ErrNotFound 容器中没有该名称的对象
	ErrNotFound = errors.New("xautowrap: object not found")

	// ErrNotStarted 容器尚未启动
	ErrNotStarted = errors.New("xautowrap: container not started")

	// ErrAlreadyStarted 容器已启动，不能再注册或重复启动
	ErrAlreadyStarted = errors.New("xautowrap: container already started")

	// ErrStartFailed 启动期间构造或 Hook 失败
	ErrStartFailed = errors.New("xautowrap: start failed")

	// ErrTypeMismatch Resolve 的类型与对象不符
	ErrTypeMismatch = errors.New("xautowrap: type mismatch")

	// ErrNilConstructor 构造函数为 nil
	ErrNilConstructor = errors.New("xautowrap: nil constructor")
)
