package xproxy

import (
	"fmt"
	"reflect"
	"sync"
)

// Stub 由生成的桩类型内嵌
//
// 未导出的标记方法让桩可以被识别为替身，同时不向桩的导出方法集增加任何方法。
type Stub struct {
	Dispatcher *Dispatcher
}

func (s Stub) stubDispatcher() *Dispatcher { return s.Dispatcher }

type stubber interface {
	stubDispatcher() *Dispatcher
}

// =============================================================================
// 桩注册表
// =============================================================================

type ifaceEntry struct {
	typ   reflect.Type
	build func(Stub) any
}

type stubRegistry struct {
	mu        sync.RWMutex
	ifaces    []ifaceEntry
	concretes map[reflect.Type]func(Stub) any
}

var registry = &stubRegistry{concretes: make(map[reflect.Type]func(Stub) any)}

// RegisterInterface 注册接口 T 的桩构造函数，通常在生成代码的 init 中调用
//
// T 不是接口、build 为 nil 或重复注册时 panic。
func RegisterInterface[T any](build func(Stub) T) {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Interface {
		panic(fmt.Sprintf("xproxy: RegisterInterface: %s is not an interface", typ))
	}
	if build == nil {
		panic(fmt.Sprintf("xproxy: RegisterInterface: nil builder for %s", typ))
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	for _, e := range registry.ifaces {
		if e.typ == typ {
			panic(fmt.Sprintf("xproxy: RegisterInterface: %s registered twice", typ))
		}
	}
	registry.ifaces = append(registry.ifaces, ifaceEntry{
		typ:   typ,
		build: func(s Stub) any { return build(s) },
	})
}

// RegisterConcrete 注册具体类型 T（必须是结构体指针）的桩构造函数
//
// build 返回的桩应内嵌 T 的零值并覆盖 T 的全部导出方法。
func RegisterConcrete[T any](build func(Stub) any) {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Pointer || typ.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("xproxy: RegisterConcrete: %s is not a pointer to struct", typ))
	}
	if build == nil {
		panic(fmt.Sprintf("xproxy: RegisterConcrete: nil builder for %s", typ))
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	if _, dup := registry.concretes[typ]; dup {
		panic(fmt.Sprintf("xproxy: RegisterConcrete: %s registered twice", typ))
	}
	registry.concretes[typ] = build
}

// Registered 报告类型 t 是否注册了桩
func Registered(t reflect.Type) bool {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	if _, ok := registry.concretes[t]; ok {
		return true
	}
	for _, e := range registry.ifaces {
		if e.typ == t {
			return true
		}
	}
	return false
}

// lookupInterface 为 targetType 挑选接口桩
//
// prefer 非 nil、已注册且被实现时直接使用；否则只考虑与目标同包注册的接口，
// 按注册顺序取第一个。结构化类型下任意接口都可能被“碰巧”实现，
// 同包约束对应“目标声明的接口”。
func (r *stubRegistry) lookupInterface(targetType, prefer reflect.Type) (ifaceEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if prefer != nil {
		for _, e := range r.ifaces {
			if e.typ == prefer && targetType.Implements(e.typ) {
				return e, true
			}
		}
	}
	pkg := namespaceOf(targetType)
	for _, e := range r.ifaces {
		if e.typ.PkgPath() == pkg && targetType.Implements(e.typ) {
			return e, true
		}
	}
	return ifaceEntry{}, false
}

// lookupExact 查找指定接口的桩
func (r *stubRegistry) lookupExact(iface reflect.Type) (ifaceEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.ifaces {
		if e.typ == iface {
			return e, true
		}
	}
	return ifaceEntry{}, false
}

func (r *stubRegistry) lookupConcrete(targetType reflect.Type) (func(Stub) any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	build, ok := r.concretes[targetType]
	return build, ok
}
