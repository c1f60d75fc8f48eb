package xproxy

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/omeyang/xaop/pkg/aop/xintercept"
	"github.com/omeyang/xaop/pkg/aop/xpointcut"
)

// Strategy 替身策略
type Strategy int

const (
	// StrategyInterface 实现接口并委托
	StrategyInterface Strategy = iota + 1
	// StrategyConcrete 内嵌目标类型零值并覆盖方法
	StrategyConcrete
)

func (s Strategy) String() string {
	switch s {
	case StrategyInterface:
		return "interface"
	case StrategyConcrete:
		return "concrete"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

var (
	ctxType = reflect.TypeFor[context.Context]()
	errType = reflect.TypeFor[error]()
)

// method 目标方法的调用元数据，构造时一次性算好
type method struct {
	name     string
	fn       reflect.Value // 已绑定接收者的方法值
	ctxFirst bool
	errLast  bool
	variadic bool
	// chain 匹配该方法的拦截器合成的链，nil 表示直接调用
	chain xintercept.Interceptor
}

func (m *method) numValues() int {
	n := m.fn.Type().NumOut()
	if m.errLast {
		n--
	}
	return n
}

// Dispatcher 替身的调用中枢：持有真实目标、方法表与 Advisor
//
// 构造后只读，可并发调用。
type Dispatcher struct {
	target    any
	typeName  string
	namespace string
	strategy  Strategy
	advisors  []*Advisor
	methods   map[string]*method
}

// newDispatcher methodSet 决定暴露哪些方法：接口策略为接口类型，具体类型策略为目标指针类型
func newDispatcher(target any, methodSet reflect.Type, typeName string, strategy Strategy, advisors []*Advisor) *Dispatcher {
	d := &Dispatcher{
		target:    target,
		typeName:  typeName,
		namespace: namespaceOf(reflect.TypeOf(target)),
		strategy:  strategy,
		advisors:  advisors,
		methods:   make(map[string]*method, methodSet.NumMethod()),
	}

	rv := reflect.ValueOf(target)
	for i := range methodSet.NumMethod() {
		name := methodSet.Method(i).Name
		fn := rv.MethodByName(name)
		if !fn.IsValid() {
			continue
		}
		ft := fn.Type()
		m := &method{
			name:     name,
			fn:       fn,
			ctxFirst: ft.NumIn() > 0 && ft.In(0) == ctxType,
			errLast:  ft.NumOut() > 0 && ft.Out(ft.NumOut()-1) == errType,
			variadic: ft.IsVariadic(),
		}
		m.chain = d.chainFor(name)
		d.methods[name] = m
	}
	return d
}

// chainFor 切点只依赖连接点的静态身份，匹配结果在构造时固定
func (d *Dispatcher) chainFor(name string) xintercept.Interceptor {
	jp := xpointcut.JoinPoint{Type: d.typeName, Method: name, Namespace: d.namespace}
	var ics []xintercept.Interceptor
	for _, a := range d.advisors {
		if a.matches(jp) {
			ics = append(ics, a.Interceptor)
		}
	}
	if len(ics) == 0 {
		return nil
	}
	return xintercept.Chain(ics...)
}

func namespaceOf(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.PkgPath()
}

// Target 返回真实目标
func (d *Dispatcher) Target() any { return d.target }

// TypeName 返回声明类型名
func (d *Dispatcher) TypeName() string { return d.typeName }

// Namespace 返回目标所在包路径
func (d *Dispatcher) Namespace() string { return d.namespace }

// Strategy 返回替身策略
func (d *Dispatcher) Strategy() Strategy { return d.strategy }

// Advisors 返回生效的 Advisor（副本）
func (d *Dispatcher) Advisors() []*Advisor {
	out := make([]*Advisor, len(d.advisors))
	copy(out, d.advisors)
	return out
}

// Methods 返回可调用的方法名（已排序）
func (d *Dispatcher) Methods() []string {
	out := make([]string, 0, len(d.methods))
	for name := range d.methods {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Intercepted 报告某个方法是否有拦截器生效
func (d *Dispatcher) Intercepted(name string) bool {
	m, ok := d.methods[name]
	return ok && m.chain != nil
}

// Invoke 调用目标方法 name，返回按声明顺序排列的全部结果（含尾部 error）。
//
// args 与目标方法签名一一对应，可变参数以切片形式传入。首个参数为
// context.Context 时它作为拦截链的 ctx，拦截器派生的 ctx 会传给目标。
// 调用方传入 nil ctx 时拦截链使用 context.Background()，拦截器没有派生
// 新 ctx 的话目标收到的仍是 nil。没有拦截器匹配时直接调用目标。
//
// 目标方法不返回 error 而拦截器返回了错误时，以该错误 panic。
// 方法不存在或参数类型不可赋值属于桩与目标不同步，直接 panic。
func (d *Dispatcher) Invoke(name string, args ...any) []any {
	m, ok := d.methods[name]
	if !ok {
		panic(fmt.Errorf("%w: %s.%s", ErrUnknownMethod, d.typeName, name))
	}

	var ctx context.Context
	rest := args
	if m.ctxFirst && len(args) > 0 {
		ctx, _ = args[0].(context.Context)
		rest = args[1:]
	}

	if m.chain == nil {
		return d.call(m, ctx, rest)
	}

	chainCtx := ctx
	if chainCtx == nil {
		chainCtx = context.Background()
	}

	inv := &xintercept.Invocation{
		Type:      d.typeName,
		Method:    name,
		Namespace: d.namespace,
		Args:      append([]any(nil), rest...),
		Target:    d.target,
	}
	final := func(c context.Context, inv *xintercept.Invocation) ([]any, error) {
		if ctx == nil && c == chainCtx {
			c = nil
		}
		return splitErr(m, d.call(m, c, inv.Args))
	}
	values, err := m.chain(chainCtx, inv, final)
	return d.assemble(m, values, err)
}

// call 以反射调用目标，返回全部结果。ctx 为 nil 时目标收到 nil
func (d *Dispatcher) call(m *method, ctx context.Context, args []any) []any {
	ft := m.fn.Type()
	in := make([]reflect.Value, 0, ft.NumIn())
	offset := 0
	if m.ctxFirst {
		if ctx == nil {
			in = append(in, reflect.Zero(ft.In(0)))
		} else {
			in = append(in, reflect.ValueOf(ctx))
		}
		offset = 1
	}
	if len(args)+offset != ft.NumIn() {
		panic(fmt.Errorf("%w: %s.%s wants %d args, got %d", ErrArgType, d.typeName, m.name, ft.NumIn()-offset, len(args)))
	}
	for i, a := range args {
		in = append(in, d.argValue(m, ft.In(i+offset), a, i))
	}

	var outs []reflect.Value
	if m.variadic {
		outs = m.fn.CallSlice(in)
	} else {
		outs = m.fn.Call(in)
	}
	res := make([]any, len(outs))
	for i, o := range outs {
		res[i] = o.Interface()
	}
	return res
}

func (d *Dispatcher) argValue(m *method, want reflect.Type, a any, i int) reflect.Value {
	if a == nil {
		return reflect.Zero(want)
	}
	v := reflect.ValueOf(a)
	if !v.Type().AssignableTo(want) {
		panic(fmt.Errorf("%w: %s.%s arg %d: %s is not assignable to %s", ErrArgType, d.typeName, m.name, i, v.Type(), want))
	}
	return v
}

// splitErr 把全部结果拆成值与尾部 error
func splitErr(m *method, res []any) ([]any, error) {
	if !m.errLast {
		return res, nil
	}
	last := len(res) - 1
	err, _ := res[last].(error)
	return res[:last], err
}

// assemble 把拦截链的返回值恢复成 Invoke 的结果形态
//
// 拦截器出错时常常返回 nil 值切片，这里按签名补齐为 nil，由 Out 转成零值。
func (d *Dispatcher) assemble(m *method, values []any, err error) []any {
	n := m.numValues()
	if len(values) > n {
		panic(fmt.Errorf("%w: %s.%s returns %d values, interceptors produced %d", ErrResultArity, d.typeName, m.name, n, len(values)))
	}
	out := make([]any, n, n+1)
	copy(out, values)
	if m.errLast {
		return append(out, err)
	}
	if err != nil {
		panic(err)
	}
	return out
}

// =============================================================================
// 结果提取
// =============================================================================

// Out 取第 i 个结果并断言为 T，缺失或为 nil 时返回零值
func Out[T any](out []any, i int) T {
	var zero T
	if i < 0 || i >= len(out) {
		return zero
	}
	if v, ok := out[i].(T); ok {
		return v
	}
	return zero
}

// Err 取第 i 个结果作为 error
func Err(out []any, i int) error {
	return Out[error](out, i)
}
