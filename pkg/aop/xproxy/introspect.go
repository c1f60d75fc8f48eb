package xproxy

// DispatcherOf 返回替身的 Dispatcher，v 不是替身时返回 nil
func DispatcherOf(v any) *Dispatcher {
	s, ok := v.(stubber)
	if !ok {
		return nil
	}
	return s.stubDispatcher()
}

// IsProxy 报告 v 是否为本包生成的替身
func IsProxy(v any) bool {
	return DispatcherOf(v) != nil
}

// IsInterfaceProxy 报告 v 是否为接口策略替身
func IsInterfaceProxy(v any) bool {
	d := DispatcherOf(v)
	return d != nil && d.strategy == StrategyInterface
}

// IsConcreteProxy 报告 v 是否为具体类型策略替身
func IsConcreteProxy(v any) bool {
	d := DispatcherOf(v)
	return d != nil && d.strategy == StrategyConcrete
}

// Unwrap 返回替身背后的真实目标，v 不是替身时原样返回
func Unwrap(v any) any {
	if d := DispatcherOf(v); d != nil {
		return d.target
	}
	return v
}
