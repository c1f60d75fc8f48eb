package xautowrap

import (
	"errors"
	"fmt"

	"github.com/omeyang/xaop/pkg/aop/xadvice"
	"github.com/omeyang/xaop/pkg/aop/xpointcut"
	"github.com/omeyang/xaop/pkg/aop/xproxy"
	"github.com/omeyang/xaop/pkg/config/xconf"
	"github.com/omeyang/xaop/pkg/observability/xlogtrace"
	"github.com/omeyang/xaop/pkg/observability/xmetrics"
)

const defaultCacheSize = 256

// FromSettings 按配置构建 Registry
//
// 每条规则生成的拦截链（由外到内）：调用树日志、OTel 观测（observe）、
// 结果缓存（cache）、失败重试（retry）、熔断（breaker）。后四者按各自的 patterns 匹配方法。
// 返回的 cleanup 释放缓存等资源，应在容器生命周期结束时调用。
func FromSettings(s xconf.Settings, tracer *xlogtrace.Tracer, opts ...Option) (*Registry, func(), error) {
	r := NewRegistry(opts...)
	var closers []func()
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	var observer xmetrics.Observer
	for i, rule := range s.Autowrap {
		entry, closer, err := r.entryFor(rule, s.Proxy, tracer, &observer)
		if closer != nil {
			closers = append(closers, closer)
		}
		if err == nil {
			err = r.Register(entry)
		}
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("autowrap[%d] %q: %w", i, rule.Prefix, err)
		}
	}
	return r, cleanup, nil
}

func (r *Registry) entryFor(rule xconf.AutowrapRule, proxy xconf.ProxySettings, tracer *xlogtrace.Tracer,
	observer *xmetrics.Observer) (Entry, func(), error) {
	tracePC := xpointcut.True
	if tr := rule.TraceRule(); len(tr.Patterns) > 0 || !tr.IsZero() {
		pc, err := tr.Compile()
		if err != nil {
			return Entry{}, nil, err
		}
		tracePC = pc
	}

	logger := r.cfg.log()
	advisors := []*xproxy.Advisor{xproxy.NewAdvisor(tracePC, xlogtrace.NewInterceptor(tracer))}

	if rule.Observe {
		if *observer == nil {
			obs, err := r.observer()
			if err != nil {
				return Entry{}, nil, err
			}
			*observer = obs
		}
		advisors = append(advisors, xproxy.NewAdvisor(tracePC, xmetrics.NewInterceptor(*observer)))
	}

	var closer func()
	if c := rule.Cache; c.Enabled() {
		size := c.Size
		if size == 0 {
			size = defaultCacheSize
		}
		cache, err := xadvice.Cache(size, c.TTL, xadvice.WithLogger(logger))
		if err != nil {
			return Entry{}, nil, err
		}
		closer = cache.Close
		advisors = append(advisors, xproxy.NewAdvisor(xpointcut.NameMatch(c.Patterns...), cache.Interceptor()))
	}
	if rt := rule.Retry; rt.Enabled() {
		advisors = append(advisors, xproxy.NewAdvisor(xpointcut.NameMatch(rt.Patterns...), xadvice.Retry(
			xadvice.WithLogger(logger),
			xadvice.WithAttempts(rt.Attempts),
			xadvice.WithDelay(rt.Delay, 0),
		)))
	}
	if br := rule.Breaker; br.Enabled() {
		cb := xadvice.Breaker(normalizePrefix(rule.Prefix),
			xadvice.WithLogger(logger),
			xadvice.WithTripAfter(br.TripAfter),
			xadvice.WithOpenTimeout(br.OpenTimeout),
		)
		advisors = append(advisors, xproxy.NewAdvisor(xpointcut.NameMatch(br.Patterns...), cb.Interceptor()))
	}

	return Entry{
		Prefix:   rule.Prefix,
		Advisors: advisors,
		Options:  []xproxy.Option{xproxy.WithProxyTargetClass(proxy.ProxyTargetClass)},
	}, closer, nil
}

func (r *Registry) observer() (xmetrics.Observer, error) {
	if r.cfg.observer != nil {
		return r.cfg.observer, nil
	}
	obs, err := xmetrics.NewOTelObserver()
	if err != nil {
		return nil, errors.Join(errors.New("xautowrap: create observer"), err)
	}
	return obs, nil
}
