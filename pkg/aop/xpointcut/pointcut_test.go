package xpointcut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xaop/pkg/aop/xpointcut"
)

func jp(typ, method, ns string) xpointcut.JoinPoint {
	return xpointcut.JoinPoint{Type: typ, Method: method, Namespace: ns}
}

func TestSimpleMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		s       string
		want    bool
	}{
		{"Request", "Request", true},
		{"Request", "request", false},
		{"Request", "RequestX", false},
		{"Order*", "OrderItem", true},
		{"Order*", "Order", true},
		{"Order*", "Reorder", false},
		{"*Log", "NoLog", true},
		{"*Log", "Logger", false},
		{"*Save*", "AutoSaveAll", true},
		{"*Save*", "Save", true},
		{"*Save*", "save", false},
		{"*", "", true},
		{"*", "anything", true},
		{"", "", true},
		{"", "x", false},
		{"a*b*c", "abc", true},
		{"a*b*c", "aXXbYYc", true},
		{"a*b*c", "acb", false},
		{"ab*b", "ab", false},
		{"a**b", "ab", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, xpointcut.SimpleMatch(tt.pattern, tt.s), "SimpleMatch(%q, %q)", tt.pattern, tt.s)
	}
}

func TestNameMatch(t *testing.T) {
	t.Parallel()

	pc := xpointcut.NameMatch("Request*", "Order*", "Save*")
	assert.True(t, pc.Matches(jp("OrderController", "Request", "")))
	assert.True(t, pc.Matches(jp("OrderService", "OrderItem", "")))
	assert.True(t, pc.Matches(jp("OrderRepository", "Save", "")))
	assert.False(t, pc.Matches(jp("OrderController", "NoLog", "")))

	assert.False(t, xpointcut.NameMatch().Matches(jp("T", "M", "")), "no patterns matches nothing")
	assert.False(t, xpointcut.NameMatch("", "  ").Matches(jp("T", "", "")), "blank patterns are ignored")
}

func TestTypeMatchAndWithin(t *testing.T) {
	t.Parallel()

	j := jp("OrderRepository", "Save", "github.com/acme/app/order")
	assert.True(t, xpointcut.TypeMatch("*Repository").Matches(j))
	assert.False(t, xpointcut.TypeMatch("*Service").Matches(j))

	assert.True(t, xpointcut.Within("github.com/acme/app").Matches(j))
	assert.True(t, xpointcut.Within("github.com/acme/app/...").Matches(j))
	assert.True(t, xpointcut.Within("").Matches(j))
	assert.False(t, xpointcut.Within("github.com/other").Matches(j))
}

func TestCombinators(t *testing.T) {
	t.Parallel()

	j := jp("T", "Save", "ns")
	yes := xpointcut.NameMatch("Save")
	no := xpointcut.NameMatch("Load")

	assert.True(t, xpointcut.And().Matches(j))
	assert.True(t, xpointcut.And(yes, nil).Matches(j))
	assert.False(t, xpointcut.And(yes, no).Matches(j))

	assert.False(t, xpointcut.Or().Matches(j))
	assert.True(t, xpointcut.Or(no, yes).Matches(j))

	assert.False(t, xpointcut.Not(yes).Matches(j))
	assert.True(t, xpointcut.Not(xpointcut.Not(yes)).Matches(j))
	assert.False(t, xpointcut.Not(nil).Matches(j))

	assert.True(t, xpointcut.True.Matches(j))
	assert.False(t, xpointcut.False.Matches(j))

	fn := xpointcut.PointcutFunc(func(jp xpointcut.JoinPoint) bool { return jp.Type == "T" })
	assert.True(t, fn.Matches(j))
}

func TestJoinPointSignature(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "OrderService.OrderItem()", jp("OrderService", "OrderItem", "x").Signature())
}

func TestRule_Compile(t *testing.T) {
	t.Parallel()

	j := jp("OrderController", "NoLog", "github.com/acme/app")

	_, err := xpointcut.Rule{}.Compile()
	require.ErrorIs(t, err, xpointcut.ErrEmptyRule)
	assert.True(t, xpointcut.Rule{Patterns: []string{" "}}.IsZero())

	_, err = xpointcut.Rule{Patterns: []string{"Order*", ""}}.Compile()
	require.ErrorIs(t, err, xpointcut.ErrEmptyPattern)

	_, err = xpointcut.Rule{Expression: "include("}.Compile()
	require.ErrorIs(t, err, xpointcut.ErrSyntax)

	onlyPatterns, err := xpointcut.Rule{Patterns: []string{"*Log"}}.Compile()
	require.NoError(t, err)
	assert.True(t, onlyPatterns.Matches(j))

	both, err := xpointcut.Rule{
		Patterns:   []string{"*Log", "Request"},
		Expression: "include(github.com/acme) && !exclude(NoLog)",
	}.Compile()
	require.NoError(t, err)
	// 表达式中双重否定等价于 method(NoLog)，与名称模式取交集
	assert.True(t, both.Matches(j))
	assert.False(t, both.Matches(jp("OrderController", "Request", "github.com/acme/app")))
}
