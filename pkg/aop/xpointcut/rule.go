package xpointcut

import (
	"fmt"
	"strings"
)

// Rule 可配置的匹配规则
//
// Patterns 为方法名模式（任一命中即可），Expression 为切点表达式。
// 两者都设置时取交集。
type Rule struct {
	Patterns   []string `koanf:"patterns" json:"patterns,omitempty"`
	Expression string   `koanf:"expression" json:"expression,omitempty"`
}

// IsZero 报告规则是否为空
func (r Rule) IsZero() bool {
	return len(nonEmpty(r.Patterns)) == 0 && strings.TrimSpace(r.Expression) == ""
}

// Compile 编译为 Pointcut
func (r Rule) Compile() (Pointcut, error) {
	for i, p := range r.Patterns {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("%w: patterns[%d]", ErrEmptyPattern, i)
		}
	}

	var parts []Pointcut
	if len(r.Patterns) > 0 {
		parts = append(parts, NameMatch(r.Patterns...))
	}
	if strings.TrimSpace(r.Expression) != "" {
		expr, err := Parse(r.Expression)
		if err != nil {
			return nil, err
		}
		parts = append(parts, expr)
	}
	if len(parts) == 0 {
		return nil, ErrEmptyRule
	}
	return And(parts...), nil
}
