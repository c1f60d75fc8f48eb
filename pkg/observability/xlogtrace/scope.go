package xlogtrace

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// TraceID 一次调用在调用树中的位置
type TraceID struct {
	// TxID 事务 ID，同一棵调用树内相同
	TxID string
	// Level 嵌套深度，根调用为 0
	Level int
}

// String 返回 "[TxID]/Level"
func (id TraceID) String() string {
	return fmt.Sprintf("[%s]/%d", id.TxID, id.Level)
}

// Scope 一次已开始、尚未关闭的调用
type Scope struct {
	ID    TraceID
	Label string
	Start time.Time

	closed atomic.Bool
}

// Closed 报告 Scope 是否已被关闭
func (s *Scope) Closed() bool {
	return s != nil && s.closed.Load()
}

// =============================================================================
// 行格式
// =============================================================================

// Kind 行类型
type Kind int

const (
	KindBegin Kind = iota
	KindEnd
	KindFail
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindFail:
		return "fail"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// 缩进标记
const (
	beginMarker = "-->"
	endMarker   = "<--"
	failMarker  = "<X-"
)

func (k Kind) marker() string {
	switch k {
	case KindEnd:
		return endMarker
	case KindFail:
		return failMarker
	default:
		return beginMarker
	}
}

// Line 一条追踪行
type Line struct {
	Kind    Kind
	ID      TraceID
	Label   string
	Elapsed time.Duration
	Err     error
	// Text 渲染后的完整文本，不含换行
	Text string
}

// Indent 渲染 level 层缩进：前 level-1 层为 "|   "，最后一层为 "|" 加标记
func Indent(marker string, level int) string {
	if level <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(level*4 + len(marker))
	for i := range level {
		if i == level-1 {
			b.WriteByte('|')
			b.WriteString(marker)
		} else {
			b.WriteString("|   ")
		}
	}
	return b.String()
}

// DescribeError 渲染 ex= 之后的错误描述："<动态类型>: <信息>"
func DescribeError(err error) string {
	if err == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T: %s", err, err.Error())
}

func render(kind Kind, id TraceID, label string, elapsed time.Duration, err error) string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(id.TxID)
	b.WriteString("] ")
	b.WriteString(Indent(kind.marker(), id.Level))
	b.WriteString(label)
	if kind == KindBegin {
		return b.String()
	}
	if kind == KindFail {
		b.WriteString(" EX")
	}
	fmt.Fprintf(&b, " time=%dms", elapsed.Milliseconds())
	if kind == KindFail {
		b.WriteString(" ex=")
		b.WriteString(DescribeError(err))
	}
	return b.String()
}

func newLine(kind Kind, id TraceID, label string, elapsed time.Duration, err error) Line {
	return Line{
		Kind:    kind,
		ID:      id,
		Label:   label,
		Elapsed: elapsed,
		Err:     err,
		Text:    render(kind, id, label, elapsed, err),
	}
}
