package xpointcut

import (
	"fmt"
	"strings"
)

// =============================================================================
// 表达式语法
//
//	expr    := or
//	or      := and { "||" and }
//	and     := unary { "&&" unary }
//	unary   := "!" unary | primary
//	primary := "(" expr ")" | ident "(" args ")"
//	args    := arg { "," arg }
//
// arg 是除 ( ) , 与空白之外的任意字符序列，因此包路径与通配模式都无需引号。
// =============================================================================

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLParen
	tokRParen
	tokComma
	tokAnd
	tokOr
	tokNot
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of expression"
	case tokIdent:
		return "identifier"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokAnd:
		return "'&&'"
	case tokOr:
		return "'||'"
	case tokNot:
		return "'!'"
	default:
		return "unknown token"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isWordByte(c byte) bool {
	switch c {
	case '(', ')', ',', '!', '&', '|':
		return false
	}
	return !isSpace(c)
}

func lex(src string) ([]token, error) {
	var toks []token
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case isSpace(c):
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case c == ',':
			toks = append(toks, token{tokComma, ",", i})
			i++
		case c == '!':
			toks = append(toks, token{tokNot, "!", i})
			i++
		case c == '&' || c == '|':
			if i+1 >= len(src) || src[i+1] != c {
				return nil, fmt.Errorf("%w at offset %d: expected %q", ErrSyntax, i, string([]byte{c, c}))
			}
			kind := tokAnd
			if c == '|' {
				kind = tokOr
			}
			toks = append(toks, token{kind, src[i : i+2], i})
			i += 2
		default:
			start := i
			for i < len(src) && isWordByte(src[i]) {
				i++
			}
			toks = append(toks, token{tokIdent, src[start:i], start})
		}
	}
	return append(toks, token{tokEOF, "", len(src)}), nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, fmt.Errorf("%w at offset %d: expected %s, got %s", ErrSyntax, t.pos, kind, t.kind)
	}
	return t, nil
}

func (p *parser) parseOr() (Pointcut, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []Pointcut{left}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, right)
	}
	return Or(terms...), nil
}

func (p *parser) parseAnd() (Pointcut, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	terms := []Pointcut{left}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		terms = append(terms, right)
	}
	return And(terms...), nil
}

func (p *parser) parseUnary() (Pointcut, error) {
	if p.peek().kind == tokNot {
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not(inner), nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Pointcut, error) {
	t := p.next()
	switch t.kind {
	case tokLParen:
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	case tokIdent:
		return p.parseCall(t)
	default:
		return nil, fmt.Errorf("%w at offset %d: unexpected %s", ErrSyntax, t.pos, t.kind)
	}
}

func (p *parser) parseCall(name token) (Pointcut, error) {
	build, ok := functions[strings.ToLower(name.text)]
	if !ok {
		return nil, fmt.Errorf("%w %q at offset %d", ErrUnknownFunc, name.text, name.pos)
	}
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var args []string
	for {
		arg, err := p.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		args = append(args, arg.text)
		sep := p.next()
		if sep.kind == tokRParen {
			break
		}
		if sep.kind != tokComma {
			return nil, fmt.Errorf("%w at offset %d: expected ',' or ')', got %s", ErrSyntax, sep.pos, sep.kind)
		}
	}
	return build(args), nil
}

// functions 表达式内置函数
var functions = map[string]func(args []string) Pointcut{
	"include": withinAny,
	"within":  withinAny,
	"exclude": func(args []string) Pointcut { return Not(NameMatch(args...)) },
	"method":  func(args []string) Pointcut { return NameMatch(args...) },
	"type":    func(args []string) Pointcut { return TypeMatch(args...) },
}

func withinAny(args []string) Pointcut {
	ps := make([]Pointcut, 0, len(args))
	for _, a := range args {
		ps = append(ps, Within(a))
	}
	return Or(ps...)
}

// Parse 编译切点表达式
func Parse(expr string) (Pointcut, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, ErrEmptyExpression
	}
	toks, err := lex(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	pc, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("%w at offset %d: unexpected %s after expression", ErrSyntax, t.pos, t.kind)
	}
	return pc, nil
}

// MustParse 同 Parse，出错时 panic，用于包级变量初始化
func MustParse(expr string) Pointcut {
	pc, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return pc
}
