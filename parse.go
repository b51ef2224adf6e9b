package scicalc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Expr = num | Neg | Add | Sub | Mul | Div | Call | '(' Expr ')'
// Call = funcname '(' Expr ')'
// Neg = '-' Expr | '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr
// Div = Expr '/' Expr | Expr '÷' Expr

// Expr is a parsed expression that can be evaluated with a context. An Expr
// is immutable and safe to evaluate concurrently with different contexts.
type Expr struct {
	// src is the source text.
	src string
	// postfix is the expression in evaluation order.
	postfix []Token
	// n is the number of tokens in the source.
	n int
	// lenient indicates that the expression was parsed with Lenient, which
	// also changes how it evaluates.
	lenient bool
}

// Parse tokenizes and parses an expression so it can be evaluated with a
// context. The given options are applied in order.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	p := newParsectx(opts)
	toks, err := tokenize(src, &p)
	if err != nil {
		return nil, err
	}
	return parseTokens(src, toks, &p)
}

// ParseChain parses src as a continuation of a previous result. The
// expression starts with prev as a number token, followed by the tokens of
// src.
func ParseChain(prev float64, src string, opts ...ParseOption) (*Expr, error) {
	p := newParsectx(opts)
	toks, err := tokenize(src, &p)
	if err != nil {
		return nil, err
	}
	toks = append([]Token{Number(prev)}, toks...)
	return parseTokens(src, toks, &p)
}

// Continues reports whether src starts with a binary operator, so that it
// reads as a continuation of a previous result.
func Continues(src string) bool {
	s := strings.TrimLeftFunc(src, unicode.IsSpace)
	r, _ := utf8.DecodeRuneInString(s)
	switch opFor(r) {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

func parseTokens(src string, toks []Token, p *parsectx) (*Expr, error) {
	post, err := toPostfix(toks, p)
	if err != nil {
		return nil, err
	}
	return &Expr{src: src, postfix: post, n: len(toks), lenient: p.lenient}, nil
}

// ToPostfix reorders tokens from infix to postfix order using the
// shunting-yard algorithm. Functions are applied to the parenthesized group
// following them. A + or - where an operand is expected is a sign; - becomes
// OpNeg and + is dropped.
//
// In strict mode, ToPostfix returns an error for unbalanced parentheses, a
// function not followed by (, or an empty pair of parentheses. With Lenient,
// it never returns an error: unmatched parentheses are dropped. Operand
// counts are never checked here; missing operands are an evaluation error.
func ToPostfix(tokens []Token, opts ...ParseOption) ([]Token, error) {
	p := newParsectx(opts)
	return toPostfix(tokens, &p)
}

func toPostfix(toks []Token, p *parsectx) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	var stack []Token
	// operand is whether the next token should start an operand, so that a
	// + or - there is a sign.
	operand := true
	for i, tok := range toks {
		switch tok.Kind {
		case KindNumber:
			out = append(out, tok)
			operand = false
		case KindFunction:
			if !p.lenient && (i+1 >= len(toks) || !isOp(toks[i+1], OpOpen)) {
				return nil, &CallError{Col: tok.Pos, Func: tok.Text}
			}
			stack = append(stack, tok)
			operand = true
		case KindOperator:
			switch tok.Op {
			case OpOpen:
				stack = append(stack, tok)
				operand = true
			case OpClose:
				if !p.lenient && i > 0 && isOp(toks[i-1], OpOpen) {
					return nil, &EmptyExpressionError{Col: tok.Pos, End: tok.Text}
				}
				found := false
				for len(stack) > 0 {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					if isOp(top, OpOpen) {
						found = true
						break
					}
					out = append(out, top)
				}
				if !found && !p.lenient {
					return nil, &BracketError{Col: tok.Pos, Right: tok.Text}
				}
				// The function that owns this group applies to its result.
				if len(stack) > 0 && stack[len(stack)-1].Kind == KindFunction {
					out = append(out, stack[len(stack)-1])
					stack = stack[:len(stack)-1]
				}
				operand = false
			case OpAdd, OpSub, OpMul, OpDiv, OpNeg:
				if operand {
					switch tok.Op {
					case OpAdd:
						// Unary plus does nothing.
						continue
					case OpSub:
						tok.Op = OpNeg
					}
				}
				prec := binop(tok.Op)
				for len(stack) > 0 {
					top := stack[len(stack)-1]
					if top.Kind != KindOperator || top.Op == OpOpen || !binop(top.Op).before(prec) {
						break
					}
					out = append(out, top)
					stack = stack[:len(stack)-1]
				}
				stack = append(stack, tok)
				operand = true
			default:
				if !p.lenient {
					return nil, &LexError{Text: tok.Text, Col: tok.Pos}
				}
			}
		default:
			if !p.lenient {
				return nil, &LexError{Text: tok.Text, Col: tok.Pos}
			}
		}
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if isOp(top, OpOpen) {
			if p.lenient {
				continue
			}
			return nil, &BracketError{Col: top.Pos, Left: top.Text}
		}
		out = append(out, top)
	}
	return out, nil
}

func isOp(tok Token, op Op) bool {
	return tok.Kind == KindOperator && tok.Op == op
}

// Source returns the text the expression was parsed from.
func (e *Expr) Source() string {
	return e.src
}

// Postfix returns a copy of the expression's tokens in evaluation order.
func (e *Expr) Postfix() []Token {
	return append([]Token(nil), e.postfix...)
}

// Empty returns whether the source had no tokens. An empty expression
// evaluates to zero.
func (e *Expr) Empty() bool {
	return e.n == 0
}

// String creates a string representation of the parsed expression in postfix
// order, e.g. "2 3 4 * +".
func (e *Expr) String() string {
	return formatTokens(e.postfix)
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
}

// before returns whether an operator p already on the stack must be applied
// before pushing the incoming operator q.
func (p operator) before(q operator) bool {
	if p.prec != q.prec {
		return p.prec > q.prec
	}
	return !q.right
}

// binop gets the precedence of an operator. Parentheses have none.
func binop(op Op) operator {
	switch op {
	case OpAdd, OpSub:
		return operator{1, false}
	case OpMul, OpDiv:
		return operator{2, false}
	case OpNeg:
		return operator{3, true}
	default:
		return operator{}
	}
}
