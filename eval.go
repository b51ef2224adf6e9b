package scicalc

import (
	"errors"
	"strconv"
)

// Context is a context for evaluating expressions. It holds the angle mode
// and a reusable value stack. It is not safe to use a Context concurrently.
type Context struct {
	stack []float64
	mode  AngleMode
}

// NewContext creates a new evaluation context using the given angle mode.
func NewContext(mode AngleMode) *Context {
	return &Context{stack: make([]float64, 0, 8), mode: mode}
}

// Mode returns the context's angle mode.
func (ctx *Context) Mode() AngleMode {
	return ctx.mode
}

// SetMode changes the context's angle mode. Returns ctx for chaining.
func (ctx *Context) SetMode(mode AngleMode) *Context {
	ctx.mode = mode
	return ctx
}

// Eval evaluates a parsed expression. An empty expression evaluates to 0.
// Expressions parsed with Lenient evaluate leniently: a factorial outside its
// domain is NaN instead of an error, and the bottom value is the result if
// the expression leaves more than one.
func (ctx *Context) Eval(e *Expr) (float64, error) {
	if e.Empty() {
		return 0, nil
	}
	return ctx.eval(e.postfix, e.lenient)
}

// EvalPostfix evaluates a token sequence in postfix order, as produced by
// ToPostfix, in strict mode.
func (ctx *Context) EvalPostfix(postfix []Token) (float64, error) {
	return ctx.eval(postfix, false)
}

func (ctx *Context) eval(postfix []Token, lenient bool) (float64, error) {
	ctx.stack = ctx.stack[:0]
	for _, tok := range postfix {
		switch tok.Kind {
		case KindNumber:
			ctx.push(tok.Value)
		case KindOperator:
			if tok.Op == OpNeg {
				x, err := ctx.pop(tok, 1)
				if err != nil {
					return 0, err
				}
				ctx.push(-x)
				continue
			}
			b, err := ctx.pop(tok, 2)
			if err != nil {
				return 0, err
			}
			a, err := ctx.pop(tok, 2)
			if err != nil {
				return 0, err
			}
			switch tok.Op {
			case OpAdd:
				ctx.push(a + b)
			case OpSub:
				ctx.push(a - b)
			case OpMul:
				ctx.push(a * b)
			case OpDiv:
				ctx.push(a / b)
			default:
				// Parentheses never reach postfix output.
				return 0, &LexError{Text: tok.Text, Col: tok.Pos}
			}
		case KindFunction:
			x, err := ctx.pop(tok, 1)
			if err != nil {
				return 0, err
			}
			r, err := tok.Fn.Call(x, ctx.mode)
			if err != nil {
				var de *DomainError
				if !errors.As(err, &de) {
					return 0, err
				}
				if !lenient {
					de.Col = tok.Pos
					return 0, de
				}
			}
			ctx.push(r)
		default:
			return 0, &LexError{Text: tok.Text, Col: tok.Pos}
		}
	}
	switch len(ctx.stack) {
	case 0:
		return 0, &StackError{Need: 1}
	case 1:
		return ctx.stack[0], nil
	default:
		if lenient {
			return ctx.stack[0], nil
		}
		return 0, &OperandError{N: len(ctx.stack), Col: lastPos(postfix)}
	}
}

// push pushes a value onto the stack.
func (ctx *Context) push(x float64) {
	ctx.stack = append(ctx.stack, x)
}

// pop removes the top value from the stack on behalf of tok, which needs
// need operands in total.
func (ctx *Context) pop(tok Token, need int) (float64, error) {
	if len(ctx.stack) == 0 {
		return 0, &StackError{Col: tok.Pos, Token: tok.Text, Need: need}
	}
	x := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return x, nil
}

func lastPos(toks []Token) int {
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].Pos > 0 {
			return toks[i].Pos
		}
	}
	return 0
}

// Evaluate is a shortcut to parse and evaluate an expression. An expression
// with no tokens evaluates to 0.
func Evaluate(src string, mode AngleMode, opts ...ParseOption) (float64, error) {
	e, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return NewContext(mode).Eval(e)
}

// Chain evaluates src as a continuation of a previous result, e.g. prev 14
// and src "* 2" give 28. prev enters the expression as a number token, not as
// text, so it keeps its exact value. If src has no tokens, the result is
// prev.
func Chain(prev float64, src string, mode AngleMode, opts ...ParseOption) (float64, error) {
	e, err := ParseChain(prev, src, opts...)
	if err != nil {
		return 0, err
	}
	return NewContext(mode).Eval(e)
}

// StackError indicates an operator or function evaluated without enough
// operands. It unwraps to ErrStackUnderflow. It implements InputError.
type StackError struct {
	// Col is the position of the operator or function, or 0 if the
	// expression ended with nothing on the stack.
	Col int
	// Token is the operator or function text.
	Token string
	// Need is the number of operands the token takes.
	Need int
}

func (err *StackError) Error() string {
	if err.Token == "" {
		return "stack underflow: expression has no value"
	}
	if err.Need == 1 {
		return errpos(err.Col, "stack underflow: "+strconv.Quote(err.Token)+" needs an operand")
	}
	return errpos(err.Col, "stack underflow: "+strconv.Quote(err.Token)+" needs "+strconv.Itoa(err.Need)+" operands")
}

func (err *StackError) Pos() int {
	return err.Col
}

func (err *StackError) Unwrap() error {
	return ErrStackUnderflow
}

// OperandError indicates an expression that leaves more than one value, such
// as "2 3". It unwraps to ErrExtraOperands. It implements InputError.
type OperandError struct {
	// Col is the position of the last token.
	Col int
	// N is the number of values left.
	N int
}

func (err *OperandError) Error() string {
	return errpos(err.Col, strconv.Itoa(err.N)+" values with no operator between them")
}

func (err *OperandError) Pos() int {
	return err.Col
}

func (err *OperandError) Unwrap() error {
	return ErrExtraOperands
}
