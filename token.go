package scicalc

import (
	"strconv"
	"strings"
)

// Token is a single element of an expression, either as scanned from the
// source or as reordered by the parser.
type Token struct {
	// Kind selects which of Value, Op, and Fn is meaningful.
	Kind Kind
	// Text is the source text of the token. Tokens that did not come from
	// source text, such as a chained result, have a formatted number here.
	Text string
	// Pos is the 1-based rune column where the token starts, or 0 if the
	// token did not come from source text.
	Pos int
	// Value is the value of a number token.
	Value float64
	// Op is the operator of an operator token.
	Op Op
	// Fn is the function of a function token.
	Fn Func
}

// Number creates a number token that did not come from source text.
func Number(x float64) Token {
	return Token{Kind: KindNumber, Text: Format(x), Value: x}
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// Kind is the type of a token.
type Kind int8

const (
	KindNone Kind = iota
	// KindNumber is a numeric literal.
	KindNumber
	// KindOperator is an arithmetic operator or a parenthesis.
	KindOperator
	// KindFunction is a named function applied to the following group.
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNumber:
		return "Number"
	case KindOperator:
		return "Operator"
	case KindFunction:
		return "Function"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Op is an operator.
type Op int8

const (
	OpNone Op = iota
	OpAdd     // +
	OpSub     // -
	OpMul     // *
	OpDiv     // /
	OpOpen    // (
	OpClose   // )
	// OpNeg is unary minus. The tokenizer never produces it; the parser
	// converts a - in operand position to OpNeg.
	OpNeg
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpOpen:
		return "("
	case OpClose:
		return ")"
	case OpNeg:
		return "neg"
	default:
		return "Op(" + strconv.Itoa(int(op)) + ")"
	}
}

// opFor gets the operator for a rune, or OpNone if the rune is not an
// operator.
func opFor(r rune) Op {
	switch r {
	case '+':
		return OpAdd
	case '-', '−':
		return OpSub
	case '*', '×':
		return OpMul
	case '/', '÷':
		return OpDiv
	case '(':
		return OpOpen
	case ')':
		return OpClose
	default:
		return OpNone
	}
}

// formatTokens writes a token sequence separated by spaces, using canonical
// spellings for operators and functions.
func formatTokens(toks []Token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch t.Kind {
		case KindNumber:
			b.WriteString(Format(t.Value))
		case KindOperator:
			b.WriteString(t.Op.String())
		case KindFunction:
			if t.Fn == FuncNone {
				b.WriteString(t.Text)
				continue
			}
			b.WriteString(t.Fn.String())
		default:
			b.WriteString("$" + t.Text + "$")
		}
	}
	return b.String()
}
