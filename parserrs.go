package scicalc

import (
	"errors"
	"strconv"
)

// Error kinds. Every error returned by this package unwraps to exactly one of
// these, so callers can tell kinds apart with errors.Is without inspecting
// the concrete types.
var (
	// ErrUnrecognizedCharacter is a rune that cannot start any token.
	ErrUnrecognizedCharacter = errors.New("unrecognized character")
	// ErrMalformedNumber is a numeric literal that does not parse.
	ErrMalformedNumber = errors.New("malformed number")
	// ErrUnknownFunction is a name that does not refer to any function.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrUnbalancedParentheses is a ( without ) or a ) without (.
	ErrUnbalancedParentheses = errors.New("unbalanced parentheses")
	// ErrMissingArgument is a function that is not followed by (.
	ErrMissingArgument = errors.New("function without argument")
	// ErrEmptyExpression is an empty pair of parentheses.
	ErrEmptyExpression = errors.New("empty expression")
	// ErrStackUnderflow is an operator or function without enough operands.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrExtraOperands is an expression that leaves more than one value.
	ErrExtraOperands = errors.New("extra operands")
	// ErrDomain is a function argument outside the function's domain.
	ErrDomain = errors.New("domain error")
)

// BracketError is an error indicating mismatched parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched parenthesis.
	Col int
	// Left is "(" for an open parenthesis with no close.
	Left string
	// Right is ")" for a close parenthesis with no open.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Unwrap() error {
	return ErrUnbalancedParentheses
}

// CallError is an error indicating a function name that is not applied to a
// parenthesized argument. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name as written.
	Func string
}

func (err *CallError) Error() string {
	return errpos(err.Col, "function "+err.Func+" must be followed by (")
}

func (err *CallError) Pos() int {
	return err.Col
}

func (err *CallError) Unwrap() error {
	return ErrMissingArgument
}

// EmptyExpressionError is an error indicating an empty parenthesized
// subexpression. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

func (err *EmptyExpressionError) Unwrap() error {
	return ErrEmptyExpression
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*BracketError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*StackError)(nil)
	_ InputError = (*OperandError)(nil)
)
