package scicalc

import (
	"errors"
	"io"
	"math"
	"testing"
)

func num(text string, v float64, pos int) Token {
	return Token{Kind: KindNumber, Text: text, Pos: pos, Value: v}
}

func op(text string, o Op, pos int) Token {
	return Token{Kind: KindOperator, Text: text, Pos: pos, Op: o}
}

func fn(text string, f Func, pos int) Token {
	return Token{Kind: KindFunction, Text: text, Pos: pos, Fn: f}
}

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []Token
		err    error
	}{
		// spaces
		{"", nil, nil},
		{" \t \r\n ", nil, nil},
		// numbers
		{"0", []Token{num("0", 0, 1)}, nil},
		{"9876543210", []Token{num("9876543210", 9876543210, 1)}, nil},
		{"1 0", []Token{num("1", 1, 1), num("0", 0, 3)}, nil},
		{"1.5", []Token{num("1.5", 1.5, 1)}, nil},
		{".5", []Token{num(".5", 0.5, 1)}, nil},
		{"5.", []Token{num("5.", 5, 1)}, nil},
		{"1.1.1", nil, ErrMalformedNumber},
		{".", nil, ErrMalformedNumber},
		// operators
		{"1+0", []Token{num("1", 1, 1), op("+", OpAdd, 2), num("0", 0, 3)}, nil},
		{"1 - 0", []Token{num("1", 1, 1), op("-", OpSub, 3), num("0", 0, 5)}, nil},
		{"2*3/4", []Token{num("2", 2, 1), op("*", OpMul, 2), num("3", 3, 3), op("/", OpDiv, 4), num("4", 4, 5)}, nil},
		{"2×3÷4−1", []Token{num("2", 2, 1), op("×", OpMul, 2), num("3", 3, 3), op("÷", OpDiv, 4), num("4", 4, 5), op("−", OpSub, 6), num("1", 1, 7)}, nil},
		{"(1)", []Token{op("(", OpOpen, 1), num("1", 1, 2), op(")", OpClose, 3)}, nil},
		// functions
		{"sin(", []Token{fn("sin", FuncSin, 1), op("(", OpOpen, 4)}, nil},
		{"asin(", []Token{fn("asin", FuncAsin, 1), op("(", OpOpen, 5)}, nil},
		{"sin (", []Token{fn("sin", FuncSin, 1), op("(", OpOpen, 5)}, nil},
		{"ln(2)", []Token{fn("ln", FuncLn, 1), op("(", OpOpen, 3), num("2", 2, 4), op(")", OpClose, 5)}, nil},
		{"√(4)", []Token{fn("√", FuncSqrt, 1), op("(", OpOpen, 2), num("4", 4, 3), op(")", OpClose, 4)}, nil},
		{"∛(", []Token{fn("∛", FuncCbrt, 1), op("(", OpOpen, 2)}, nil},
		{"x²(", []Token{fn("x²", FuncSquare, 1), op("(", OpOpen, 3)}, nil},
		{"x³(", []Token{fn("x³", FuncCube, 1), op("(", OpOpen, 3)}, nil},
		{"x^2(", []Token{fn("x^2", FuncSquare, 1), op("(", OpOpen, 4)}, nil},
		{"10^x(", []Token{fn("10^x", FuncPow10, 1), op("(", OpOpen, 5)}, nil},
		{"e^x(", []Token{fn("e^x", FuncExp, 1), op("(", OpOpen, 4)}, nil},
		{"e^x (", []Token{fn("e^x", FuncExp, 1), op("(", OpOpen, 5)}, nil},
		{"n!(", []Token{fn("n!", FuncFactorial, 1), op("(", OpOpen, 3)}, nil},
		{"1/x(", []Token{fn("1/x", FuncReciprocal, 1), op("(", OpOpen, 4)}, nil},
		{"2*10^x(", []Token{num("2", 2, 1), op("*", OpMul, 2), fn("10^x", FuncPow10, 3), op("(", OpOpen, 7)}, nil},
		{"1/x", []Token{num("1", 1, 1), op("/", OpDiv, 2)}, ErrUnknownFunction},
		{"10", []Token{num("10", 10, 1)}, nil},
		// erroneous symbols
		{"$", nil, ErrUnrecognizedCharacter},
		{"1$", []Token{num("1", 1, 1)}, ErrUnrecognizedCharacter},
		{"2^3", []Token{num("2", 2, 1)}, ErrUnrecognizedCharacter},
		{"π", nil, ErrUnknownFunction},
		{"@", nil, ErrUnrecognizedCharacter},
		{"foo(1)", nil, ErrUnknownFunction},
		{"n!", nil, ErrUnknownFunction},
	}

	for _, c := range cases {
		got, err := Tokenize(c.src)
		if !errors.Is(err, c.err) {
			t.Errorf("scanning %q: want error %v, got %v", c.src, c.err, err)
		}
		if len(got) != len(c.tokens) {
			t.Errorf("scanning %q: want %v, got %v", c.src, c.tokens, got)
			continue
		}
		for i, want := range c.tokens {
			if got[i] != want {
				t.Errorf("scanning %q: token %d: want %v, got %v", c.src, i, want, got[i])
			}
		}
	}
}

func TestLexLenient(t *testing.T) {
	cases := []struct {
		src    string
		tokens []Token
	}{
		{"$", nil},
		{"1 $ 2", []Token{num("1", 1, 1), num("2", 2, 5)}},
		{"2^3", []Token{num("2", 2, 1), num("3", 3, 3)}},
		{"foo(1)", []Token{fn("foo", FuncNone, 1), op("(", OpOpen, 4), num("1", 1, 5), op(")", OpClose, 6)}},
		{"e^x^y", []Token{fn("e^x^y", FuncNone, 1)}},
		{"n!(3)", []Token{fn("n!", FuncFactorial, 1), op("(", OpOpen, 3), num("3", 3, 4), op(")", OpClose, 5)}},
		{"n! 3", []Token{fn("n", FuncNone, 1), num("3", 3, 4)}},
		{"1.2.3", []Token{num("1.2.3", 1.2, 1)}},
	}
	for _, c := range cases {
		got, err := Tokenize(c.src, Lenient())
		if err != nil {
			t.Errorf("scanning %q: unexpected error %v", c.src, err)
		}
		if len(got) != len(c.tokens) {
			t.Errorf("scanning %q: want %v, got %v", c.src, c.tokens, got)
			continue
		}
		for i, want := range c.tokens {
			if got[i] != want {
				t.Errorf("scanning %q: token %d: want %v, got %v", c.src, i, want, got[i])
			}
		}
	}
}

func TestLexLenientNaN(t *testing.T) {
	for _, src := range []string{".", "..", "..5"} {
		got, err := Tokenize(src, Lenient())
		if err != nil {
			t.Errorf("scanning %q: unexpected error %v", src, err)
			continue
		}
		if len(got) != 1 || got[0].Kind != KindNumber || !math.IsNaN(got[0].Value) {
			t.Errorf("scanning %q: want one NaN number, got %v", src, got)
		}
	}
}

func TestLexErrorPos(t *testing.T) {
	cases := []struct {
		src string
		pos int
	}{
		{"$", 1},
		{"1 + $", 5},
		{"√(2) + #", 8},
		{"12 + 1.2.3", 6},
		{"2 * foo(3)", 5},
	}
	for _, c := range cases {
		_, err := Tokenize(c.src)
		var ie InputError
		if !errors.As(err, &ie) {
			t.Errorf("scanning %q: error %v is not an InputError", c.src, err)
			continue
		}
		if ie.Pos() != c.pos {
			t.Errorf("scanning %q: want error at %d, got %d (%v)", c.src, c.pos, ie.Pos(), err)
		}
	}
}

func TestLexerEOF(t *testing.T) {
	p := newParsectx(nil)
	scan := lex("1", &p)
	if _, err := scan.next(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	for i := 0; i < 2; i++ {
		if tok, err := scan.next(); err != io.EOF {
			t.Errorf("want EOF, got %v with error %v", tok, err)
		}
	}
}

func TestLexAliases(t *testing.T) {
	got, err := Tokenize("root(9) + sin(1)", ParseFunc("root", FuncSqrt), ParseFunc("sin", FuncNone))
	if !errors.Is(err, ErrUnknownFunction) {
		t.Fatalf("want unknown function for disabled sin, got %v with error %v", got, err)
	}
	if len(got) < 1 || got[0] != fn("root", FuncSqrt, 1) {
		t.Errorf("want root to be an alias of √, got %v", got)
	}
}
