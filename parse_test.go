package scicalc

import (
	"errors"
	"testing"
)

func TestOpPrecsExist(t *testing.T) {
	for _, r := range Operators {
		o := opFor(r)
		if o == OpNone {
			t.Errorf("no operator for %c", r)
			continue
		}
		if o == OpOpen || o == OpClose {
			continue
		}
		if binop(o).prec == 0 {
			t.Errorf("no precedence for %c", r)
		}
	}
}

func TestNegBindsTighterThanMultiplication(t *testing.T) {
	if n, m := binop(OpNeg), binop(OpMul); n.prec <= m.prec {
		t.Errorf("neg has prec %d but * has prec %d", n.prec, m.prec)
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"num", "1", "1"},
		{"add", "1 + 2", "1 2 +"},
		{"sub-left", "1 - 2 - 3", "1 2 - 3 -"},
		{"div-left", "8 / 4 / 2", "8 4 / 2 /"},
		{"prec", "2 + 3 * 4", "2 3 4 * +"},
		{"prec-left", "2 * 3 + 4", "2 3 * 4 +"},
		{"parens", "(2 + 3) * 4", "2 3 + 4 *"},
		{"nested", "((1))", "1"},
		{"call", "sin(30)", "30 sin"},
		{"call-expr", "sin(30 + 60) * 2", "30 60 + sin 2 *"},
		{"call-nested", "√(x²(3) + x²(4))", "3 x² 4 x² + √"},
		{"call-space", "ln (2)", "2 ln"},
		{"call-alias", "sqrt(4)", "4 √"},
		{"call-symbols", "n!(5) / 1/x(2)", "5 n! 2 1/x /"},
		{"neg", "-3", "3 neg"},
		{"neg-mul", "-2 * 3", "2 neg 3 *"},
		{"mul-neg", "2 * -3", "2 3 neg *"},
		{"sub-neg", "5 - -3", "5 3 neg -"},
		{"neg-neg", "--3", "3 neg neg"},
		{"neg-parens", "-(1 + 2)", "1 2 + neg"},
		{"neg-call", "-sin(30)", "30 sin neg"},
		{"call-neg", "sin(-30)", "30 neg sin"},
		{"plus", "+3", "3"},
		{"plus-parens", "2 * (+3)", "2 3 *"},
		{"alt-ops", "6 × 2 ÷ 3 − 1", "6 2 * 3 / 1 -"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := e.String(); got != c.want {
				t.Errorf("%q parsed wrong:\n\twant %s\n\tgot  %s", c.src, c.want, got)
			}
			if e.Source() != c.src {
				t.Errorf("%q has wrong source %q", c.src, e.Source())
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
		pos  int
	}{
		{"open", "(1 + 2", ErrUnbalancedParentheses, 1},
		{"open-inner", "2 * ((1 + 2)", ErrUnbalancedParentheses, 5},
		{"close", "1 + 2)", ErrUnbalancedParentheses, 6},
		{"close-first", ")", ErrUnbalancedParentheses, 1},
		{"call-open", "sin(30", ErrUnbalancedParentheses, 4},
		{"call-bare", "sin 30", ErrMissingArgument, 1},
		{"call-end", "2 * ln", ErrMissingArgument, 5},
		{"empty-parens", "()", ErrEmptyExpression, 2},
		{"empty-call", "sin()", ErrEmptyExpression, 5},
		{"lex", "2 # 3", ErrUnrecognizedCharacter, 3},
		{"name", "tau(1)", ErrUnknownFunction, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Parse(c.src)
			if err == nil {
				t.Fatalf("%q parsed without error as %v", c.src, e)
			}
			if !errors.Is(err, c.err) {
				t.Errorf("%q gave wrong error: want %v, got %v", c.src, c.err, err)
			}
			var ie InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q gave %#v, not InputError", c.src, err)
			}
			if ie.Pos() != c.pos {
				t.Errorf("%q gave error at %d, want %d: %v", c.src, ie.Pos(), c.pos, err)
			}
		})
	}
}

func TestParseLenient(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"open", "(1 + 2", "1 2 +"},
		{"close", "1 + 2)", "1 2 +"},
		{"close-only", ")", ""},
		{"call-bare", "sin 30", "30 sin"},
		{"call-bare-op", "sin 30 + 1", "30 1 + sin"},
		{"empty-parens", "()", ""},
		{"unknown", "foo(2)", "2 foo"},
		{"junk", "2 # 3", "2 3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := Parse(c.src, Lenient())
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := e.String(); got != c.want {
				t.Errorf("%q parsed wrong:\n\twant %s\n\tgot  %s", c.src, c.want, got)
			}
		})
	}
}

func TestToPostfixKeepsTokens(t *testing.T) {
	toks, err := Tokenize("2 + 3")
	if err != nil {
		t.Fatal(err)
	}
	post, err := ToPostfix(toks)
	if err != nil {
		t.Fatal(err)
	}
	want := []Token{num("2", 2, 1), num("3", 3, 5), op("+", OpAdd, 3)}
	if len(post) != len(want) {
		t.Fatalf("want %v, got %v", want, post)
	}
	for i := range want {
		if post[i] != want[i] {
			t.Errorf("token %d: want %v, got %v", i, want[i], post[i])
		}
	}
	// The input is not modified.
	if toks[1] != op("+", OpAdd, 3) {
		t.Errorf("input changed to %v", toks)
	}
}

func TestParsingPreset(t *testing.T) {
	preset := ParsingPreset(ParseFunc("root", FuncSqrt), Lenient())
	e, err := Parse("root(9) $", preset)
	if err != nil {
		t.Fatalf("failed to parse with preset: %v", err)
	}
	if got := e.String(); got != "9 √" {
		t.Errorf("wrong parse with preset: %s", got)
	}
	// Options after a preset don't change the preset.
	if _, err := Parse("cube(2)", preset, ParseFunc("cube", FuncCube)); err != nil {
		t.Errorf("failed to parse with preset and alias: %v", err)
	}
	e, err = Parse("cube(2)", preset)
	if err != nil {
		t.Fatal(err)
	}
	if got := e.String(); got != "2 cube" {
		t.Errorf("preset was modified: cube(2) parsed as %s", got)
	}
}

func TestParsingPresetPanics(t *testing.T) {
	cases := []struct {
		name  string
		opts  []ParseOption
		panic bool
	}{
		{"func", []ParseOption{ParseFunc("root", FuncSqrt), ParsingPreset()}, true},
		{"funcs", []ParseOption{ParseFuncs(map[string]Func{"sin": FuncNone}), ParsingPreset()}, true},
		{"disable", []ParseOption{DisableDefaultFuncs(), ParsingPreset()}, true},
		{"lenient", []ParseOption{Lenient(), ParsingPreset()}, false},
		{"func-after", []ParseOption{ParsingPreset(), ParseFunc("root", FuncSqrt)}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			defer func() {
				if r := recover(); (r != nil) != c.panic {
					t.Errorf("want panic %t, got %v", c.panic, r)
				}
			}()
			Parse("1", c.opts...)
		})
	}
}

func TestDisableDefaultFuncs(t *testing.T) {
	if _, err := Parse("sin(1)", DisableDefaultFuncs()); !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("sin parsed with default functions disabled, error %v", err)
	}
	e, err := Parse("sine(90)", DisableDefaultFuncs(), ParseFunc("sine", FuncSin))
	if err != nil {
		t.Fatalf("failed to parse alias: %v", err)
	}
	if got := e.String(); got != "90 sin" {
		t.Errorf("wrong parse: %s", got)
	}
}

func TestParseChain(t *testing.T) {
	cases := []struct {
		name string
		prev float64
		src  string
		want string
	}{
		{"mul", 14, "* 2", "14 2 *"},
		{"prec", 2, "+ 3 * 4", "2 3 4 * +"},
		{"sub-neg", 1, "- -1", "1 1 neg -"},
		{"empty", 7, "", "7"},
		{"small", 1e-7, "/ 2", "0.0000001 2 /"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := ParseChain(c.prev, c.src)
			if err != nil {
				t.Fatalf("chaining %q failed to parse: %v", c.src, err)
			}
			if got := e.String(); got != c.want {
				t.Errorf("chaining %q parsed wrong:\n\twant %s\n\tgot  %s", c.src, c.want, got)
			}
			if e.Empty() {
				t.Errorf("chaining %q is empty", c.src)
			}
		})
	}
	if _, err := ParseChain(1, "* (2"); !errors.Is(err, ErrUnbalancedParentheses) {
		t.Errorf("unbalanced chain gave %v", err)
	}
}

func TestContinues(t *testing.T) {
	cases := map[string]bool{
		"* 2":    true,
		"  + 1":  true,
		"-3":     true,
		"÷ 4":    true,
		"− 1":    true,
		"2 * 3":  false,
		"(1)":    false,
		"sin(1)": false,
		"1/x(2)": false,
		"":       false,
	}
	for src, want := range cases {
		if got := Continues(src); got != want {
			t.Errorf("Continues(%q) = %t, want %t", src, got, want)
		}
	}
}
