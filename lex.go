package scicalc

import (
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Operators contains the runes which are scanned as operators. × ÷ and −
// are alternate spellings of * / and -.
const Operators = "+-*/()×÷−"

type lexer struct {
	src string
	// off is the byte offset of the next rune to scan.
	off int
	// col is the number of runes scanned so far.
	col int
	p   *parsectx
}

func lex(src string, p *parsectx) *lexer {
	return &lexer{src: src, p: p}
}

// advance consumes n bytes holding k runes.
func (l *lexer) advance(n, k int) {
	l.off += n
	l.col += k
}

// next scans the next token from the input. At the end of the input, the
// result is an empty token with io.EOF. In lenient mode, next never returns
// any other error.
func (l *lexer) next() (Token, error) {
	for l.off < len(l.src) {
		rest := l.src[l.off:]
		r, sz := utf8.DecodeRuneInString(rest)
		pos := l.col + 1
		if unicode.IsSpace(r) {
			l.advance(sz, 1)
			continue
		}
		// Function names may start with digits or symbols, e.g. 10^x( or
		// 1/x(, so they have to be matched before anything else.
		if name, f := l.p.matchCall(rest); name != "" {
			l.advance(len(name), utf8.RuneCountInString(name))
			return Token{Kind: KindFunction, Text: name, Pos: pos, Fn: f}, nil
		}
		switch {
		case '0' <= r && r <= '9', r == '.':
			return l.scanNum(pos)
		case unicode.IsLetter(r):
			return l.scanName(pos)
		}
		l.advance(sz, 1)
		if op := opFor(r); op != OpNone {
			return Token{Kind: KindOperator, Text: string(r), Pos: pos, Op: op}, nil
		}
		if l.p.lenient {
			continue
		}
		return Token{Pos: pos}, &LexError{Text: string(r), Col: pos}
	}
	return Token{}, io.EOF
}

// scanNum scans a run of digits and decimal points.
func (l *lexer) scanNum(pos int) (Token, error) {
	k := strings.IndexFunc(l.src[l.off:], func(r rune) bool {
		return r != '.' && (r < '0' || '9' < r)
	})
	if k < 0 {
		k = len(l.src) - l.off
	}
	text := l.src[l.off : l.off+k]
	l.advance(k, k)
	tok := Token{Kind: KindNumber, Text: text, Pos: pos}
	if l.p.lenient {
		tok.Value = parsePrefix(text)
		return tok, nil
	}
	if strings.Count(text, ".") > 1 || text == "." {
		return Token{Pos: pos}, &LexError{Text: text, Kind: "number", Col: pos}
	}
	tok.Value = parseNum(text)
	return tok, nil
}

// scanName scans a function name made of letters and ^.
func (l *lexer) scanName(pos int) (Token, error) {
	k := strings.IndexFunc(l.src[l.off:], func(r rune) bool {
		return r != '^' && !unicode.IsLetter(r)
	})
	if k < 0 {
		k = len(l.src) - l.off
	}
	text := l.src[l.off : l.off+k]
	l.advance(k, utf8.RuneCountInString(text))
	f := l.p.funcs[text]
	if f == FuncNone && !l.p.lenient {
		return Token{Pos: pos}, &NameError{Name: text, Col: pos}
	}
	return Token{Kind: KindFunction, Text: text, Pos: pos, Fn: f}, nil
}

// parseNum parses a literal that is known to be well-formed. Literals too
// large for float64 become +Inf.
func parseNum(text string) float64 {
	x, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		panic("scicalc: invalid number " + strconv.Quote(text) + ": " + err.Error())
	}
	return x
}

// parsePrefix parses the longest prefix of text of the form digits[.digits],
// or returns NaN if there is none, so that 1.2.3 reads as 1.2.
func parsePrefix(text string) float64 {
	i := 0
	for i < len(text) && text[i] != '.' {
		i++
	}
	if i < len(text) {
		i++
		for i < len(text) && text[i] != '.' {
			i++
		}
	}
	p := text[:i]
	if strings.Trim(p, ".") == "" {
		return math.NaN()
	}
	return parseNum(p)
}

// Tokenize scans an expression into tokens. In strict mode, the default, the
// result on error holds the tokens scanned before the error. With Lenient,
// unrecognized characters are skipped, unknown names become identity
// functions, and Tokenize never returns an error.
func Tokenize(src string, opts ...ParseOption) ([]Token, error) {
	p := newParsectx(opts)
	return tokenize(src, &p)
}

func tokenize(src string, p *parsectx) ([]Token, error) {
	scan := lex(src, p)
	var toks []Token
	for {
		tok, err := scan.next()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the invalid rune or literal.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" for
	// malformed literals or the empty string for unrecognized characters.
	Kind string
	// Col is the position of the start of the invalid token.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}

func (err *LexError) Unwrap() error {
	if err.Kind == "number" {
		return ErrMalformedNumber
	}
	return ErrUnrecognizedCharacter
}

// NameError is an error indicating a name that is not a known function. It
// implements InputError.
type NameError struct {
	// Name is the unknown name.
	Name string
	// Col is the position of the name.
	Col int
}

func (err *NameError) Error() string {
	return errpos(err.Col, "unknown function "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

func (err *NameError) Unwrap() error {
	return ErrUnknownFunction
}
