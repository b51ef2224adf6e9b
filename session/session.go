// Package session holds the state of a calculator between key presses: the
// expression being entered, the display, memory, modes, and history.
//
// A Session is not safe for concurrent use.
package session

import (
	"io"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/scicalc"
)

// ErrorDisplay is what the display shows after a failed calculation.
const ErrorDisplay = "Error"

// Session is a calculator session.
type Session struct {
	expr    string
	display string
	// carry is the last result while the expression still starts with its
	// formatted text.
	carry *carry

	memory     float64
	mode       scicalc.AngleMode
	scientific bool
	opts       []scicalc.ParseOption
	hist       *History
	log        *slog.Logger
}

type carry struct {
	value float64
	text  string
}

// Option configures a new Session.
type Option func(*Session)

// WithAngle sets the initial angle mode.
func WithAngle(mode scicalc.AngleMode) Option {
	return func(s *Session) {
		s.mode = mode
	}
}

// WithParseOptions sets options used for every calculation, e.g.
// scicalc.Lenient.
func WithParseOptions(opts ...scicalc.ParseOption) Option {
	return func(s *Session) {
		s.opts = append(s.opts, opts...)
	}
}

// WithHistorySize sets the number of history entries kept. Zero disables
// history.
func WithHistorySize(n int) Option {
	return func(s *Session) {
		s.hist = NewHistory(n)
	}
}

// WithLogger sets the logger. By default, a session logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

// WithScientific sets whether the session starts in scientific mode.
func WithScientific(on bool) Option {
	return func(s *Session) {
		s.scientific = on
	}
}

// New creates a session. It starts in degrees and scientific mode with an
// empty expression.
func New(opts ...Option) *Session {
	s := &Session{
		display:    "0",
		mode:       scicalc.Degrees,
		scientific: true,
	}
	for _, o := range opts {
		o(s)
	}
	if s.hist == nil {
		s.hist = NewHistory(DefaultHistorySize)
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Expression returns the expression entered so far.
func (s *Session) Expression() string {
	return s.expr
}

// Display returns the text of the display.
func (s *Session) Display() string {
	return s.display
}

// Append appends digits, a decimal point, or other raw text to the
// expression.
func (s *Session) Append(text string) {
	s.edit(false)
	s.expr += text
}

// Operator appends a binary operator, spaced the way operator buttons
// insert them.
func (s *Session) Operator(op string) {
	s.edit(true)
	s.expr += " " + op + " "
}

// Function handles a function button. Parentheses are appended as they are,
// π and e append their values, and ± toggles the sign of the last number.
// Any other name is appended as a call, name followed by (, unless the
// session is in standard mode, where it is ignored.
func (s *Session) Function(name string) {
	switch name {
	case "(", ")":
		s.Append(name)
	case "π":
		s.Append(pi)
	case "e":
		s.Append(euler)
	case "±":
		s.edit(false)
		s.toggleSign()
	default:
		if !s.scientific {
			s.log.Debug("function ignored in standard mode", slog.String("func", name))
			return
		}
		s.Append(name + "(")
	}
}

var (
	pi    = scicalc.Format(math.Pi)
	euler = scicalc.Format(math.E)
)

// Input appends a line of typed text with π replaced by its value. A line
// starting with a binary operator continues from the last result.
func (s *Session) Input(line string) {
	s.edit(scicalc.Continues(line))
	s.expr += strings.ReplaceAll(line, "π", pi)
}

// edit prepares for a change to the expression. Unless the change continues
// the expression with an operator, a result that has not been edited yet
// turns into plain text.
func (s *Session) edit(continues bool) {
	if s.carry != nil && !continues && s.expr == s.carry.text {
		s.carry = nil
	}
}

// trailingNumber matches the last numeric literal in the expression.
var trailingNumber = regexp.MustCompile(`\d*\.?\d+$`)

func (s *Session) toggleSign() {
	loc := trailingNumber.FindStringIndex(s.expr)
	if loc == nil {
		return
	}
	before, lit := s.expr[:loc[0]], s.expr[loc[0]:]
	if rest, ok := cutSign(before); ok {
		s.expr = rest + lit
		return
	}
	s.expr = before + "-" + lit
}

// cutSign removes a minus sign at the end of before if it is a sign rather
// than a subtraction.
func cutSign(before string) (string, bool) {
	var rest string
	switch {
	case strings.HasSuffix(before, "-"):
		rest = strings.TrimSuffix(before, "-")
	case strings.HasSuffix(before, "−"):
		rest = strings.TrimSuffix(before, "−")
	default:
		return before, false
	}
	prev := strings.TrimRight(rest, " ")
	if prev == "" {
		return rest, true
	}
	r, _ := utf8.DecodeLastRuneInString(prev)
	if strings.ContainsRune(scicalc.Operators, r) && r != ')' {
		return rest, true
	}
	return before, false
}

// Calculate evaluates the expression. On success, the display and the
// expression become the formatted result and the calculation is added to
// history. On failure, the display shows Error and the expression is kept.
//
// If the expression is the last result followed by an operator, the result
// is continued with scicalc.Chain so that it keeps its exact value.
func (s *Session) Calculate() (float64, error) {
	expr := s.expr
	r, err := s.evaluate(expr)
	if err != nil {
		s.display = ErrorDisplay
		s.log.Warn("calculation failed", slog.String("expr", expr), slog.Any("err", err))
		return 0, err
	}
	text := scicalc.Format(r)
	s.display = text
	if strings.TrimSpace(expr) != "" {
		s.hist.Add(expr + " = " + text)
	}
	s.expr = text
	s.carry = &carry{value: r, text: text}
	s.log.Debug("calculated", slog.String("expr", expr), slog.String("result", text), slog.String("angle", s.mode.String()))
	return r, nil
}

func (s *Session) evaluate(expr string) (float64, error) {
	if c := s.carry; c != nil && strings.HasPrefix(expr, c.text) {
		rest := expr[len(c.text):]
		if strings.TrimSpace(rest) == "" || scicalc.Continues(rest) {
			return scicalc.Chain(c.value, rest, s.mode, s.opts...)
		}
	}
	return scicalc.Evaluate(expr, s.mode, s.opts...)
}

// Clear clears the expression and resets the display.
func (s *Session) Clear() {
	s.expr = ""
	s.display = "0"
	s.carry = nil
}

// ClearEntry removes the last space-separated part of the expression, e.g.
// the operand after an operator.
func (s *Session) ClearEntry() {
	parts := strings.Split(strings.TrimSpace(s.expr), " ")
	parts = parts[:len(parts)-1]
	if len(parts) == 0 {
		s.expr = ""
		s.carry = nil
		return
	}
	s.expr = strings.Join(parts, " ") + " "
	s.trim()
}

// Backspace removes the last character of the expression.
func (s *Session) Backspace() {
	if s.expr == "" {
		return
	}
	_, n := utf8.DecodeLastRuneInString(s.expr)
	s.expr = s.expr[:len(s.expr)-n]
	s.trim()
}

// trim forgets the last result once deleting text cuts into it.
func (s *Session) trim() {
	if s.carry != nil && !strings.HasPrefix(s.expr, s.carry.text) {
		s.carry = nil
	}
}

// MemoryClear sets memory to zero.
func (s *Session) MemoryClear() {
	s.memory = 0
}

// MemoryRecall appends the memory value to the expression.
func (s *Session) MemoryRecall() {
	s.Append(scicalc.Format(s.memory))
}

// MemoryAdd adds the displayed value to memory. A display that is not a
// number counts as zero.
func (s *Session) MemoryAdd() {
	s.memory += s.displayed()
}

// MemorySubtract subtracts the displayed value from memory. A display that
// is not a number counts as zero.
func (s *Session) MemorySubtract() {
	s.memory -= s.displayed()
}

// Memory returns the memory value.
func (s *Session) Memory() float64 {
	return s.memory
}

// HasMemory returns whether memory is nonzero.
func (s *Session) HasMemory() bool {
	return s.memory != 0
}

func (s *Session) displayed() float64 {
	x, err := strconv.ParseFloat(s.display, 64)
	if err != nil || math.IsNaN(x) {
		return 0
	}
	return x
}

// Angle returns the angle mode.
func (s *Session) Angle() scicalc.AngleMode {
	return s.mode
}

// SetAngle sets the angle mode.
func (s *Session) SetAngle(mode scicalc.AngleMode) {
	s.mode = mode
}

// ToggleAngle switches between degrees and radians and returns the new mode.
func (s *Session) ToggleAngle() scicalc.AngleMode {
	s.mode = s.mode.Toggle()
	s.log.Debug("angle mode", slog.String("angle", s.mode.String()))
	return s.mode
}

// Scientific returns whether the session is in scientific mode.
func (s *Session) Scientific() bool {
	return s.scientific
}

// ToggleMode switches between scientific and standard mode and returns
// whether the session is now in scientific mode.
func (s *Session) ToggleMode() bool {
	s.scientific = !s.scientific
	return s.scientific
}

// History returns the recorded calculations, oldest first, each formatted
// as "expression = result".
func (s *Session) History() []string {
	return s.hist.Entries()
}
