package scicalc

import (
	"math"
	"strconv"
	"strings"
)

// Func is one of the functions the calculator knows. The set is closed;
// names are resolved to a Func when the expression is tokenized.
type Func int8

const (
	// FuncNone is the identity. It only appears for unknown names in lenient
	// parsing.
	FuncNone Func = iota
	FuncSin
	FuncCos
	FuncTan
	FuncAsin
	FuncAcos
	FuncAtan
	FuncLog
	FuncLn
	FuncSquare
	FuncCube
	FuncSqrt
	FuncCbrt
	FuncPow10
	FuncExp
	FuncFactorial
	FuncReciprocal

	funcCount
)

var funcnames = [funcCount]string{
	FuncNone:       "",
	FuncSin:        "sin",
	FuncCos:        "cos",
	FuncTan:        "tan",
	FuncAsin:       "asin",
	FuncAcos:       "acos",
	FuncAtan:       "atan",
	FuncLog:        "log",
	FuncLn:         "ln",
	FuncSquare:     "x²",
	FuncCube:       "x³",
	FuncSqrt:       "√",
	FuncCbrt:       "∛",
	FuncPow10:      "10^x",
	FuncExp:        "e^x",
	FuncFactorial:  "n!",
	FuncReciprocal: "1/x",
}

// String returns the canonical name of the function, the same text as the
// calculator button that applies it.
func (f Func) String() string {
	if f < 0 || f >= funcCount {
		return "Func(" + strconv.Itoa(int(f)) + ")"
	}
	if f == FuncNone {
		return "identity"
	}
	return funcnames[f]
}

// globalfuncs maps every name recognized by default to its function.
var globalfuncs = func() map[string]Func {
	m := make(map[string]Func, 2*int(funcCount))
	for f := FuncNone + 1; f < funcCount; f++ {
		m[funcnames[f]] = f
	}
	// ASCII spellings.
	m["x^2"] = FuncSquare
	m["x^3"] = FuncCube
	m["sqrt"] = FuncSqrt
	m["cbrt"] = FuncCbrt
	m["exp"] = FuncExp
	m["fact"] = FuncFactorial
	return m
}()

// LookupFunc returns the function a name refers to by default.
func LookupFunc(name string) (Func, bool) {
	f, ok := globalfuncs[name]
	return f, ok
}

// Call applies the function to x. Trigonometric functions interpret their
// argument, and inverse trigonometric functions their result, according to
// mode. The only error is a *DomainError from the factorial; everything else
// follows floating-point rules, e.g. log(-1) is NaN and 1/x(0) is +Inf.
func (f Func) Call(x float64, mode AngleMode) (float64, error) {
	switch f {
	case FuncNone:
		return x, nil
	case FuncSin:
		return math.Sin(mode.toRadians(x)), nil
	case FuncCos:
		return math.Cos(mode.toRadians(x)), nil
	case FuncTan:
		return math.Tan(mode.toRadians(x)), nil
	case FuncAsin:
		return mode.fromRadians(math.Asin(x)), nil
	case FuncAcos:
		return mode.fromRadians(math.Acos(x)), nil
	case FuncAtan:
		return mode.fromRadians(math.Atan(x)), nil
	case FuncLog:
		return math.Log10(x), nil
	case FuncLn:
		return math.Log(x), nil
	case FuncSquare:
		return math.Pow(x, 2), nil
	case FuncCube:
		return math.Pow(x, 3), nil
	case FuncSqrt:
		return math.Sqrt(x), nil
	case FuncCbrt:
		return math.Cbrt(x), nil
	case FuncPow10:
		return math.Pow(10, x), nil
	case FuncExp:
		return math.Exp(x), nil
	case FuncFactorial:
		return factorial(x)
	case FuncReciprocal:
		return 1 / x, nil
	default:
		panic("scicalc: invalid function " + f.String())
	}
}

// factorial computes n! for non-negative integers n. The product is not
// bounded; it becomes +Inf once it overflows.
func factorial(n float64) (float64, error) {
	if n < 0 || math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return math.NaN(), &DomainError{X: n, Func: FuncFactorial.String()}
	}
	r := 1.0
	for i := 2.0; i <= n; i++ {
		r *= i
		if math.IsInf(r, 1) {
			// Every further factor keeps it there.
			break
		}
	}
	return r, nil
}

// DomainError is an error returned when a function is called on an argument
// outside its domain. DomainError unwraps to ErrDomain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is the name of the function.
	Func string
	// Col is the position of the function token, if known.
	Col int
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Col > 0 {
		return errpos(err.Col, r)
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return ErrDomain
}

// AngleMode selects how trigonometric functions interpret angles.
type AngleMode int8

const (
	// Degrees is the default angle mode.
	Degrees AngleMode = iota
	Radians
)

func (m AngleMode) String() string {
	switch m {
	case Degrees:
		return "DEG"
	case Radians:
		return "RAD"
	default:
		return "AngleMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Toggle returns the other angle mode.
func (m AngleMode) Toggle() AngleMode {
	if m == Degrees {
		return Radians
	}
	return Degrees
}

// ParseAngleMode parses an angle mode name. Case is ignored.
func ParseAngleMode(s string) (AngleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deg", "degree", "degrees":
		return Degrees, nil
	case "rad", "radian", "radians":
		return Radians, nil
	default:
		return Degrees, &AngleModeError{Name: s}
	}
}

// AngleModeError is an error from parsing an unknown angle mode name.
type AngleModeError struct {
	Name string
}

func (err *AngleModeError) Error() string {
	return "unknown angle mode " + strconv.Quote(err.Name) + " (want DEG or RAD)"
}

func (m AngleMode) toRadians(x float64) float64 {
	if m == Degrees {
		return x * math.Pi / 180
	}
	return x
}

func (m AngleMode) fromRadians(x float64) float64 {
	if m == Degrees {
		return x * 180 / math.Pi
	}
	return x
}
