package scicalc

import (
	"math"
	"strconv"
)

// Format renders a result the way the calculator displays it: the shortest
// decimal that reads back as the same float64, always in plain decimal
// notation since expressions have no exponent syntax. Infinities and NaN are
// "Infinity", "-Infinity", and "NaN", which do not tokenize; use Chain to
// continue from them.
func Format(x float64) string {
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	case x == 0:
		// Includes negative zero.
		return "0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
