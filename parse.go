package mandel

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParsePair parses "<left><sep><right>", splitting at the first occurrence of sep.
// Both halves must be complete numbers; otherwise ok is false. Floats must be finite:
// out of range values such as "1e400", "Inf" and "NaN" are rejected.
//
//	ParsePair[int]("10,20", ',')      // 10, 20, true
//	ParsePair[float64]("0.5x1.5", 'x') // 0.5, 1.5, true
//	ParsePair[int]("10,", ',')        // 0, 0, false
func ParsePair[T int | float64](s string, sep rune) (left, right T, ok bool) {
	i := strings.IndexRune(s, sep)
	if i < 0 {
		return left, right, false
	}
	l, okL := parseNumber[T](s[:i])
	r, okR := parseNumber[T](s[i+utf8.RuneLen(sep):])
	if !okL || !okR {
		return left, right, false
	}
	return l, r, true
}

func parseNumber[T int | float64](s string) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case int:
		n, err := strconv.Atoi(s)
		if err != nil {
			return zero, false
		}
		return T(n), true
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return zero, false
		}
		return T(f), true
	}
}

// ParseComplex parses "re,im" such as "-1.20,0.35".
func ParseComplex(s string) (complex128, bool) {
	re, im, ok := ParsePair[float64](s, ',')
	if !ok {
		return 0, false
	}
	return complex(re, im), true
}

// FormatComplex is the inverse of ParseComplex.
func FormatComplex(z complex128) string {
	return strconv.FormatFloat(real(z), 'g', -1, 64) + "," + strconv.FormatFloat(imag(z), 'g', -1, 64)
}

// ParseBounds parses "WxH" such as "1000x750". Both sides must be positive.
func ParseBounds(s string) (Bounds, bool) {
	w, h, ok := ParsePair[int](s, 'x')
	if !ok {
		return Bounds{}, false
	}
	b := Bounds{W: w, H: h}
	if !b.Valid() {
		return Bounds{}, false
	}
	return b, true
}

func (b Bounds) String() string {
	return strconv.Itoa(b.W) + "x" + strconv.Itoa(b.H)
}
