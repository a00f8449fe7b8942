package domain

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numericPrefixRe matches the longest decimal literal at the start of a field,
// e.g. "12.5mm" -> "12.5", "-3e2x" -> "-3e2", "Infinity" -> "Infinity".
var numericPrefixRe = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)

// Number is the result of permissively parsing a text field. Valid is false
// when the field has no numeric prefix.
type Number struct {
	Value float64
	Valid bool
}

// Float returns the parsed value, or NaN when the field was not a number.
func (n Number) Float() float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Value
}

// ParseNumber parses as much of s as forms a decimal number. It never fails:
// a field without a numeric prefix yields an invalid Number.
func ParseNumber(s string) Number {
	s = strings.TrimLeftFunc(s, isFieldSpace)
	prefix := numericPrefixRe.FindString(s)
	if prefix == "" {
		return Number{}
	}
	// Out-of-range literals come back as ±Inf or 0 with ErrRange; the value
	// is still the correct saturation, so the error is ignored.
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Number{}
	}
	return Number{Value: v, Valid: true}
}

func isFieldSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
