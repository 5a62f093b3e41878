package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// Decimal is an exact decimal number kept in normalized, non-scientific form:
// no exponent, no leading zeros, no trailing fractional zeros, no "-0".
type Decimal struct {
	text string
}

// ParseDecimal accepts a JSON number literal or plain decimal text.
func ParseDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Decimal{}, fmt.Errorf("empty decimal")
	}
	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
	}
	exp := 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Decimal{}, fmt.Errorf("invalid exponent in %q", s)
		}
		exp = e
		s = s[:i]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return Decimal{}, fmt.Errorf("invalid decimal %q", s)
	}
	digits := intPart + fracPart
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Decimal{}, fmt.Errorf("invalid decimal %q", s)
		}
	}
	// value = digits * 10^(exp - len(fracPart))
	point := len(intPart) + exp
	digits = strings.TrimLeft(digits, "0")
	point -= len(intPart+fracPart) - len(digits)
	if digits == "" {
		return Decimal{text: "0"}, nil
	}
	var whole, frac string
	switch {
	case point <= 0:
		whole, frac = "0", strings.Repeat("0", -point)+digits
	case point >= len(digits):
		whole = digits + strings.Repeat("0", point-len(digits))
	default:
		whole, frac = digits[:point], digits[point:]
	}
	frac = strings.TrimRight(frac, "0")
	text := whole
	if frac != "" {
		text += "." + frac
	}
	if neg {
		text = "-" + text
	}
	return Decimal{text: text}, nil
}

// MustDecimal panics when s is not a decimal.
func MustDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) String() string {
	if d.text == "" {
		return "0"
	}
	return d.text
}

// IsZero reports whether d is the zero value or equals zero.
func (d Decimal) IsZero() bool {
	return d.text == "" || d.text == "0"
}
