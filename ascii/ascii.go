// Package ascii provides byte predicates and ready-made parsers for ASCII
// data, built on the parse package.
package ascii

import (
	"golang.org/x/exp/constraints"

	"github.com/dhamidi/nibble/parse"
)

// IsLowercase reports whether c is an ASCII lowercase letter.
func IsLowercase(c byte) bool { return 'a' <= c && c <= 'z' }

// IsUppercase reports whether c is an ASCII uppercase letter.
func IsUppercase(c byte) bool { return 'A' <= c && c <= 'Z' }

// IsAlpha reports whether c is an ASCII letter.
func IsAlpha(c byte) bool { return IsLowercase(c) || IsUppercase(c) }

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool { return '0' <= c && c <= '9' }

// IsAlphanumeric reports whether c is an ASCII letter or digit.
func IsAlphanumeric(c byte) bool { return IsAlpha(c) || IsDigit(c) }

// IsWhitespace reports whether c is ASCII whitespace: horizontal tab, line
// feed, vertical tab, form feed, carriage return, or space.
func IsWhitespace(c byte) bool { return 9 <= c && c <= 13 || c == ' ' }

// IsHorizontalSpace reports whether c is a space or horizontal tab.
func IsHorizontalSpace(c byte) bool { return c == ' ' || c == '\t' }

// IsEndOfLine reports whether c is a line feed or carriage return.
func IsEndOfLine(c byte) bool { return c == '\n' || c == '\r' }

// Digit consumes a single ASCII digit and yields its byte value, without
// conversion.
var Digit = parse.Satisfy(IsDigit)

// SkipWhitespace skips over ASCII whitespace, matching zero length.
var SkipWhitespace = parse.SkipWhile(IsWhitespace)

// Decimal consumes one or more ASCII digits and yields their value as T.
// Overflow is not detected; T must be wide enough for the expected input.
func Decimal[T constraints.Integer]() parse.Parser[T] {
	return parse.Map(parse.TakeWhile1(IsDigit), toDecimal[T])
}

func toDecimal[T constraints.Integer](digits []byte) T {
	var n T
	for _, c := range digits {
		n = n*10 + T(c-'0')
	}
	return n
}

// Signed wraps a number parser with an optional leading '+' or '-'.
func Signed[T constraints.Signed](num parse.Parser[T]) parse.Parser[T] {
	sign := parse.Option(parse.Map(parse.Satisfy(isSign), signOf[T]), 1)
	return parse.Bind(sign, func(s T) parse.Parser[T] {
		return parse.Map(num, func(n T) T { return s * n })
	})
}

func isSign(c byte) bool { return c == '-' || c == '+' }

func signOf[T constraints.Signed](c byte) T {
	if c == '-' {
		return -1
	}
	return 1
}
