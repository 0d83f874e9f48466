package parse

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a parse failure.
type Kind uint8

const (
	// TokenMismatch means a predicate or exact match rejected the input.
	TokenMismatch Kind = iota
	// UnexpectedEOF means the step needed more input than the stream holds.
	UnexpectedEOF
	// Semantic means a composed parser rejected the input via Fail.
	Semantic
)

func (k Kind) String() string {
	switch k {
	case TokenMismatch:
		return "token mismatch"
	case UnexpectedEOF:
		return "unexpected end of input"
	case Semantic:
		return "semantic error"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Error is the internal failure value threaded through the result algebra.
// It is ordinary data: failures short-circuit through Bind as values and are
// never signalled through panics.
type Error struct {
	Pos      int
	Kind     Kind
	Expected string
	Cause    *Error
}

func (e *Error) Error() string {
	switch {
	case e.Expected == "":
		return fmt.Sprintf("%s at %d", e.Kind, e.Pos)
	case e.Kind == UnexpectedEOF:
		return fmt.Sprintf("unexpected end of input at %d: expected %s", e.Pos, e.Expected)
	default:
		return fmt.Sprintf("expected %s at %d", e.Expected, e.Pos)
	}
}

// Flatten converts the internal error into the user-visible ParseError,
// folding the cause chain into one description.
func (e *Error) Flatten() *ParseError {
	var parts []string
	for c := e; c != nil; c = c.Cause {
		parts = append(parts, c.Error())
	}
	return &ParseError{
		Position: e.Pos,
		Kind:     e.Kind,
		Message:  strings.Join(parts, ": "),
	}
}

// ParseError is the failure surfaced to callers of ParseOnly and the stream
// driver.
type ParseError struct {
	Position int
	Kind     Kind
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Position, e.Message)
}

// IsUnexpectedEOF reports whether err is a parse failure caused by the input
// ending before the parser could decide.
func IsUnexpectedEOF(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.Kind == UnexpectedEOF
}

// MisuseError reports a violated usage contract: a carrier reused after
// consumption, a continuation invoked twice, or a result accessor applied to
// the wrong variant. These are programming defects in the composed parser or
// the driving code, not data errors, so they surface as panics instead of
// failure values.
type MisuseError struct {
	Pos int
	Op  string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("parse: %s (at %d)", e.Op, e.Pos)
}

func eofError(pos int, expected string) *Error {
	return &Error{Pos: pos, Kind: UnexpectedEOF, Expected: expected}
}

func mismatchError(pos int, expected string) *Error {
	return &Error{Pos: pos, Kind: TokenMismatch, Expected: expected}
}
