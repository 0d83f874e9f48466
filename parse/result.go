package parse

// Parser is a single parsing step: it consumes the given carrier and
// produces a Result holding its successor.
type Parser[T any] func(Input) Result[T]

type status uint8

const (
	statusDone status = iota
	statusFailed
	statusSuspended
)

// Result is the outcome of one parsing step. Exactly one of three variants
// holds: done (value produced), failed (*Error produced), or suspended
// (more input is required before the step can decide). A suspended Result
// carries the number of additional bytes needed and an opaque continuation
// that re-enters the step once they are available or the stream has ended.
type Result[T any] struct {
	st      status
	in      Input
	val     T
	err     *Error
	need    int
	k       func(Input) Result[T]
	resumed *bool
}

// Done reports a successful step that leaves the carrier at next.
func Done[T any](next Input, v T) Result[T] {
	return Result[T]{st: statusDone, in: next, val: v}
}

// Failed reports a failed step. next reflects how much input was consumed
// before the failure was detected.
func Failed[T any](next Input, err *Error) Result[T] {
	return Result[T]{st: statusFailed, in: next, err: err}
}

// Suspend reports that the step cannot decide without at least need more
// bytes. at marks where the step stopped examining input; k re-enters the
// step when called with a carrier covering that position.
func Suspend[T any](at Input, need int, k func(Input) Result[T]) Result[T] {
	if need < 1 {
		need = 1
	}
	return Result[T]{st: statusSuspended, in: at, need: need, k: k, resumed: new(bool)}
}

// IsDone reports whether the step succeeded.
func (r Result[T]) IsDone() bool { return r.st == statusDone }

// Suspended reports whether the step needs more input.
func (r Result[T]) Suspended() bool { return r.st == statusSuspended }

// Value returns the produced value of a done Result.
func (r Result[T]) Value() T {
	if r.st != statusDone {
		panic(&MisuseError{Pos: r.in.at, Op: "value of a result that is not done"})
	}
	return r.val
}

// Err returns the failure of a failed Result, or nil.
func (r Result[T]) Err() *Error {
	if r.st == statusFailed {
		return r.err
	}
	return nil
}

// Need returns how many additional bytes a suspended Result requires.
func (r Result[T]) Need() int { return r.need }

// Pos reports the absolute stream offset the step stopped at: the next
// unconsumed byte for done and failed results, the suspension point for
// suspended ones.
func (r Result[T]) Pos() int { return r.in.at }

// Resume re-enters a suspended step with a rebuilt carrier over data, whose
// first byte sits at absolute stream offset start. data must cover every
// byte from the start of the enclosing parse attempt, so positions saved for
// backtracking remain reachable. Resume may be called at most once per
// suspended Result; a second call panics with *MisuseError.
func (r Result[T]) Resume(data []byte, start int, final bool) Result[T] {
	if r.st != statusSuspended {
		panic(&MisuseError{Pos: r.in.at, Op: "resume of a result that is not suspended"})
	}
	if *r.resumed {
		panic(&MisuseError{Pos: r.in.at, Op: "continuation invoked more than once"})
	}
	*r.resumed = true
	s := &session{start: start, data: data, final: final}
	return r.k(Input{s: s, at: r.in.at})
}

// dispatch routes a step result to ok or no, re-wrapping the continuation of
// a suspended step so that it re-enters the same decision point once
// resumed. It is the incomplete-transparent view of the result algebra that
// Bind and every combinator are built on.
func dispatch[A, B any](r Result[A], ok func(Input, A) Result[B], no func(Input, *Error) Result[B]) Result[B] {
	switch r.st {
	case statusDone:
		return ok(r.in, r.val)
	case statusFailed:
		return no(r.in, r.err)
	default:
		return Suspend(r.in, r.need, func(i Input) Result[B] {
			return dispatch(r.k(i), ok, no)
		})
	}
}
