package parse

import "fmt"

// Ret succeeds with v without consuming input.
func Ret[T any](v T) Parser[T] {
	return func(i Input) Result[T] {
		i.check()
		return Done(i.succ(i.at), v)
	}
}

// Fail fails at the current position with a semantic error describing what
// the composed parser expected.
func Fail[T any](expected string) Parser[T] {
	return func(i Input) Result[T] {
		i.check()
		return Failed[T](i.succ(i.at), &Error{Pos: i.at, Kind: Semantic, Expected: expected})
	}
}

// Bind sequences two steps: it runs p and, on success, runs the parser
// produced by f on the carrier p left behind. Failure and suspension
// short-circuit. Bind is the sole sequencing primitive; every combinator in
// this package reduces to Bind and Ret.
func Bind[A, B any](p Parser[A], f func(A) Parser[B]) Parser[B] {
	return func(i Input) Result[B] {
		return dispatch(p(i),
			func(in Input, v A) Result[B] { return f(v)(in) },
			func(in Input, err *Error) Result[B] { return Failed[B](in, err) })
	}
}

// AtEnd yields true when the window is empty and the stream is final, false
// when bytes remain, and suspends when the window is empty but more input
// may arrive.
func AtEnd(i Input) Result[bool] {
	i.check()
	if len(i.window()) > 0 {
		return Done(i.succ(i.at), false)
	}
	if i.final() {
		return Done(i.succ(i.at), true)
	}
	return Suspend(i.succ(i.at), 1, AtEnd)
}

// PeekByte yields the next byte without consuming it.
func PeekByte(i Input) Result[byte] {
	i.check()
	w := i.window()
	if len(w) == 0 {
		if i.final() {
			return Failed[byte](i.succ(i.at), eofError(i.at, "any byte"))
		}
		return Suspend(i.succ(i.at), 1, PeekByte)
	}
	return Done(i.succ(i.at), w[0])
}

// Any consumes and yields the next byte.
func Any(i Input) Result[byte] {
	i.check()
	w := i.window()
	if len(w) == 0 {
		if i.final() {
			return Failed[byte](i.succ(i.at), eofError(i.at, "any byte"))
		}
		return Suspend(i.succ(i.at), 1, Any)
	}
	return Done(i.succ(i.at+1), w[0])
}

// Satisfy consumes one byte if pred accepts it and fails without consuming
// otherwise.
func Satisfy(pred func(byte) bool) Parser[byte] {
	var p Parser[byte]
	p = func(i Input) Result[byte] {
		i.check()
		w := i.window()
		if len(w) == 0 {
			if i.final() {
				return Failed[byte](i.succ(i.at), eofError(i.at, "byte matching predicate"))
			}
			return Suspend(i.succ(i.at), 1, p)
		}
		if !pred(w[0]) {
			return Failed[byte](i.succ(i.at), mismatchError(i.at, "byte matching predicate"))
		}
		return Done(i.succ(i.at+1), w[0])
	}
	return p
}

// Token consumes the byte b and fails without consuming on anything else.
func Token(b byte) Parser[byte] {
	var p Parser[byte]
	p = func(i Input) Result[byte] {
		i.check()
		w := i.window()
		if len(w) == 0 {
			if i.final() {
				return Failed[byte](i.succ(i.at), eofError(i.at, fmt.Sprintf("%q", b)))
			}
			return Suspend(i.succ(i.at), 1, p)
		}
		if w[0] != b {
			return Failed[byte](i.succ(i.at), mismatchError(i.at, fmt.Sprintf("%q", b)))
		}
		return Done(i.succ(i.at+1), w[0])
	}
	return p
}

// NotToken consumes one byte that is not b.
func NotToken(b byte) Parser[byte] {
	return Satisfy(func(c byte) bool { return c != b })
}

// TakeWhile consumes the maximal leading run of bytes accepted by pred,
// which may be empty. If the run reaches the end of a non-final window the
// parser suspends instead of assuming the run is over, since more matching
// bytes may still arrive. Within a single chunk the yielded slice aliases
// the input window; a run resumed across chunks is accumulated into a fresh
// slice.
func TakeWhile(pred func(byte) bool) Parser[[]byte] {
	return takeWhileFrom(pred, nil)
}

// TakeWhile1 is TakeWhile requiring at least one matching byte; it fails
// without consuming when the first byte is rejected.
func TakeWhile1(pred func(byte) bool) Parser[[]byte] {
	var p Parser[[]byte]
	p = func(i Input) Result[[]byte] {
		i.check()
		w := i.window()
		if len(w) == 0 {
			if i.final() {
				return Failed[[]byte](i.succ(i.at), eofError(i.at, "byte matching predicate"))
			}
			return Suspend(i.succ(i.at), 1, p)
		}
		if !pred(w[0]) {
			return Failed[[]byte](i.succ(i.at), mismatchError(i.at, "byte matching predicate"))
		}
		return takeWhileFrom(pred, nil)(i)
	}
	return p
}

func takeWhileFrom(pred func(byte) bool, acc []byte) Parser[[]byte] {
	return func(i Input) Result[[]byte] {
		i.check()
		w := i.window()
		n := 0
		for n < len(w) && pred(w[n]) {
			n++
		}
		if n == len(w) && !i.final() {
			carried := append(append([]byte(nil), acc...), w...)
			return Suspend(i.succ(i.at+n), 1, takeWhileFrom(pred, carried))
		}
		if acc == nil {
			return Done(i.succ(i.at+n), w[:n:n])
		}
		return Done(i.succ(i.at+n), append(acc, w[:n]...))
	}
}

// Take consumes exactly n bytes, suspending with the missing count while
// more input may arrive. At end of stream an insufficient window fails with
// UnexpectedEOF positioned at the start of the attempt.
func Take(n int) Parser[[]byte] {
	return takeFrom(n, nil)
}

func takeFrom(n int, acc []byte) Parser[[]byte] {
	return func(i Input) Result[[]byte] {
		i.check()
		w := i.window()
		if len(w) < n {
			if i.final() {
				return Failed[[]byte](i.succ(i.at-len(acc)), eofError(i.at-len(acc), fmt.Sprintf("%d bytes", n+len(acc))))
			}
			carried := append(append([]byte(nil), acc...), w...)
			return Suspend(i.succ(i.at+len(w)), n-len(w), takeFrom(n-len(w), carried))
		}
		if acc == nil {
			return Done(i.succ(i.at+n), w[:n:n])
		}
		return Done(i.succ(i.at+n), append(acc, w[:n]...))
	}
}

// TakeTill consumes bytes until pred accepts one, which is left unconsumed.
// Fails with UnexpectedEOF if the stream ends before pred matches.
func TakeTill(pred func(byte) bool) Parser[[]byte] {
	return takeTillFrom(pred, nil)
}

func takeTillFrom(pred func(byte) bool, acc []byte) Parser[[]byte] {
	return func(i Input) Result[[]byte] {
		i.check()
		w := i.window()
		n := 0
		for n < len(w) && !pred(w[n]) {
			n++
		}
		if n == len(w) {
			if i.final() {
				return Failed[[]byte](i.succ(i.at-len(acc)), eofError(i.at-len(acc), "byte matching predicate"))
			}
			carried := append(append([]byte(nil), acc...), w...)
			return Suspend(i.succ(i.at+n), 1, takeTillFrom(pred, carried))
		}
		if acc == nil {
			return Done(i.succ(i.at+n), w[:n:n])
		}
		return Done(i.succ(i.at+n), append(acc, w[:n]...))
	}
}

// String consumes bytes matching s exactly and yields them. A mismatch fails
// without consuming, positioned at the start of the attempt.
func String(s []byte) Parser[[]byte] {
	return stringFrom(s, 0)
}

func stringFrom(s []byte, matched int) Parser[[]byte] {
	return func(i Input) Result[[]byte] {
		i.check()
		w := i.window()
		rest := s[matched:]
		limit := len(rest)
		if len(w) < limit {
			limit = len(w)
		}
		for j := 0; j < limit; j++ {
			if w[j] != rest[j] {
				return Failed[[]byte](i.succ(i.at-matched), mismatchError(i.at-matched, fmt.Sprintf("%q", s)))
			}
		}
		if limit < len(rest) {
			if i.final() {
				return Failed[[]byte](i.succ(i.at-matched), eofError(i.at-matched, fmt.Sprintf("%q", s)))
			}
			return Suspend(i.succ(i.at+limit), len(rest)-limit, stringFrom(s, matched+limit))
		}
		return Done(i.succ(i.at+limit), s)
	}
}

// Remainder consumes and yields everything up to the end of the stream.
func Remainder(i Input) Result[[]byte] {
	return remainderFrom(nil)(i)
}

func remainderFrom(acc []byte) Parser[[]byte] {
	return func(i Input) Result[[]byte] {
		i.check()
		w := i.window()
		if !i.final() {
			carried := append(append([]byte(nil), acc...), w...)
			return Suspend(i.succ(i.at+len(w)), 1, remainderFrom(carried))
		}
		if acc == nil {
			return Done(i.succ(i.at+len(w)), w[:len(w):len(w)])
		}
		return Done(i.succ(i.at+len(w)), append(acc, w...))
	}
}
