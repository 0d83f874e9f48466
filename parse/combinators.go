package parse

// Or tries a and commits to its success; when a fails the carrier is rewound
// to the pre-attempt position and b runs in its place (ordered choice, never
// longest match). When a suspends, the whole choice suspends and re-enters
// the same decision point on resumption, so no alternative is committed to
// before a can decide.
func Or[T any](a, b Parser[T]) Parser[T] {
	return func(i Input) Result[T] {
		m := i.Mark()
		return dispatch(a(i),
			func(in Input, v T) Result[T] { return Done(in, v) },
			func(in Input, _ *Error) Result[T] { return b(in.Restore(m)) })
	}
}

// Option tries p and yields def in its place when p fails, consuming
// nothing in that case.
func Option[T any](p Parser[T], def T) Parser[T] {
	return func(i Input) Result[T] {
		m := i.Mark()
		return dispatch(p(i),
			func(in Input, v T) Result[T] { return Done(in, v) },
			func(in Input, _ *Error) Result[T] { return Done(in.Restore(m), def) })
	}
}

// Many applies p repeatedly, collecting values until p fails without
// consuming; that failure is absorbed and the collected values are yielded.
// A p that fails after consuming input leaves the parse at the failure
// position, which is a defect of p rather than of Many. A p that succeeds
// without consuming loops forever for the same reason.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(i Input) Result[[]T] {
		return manyFrom(p, nil)(i)
	}
}

func manyFrom[T any](p Parser[T], acc []T) Parser[[]T] {
	return func(i Input) Result[[]T] {
		for {
			m := i.Mark()
			r := p(i)
			switch r.st {
			case statusDone:
				acc = append(acc, r.val)
				i = r.in
			case statusFailed:
				return Done(r.in.Restore(m), acc)
			default:
				collected := acc
				return Suspend(r.in, r.need, func(next Input) Result[[]T] {
					return dispatch(r.k(next),
						func(in Input, v T) Result[[]T] { return manyFrom(p, append(collected, v))(in) },
						func(in Input, _ *Error) Result[[]T] { return Done(in.Restore(m), collected) })
				})
			}
		}
	}
}

// Many1 is Many requiring at least one match; the first failure of p is
// propagated.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return Bind(p, func(first T) Parser[[]T] {
		return Map(Many(p), func(rest []T) []T {
			return append([]T{first}, rest...)
		})
	})
}

// SepBy applies p zero or more times separated by sep, collecting the values
// of p. The empty match yields an empty collection without consuming.
func SepBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Option(SepBy1(p, sep), nil)
}

// SepBy1 applies p one or more times separated by sep.
func SepBy1[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Bind(p, func(first T) Parser[[]T] {
		return Map(Many(Then(sep, p)), func(rest []T) []T {
			return append([]T{first}, rest...)
		})
	})
}

// Count applies p exactly n times, propagating failure and suspension
// immediately.
func Count[T any](n int, p Parser[T]) Parser[[]T] {
	return func(i Input) Result[[]T] {
		return countFrom(p, n, make([]T, 0, n))(i)
	}
}

func countFrom[T any](p Parser[T], n int, acc []T) Parser[[]T] {
	return func(i Input) Result[[]T] {
		for n > 0 {
			r := p(i)
			switch r.st {
			case statusDone:
				acc = append(acc, r.val)
				i = r.in
				n--
			case statusFailed:
				return Failed[[]T](r.in, r.err)
			default:
				remaining, collected := n, acc
				return Suspend(r.in, r.need, func(next Input) Result[[]T] {
					return dispatch(r.k(next),
						func(in Input, v T) Result[[]T] {
							return countFrom(p, remaining-1, append(collected, v))(in)
						},
						func(in Input, err *Error) Result[[]T] { return Failed[[]T](in, err) })
				})
			}
		}
		return Ret(acc)(i)
	}
}

// SkipWhile consumes the maximal leading run accepted by pred and discards
// it. Unlike discarding a TakeWhile result it never retains the run across
// chunk boundaries.
func SkipWhile(pred func(byte) bool) Parser[struct{}] {
	var p Parser[struct{}]
	p = func(i Input) Result[struct{}] {
		i.check()
		w := i.window()
		n := 0
		for n < len(w) && pred(w[n]) {
			n++
		}
		if n == len(w) && !i.final() {
			return Suspend(i.succ(i.at+n), 1, p)
		}
		return Done(i.succ(i.at+n), struct{}{})
	}
	return p
}

// SkipMany applies p until it fails without consuming, discarding every
// value.
func SkipMany[T any](p Parser[T]) Parser[struct{}] {
	return Map(Many(p), func([]T) struct{} { return struct{}{} })
}

// SkipMany1 is SkipMany requiring at least one match.
func SkipMany1[T any](p Parser[T]) Parser[struct{}] {
	return Then(p, SkipMany(p))
}

// ManyTill applies p until end succeeds, collecting the values of p and
// consuming whatever end matched. Failures of p are propagated.
func ManyTill[T, E any](p Parser[T], end Parser[E]) Parser[[]T] {
	return func(i Input) Result[[]T] {
		return manyTillFrom(p, end, nil)(i)
	}
}

func manyTillFrom[T, E any](p Parser[T], end Parser[E], acc []T) Parser[[]T] {
	return func(i Input) Result[[]T] {
		m := i.Mark()
		collected := acc
		return dispatch(end(i),
			func(in Input, _ E) Result[[]T] { return Done(in, collected) },
			func(in Input, _ *Error) Result[[]T] {
				return dispatch(p(in.Restore(m)),
					func(in Input, v T) Result[[]T] { return manyTillFrom(p, end, append(collected, v))(in) },
					func(in Input, err *Error) Result[[]T] { return Failed[[]T](in, err) })
			})
	}
}

// Match pairs a parser's value with the bytes it consumed producing it.
type Match[T any] struct {
	Bytes []byte
	Value T
}

// MatchedBy applies p and yields its value together with the consumed bytes.
// The yielded slice aliases the input window.
func MatchedBy[T any](p Parser[T]) Parser[Match[T]] {
	return func(i Input) Result[Match[T]] {
		from := i.at
		return dispatch(p(i),
			func(in Input, v T) Result[Match[T]] {
				w := in.s.data[from-in.s.start : in.at-in.s.start]
				return Done(in, Match[T]{Bytes: w[:len(w):len(w)], Value: v})
			},
			func(in Input, err *Error) Result[Match[T]] { return Failed[Match[T]](in, err) })
	}
}

// LookAhead applies p and rewinds the carrier to the pre-attempt position on
// both success and failure, so p's consumption is never observed.
func LookAhead[T any](p Parser[T]) Parser[T] {
	return func(i Input) Result[T] {
		m := i.Mark()
		return dispatch(p(i),
			func(in Input, v T) Result[T] { return Done(in.Restore(m), v) },
			func(in Input, err *Error) Result[T] { return Failed[T](in.Restore(m), err) })
	}
}
