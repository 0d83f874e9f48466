package parse

// Sequencing helpers. Go has no macro facility, so flat step sequences are
// written as explicit Bind chains; these wrappers cover the common shapes so
// most chains never mention Bind directly.

// Map applies f to the value produced by p.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return Bind(p, func(v A) Parser[B] {
		return Ret(f(v))
	})
}

// Then runs p, discards its value, and runs q.
func Then[A, B any](p Parser[A], q Parser[B]) Parser[B] {
	return Bind(p, func(A) Parser[B] {
		return q
	})
}

// SkipNext runs p, then q, and yields the value of p.
func SkipNext[A, B any](p Parser[A], q Parser[B]) Parser[A] {
	return Bind(p, func(v A) Parser[A] {
		return Map(q, func(B) A { return v })
	})
}
