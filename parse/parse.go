package parse

// ParseOnly runs p against data as one complete, final block. A suspension
// reaching the top level is reported as an unexpected end of input at the
// suspension point, since no further source exists to consult.
func ParseOnly[T any](p Parser[T], data []byte) (T, error) {
	var zero T
	r := p(NewInput(data, 0, true))
	switch {
	case r.IsDone():
		return r.Value(), nil
	case r.Suspended():
		return zero, eofError(r.Pos(), "").Flatten()
	default:
		return zero, r.Err().Flatten()
	}
}
