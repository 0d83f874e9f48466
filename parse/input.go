// Package parse implements an incremental parser-combinator engine for
// byte-oriented formats. Parsers are functions from an Input carrier to a
// Result, composed with Bind and the combinators in this package, and can be
// driven either over a complete byte block (ParseOnly) or chunk by chunk
// through the stream package. A parser behaves identically regardless of how
// its input is split into chunks.
package parse

// Input carries the window of unconsumed bytes, the absolute stream position
// of its first byte, and whether the stream has ended. It is single-use:
// every primitive consumes the value it is given and issues a fresh one
// inside the Result it returns. Using an Input after it has been passed to a
// primitive panics with *MisuseError.
type Input struct {
	s   *session
	at  int
	gen uint32
}

// session is the state shared by every Input derived from one parse attempt.
// gen is the live generation; an Input whose gen lags behind has been
// consumed already.
type session struct {
	start int
	data  []byte
	final bool
	gen   uint32
}

// NewInput builds the initial carrier over data, whose first byte sits at
// absolute stream offset start. final reports whether the stream ends with
// this block. Incremental drivers call this once per top-level parse; most
// callers want ParseOnly or the stream package instead.
func NewInput(data []byte, start int, final bool) Input {
	return Input{s: &session{start: start, data: data, final: final}, at: start}
}

// Pos reports the absolute stream offset of the next unconsumed byte.
func (i Input) Pos() int { return i.at }

func (i Input) check() {
	if i.gen != i.s.gen {
		panic(&MisuseError{Pos: i.at, Op: "input used after consumption"})
	}
}

func (i Input) window() []byte {
	return i.s.data[i.at-i.s.start:]
}

func (i Input) final() bool { return i.s.final }

// succ invalidates i and issues its successor positioned at the absolute
// offset at.
func (i Input) succ(at int) Input {
	i.s.gen++
	return Input{s: i.s, at: at, gen: i.s.gen}
}

// Mark captures the current position so an ordered-choice combinator can
// rewind after a failed alternative. Taking a mark does not consume the
// carrier.
type Mark struct {
	at int
}

// Mark saves the current position.
func (i Input) Mark() Mark {
	i.check()
	return Mark{at: i.at}
}

// Restore consumes i and issues a carrier positioned back at m. Only
// positions at or after the start of the current parse attempt can be
// restored.
func (i Input) Restore(m Mark) Input {
	i.check()
	if m.at < i.s.start {
		panic(&MisuseError{Pos: m.at, Op: "restore to a position before the parse start"})
	}
	return i.succ(m.at)
}
