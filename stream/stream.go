// Package stream drives parsers from the parse package incrementally over a
// pull-based byte source. It owns a growable buffer, requests more bytes
// whenever a parser suspends, and resumes the suspended step once they
// arrive, so a parser observes the same outcome whether its input arrives
// whole or in arbitrary fragments.
package stream

import (
	"errors"
	"io"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/nibble/parse"
)

// defaultReadSize is how many bytes are requested from the source per read.
const defaultReadSize = 6 * 1024

// ErrLimit reports that the buffer would have to grow past the configured
// limit to satisfy the parser.
var ErrLimit = errors.New("stream: buffer limit exceeded")

var log = commonlog.GetLogger("nibble.stream")

// Stream feeds parsers from an io.Reader. Bytes already read but not yet
// consumed by a completed parse stay buffered, so successive Run calls
// continue exactly where the previous parse stopped. Stream is not safe for
// concurrent use.
type Stream struct {
	src      io.Reader
	buf      []byte
	used     int
	base     int
	limit    int
	readSize int
	eof      bool
}

// Option configures a Stream.
type Option func(*Stream)

// WithLimit caps the buffer size in bytes. A parse needing more buffered
// input than the limit allows fails with ErrLimit. Zero means unlimited.
func WithLimit(n int) Option {
	return func(s *Stream) { s.limit = n }
}

// WithReadSize sets how many bytes each read requests from the source.
func WithReadSize(n int) Option {
	return func(s *Stream) {
		if n > 0 {
			s.readSize = n
		}
	}
}

// New returns a Stream reading from src.
func New(src io.Reader, opts ...Option) *Stream {
	s := &Stream{src: src, readSize: defaultReadSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pos reports the absolute stream offset of the next unconsumed byte.
func (s *Stream) Pos() int { return s.base + s.used }

// Buffered reports how many unconsumed bytes are currently held.
func (s *Stream) Buffered() int { return len(s.buf) - s.used }

// compact drops the prefix consumed by completed parses. Called only between
// parses: positions saved for backtracking during an in-flight parse must
// stay reachable. The tail moves into a fresh buffer rather than shifting in
// place, since byte-slice values returned by earlier Run calls may still
// alias the old backing array.
func (s *Stream) compact() {
	if s.used == 0 {
		return
	}
	next := make([]byte, len(s.buf)-s.used)
	copy(next, s.buf[s.used:])
	s.buf = next
	s.base += s.used
	s.used = 0
}

// fill reads from the source until at least need more bytes are buffered or
// the source is exhausted. Only the end marker is absorbed; any other source
// error aborts the parse.
func (s *Stream) fill(need int) error {
	got := 0
	for got < need && !s.eof {
		if s.limit > 0 && len(s.buf) >= s.limit {
			return ErrLimit
		}
		if cap(s.buf)-len(s.buf) < s.readSize {
			s.grow()
		}
		space := cap(s.buf) - len(s.buf)
		if space > s.readSize {
			space = s.readSize
		}
		n, err := s.src.Read(s.buf[len(s.buf) : len(s.buf)+space])
		s.buf = s.buf[:len(s.buf)+n]
		got += n
		if err == io.EOF {
			s.eof = true
			break
		}
		if err != nil {
			return err
		}
	}
	log.Debugf("fill: need=%d got=%d buffered=%d eof=%v", need, got, s.Buffered(), s.eof)
	return nil
}

func (s *Stream) grow() {
	want := len(s.buf) + s.readSize
	if s.limit > 0 && want > s.limit {
		want = s.limit
	}
	if cap(s.buf) >= want {
		return
	}
	size := 2 * cap(s.buf)
	if size < want {
		size = want
	}
	next := make([]byte, len(s.buf), size)
	copy(next, s.buf)
	s.buf = next
}

// Run drives p over the stream. On suspension it reads at least the needed
// bytes before resuming the captured continuation; once the source is
// exhausted the suspended step is resumed exactly once with the final flag
// set, and a suspension surviving that is reported as an unexpected end of
// input. On success the consumed bytes are released and the remainder stays
// buffered for the next Run.
func Run[T any](s *Stream, p parse.Parser[T]) (T, error) {
	var zero T
	s.compact()
	if len(s.buf) == 0 && !s.eof {
		if err := s.fill(1); err != nil {
			return zero, err
		}
	}
	r := p(parse.NewInput(s.buf[s.used:], s.base+s.used, s.eof))
	for r.Suspended() {
		if s.eof {
			return zero, &parse.ParseError{
				Position: r.Pos(),
				Kind:     parse.UnexpectedEOF,
				Message:  "unexpected end of input",
			}
		}
		if err := s.fill(r.Need()); err != nil {
			return zero, err
		}
		r = r.Resume(s.buf[s.used:], s.base+s.used, s.eof)
	}
	if err := r.Err(); err != nil {
		return zero, err.Flatten()
	}
	s.used = r.Pos() - s.base
	return r.Value(), nil
}

// ReadAll is a convenience that drives p over src with a fresh Stream.
func ReadAll[T any](p parse.Parser[T], src io.Reader) (T, error) {
	return Run(New(src), p)
}
