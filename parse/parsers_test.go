package parse

import (
	"bytes"
	"testing"
)

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
func isAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

func TestRet(t *testing.T) {
	r := Ret(42)(NewInput([]byte("abc"), 0, true))
	if !r.IsDone() {
		t.Fatalf("Ret not done: %+v", r)
	}
	if r.Value() != 42 {
		t.Errorf("Value() = %d, want 42", r.Value())
	}
	if r.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", r.Pos())
	}
}

func TestFail(t *testing.T) {
	r := Fail[int]("doom")(NewInput([]byte("abc"), 0, true))
	err := r.Err()
	if err == nil {
		t.Fatal("Fail produced no error")
	}
	if err.Kind != Semantic {
		t.Errorf("Kind = %v, want %v", err.Kind, Semantic)
	}
	if err.Pos != 0 {
		t.Errorf("Pos = %d, want 0", err.Pos)
	}
	if r.Pos() != 0 {
		t.Errorf("carrier Pos() = %d, want 0 (no consumption)", r.Pos())
	}
}

func TestSatisfy(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		r := Satisfy(isDigit)(NewInput([]byte("1abc"), 0, true))
		if !r.IsDone() || r.Value() != '1' || r.Pos() != 1 {
			t.Errorf("got done=%v value=%q pos=%d, want done '1' 1", r.IsDone(), r.val, r.Pos())
		}
	})

	t.Run("mismatch does not consume", func(t *testing.T) {
		r := Satisfy(isDigit)(NewInput([]byte("abc"), 0, true))
		if r.Err() == nil {
			t.Fatal("want failure")
		}
		if r.Err().Kind != TokenMismatch {
			t.Errorf("Kind = %v, want %v", r.Err().Kind, TokenMismatch)
		}
		if r.Pos() != 0 {
			t.Errorf("Pos() = %d, want 0", r.Pos())
		}
	})

	t.Run("empty non-final suspends", func(t *testing.T) {
		r := Satisfy(isDigit)(NewInput(nil, 0, false))
		if !r.Suspended() {
			t.Fatalf("want suspension, got %+v", r)
		}
		if r.Need() != 1 {
			t.Errorf("Need() = %d, want 1", r.Need())
		}
		r = r.Resume([]byte("7"), 0, true)
		if !r.IsDone() || r.Value() != '7' {
			t.Errorf("resumed: done=%v value=%q", r.IsDone(), r.val)
		}
	})

	t.Run("empty final fails with eof", func(t *testing.T) {
		r := Satisfy(isDigit)(NewInput(nil, 0, true))
		if r.Err() == nil || r.Err().Kind != UnexpectedEOF {
			t.Errorf("got %+v, want UnexpectedEOF", r)
		}
	})
}

func TestToken(t *testing.T) {
	r := Token('a')(NewInput([]byte("abc"), 0, true))
	if !r.IsDone() || r.Value() != 'a' || r.Pos() != 1 {
		t.Errorf("got done=%v value=%q pos=%d", r.IsDone(), r.val, r.Pos())
	}

	r = Token('b')(NewInput([]byte("abc"), 0, true))
	if r.Err() == nil || r.Pos() != 0 {
		t.Errorf("mismatch: err=%v pos=%d, want error at 0", r.Err(), r.Pos())
	}
}

func TestPeekByte(t *testing.T) {
	r := PeekByte(NewInput([]byte("xy"), 0, true))
	if !r.IsDone() || r.Value() != 'x' {
		t.Fatalf("got %+v, want done 'x'", r)
	}
	if r.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0 (peek must not consume)", r.Pos())
	}
}

func TestAtEnd(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		final bool
		want  bool
		susp  bool
	}{
		{"bytes remain", "a", true, false, false},
		{"empty final", "", true, true, false},
		{"empty non-final", "", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := AtEnd(NewInput([]byte(tt.data), 0, tt.final))
			if r.Suspended() != tt.susp {
				t.Fatalf("Suspended() = %v, want %v", r.Suspended(), tt.susp)
			}
			if !tt.susp && r.Value() != tt.want {
				t.Errorf("Value() = %v, want %v", r.Value(), tt.want)
			}
		})
	}

	t.Run("suspension resolves at end of stream", func(t *testing.T) {
		r := AtEnd(NewInput(nil, 0, false))
		r = r.Resume(nil, 0, true)
		if !r.IsDone() || r.Value() != true {
			t.Errorf("resumed: %+v, want done true", r)
		}
	})
}

func TestTakeWhile(t *testing.T) {
	t.Run("stops inside final window", func(t *testing.T) {
		r := TakeWhile(isDigit)(NewInput([]byte("123abc"), 0, true))
		if !r.IsDone() || !bytes.Equal(r.Value(), []byte("123")) || r.Pos() != 3 {
			t.Errorf("got done=%v value=%q pos=%d", r.IsDone(), r.val, r.Pos())
		}
	})

	t.Run("empty run", func(t *testing.T) {
		r := TakeWhile(isDigit)(NewInput([]byte("abc"), 0, true))
		if !r.IsDone() || len(r.Value()) != 0 || r.Pos() != 0 {
			t.Errorf("got done=%v value=%q pos=%d, want empty at 0", r.IsDone(), r.val, r.Pos())
		}
	})

	t.Run("run to non-final edge suspends", func(t *testing.T) {
		// more matching bytes may arrive, so the run must not be assumed
		// complete
		r := TakeWhile(isDigit)(NewInput([]byte("12"), 0, false))
		if !r.Suspended() {
			t.Fatalf("want suspension, got %+v", r)
		}
		if r.Pos() != 2 {
			t.Errorf("suspension Pos() = %d, want 2", r.Pos())
		}
		r = r.Resume([]byte("123abc"), 0, true)
		if !r.IsDone() || !bytes.Equal(r.Value(), []byte("123")) || r.Pos() != 3 {
			t.Errorf("resumed: done=%v value=%q pos=%d", r.IsDone(), r.val, r.Pos())
		}
	})
}

func TestTakeWhile1(t *testing.T) {
	r := TakeWhile1(isDigit)(NewInput([]byte("abc"), 0, true))
	if r.Err() == nil || r.Err().Kind != TokenMismatch || r.Pos() != 0 {
		t.Errorf("got %+v, want mismatch at 0 without consumption", r)
	}

	r = TakeWhile1(isDigit)(NewInput([]byte("42x"), 0, true))
	if !r.IsDone() || !bytes.Equal(r.Value(), []byte("42")) {
		t.Errorf("got done=%v value=%q", r.IsDone(), r.val)
	}
}

func TestTake(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		r := Take(3)(NewInput([]byte("abcd"), 0, true))
		if !r.IsDone() || !bytes.Equal(r.Value(), []byte("abc")) || r.Pos() != 3 {
			t.Errorf("got done=%v value=%q pos=%d", r.IsDone(), r.val, r.Pos())
		}
	})

	t.Run("short non-final suspends with missing count", func(t *testing.T) {
		r := Take(5)(NewInput([]byte("ab"), 0, false))
		if !r.Suspended() {
			t.Fatalf("want suspension, got %+v", r)
		}
		if r.Need() != 3 {
			t.Errorf("Need() = %d, want 3", r.Need())
		}
		r = r.Resume([]byte("abcdef"), 0, true)
		if !r.IsDone() || !bytes.Equal(r.Value(), []byte("abcde")) || r.Pos() != 5 {
			t.Errorf("resumed: done=%v value=%q pos=%d", r.IsDone(), r.val, r.Pos())
		}
	})

	t.Run("short final fails at the attempt start", func(t *testing.T) {
		r := Take(5)(NewInput([]byte("ab"), 0, true))
		err := r.Err()
		if err == nil || err.Kind != UnexpectedEOF {
			t.Fatalf("got %+v, want UnexpectedEOF", r)
		}
		if err.Pos != 0 {
			t.Errorf("error Pos = %d, want 0", err.Pos)
		}
	})

	t.Run("end of stream after resume fails at the attempt start", func(t *testing.T) {
		r := Take(5)(NewInput([]byte("ab"), 0, false))
		if !r.Suspended() {
			t.Fatalf("want suspension, got %+v", r)
		}
		r = r.Resume([]byte("abc"), 0, true)
		err := r.Err()
		if err == nil || err.Kind != UnexpectedEOF {
			t.Fatalf("got %+v, want UnexpectedEOF", r)
		}
		if r.Pos() != 0 || err.Pos != 0 {
			t.Errorf("carrier pos = %d, error Pos = %d, want 0 as in the single-block case", r.Pos(), err.Pos)
		}
	})
}

func TestTakeTill(t *testing.T) {
	r := TakeTill(func(c byte) bool { return c == ';' })(NewInput([]byte("abc;d"), 0, true))
	if !r.IsDone() || !bytes.Equal(r.Value(), []byte("abc")) || r.Pos() != 3 {
		t.Errorf("got done=%v value=%q pos=%d", r.IsDone(), r.val, r.Pos())
	}

	r = TakeTill(func(c byte) bool { return c == ';' })(NewInput([]byte("abc"), 0, true))
	if r.Err() == nil || r.Err().Kind != UnexpectedEOF {
		t.Errorf("got %+v, want UnexpectedEOF", r)
	}
}

func TestString(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		r := String([]byte("foo"))(NewInput([]byte("foobar"), 0, true))
		if !r.IsDone() || !bytes.Equal(r.Value(), []byte("foo")) || r.Pos() != 3 {
			t.Errorf("got done=%v value=%q pos=%d", r.IsDone(), r.val, r.Pos())
		}
	})

	t.Run("mismatch does not consume", func(t *testing.T) {
		r := String([]byte("foo"))(NewInput([]byte("fob"), 0, true))
		if r.Err() == nil || r.Err().Kind != TokenMismatch {
			t.Fatalf("got %+v, want mismatch", r)
		}
		if r.Err().Pos != 0 {
			t.Errorf("error Pos = %d, want 0", r.Err().Pos)
		}
	})

	t.Run("partial match suspends with remaining length", func(t *testing.T) {
		r := String([]byte("aaa"))(NewInput([]byte("a"), 0, false))
		if !r.Suspended() || r.Need() != 2 {
			t.Fatalf("got suspended=%v need=%d, want suspension needing 2", r.Suspended(), r.Need())
		}
		r = r.Resume([]byte("aaa"), 0, true)
		if !r.IsDone() || r.Pos() != 3 {
			t.Errorf("resumed: done=%v pos=%d", r.IsDone(), r.Pos())
		}
	})

	t.Run("mismatch after resume does not consume", func(t *testing.T) {
		r := String([]byte("abc"))(NewInput([]byte("ab"), 0, false))
		if !r.Suspended() {
			t.Fatalf("want suspension, got %+v", r)
		}
		r = r.Resume([]byte("abx"), 0, true)
		if r.Err() == nil || r.Err().Kind != TokenMismatch {
			t.Fatalf("got %+v, want mismatch", r)
		}
		if r.Pos() != 0 || r.Err().Pos != 0 {
			t.Errorf("carrier pos = %d, error Pos = %d, want 0 as in the single-block case", r.Pos(), r.Err().Pos)
		}
	})

	t.Run("end of stream after resume does not consume", func(t *testing.T) {
		r := String([]byte("abc"))(NewInput([]byte("ab"), 0, false))
		if !r.Suspended() {
			t.Fatalf("want suspension, got %+v", r)
		}
		r = r.Resume([]byte("ab"), 0, true)
		if r.Err() == nil || r.Err().Kind != UnexpectedEOF {
			t.Fatalf("got %+v, want unexpected end of input", r)
		}
		if r.Pos() != 0 || r.Err().Pos != 0 {
			t.Errorf("carrier pos = %d, error Pos = %d, want 0", r.Pos(), r.Err().Pos)
		}
	})
}

func TestRemainder(t *testing.T) {
	r := Remainder(NewInput([]byte("tail"), 0, true))
	if !r.IsDone() || !bytes.Equal(r.Value(), []byte("tail")) || r.Pos() != 4 {
		t.Errorf("got done=%v value=%q pos=%d", r.IsDone(), r.val, r.Pos())
	}

	r = Remainder(NewInput([]byte("ta"), 0, false))
	if !r.Suspended() {
		t.Fatalf("want suspension, got %+v", r)
	}
	r = r.Resume([]byte("tail"), 0, true)
	if !r.IsDone() || !bytes.Equal(r.Value(), []byte("tail")) {
		t.Errorf("resumed: done=%v value=%q", r.IsDone(), r.val)
	}
}

func TestBindShortCircuits(t *testing.T) {
	p := Bind(Satisfy(isDigit), func(byte) Parser[byte] {
		return Satisfy(isAlpha)
	})

	r := p(NewInput([]byte("1a"), 0, true))
	if !r.IsDone() || r.Value() != 'a' || r.Pos() != 2 {
		t.Errorf("got done=%v value=%q pos=%d", r.IsDone(), r.val, r.Pos())
	}

	r = p(NewInput([]byte("ab"), 0, true))
	if r.Err() == nil || r.Pos() != 0 {
		t.Errorf("first step failure: err=%v pos=%d, want error at 0", r.Err(), r.Pos())
	}

	r = p(NewInput([]byte("12"), 0, true))
	if r.Err() == nil || r.Pos() != 1 {
		t.Errorf("second step failure: err=%v pos=%d, want error at 1", r.Err(), r.Pos())
	}
}

func TestBindAcrossSuspension(t *testing.T) {
	p := Bind(Take(2), func(first []byte) Parser[[]byte] {
		return Map(Take(2), func(second []byte) []byte {
			return append(append([]byte(nil), first...), second...)
		})
	})

	r := p(NewInput([]byte("ab"), 0, false))
	if !r.Suspended() {
		t.Fatalf("want suspension, got %+v", r)
	}
	r = r.Resume([]byte("abcd"), 0, true)
	if !r.IsDone() || !bytes.Equal(r.Value(), []byte("abcd")) || r.Pos() != 4 {
		t.Errorf("resumed: done=%v value=%q pos=%d", r.IsDone(), r.val, r.Pos())
	}
}
