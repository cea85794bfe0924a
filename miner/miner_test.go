package miner

import (
	"testing"

	"github.com/spongedata/goextractor/occurrence"
	"github.com/spongedata/goextractor/stream"
	"github.com/spongedata/goextractor/unicode"
)

func literalMatcher(lit string) MatcherFunc {
	b := []byte(lit)
	return func(m *Base) *occurrence.Occurrence {
		if !m.MarkStart() {
			return nil
		}
		if !m.MatchString(b, Right) {
			return nil
		}
		if !m.MarkEnd() {
			return nil
		}
		return m.MakeOccurrence(1.0)
	}
}

func TestBase_MatchLiteral(t *testing.T) {
	s := stream.OpenBuffer([]byte("abcabc"))
	b := NewBase("lit", nil, literalMatcher("abc"))
	b.SetStream(s)

	o := b.Run()
	if o == nil {
		t.Fatal("expected match")
	}
	if o.Pos != 0 || o.Len != 3 {
		t.Fatalf("got pos=%d len=%d", o.Pos, o.Len)
	}
}

func TestBase_NonOverlap(t *testing.T) {
	// Running the same literal miner repeatedly over "abcabcabc" must
	// never yield overlapping spans from the same miner.
	s := stream.OpenBuffer([]byte("abcabcabc"))
	b := NewBase("lit", nil, literalMatcher("abc"))
	b.SetStream(s)

	var last *occurrence.Occurrence
	for i := 0; i < 3; i++ {
		o := b.Run()
		if o == nil {
			t.Fatalf("iteration %d: expected match", i)
		}
		if last != nil && o.Pos < last.End() {
			t.Fatalf("occurrence %d overlaps previous: pos=%d, prev end=%d", i, o.Pos, last.End())
		}
		last = o
		s.Move(1)
	}
}

func TestBase_MatchFnPlusStar(t *testing.T) {
	s := stream.OpenBuffer([]byte("123abc"))
	b := NewBase("digits", nil, nil)
	b.SetStream(s)

	if !b.MatchFnPlus(unicode.IsDigit, Right) {
		t.Fatal("expected plus-match over digits")
	}
	if s.Pos() != 3 {
		t.Fatalf("pos after plus = %d, want 3", s.Pos())
	}
	if !b.MatchFnStar(unicode.IsDigit, Right) {
		t.Fatal("star must succeed with zero matches")
	}
	if s.Pos() != 3 {
		t.Fatalf("star with no digits must not move cursor, pos=%d", s.Pos())
	}
}

func TestBase_MatchFnTimesAtomic(t *testing.T) {
	s := stream.OpenBuffer([]byte("12a"))
	b := NewBase("times", nil, nil)
	b.SetStream(s)

	if b.MatchFnTimes(unicode.IsDigit, Right, 3) {
		t.Fatal("expected failure: only 2 digits available")
	}
	if s.Pos() != 0 {
		t.Fatalf("failed match_fn_times must roll back, pos=%d", s.Pos())
	}
}
