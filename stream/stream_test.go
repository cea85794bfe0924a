package stream

import "testing"

func TestBufferCursor_RoundTrip(t *testing.T) {
	c := OpenBuffer([]byte("hello"))

	if !c.AtBOF() {
		t.Fatal("expected BOF at construction")
	}

	c.NextChar()
	c.PrevChar()

	if c.Pos() != 0 {
		t.Fatalf("pos = %d, want 0", c.Pos())
	}
	if !c.AtBOF() {
		t.Fatal("expected BOF after next/prev round trip")
	}
}

func TestBufferCursor_EOFRoundTrip(t *testing.T) {
	c := OpenBuffer([]byte("hi"))
	c.Move(2)
	if !c.AtEOF() {
		t.Fatal("expected EOF at end")
	}

	c.PrevChar()
	c.NextChar()
	if !c.AtEOF() {
		t.Fatal("expected EOF restored after prev/next round trip")
	}
}

func TestCursor_MoveSymmetric(t *testing.T) {
	c := OpenBuffer([]byte("abcdefgh"))
	c.Move(4)
	pos := c.Pos()
	off := c.CodepointOffset()

	moved := c.Move(-3)
	if moved != -3 {
		t.Fatalf("Move(-3) returned %d", moved)
	}

	back := c.Move(3)
	if back != 3 {
		t.Fatalf("Move(3) returned %d", back)
	}
	if c.Pos() != pos || c.CodepointOffset() != off {
		t.Fatalf("round trip mismatch: pos=%d want %d, off=%d want %d", c.Pos(), pos, c.CodepointOffset(), off)
	}
}

func TestCursor_MoveClampsAtBounds(t *testing.T) {
	c := OpenBuffer([]byte("ab"))
	moved := c.Move(10)
	if moved != 2 {
		t.Fatalf("Move(10) over 2-char buffer = %d, want 2", moved)
	}
	if !c.AtEOF() {
		t.Fatal("expected EOF after over-running move")
	}

	moved = c.Move(-10)
	if moved != -2 {
		t.Fatalf("Move(-10) = %d, want -2", moved)
	}
	if !c.AtBOF() {
		t.Fatal("expected BOF after over-running reverse move")
	}
}

func TestCursor_MultibyteNavigation(t *testing.T) {
	// "héllo" - é is 2 bytes
	c := OpenBuffer([]byte("h\xc3\xa9llo"))
	c.NextChar() // past 'h'
	start := c.NextChar()
	if c.Pos()-start != 2 {
		t.Fatalf("expected 2-byte advance over é, got %d", c.Pos()-start)
	}
	c.PrevChar()
	if c.Pos() != start {
		t.Fatalf("prev_char over continuation byte landed at %d, want %d", c.Pos(), start)
	}
}

func TestCursor_Sync(t *testing.T) {
	a := OpenBuffer([]byte("abcdef"))
	b := OpenBuffer([]byte("abcdef"))
	a.Move(3)

	b.Sync(&a.Cursor)
	if b.Pos() != a.Pos() || b.CodepointOffset() != a.CodepointOffset() {
		t.Fatal("sync did not copy position")
	}
}

func TestCursor_MarkReset(t *testing.T) {
	c := OpenBuffer([]byte("abcdef"))
	c.Move(2)
	m := c.Mark()
	c.Move(3)
	c.Reset(m)
	if c.Pos() != m.Pos {
		t.Fatalf("reset pos = %d, want %d", c.Pos(), m.Pos)
	}
}
