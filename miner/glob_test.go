package miner

import (
	"testing"

	"github.com/spongedata/goextractor/stream"
)

func TestGlob_InvalidPattern(t *testing.T) {
	if _, err := NewGlob("[abc"); err == nil {
		t.Fatal("expected error for unbalanced bracket")
	}
}

func TestGlob_Literal(t *testing.T) {
	b, err := NewGlob("foo")
	if err != nil {
		t.Fatal(err)
	}
	s := stream.OpenBuffer([]byte("foo bar"))
	b.SetStream(s)

	o := b.Run()
	if o == nil {
		t.Fatal("expected match")
	}
	if o.Pos != 0 || o.Len != 3 {
		t.Fatalf("got pos=%d len=%d", o.Pos, o.Len)
	}
}

func TestGlob_LiteralMustMatchWholeToken(t *testing.T) {
	b, err := NewGlob("foo")
	if err != nil {
		t.Fatal(err)
	}
	s := stream.OpenBuffer([]byte("foobar"))
	b.SetStream(s)

	if o := b.Run(); o != nil {
		t.Fatalf("expected no match against partial token, got %+v", o)
	}
}

func TestGlob_StarWildcard(t *testing.T) {
	b, err := NewGlob("f*o")
	if err != nil {
		t.Fatal(err)
	}
	s := stream.OpenBuffer([]byte("fooo bar"))
	b.SetStream(s)

	o := b.Run()
	if o == nil {
		t.Fatal("expected match")
	}
	if string(o.Str) != "fooo" {
		t.Fatalf("got %q", o.Str)
	}
}

func TestGlob_QuestionMark(t *testing.T) {
	b, err := NewGlob("h?llo")
	if err != nil {
		t.Fatal(err)
	}
	s := stream.OpenBuffer([]byte("hello world"))
	b.SetStream(s)

	o := b.Run()
	if o == nil {
		t.Fatal("expected match")
	}
	if string(o.Str) != "hello" {
		t.Fatalf("got %q", o.Str)
	}
}

func TestGlob_CharacterClass(t *testing.T) {
	b, err := NewGlob("[bc]at")
	if err != nil {
		t.Fatal(err)
	}
	s := stream.OpenBuffer([]byte("cat bat dat"))
	b.SetStream(s)

	o := b.Run()
	if o == nil || string(o.Str) != "cat" {
		t.Fatalf("expected 'cat', got %+v", o)
	}

	o = b.Run()
	if o == nil || string(o.Str) != "bat" {
		t.Fatalf("expected 'bat', got %+v", o)
	}

	o = b.Run()
	if o != nil {
		t.Fatalf("expected 'dat' to not match [bc]at, got %+v", o)
	}
}

func TestGlob_Range(t *testing.T) {
	b, err := NewGlob("[a-c]at")
	if err != nil {
		t.Fatal(err)
	}
	s := stream.OpenBuffer([]byte("cat"))
	b.SetStream(s)

	o := b.Run()
	if o == nil || string(o.Str) != "cat" {
		t.Fatalf("expected 'cat', got %+v", o)
	}
}

func TestGlob_CaseInsensitive(t *testing.T) {
	b, err := NewGlob("foo")
	if err != nil {
		t.Fatal(err)
	}
	s := stream.OpenBuffer([]byte("FOO"))
	b.SetStream(s)

	o := b.Run()
	if o == nil || string(o.Str) != "FOO" {
		t.Fatalf("expected case-insensitive match, got %+v", o)
	}
}
