package miner

import (
	"testing"

	"github.com/spongedata/goextractor/stream"
)

func TestWordSet_ExactMatch(t *testing.T) {
	b, err := NewWordSet("Fruit", []string{"apple", "pear", "banana"})
	if err != nil {
		t.Fatal(err)
	}
	s := stream.OpenBuffer([]byte("apple pie"))
	b.SetStream(s)

	o := b.Run()
	if o == nil {
		t.Fatal("expected match")
	}
	if string(o.Str) != "apple" {
		t.Fatalf("got %q", o.Str)
	}
}

func TestWordSet_RejectsPartialOverlap(t *testing.T) {
	b, err := NewWordSet("Fruit", []string{"apple"})
	if err != nil {
		t.Fatal(err)
	}
	s := stream.OpenBuffer([]byte("applesauce"))
	b.SetStream(s)

	if o := b.Run(); o != nil {
		t.Fatalf("expected no match, a token must equal a dictionary entry exactly, got %+v", o)
	}
}

func TestWordSet_SkipsNonMatchingTokens(t *testing.T) {
	b, err := NewWordSet("Fruit", []string{"banana"})
	if err != nil {
		t.Fatal(err)
	}
	s := stream.OpenBuffer([]byte("apple banana"))
	b.SetStream(s)

	o := b.Run()
	if o != nil {
		t.Fatalf("expected first token 'apple' to not match, got %+v", o)
	}

	o = b.Run()
	if o == nil || string(o.Str) != "banana" {
		t.Fatalf("expected 'banana' on second run, got %+v", o)
	}
}
