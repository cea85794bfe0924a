package miner

import (
	"bytes"
	"testing"

	"github.com/spongedata/goextractor/stream"
)

// fakeIndex reports a match count equal to how many leading bytes of
// str match one of its known entries, mimicking a PATRICIA walk's
// partial-match behavior without depending on the patricia package.
type fakeIndex struct {
	entries [][]byte
}

func (f *fakeIndex) Search(str []byte) uint32 {
	var best int
	for _, e := range f.entries {
		n := 0
		for n < len(e) && n < len(str) && e[n] == str[n] {
			n++
		}
		if n > best {
			best = n
		}
	}
	return uint32(best)
}

func TestIndexed_AcceptsAboveThreshold(t *testing.T) {
	idx := &fakeIndex{entries: [][]byte{[]byte("london")}}
	b := NewIndexed("City", idx, 0.75)

	s := stream.OpenBuffer([]byte("london bridge"))
	b.SetStream(s)

	o := b.Run()
	if o == nil {
		t.Fatal("expected match")
	}
	if !bytes.Equal(o.Str, []byte("london")) {
		t.Fatalf("got %q", o.Str)
	}
}

func TestIndexed_RejectsBelowThreshold(t *testing.T) {
	idx := &fakeIndex{entries: [][]byte{[]byte("lo")}}
	b := NewIndexed("City", idx, 0.75)

	s := stream.OpenBuffer([]byte("london bridge"))
	b.SetStream(s)

	if o := b.Run(); o != nil {
		t.Fatalf("expected no match below threshold, got %+v", o)
	}
}

func TestIndexed_DefaultThreshold(t *testing.T) {
	idx := &fakeIndex{}
	b := NewIndexed("Empty", idx, 0)
	if b.Params.(*indexedParams).threshold != 0.75 {
		t.Fatalf("expected default threshold 0.75, got %v", b.Params.(*indexedParams).threshold)
	}
}
