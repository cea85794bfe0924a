package patricia

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestInsertThenSearch(t *testing.T) {
	tr := New()
	tr.Insert([]byte("hello"))

	if got := tr.Search([]byte("hello")); got != 5 {
		t.Fatalf("search = %d, want 5", got)
	}
	if got := tr.Search([]byte("help")); got != 3 {
		t.Fatalf("prefix search = %d, want 3", got)
	}
	if got := tr.Search([]byte("xyz")); got != 0 {
		t.Fatalf("no-match search = %d, want 0", got)
	}
}

func TestPrefixLaw(t *testing.T) {
	// Searching for any prefix of an inserted string must return a
	// match length equal to the prefix's own length.
	tr := New()
	tr.Insert([]byte("extraction"))

	for n := 1; n <= len("extraction"); n++ {
		prefix := "extraction"[:n]
		if got := tr.Search([]byte(prefix)); int(got) != n {
			t.Fatalf("Search(%q) = %d, want %d", prefix, got, n)
		}
	}
}

func TestEdgeOrdering(t *testing.T) {
	tr := New()
	for _, w := range []string{"banana", "apple", "cherry", "date"} {
		tr.Insert([]byte(w))
	}

	var lastFirstByte byte
	first := true
	for _, e := range tr.mem.edges {
		b := e.str[0]
		if !first && b < lastFirstByte {
			t.Fatalf("edges not sorted: %q appears after a larger label", e.str)
		}
		lastFirstByte = b
		first = false
	}
}

func TestMultiCharacterEdges(t *testing.T) {
	// Regression fixture: a bug here only checked an edge's first byte
	// and accepted the rest blindly, which could report a match for a
	// string that was never inserted.
	words := []string{
		"aaaa", "aaab", "aaac", "aaad", "aaae",
		"aaafaa", "aaafab", "aaafac", "aaafad", "aaafae", "aaafaf", "aaafag", "aaafah",
		"aaag", "aab", "aba", "abb",
	}
	tr := New()
	for _, w := range words {
		tr.Insert([]byte(w))
	}

	for _, w := range words {
		if got := tr.Search([]byte(w)); int(got) != len(w) {
			t.Errorf("Search(%q) = %d, want %d", w, got, len(w))
		}
	}

	// "aaafb" shares the "aaaf" edge prefix with the aaafXX family but
	// diverges at the 5th byte; the match must stop there, not at 5.
	if got := tr.Search([]byte("aaafb")); got != 4 {
		t.Fatalf(`Search("aaafb") = %d, want 4`, got)
	}
}

func TestSetGet(t *testing.T) {
	tr := New()
	tr.Set([]byte("paris"), []byte("capital of France"))
	tr.Set([]byte("prague"), []byte("capital of Czechia"))

	if got := tr.Get([]byte("paris")); string(got) != "capital of France" {
		t.Fatalf("got %q", got)
	}
	if got := tr.Get([]byte("par")); got != nil {
		t.Fatalf("expected nil for a non-terminal prefix, got %q", got)
	}
	if got := tr.Get([]byte("prague")); string(got) != "capital of Czechia" {
		t.Fatalf("got %q", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tr := New()
	words := []string{"alpha", "alpine", "beta", "gamma", "gammaray"}
	for _, w := range words {
		tr.Set([]byte(w), []byte(w+"-data"))
	}

	var buf bytes.Buffer
	if _, err := tr.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(buf.Bytes())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, w := range words {
		if got := loaded.Search([]byte(w)); int(got) != len(w) {
			t.Errorf("loaded Search(%q) = %d, want %d", w, got, len(w))
		}
		if got := loaded.Get([]byte(w)); string(got) != w+"-data" {
			t.Errorf("loaded Get(%q) = %q, want %q", w, got, w+"-data")
		}
	}
	if got := loaded.Search([]byte("zzz")); got != 0 {
		t.Fatalf("loaded Search(zzz) = %d, want 0", got)
	}
}

func TestRandomFill(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	const n = 10000
	words := make([]string, 0, n)
	seen := make(map[string]bool, n)

	tr := New()
	for len(words) < n {
		l := 1 + r.Intn(16)
		b := make([]byte, l)
		for i := range b {
			b[i] = byte('a' + r.Intn(26))
		}
		w := string(b)
		if seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
		tr.Insert([]byte(w))

		if got := tr.Search([]byte(w)); int(got) != len(w) {
			t.Fatalf("Search(%q) right after insert = %d, want %d", w, got, len(w))
		}
	}

	for _, w := range words {
		if got := tr.Search([]byte(w)); int(got) != len(w) {
			t.Errorf("Search(%q) = %d, want %d", w, got, len(w))
		}
	}
}
