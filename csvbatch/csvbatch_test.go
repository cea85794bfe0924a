package csvbatch

import (
	"bytes"
	"io"
	"testing"

	"github.com/spongedata/goextractor/stream"
)

func newMinerOn(text string) *Miner {
	m := NewMiner(',', '"')
	m.SetStream(stream.OpenBuffer([]byte(text)))
	return m
}

func TestParseBatch_SimpleRow(t *testing.T) {
	m := newMinerOn("a,b,c\n")
	b := ParseBatch(m, 0)
	if b == nil {
		t.Fatal("expected a non-nil batch")
	}

	var values []string
	r := NewReader(b.Bytes())
	for {
		v, newline, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if newline {
			continue
		}
		values = append(values, string(v))
	}

	want := []string{"a", "b", "c"}
	if len(values) != len(want) {
		t.Fatalf("got %v, want %v", values, want)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("got %v, want %v", values, want)
		}
	}
}

func TestParseBatch_QuotedFieldWithEscapedQuote(t *testing.T) {
	m := newMinerOn(`"say ""hi""",b` + "\n")
	b := ParseBatch(m, 0)
	if b == nil {
		t.Fatal("expected a non-nil batch")
	}

	r := NewReader(b.Bytes())
	v, newline, err := r.Next()
	if err != nil || newline {
		t.Fatalf("got v=%q newline=%v err=%v", v, newline, err)
	}
	want := `say ""hi""`
	if string(v) != want {
		t.Fatalf("got %q, want %q", v, want)
	}
}

func TestParseBatch_RowLimit(t *testing.T) {
	m := newMinerOn("a\nb\nc\n")
	b := ParseBatch(m, 2)
	if b == nil {
		t.Fatal("expected a non-nil batch")
	}

	var rows int
	r := NewReader(b.Bytes())
	for {
		_, newline, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if newline {
			rows++
		}
	}
	if rows != 2 {
		t.Fatalf("got %d rows, want 2", rows)
	}
}

func TestParseBatch_TrailingDelimiterImpliesEmptyField(t *testing.T) {
	m := newMinerOn("a,b,\n")
	b := ParseBatch(m, 0)
	if b == nil {
		t.Fatal("expected a non-nil batch")
	}

	var values []string
	r := NewReader(b.Bytes())
	for {
		v, newline, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		if newline {
			continue
		}
		values = append(values, string(v))
	}

	want := []string{"a", "b", ""}
	if len(values) != len(want) {
		t.Fatalf("got %v, want %v", values, want)
	}
}

func TestParseBatch_EmptyStreamYieldsNilBatch(t *testing.T) {
	m := newMinerOn("")
	if b := ParseBatch(m, 0); b != nil {
		t.Fatalf("expected nil batch for an empty stream, got %+v", b)
	}
}

func TestReader_CorruptStreamTruncatedPrefix(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if _, _, err := r.Next(); err != ErrCorrupt {
		t.Fatalf("got %v, want ErrCorrupt", err)
	}
}

func TestBatch_RoundTripsLongValue(t *testing.T) {
	long := bytes.Repeat([]byte("x"), 512)
	b := NewBatch()
	b.addValue(long)

	r := NewReader(b.Bytes())
	v, newline, err := r.Next()
	if err != nil || newline {
		t.Fatalf("got v=%v newline=%v err=%v", v, newline, err)
	}
	if !bytes.Equal(v, long) {
		t.Fatalf("round-tripped value does not match: got %d bytes, want %d", len(v), len(long))
	}
}
