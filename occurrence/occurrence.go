// Package occurrence defines the labelled span type miners emit and the
// ordering/containment relations the extractor applies to batches of them.
package occurrence

// Occurrence is a labelled, non-destructive span of the input stream.
//
// Invariant: 0 <= Pos <= Pos+Len <= size of the stream the span borrows
// Str from; the codepoint measurements (UPos, ULen) are consistent with
// the byte measurements.
type Occurrence struct {
	// Str borrows the matched bytes directly from the stream; it is only
	// valid for as long as the stream's backing region is.
	Str []byte
	// Pos is the byte offset from the stream start.
	Pos uint64
	// UPos is the codepoint offset from the stream start.
	UPos uint64
	// Len is the byte length of the span.
	Len uint32
	// ULen is the codepoint length of the span.
	ULen uint32
	// Label borrows the name of the miner that produced it.
	Label string
	// Prob is the match confidence in [0, 1].
	Prob float32
}

// End returns the exclusive byte end offset (Pos + Len).
func (o *Occurrence) End() uint64 { return o.Pos + uint64(o.Len) }

// Compare orders two occurrences by byte offset ascending, then byte
// length ascending — the ordering SORT_RESULTS guarantees.
func Compare(a, b *Occurrence) int {
	switch {
	case a.Pos < b.Pos:
		return -1
	case a.Pos > b.Pos:
		return 1
	case a.Len < b.Len:
		return -1
	case a.Len > b.Len:
		return 1
	default:
		return 0
	}
}

// Encloses reports whether b lies entirely within a's span and is not
// identical to it: a.Pos <= b.Pos && b.End() <= a.End() && (a.Pos,a.Len) !=
// (b.Pos,b.Len). Identical spans with different labels are never enclosed
// in each other by this definition — both survive the filter.
func Encloses(a, b *Occurrence) bool {
	if a.Pos == b.Pos && a.Len == b.Len {
		return false
	}
	return a.Pos <= b.Pos && b.End() <= a.End()
}
