// Package csvbatch implements a minimal RFC 4180 value miner plus a
// length-prefixed batch encoding. It exists only to bootstrap a
// PATRICIA trie (or any dictionary) from a delimited word-list file —
// not a general-purpose CSV library.
package csvbatch

import (
	"github.com/spongedata/goextractor/miner"
	"github.com/spongedata/goextractor/occurrence"
	"github.com/spongedata/goextractor/unicode"
)

// Miner recognizes one RFC 4180 value per Run call: either a
// quote-wrapped field (doubled quotes are the escape for a literal
// quote) or a bare field terminated by the quote character, the
// delimiter, or a line ending. AllowEmpty is set so a field that is
// the empty string between two delimiters is still a valid match.
type Miner struct {
	*miner.Base
	delimiter byte
	quote     byte

	// WasDelimiter/WasNewline/WasEOF record what terminated the last
	// value recognized, mirroring the reference parser's per-call state
	// so ParseBatch can tell a trailing empty field from end of input.
	WasDelimiter bool
	WasNewline   bool
	WasEOF       bool
}

// NewMiner builds a value miner using delimiter and quote as the field
// separator and quoting character (',' and '"' for standard RFC 4180).
func NewMiner(delimiter, quote byte) *Miner {
	cm := &Miner{delimiter: delimiter, quote: quote}
	cm.Base = miner.NewBase("CSV", nil, cm.match)
	cm.Base.AllowEmpty = true
	return cm
}

func (cm *Miner) match(m *miner.Base) *occurrence.Occurrence {
	quote := []byte{cm.quote}
	delim := []byte{cm.delimiter}
	doubleQuote := []byte{cm.quote, cm.quote}

	if m.Match(quote, miner.Right) {
		if !m.MarkStart() {
			return nil
		}
		for m.CanMove(miner.Right) {
			if m.MatchString(doubleQuote, miner.Right) {
				continue
			}
			if unicode.Equal(m.GetNext(), quote) {
				break
			}
			m.Move(miner.Right)
		}
		if !m.MarkEnd() {
			return nil
		}
		if !m.Match(quote, miner.Right) {
			return nil
		}
	} else {
		if !m.MarkStart() {
			return nil
		}
		for m.CanMove(miner.Right) {
			next := m.GetNext()
			if unicode.Equal(next, quote) || unicode.Equal(next, delim) ||
				unicode.Equal(next, []byte("\n")) || unicode.Equal(next, []byte("\r")) {
				break
			}
			m.Move(miner.Right)
		}
		if !m.MarkEnd() {
			return nil
		}
	}

	if m.Match(delim, miner.Right) {
		cm.WasNewline, cm.WasDelimiter, cm.WasEOF = false, true, false
		return m.MakeOccurrence(1.0)
	}
	if m.MatchString([]byte("\r\n"), miner.Right) || m.Match([]byte("\n"), miner.Right) || m.Match([]byte("\r"), miner.Right) {
		cm.WasNewline, cm.WasDelimiter, cm.WasEOF = true, false, false
		return m.MakeOccurrence(1.0)
	}
	if !m.CanMove(miner.Right) {
		cm.WasNewline, cm.WasDelimiter, cm.WasEOF = false, false, true
		return m.MakeOccurrence(1.0)
	}

	return nil
}
