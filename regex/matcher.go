package regex

import (
	"github.com/spongedata/goextractor/automaton"
	"github.com/spongedata/goextractor/miner"
	"github.com/spongedata/goextractor/occurrence"
	"github.com/spongedata/goextractor/stream"
	"github.com/spongedata/goextractor/unicode"
)

// match is compiled's miner.MatcherFunc: dispatches to the
// Aho-Corasick fast path for a pure literal alternation, or drives the
// DFA otherwise.
func (c *compiled) match(m *miner.Base) *occurrence.Occurrence {
	if c.litset != nil {
		return c.matchLitset(m)
	}
	return c.matchDFA(m)
}

func (c *compiled) matchLitset(m *miner.Base) *occurrence.Occurrence {
	n := c.litset.findAt(m.Stream().Remaining())
	if n < 0 {
		return c.noMatch(m)
	}
	if !m.MarkStart() {
		return nil
	}
	for consumed := 0; consumed < n; {
		if !m.CanMove(miner.Right) {
			return nil
		}
		size := unicode.ByteSize(m.GetNext()[0])
		m.Move(miner.Right)
		consumed += size
	}
	if !m.MarkEnd() {
		return nil
	}
	return m.MakeOccurrence(1.0)
}

// matchDFA drives the DFA forward from the cursor's current position,
// tracking the rightmost final state reached (greedy/longest match)
// and rolling back to it once no further transition is possible. A
// pattern anchored with '^'/'$' only accepts a match that starts/ends
// at a line boundary. On failure — whether the very first transition
// dies or the walk dies after consuming several codepoints without
// ever reaching an acceptable final state — the cursor is always
// restored to the position it started at before being forced one
// codepoint forward, so a failed attempt never leaves residue past
// its own start position for the orchestrator's skip logic to trust.
func (c *compiled) matchDFA(m *miner.Base) *occurrence.Occurrence {
	if c.anchoredStart && !atLineBegin(m) {
		return c.noMatch(m)
	}
	if !m.MarkStart() {
		return nil
	}
	startMark := m.MarkPos()

	cur := c.entry
	haveFinal := false
	var finalMark stream.Mark

	if c.dfa.Node(cur).Final && (!c.anchoredEnd || atLineEnd(m)) {
		haveFinal = true
		finalMark = m.MarkPos()
	}

	for m.CanMove(miner.Right) {
		r, _ := unicode.Decode(m.GetNext())
		to, ok := stepDFA(c.dfa, cur, r)
		if !ok {
			break
		}
		m.Move(miner.Right)
		cur = to
		if c.dfa.Node(cur).Final && (!c.anchoredEnd || atLineEnd(m)) {
			haveFinal = true
			finalMark = m.MarkPos()
		}
	}

	if !haveFinal {
		m.ResetPos(startMark)
		if m.CanMove(miner.Right) {
			m.Move(miner.Right)
		}
		return nil
	}
	m.ResetPos(finalMark)
	if !m.MarkEnd() {
		return nil
	}
	return m.MakeOccurrence(1.0)
}

// noMatch enforces forward progress when the current position is
// rejected outright, before any mark is even taken: an anchor fails
// here, or no literal alternative starts here.
func (c *compiled) noMatch(m *miner.Base) *occurrence.Occurrence {
	if m.CanMove(miner.Right) {
		m.Move(miner.Right)
	}
	return nil
}

// stepDFA returns the state reached from cur on rune r, using the
// first outgoing edge whose symbol matches — DFA edges are grouped by
// Key equality, not guaranteed disjoint predicate ranges, so an
// overlapping character class and literal on the same state resolve
// by edge order rather than by a most-specific-wins rule.
func stepDFA(dfa *automaton.FA, cur automaton.StateID, r rune) (automaton.StateID, bool) {
	for _, e := range dfa.Node(cur).Edges {
		if e.Sym != nil && e.Sym.Match(r) {
			return e.To, true
		}
	}
	return 0, false
}

// atLineBegin reports whether the cursor sits at the start of the
// stream or immediately after a '\n'.
func atLineBegin(m *miner.Base) bool {
	s := m.Stream()
	pos := s.Pos()
	if pos == 0 {
		return true
	}
	return s.Bytes()[pos-1] == '\n'
}

// atLineEnd reports whether the cursor sits at the end of the stream
// or immediately before a '\n'.
func atLineEnd(m *miner.Base) bool {
	s := m.Stream()
	pos := s.Pos()
	data := s.Bytes()
	if pos >= len(data) {
		return true
	}
	return data[pos] == '\n'
}
