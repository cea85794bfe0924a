package miner

import (
	"fmt"

	"github.com/coregx/ahocorasick"

	"github.com/spongedata/goextractor/occurrence"
	"github.com/spongedata/goextractor/unicode"
)

// NewWordSet builds a miner that accepts delimiter-bounded tokens
// present verbatim in words. It is the dictionary-membership
// counterpart to NewIndexed's fuzzy PATRICIA lookup: where NewIndexed
// accepts a token that mostly matches a known path, NewWordSet accepts
// only a token that exactly equals one of the dictionary entries,
// tested in O(token length) against the whole dictionary at once via
// an Aho-Corasick automaton rather than one comparison per word.
func NewWordSet(name string, words []string) (*Base, error) {
	builder := ahocorasick.NewBuilder()
	for _, w := range words {
		builder.AddPattern([]byte(w))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("miner: building word-set automaton for %q: %w", name, err)
	}
	return NewBase(name, auto, matchWordSetImpl), nil
}

func matchWordSetImpl(m *Base) *occurrence.Occurrence {
	auto, _ := m.Params.(*ahocorasick.Automaton)
	if auto == nil {
		return nil
	}

	for m.CanMove(Right) && m.MatchDelimiter(Right) {
	}
	if !m.MarkStart() {
		return nil
	}
	if !m.MatchFnPlus(unicode.Not(unicode.IsDelimiter), Right) {
		return nil
	}
	if !m.MarkEnd() {
		return nil
	}

	token := m.MarkedSpan()
	if len(token) == 0 {
		return nil
	}

	match := auto.Find(token, 0)
	if match == nil || match.Start != 0 || match.End != len(token) {
		return nil
	}
	return m.MakeOccurrence(1.0)
}
