package miner

import (
	"github.com/spongedata/goextractor/occurrence"
	"github.com/spongedata/goextractor/unicode"
)

// Index is the lookup a PATRICIA-backed miner searches against. A
// *patricia.Trie satisfies it: Search walks str against the trie from
// the root and returns how many leading bytes of str matched a known
// edge path, even when the walk falls short of a terminal node.
type Index interface {
	Search(str []byte) uint32
}

// indexedParams bundles the threshold configuration an indexed miner
// closes over; it is unexported because NewIndexed is the only
// constructor.
type indexedParams struct {
	index     Index
	threshold float32
}

// NewIndexed builds a miner that tokenizes the stream on delimiter
// boundaries and accepts a token when at least threshold (e.g. 0.75)
// of its bytes match a path in index. threshold <= 0 uses the default
// of 0.75, matching the ratio a named-entity lookup requires.
func NewIndexed(name string, index Index, threshold float32) *Base {
	if threshold <= 0 {
		threshold = 0.75
	}
	return NewBase(name, &indexedParams{index: index, threshold: threshold}, matchIndexedImpl)
}

func matchIndexedImpl(m *Base) *occurrence.Occurrence {
	p, _ := m.Params.(*indexedParams)
	if p == nil || p.index == nil {
		return nil
	}

	if !(m.MatchDelimiter(Right) || !m.CanMove(Left)) {
		return nil
	}
	if !m.MarkStart() {
		return nil
	}
	if !m.MatchFnPlus(unicode.Not(unicode.IsSpace), Right) {
		return nil
	}
	if !(m.MatchDelimiter(Stay) || !m.CanMove(Right)) {
		return nil
	}
	if !m.MarkEnd() {
		return nil
	}

	token := m.MarkedSpan()
	if len(token) == 0 {
		return nil
	}

	matched := p.index.Search(token)
	if float32(matched)/float32(len(token)) < p.threshold {
		return nil
	}
	return m.MakeOccurrence(1.0)
}
