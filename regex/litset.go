package regex

import "github.com/coregx/ahocorasick"

// literalAlternatives reports whether n is a pure alternation of plain
// literal strings (or a single literal), the shape that makes the
// whole DFA unnecessary: "(foo|bar|baz)" can be recognized directly by
// an Aho-Corasick automaton, the same "literal engine bypass" the
// meta-engine's Teddy strategy applies for exact literal alternations.
// A pattern with an anchor never qualifies (an anchor node is not a
// literal), so this fast path applies no anchors; character classes,
// closures and groups containing anything but literals disqualify it.
func literalAlternatives(n *node) ([]string, bool) {
	switch n.kind {
	case opIdentity:
		if n.class != "" {
			return nil, false
		}
		return []string{string(n.r)}, true
	case opConcat:
		lit := ""
		for _, c := range n.children {
			if c.kind != opIdentity || c.class != "" {
				return nil, false
			}
			lit += string(c.r)
		}
		return []string{lit}, true
	case opAlternation:
		var out []string
		for _, c := range n.children {
			lits, ok := literalAlternatives(c)
			if !ok {
				return nil, false
			}
			out = append(out, lits...)
		}
		return out, true
	default:
		return nil, false
	}
}

// litsetMatcher drives an Aho-Corasick automaton instead of a DFA: it
// looks for the earliest, longest alternative starting exactly at the
// current cursor position.
type litsetMatcher struct {
	auto *ahocorasick.Automaton
}

func buildLitsetMatcher(literals []string) (*litsetMatcher, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &litsetMatcher{auto: auto}, nil
}

// findAt returns the length in bytes of the alternative the automaton
// reports starting at byte offset 0 of window, or -1 if none does.
func (lm *litsetMatcher) findAt(window []byte) int {
	match := lm.auto.Find(window, 0)
	if match == nil || match.Start != 0 {
		return -1
	}
	return match.End - match.Start
}
