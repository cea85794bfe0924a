// Package regex compiles the spongedata pattern language into a
// miner: a lex-tree/operator-tree front end, Thompson construction and
// subset determinization via the automaton package, and an interpreted
// DFA-driving matcher, with an Aho-Corasick fast path for pure literal
// alternations.
package regex

import (
	"fmt"

	"github.com/spongedata/goextractor/automaton"
	"github.com/spongedata/goextractor/miner"
)

// Config bounds how large a pattern is allowed to compile to, so a
// pathological pattern fails Compile instead of exhausting memory
// during subset construction.
type Config struct {
	// MaxNFAStates caps the Thompson-construction NFA's node count.
	// Zero means unbounded.
	MaxNFAStates int
	// MaxStates caps the determinized DFA's node count. Zero means
	// unbounded.
	MaxStates int
}

// DefaultConfig matches the ceiling the original generator used to
// keep a single regex's compiled C source within a sane size.
var DefaultConfig = Config{MaxNFAStates: 4096, MaxStates: 2048}

// compiled holds everything Run needs to drive one compiled pattern:
// either a DFA plus anchor flags, or a literal-alternation fast path.
type compiled struct {
	dfa           *automaton.FA
	entry         automaton.StateID
	anchoredStart bool
	anchoredEnd   bool
	litset        *litsetMatcher
}

// Compile parses pattern, builds its NFA and DFA, and returns a miner
// ready to be registered with the extractor. label is attached to every
// occurrence the miner produces.
func Compile(pattern string, label string, cfg Config) (*miner.Base, error) {
	tree, err := parseTree(pattern)
	if err != nil {
		return nil, err
	}

	if lits, ok := literalAlternatives(tree); ok && len(lits) > 0 {
		lm, err := buildLitsetMatcher(lits)
		if err == nil {
			c := &compiled{litset: lm}
			return miner.NewBase(label, pattern, c.match), nil
		}
		// Fall through to the general DFA path if the automaton
		// couldn't be built (e.g. an empty pattern among lits).
	}

	rest, anchoredStart, anchoredEnd := stripAnchors(tree)

	nfa := automaton.New()
	frag, err := buildNFA(nfa, rest)
	if err != nil {
		return nil, err
	}
	nfa.Node(frag.entry).Starting = true
	nfa.Node(frag.exit).Final = true

	if cfg.MaxNFAStates > 0 && len(nfa.Nodes) > cfg.MaxNFAStates {
		return nil, &AutomatonConstructionFailedError{
			Msg: fmt.Sprintf("pattern %q built an NFA of %d states, exceeding MaxNFAStates %d", pattern, len(nfa.Nodes), cfg.MaxNFAStates),
		}
	}

	dfa := automaton.Determinize(nfa)
	if cfg.MaxStates > 0 && len(dfa.Nodes) > cfg.MaxStates {
		return nil, &AutomatonConstructionFailedError{
			Msg: fmt.Sprintf("pattern %q determinized to %d states, exceeding MaxStates %d", pattern, len(dfa.Nodes), cfg.MaxStates),
		}
	}

	var entry automaton.StateID
	for _, n := range dfa.Nodes {
		if n.Starting {
			entry = n.ID
			break
		}
	}

	c := &compiled{
		dfa:           dfa,
		entry:         entry,
		anchoredStart: anchoredStart,
		anchoredEnd:   anchoredEnd,
	}
	return miner.NewBase(label, pattern, c.match), nil
}
