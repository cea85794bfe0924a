package automaton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spongedata/goextractor/internal/sparse"
)

// epsilonClose expands set in place to its epsilon closure: every node
// reachable from a member of set by following only epsilon edges is
// added too. This is the "computed inline during subset expansion"
// closure described for subset construction.
func epsilonClose(nfa *FA, set *sparse.Set) {
	stack := set.Clone()
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range nfa.Nodes[id].Edges {
			if e.Sym != nil {
				continue
			}
			if !set.Contains(uint32(e.To)) {
				set.Insert(uint32(e.To))
				stack = append(stack, uint32(e.To))
			}
		}
	}
}

// distinctSymbols gathers one representative *Symbol per distinct Key
// appearing on an outgoing edge of any node in subset, mirroring
// fa_mapping_get_edge_symbols's dedup-by-equality pass over a node
// mapping's member states.
func distinctSymbols(nfa *FA, subset []uint32) []*Symbol {
	seen := make(map[string]bool)
	var out []*Symbol
	for _, id := range subset {
		for _, e := range nfa.Nodes[id].Edges {
			if e.Sym == nil || seen[e.Sym.Key] {
				continue
			}
			seen[e.Sym.Key] = true
			out = append(out, e.Sym)
		}
	}
	return out
}

// subsetKey canonicalizes a set of NFA state IDs into a string usable
// as a map key, standing in for the mapping table's from-set equality
// test (fa_mapping_find_from) with a hash lookup instead of a linear
// scan over every previously seen subset.
func subsetKey(ids []uint32) string {
	sorted := append([]uint32(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var b strings.Builder
	for i, id := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return b.String()
}

// pendingState is a DFA state whose outgoing edges haven't been
// computed yet: its ID in the new DFA, and the NFA state IDs it
// represents.
type pendingState struct {
	id     StateID
	subset []uint32
}

// Determinize builds a DFA equivalent to nfa via subset construction.
// The DFA's starting state is the epsilon closure of all of nfa's
// starting nodes; from there, each state and each distinct non-epsilon
// symbol reachable from it produces (or reuses) one DFA edge, until no
// new subsets are discovered.
func Determinize(nfa *FA) *FA {
	dfa := New()
	start := dfa.AddNode()
	dfa.Nodes[start].Starting = true

	startSet := sparse.New(uint32(len(nfa.Nodes)))
	for _, n := range nfa.Nodes {
		if n.Starting {
			startSet.Insert(uint32(n.ID))
		}
	}
	epsilonClose(nfa, startSet)

	mapping := map[string]StateID{subsetKey(startSet.Values()): start}
	queue := []pendingState{{id: start, subset: startSet.Clone()}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		dfaNode := dfa.Nodes[cur.id]

		for _, nfaID := range cur.subset {
			if nfa.Nodes[nfaID].Final {
				dfaNode.Final = true
			}
		}

		for _, sym := range distinctSymbols(nfa, cur.subset) {
			if findEdge(dfaNode, sym.Key) >= 0 {
				continue
			}

			moveSet := sparse.New(uint32(len(nfa.Nodes)))
			for _, nfaID := range cur.subset {
				for _, e := range nfa.Nodes[nfaID].Edges {
					if e.Sym != nil && e.Sym.Key == sym.Key {
						moveSet.Insert(uint32(e.To))
					}
				}
			}
			if moveSet.IsEmpty() {
				continue
			}
			epsilonClose(nfa, moveSet)

			key := subsetKey(moveSet.Values())
			to, ok := mapping[key]
			if !ok {
				to = dfa.AddNode()
				mapping[key] = to
				queue = append(queue, pendingState{id: to, subset: moveSet.Clone()})
			}
			dfa.AddEdge(cur.id, sym, to)
		}
	}

	return dfa
}
