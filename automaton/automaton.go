// Package automaton implements a generic finite automaton graph — nodes
// and edges addressed by stable integer IDs — plus subset construction
// to turn an NFA into an equivalent DFA.
//
// The graph itself doesn't know what an edge symbol "means": two edges
// are the same transition if and only if their Symbol.Key values are
// equal, exactly as the node this is grounded on compares transitions
// by string identity rather than by any notion of character equality.
// The regex package is the one that gives Key and Match meaning (a
// literal rune, a character class, a negated set, ...).
package automaton

import "github.com/spongedata/goextractor/internal/conv"

// StateID addresses a node in an FA. IDs are assigned sequentially
// starting at 0 and are never reused within one FA.
type StateID uint32

// Symbol labels a non-epsilon edge. Key identifies the transition for
// subset-construction grouping purposes; Match decides, at matching
// time, whether a given rune takes that transition. Two edges with
// equal Key are treated as the same transition even if they're
// distinct *Symbol values — this is what lets a DFA state dedupe
// outgoing edges the way fa_node_find_edge does by strcmp.
type Symbol struct {
	Key   string
	Match func(r rune) bool
}

// Edge is one transition out of a node. A nil Sym denotes an epsilon
// transition, matching original_source's use of a NULL symbol string.
type Edge struct {
	Sym *Symbol
	To  StateID
}

// Node is one state of an FA.
type Node struct {
	ID       StateID
	Starting bool
	Final    bool
	Edges    []Edge
}

// FA is a finite automaton: a growable, ID-indexed array of nodes, each
// holding its own outgoing edges. This plays the role of the
// array-of-nodes/array-of-edges design with intrusive per-node edge
// lists, reshaped into Go slices addressed by index instead of
// malloc'd arrays addressed by pointer.
type FA struct {
	Nodes []*Node
}

// New creates an empty automaton.
func New() *FA {
	return &FA{}
}

// AddNode appends a fresh, non-starting, non-final node and returns
// its ID.
func (fa *FA) AddNode() StateID {
	id := StateID(conv.IntToUint32(len(fa.Nodes)))
	fa.Nodes = append(fa.Nodes, &Node{ID: id})
	return id
}

// AddEdge adds a transition from -> to labelled sym (nil for epsilon).
func (fa *FA) AddEdge(from StateID, sym *Symbol, to StateID) {
	n := fa.Nodes[from]
	n.Edges = append(n.Edges, Edge{Sym: sym, To: to})
}

// Node returns the node with the given ID.
func (fa *FA) Node(id StateID) *Node {
	return fa.Nodes[id]
}

// findEdge returns the index of n's edge labelled key, or -1.
func findEdge(n *Node, key string) int {
	for i, e := range n.Edges {
		if e.Sym != nil && e.Sym.Key == key {
			return i
		}
	}
	return -1
}
