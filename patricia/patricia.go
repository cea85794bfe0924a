// Package patricia implements a PATRICIA (radix) trie over UTF-8
// strings: insertion with edge splitting on a partial prefix match,
// a binary-vs-linear search threshold on edge fan-out, user-data
// attachment, and the PATTY on-disk format for mmap-backed read-only
// tries built once and reused across many lookups.
package patricia

import (
	"github.com/spongedata/goextractor/unicode"
)

// linearSearchMax is the edge fan-out at or below which a linear scan
// outperforms (and is simpler than) a binary search over the sorted
// edge list.
const linearSearchMax = 5

// edge is one labelled transition out of an in-memory node. str is a
// subslice of the byte slice passed to Insert; Insert does not copy it.
type edge struct {
	str  []byte
	next *node
}

// node is a PATRICIA trie node built and held in memory. A node loaded
// from a PATTY file is represented instead by binNode (see binary.go);
// both satisfy nodeView so Search and Traverse work over either.
type node struct {
	isTerminal bool
	edges      []edge
	userData   []byte
}

// Trie is a PATRICIA trie. The zero value is not usable; use New.
type Trie struct {
	root nodeView
	// mem is non-nil for a trie built in memory via Insert/Set; bin is
	// non-nil for one loaded from a PATTY file. Exactly one is set.
	mem *node
	bin *binaryTrie
}

// New creates an empty, insertable trie.
func New() *Trie {
	return &Trie{mem: &node{}}
}

// nodeView abstracts over an in-memory *node and a binary-loaded node
// so the matching algorithms need not care which backs a given trie.
type nodeView interface {
	edgeCount() int
	edgeBytes(i int) []byte
	edgeNext(i int) nodeView
	terminal() bool
	data() []byte
}

func (n *node) edgeCount() int            { return len(n.edges) }
func (n *node) edgeBytes(i int) []byte    { return n.edges[i].str }
func (n *node) edgeNext(i int) nodeView   { return n.edges[i].next }
func (n *node) terminal() bool            { return n.isTerminal }
func (n *node) data() []byte              { return n.userData }

// findMatchingPart returns how many leading bytes of e's label equal
// str's leading bytes, comparing one codepoint at a time so a partial
// match never splits a multi-byte rune.
func findMatchingPart(edgeStr, str []byte) int {
	i, j := 0, 0
	for i < len(edgeStr) && j < len(str) {
		rc, rn := unicode.Decode(edgeStr[i:])
		sc, sn := unicode.Decode(str[j:])
		if rc != sc {
			break
		}
		i += rn
		j += sn
	}
	return i
}

// compareStrings orders two strings codepoint-by-codepoint, falling
// back to length when one is a prefix of the other.
func compareStrings(a, b []byte) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ac, an := unicode.Decode(a[i:])
		bc, bn := unicode.Decode(b[j:])
		switch {
		case ac < bc:
			return -1
		case ac > bc:
			return 1
		}
		i += an
		j += bn
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// insertEdge inserts e into n's edge list, keeping it sorted by label.
func insertEdge(n *node, e edge) {
	i := len(n.edges)
	n.edges = append(n.edges, edge{})
	for i > 0 && compareStrings(e.str, n.edges[i-1].str) < 0 {
		n.edges[i] = n.edges[i-1]
		i--
	}
	n.edges[i] = e
}

// splitEdge breaks e at byte offset at, inserting a fresh intermediate
// node that owns the suffix and everything e used to point to.
func splitEdge(e *edge, at int) *node {
	mid := &node{}
	insertEdge(mid, edge{str: e.str[at:], next: e.next})
	e.next = mid
	e.str = e.str[:at]
	return mid
}

// Insert adds str to the trie, splitting edges as needed, and returns
// the (possibly newly created) terminal node for str. Insert is only
// valid on a trie built with New; it panics on one loaded from a PATTY
// file.
func (t *Trie) Insert(str []byte) *node {
	if t.mem == nil {
		panic("patricia: Insert is not supported on a trie loaded from a PATTY file")
	}
	return insert(t.mem, str)
}

func insert(n *node, str []byte) *node {
	if len(str) == 0 {
		n.isTerminal = true
		return n
	}

	for i := range n.edges {
		e := &n.edges[i]
		matched := findMatchingPart(e.str, str)
		if matched == 0 {
			continue
		}
		var next *node
		if matched < len(e.str) {
			next = splitEdge(e, matched)
		} else {
			next = e.next
		}
		return insert(next, str[matched:])
	}

	child := &node{isTerminal: true}
	insertEdge(n, edge{str: str, next: child})
	return child
}

// Set inserts str and attaches data to its terminal node, returning
// the stored copy of data.
// Set inserts str with an exact-match terminator appended so a later
// Get never mistakes a proper prefix of a longer entry for a hit (see
// Get). Insert/Search remain terminator-free for callers that want
// PATRICIA's native prefix-matching behavior instead.
func (t *Trie) Set(str []byte, data []byte) []byte {
	n := t.Insert(terminated(str))
	cp := append([]byte(nil), data...)
	n.userData = cp
	return cp
}

// Get returns the user data attached to str if str names an exact
// entry previously stored with Set, or nil otherwise.
//
// search alone can't tell "str" from "a proper prefix of some longer
// stored str2": both walk to str2's terminal node and report a full
// match once the search string runs out. Set works around this by
// appending a terminator byte no real key contains, so a search for
// str only ever reaches that node by also matching the terminator —
// which a proper prefix, lacking its own terminator at that point,
// cannot do.
func (t *Trie) Get(str []byte) []byte {
	key := terminated(str)
	matched, reached := search(t.rootView(), key)
	if matched == len(key) && reached != nil && reached.terminal() {
		return reached.data()
	}
	return nil
}

// terminated appends a NUL byte, which none of Set/Get's textual keys
// contain, marking the true end of an entry in the shared trie.
func terminated(str []byte) []byte {
	out := make([]byte, len(str)+1)
	copy(out, str)
	return out
}

func (t *Trie) rootView() nodeView {
	if t.mem != nil {
		return t.mem
	}
	return t.bin.rootView()
}

// Search reports how many leading bytes of str matched a path in the
// trie: 0 means no match at all, len(str) means str (or a prefix of a
// longer stored entry) was matched exactly.
func (t *Trie) Search(str []byte) uint32 {
	matched, _ := search(t.rootView(), str)
	return uint32(matched)
}

// SearchExt is Search but also returns the last node visited; callers
// check the returned MatchNode's IsTerminal() to tell a complete
// dictionary entry from a mere prefix-of-an-edge match.
func (t *Trie) SearchExt(str []byte) (uint32, *MatchNode) {
	matched, reached := search(t.rootView(), str)
	if reached == nil {
		return uint32(matched), nil
	}
	return uint32(matched), &MatchNode{v: reached}
}

// MatchNode is the last node visited by SearchExt.
type MatchNode struct{ v nodeView }

// IsTerminal reports whether the node marks the end of a stored entry.
func (m *MatchNode) IsTerminal() bool {
	if m == nil || m.v == nil {
		return false
	}
	return m.v.terminal()
}

// Data returns the node's attached user data, if any.
func (m *MatchNode) Data() []byte {
	if m == nil || m.v == nil {
		return nil
	}
	return m.v.data()
}

func search(n nodeView, str []byte) (int, nodeView) {
	offset := 0
	for {
		if len(str) == 0 {
			return 0, n
		}

		i := findEdge(n, str[offset:])
		if i < 0 {
			return offset, n
		}

		edgeStr := n.edgeBytes(i)
		matched := findMatchingPart(edgeStr, str[offset:])
		next := n.edgeNext(i)
		if offset+matched == len(str) {
			return len(str), next
		}
		if matched < len(edgeStr) {
			return offset + matched, n
		}
		offset += matched
		n = next
	}
}

// findEdge locates the edge out of n whose label starts with the same
// codepoint as str, using a linear scan for small fan-out and a binary
// search over the (label-sorted) edge list otherwise. If that finds
// nothing, every edge is scanned once more linearly for the same first
// codepoint before -1 is returned.
func findEdge(n nodeView, str []byte) int {
	if len(str) == 0 {
		return -1
	}
	sc, _ := unicode.Decode(str)

	if n.edgeCount() <= linearSearchMax {
		for i := 0; i < n.edgeCount(); i++ {
			ec, _ := unicode.Decode(n.edgeBytes(i))
			if ec == sc {
				return i
			}
		}
	} else {
		lo, hi := 0, n.edgeCount()-1
		for lo <= hi {
			mid := (lo + hi) / 2
			ec, _ := unicode.Decode(n.edgeBytes(mid))
			switch {
			case ec < sc:
				lo = mid + 1
			case ec > sc:
				hi = mid - 1
			default:
				return mid
			}
		}
	}

	for i := 0; i < n.edgeCount(); i++ {
		ec, _ := unicode.Decode(n.edgeBytes(i))
		if ec == sc {
			return i
		}
	}
	return -1
}

// Traverse walks every node and edge of the trie in preorder,
// invoking nodeFn/edgeFn (either may be nil) as each is visited.
func (t *Trie) Traverse(nodeFn func(terminal bool, edgeCount int), edgeFn func(label []byte)) {
	traverse(t.rootView(), nodeFn, edgeFn)
}

func traverse(n nodeView, nodeFn func(terminal bool, edgeCount int), edgeFn func(label []byte)) {
	if nodeFn != nil {
		nodeFn(n.terminal(), n.edgeCount())
	}
	for i := 0; i < n.edgeCount(); i++ {
		if edgeFn != nil {
			edgeFn(n.edgeBytes(i))
		}
		traverse(n.edgeNext(i), nodeFn, edgeFn)
	}
}
