package regex

import "github.com/spongedata/goextractor/automaton"

// frag is a fragment of NFA under construction: one entry state and
// one exit state, with no edges yet connecting the exit to anything
// outside the fragment — exactly Thompson construction's invariant
// that every sub-expression compiles to a single-entry, single-exit
// piece that composition only ever wires together via epsilon edges.
type frag struct {
	entry, exit automaton.StateID
}

// buildNFA walks a fully rewritten operator tree (no RANGE; stripAnchors
// has removed a leading LINE_BEGIN and a trailing LINE_END, and any
// LINE_BEGIN/LINE_END left elsewhere is compiled as an empty-string
// match) and emits a Thompson-construction NFA. It never fails on a
// well-formed tree; the error return exists for symmetry with the rest
// of the compile pipeline and to report on node kinds that should have
// been eliminated earlier.
func buildNFA(fa *automaton.FA, n *node) (frag, error) {
	switch n.kind {
	case opConcat:
		return buildConcat(fa, n)
	case opAlternation:
		return buildAlternation(fa, n)
	case opClosure:
		return buildClosure(fa, n)
	case opIdentity, opSet, opNegation:
		return buildLeaf(fa, n)
	case opLineBegin, opLineEnd:
		// Zero-width assertions that survived to here (not at an
		// extremity of the pattern) have no automaton representation;
		// they match the empty string unconditionally.
		return buildEpsilon(fa)
	default:
		return frag{}, &AutomatonConstructionFailedError{Msg: "unexpected operator node in rewritten tree"}
	}
}

func buildEpsilon(fa *automaton.FA) (frag, error) {
	entry := fa.AddNode()
	exit := fa.AddNode()
	fa.AddEdge(entry, nil, exit)
	return frag{entry: entry, exit: exit}, nil
}

func buildLeaf(fa *automaton.FA, n *node) (frag, error) {
	sym := leafSymbol(n)
	if sym == nil {
		return frag{}, &AutomatonConstructionFailedError{Msg: "leaf node produced no symbol"}
	}
	entry := fa.AddNode()
	exit := fa.AddNode()
	fa.AddEdge(entry, sym, exit)
	return frag{entry: entry, exit: exit}, nil
}

func buildConcat(fa *automaton.FA, n *node) (frag, error) {
	if len(n.children) == 0 {
		return buildEpsilon(fa)
	}
	first, err := buildNFA(fa, n.children[0])
	if err != nil {
		return frag{}, err
	}
	cur := first
	for _, c := range n.children[1:] {
		next, err := buildNFA(fa, c)
		if err != nil {
			return frag{}, err
		}
		fa.AddEdge(cur.exit, nil, next.entry)
		cur.exit = next.exit
	}
	return frag{entry: first.entry, exit: cur.exit}, nil
}

func buildAlternation(fa *automaton.FA, n *node) (frag, error) {
	entry := fa.AddNode()
	exit := fa.AddNode()
	for _, c := range n.children {
		f, err := buildNFA(fa, c)
		if err != nil {
			return frag{}, err
		}
		fa.AddEdge(entry, nil, f.entry)
		fa.AddEdge(f.exit, nil, exit)
	}
	return frag{entry: entry, exit: exit}, nil
}

// buildClosure handles '*' (skip and repeat), '+' (repeat, no skip)
// and '?' (skip, no repeat) with a shared entry/exit pair, wiring in
// the skip edge and/or the back edge the operator calls for.
func buildClosure(fa *automaton.FA, n *node) (frag, error) {
	operand, err := buildNFA(fa, n.children[0])
	if err != nil {
		return frag{}, err
	}
	entry := fa.AddNode()
	exit := fa.AddNode()
	fa.AddEdge(entry, nil, operand.entry)
	fa.AddEdge(operand.exit, nil, exit)

	if n.closureOp != '+' {
		fa.AddEdge(entry, nil, exit)
	}
	if n.closureOp != '?' {
		fa.AddEdge(operand.exit, nil, operand.entry)
	}
	return frag{entry: entry, exit: exit}, nil
}
