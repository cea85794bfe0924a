package regex

// stripAnchors removes a leading LINE_BEGIN and/or trailing LINE_END
// from the top level of an operator tree and reports whether each was
// present. The automaton has no notion of a zero-width assertion, so
// anchors at the extremities of a pattern are handled by the matcher
// checking stream position directly instead of being compiled into
// NFA edges; an anchor anywhere else in the tree is left in place and
// buildNFA treats it as matching the empty string unconditionally.
func stripAnchors(n *node) (rest *node, anchoredStart, anchoredEnd bool) {
	switch n.kind {
	case opLineBegin:
		return &node{kind: opConcat}, true, false
	case opLineEnd:
		return &node{kind: opConcat}, false, true
	case opConcat:
		children := n.children
		if len(children) > 0 && children[0].kind == opLineBegin {
			anchoredStart = true
			children = children[1:]
		}
		if len(children) > 0 && children[len(children)-1].kind == opLineEnd {
			anchoredEnd = true
			children = children[:len(children)-1]
		}
		return collapseSingleton(&node{kind: opConcat, children: children}), anchoredStart, anchoredEnd
	default:
		return n, false, false
	}
}
