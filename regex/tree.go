package regex

import "github.com/spongedata/goextractor/automaton"

// opKind is one node kind of the operator tree that replaces the raw
// lex-tree atoms after the rewrite pass described in the regex
// compiler's design: CONCAT, SET, ALTERNATION, NEGATION, LINE_BEGIN,
// LINE_END, RANGE, CLOSURE, IDENTITY.
type opKind int

const (
	opConcat opKind = iota
	opSet
	opAlternation
	opNegation
	opLineBegin
	opLineEnd
	opRange
	opClosure
	opIdentity
)

// setMember is one element of a character group: a single rune, or an
// inclusive rune range (from <= to), or a named class predicate (\d,
// \w, \s and their negations, or '.').
type setMember struct {
	isRange bool
	isClass bool
	r       rune
	lo, hi  rune
	class   string
	match   func(r rune) bool
}

// node is one operator-tree node. Only the fields relevant to kind are
// populated; children is used by opConcat/opAlternation/opNegation (one
// child, the SET it wraps)/opClosure (one child, its operand)/opRange
// (one child, its operand).
type node struct {
	kind     opKind
	children []*node

	// opIdentity: a literal rune, or a class predicate (. \d \w \s and
	// negations) when class != "".
	r     rune
	class string

	// opSet
	members  []setMember
	negSet   bool
	setText  string // original "[...]" text, used as the Symbol Key

	// opClosure
	closureOp byte // '*', '+', '?'

	// opRange
	lo, hi int // hi == -1 means unbounded
}

// clone deep-copies n and its subtree, used to replicate a RANGE
// operand {l,h} times into independent NFA instances.
func (n *node) clone() *node {
	if n == nil {
		return nil
	}
	c := *n
	c.children = nil
	for _, ch := range n.children {
		c.children = append(c.children, ch.clone())
	}
	c.members = append([]setMember(nil), n.members...)
	return &c
}

// leafSymbol returns the Symbol an IDENTITY, SET or NEGATION(SET) leaf
// resolves to: its single-rune matching function plus a Key string
// identifying the transition for subset-construction grouping.
func leafSymbol(n *node) *automaton.Symbol {
	switch n.kind {
	case opIdentity:
		if n.class != "" {
			return &automaton.Symbol{Key: "class:" + n.class, Match: classPredicate(n.class)}
		}
		r := n.r
		return &automaton.Symbol{Key: "lit:" + string(r), Match: func(c rune) bool { return c == r }}
	case opSet:
		return setSymbol(n, false)
	case opNegation:
		return setSymbol(n.children[0], true)
	default:
		return nil
	}
}

func setSymbol(n *node, forceNeg bool) *automaton.Symbol {
	neg := n.negSet || forceNeg
	members := n.members
	match := func(r rune) bool {
		for _, m := range members {
			switch {
			case m.isClass:
				if m.match(r) {
					return true
				}
			case m.isRange:
				if r >= m.lo && r <= m.hi {
					return true
				}
			default:
				if r == m.r {
					return true
				}
			}
		}
		return false
	}
	key := n.setText
	if neg {
		key = "^" + key
		inner := match
		match = func(r rune) bool { return !inner(r) }
	}
	return &automaton.Symbol{Key: "set:" + key, Match: match}
}

// classPredicate returns the matcher for a named escape class.
func classPredicate(class string) func(rune) bool {
	switch class {
	case ".":
		return func(r rune) bool { return r != '\n' }
	case "d":
		return func(r rune) bool { return r >= '0' && r <= '9' }
	case "D":
		return func(r rune) bool { return !(r >= '0' && r <= '9') }
	case "w":
		return func(r rune) bool { return isWordRune(r) }
	case "W":
		return func(r rune) bool { return !isWordRune(r) }
	case "s":
		return func(r rune) bool { return isSpaceRune(r) }
	case "S":
		return func(r rune) bool { return !isSpaceRune(r) }
	default:
		return func(rune) bool { return false }
	}
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

func isSpaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}
