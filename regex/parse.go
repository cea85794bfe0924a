package regex

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// parseTree turns a pattern directly into a fully rewritten operator
// tree: lex, build the operator tree (which already comes out with
// alternation and closure nested the way the rewrite pass describes,
// since a recursive-descent builder naturally produces that shape),
// then run the two rewrites that a recursive builder can't apply
// inline — RANGE expansion and singleton-CONCAT collapse — as
// separate, testable passes.
func parseTree(pattern string) (*node, error) {
	lx, err := lexTree(pattern)
	if err != nil {
		return nil, err
	}
	n, err := convertSequence(lx.children)
	if err != nil {
		return nil, err
	}
	n, err = rangeExpand(n)
	if err != nil {
		return nil, err
	}
	return collapseSingleton(n), nil
}

// convertSequence splits children on top-level alternation atoms and
// builds an N-ary ALTERNATION over one CONCAT per run — a direct
// generalization of "wrap the left run and the right run of a single
// ALT into two CONCAT children" to chains of more than one '|'.
func convertSequence(children []*lexNode) (*node, error) {
	var runs [][]*lexNode
	var cur []*lexNode
	for _, c := range children {
		if c.kind == lexAlt {
			runs = append(runs, cur)
			cur = nil
			continue
		}
		cur = append(cur, c)
	}
	runs = append(runs, cur)

	if len(runs) == 1 {
		return convertConcat(runs[0])
	}

	alt := &node{kind: opAlternation}
	for _, run := range runs {
		c, err := convertConcat(run)
		if err != nil {
			return nil, err
		}
		alt.children = append(alt.children, c)
	}
	return alt, nil
}

// convertConcat walks a run of sibling lex atoms left to right,
// converting each to an operator node and applying any CLOSURE or
// {l,h} quantifier atom to the node immediately before it — the
// postfix-to-prefix rewrite, applied as the node is placed rather than
// as a later tree rewrite.
func convertConcat(atoms []*lexNode) (*node, error) {
	concat := &node{kind: opConcat}
	for _, a := range atoms {
		switch a.kind {
		case lexGroup:
			child, err := convertSequence(a.children)
			if err != nil {
				return nil, err
			}
			concat.children = append(concat.children, child)

		case lexClosure:
			if len(concat.children) == 0 {
				return nil, syntaxErrorf(ErrQuantifier, "quantifier %q with nothing to repeat", a.text)
			}
			operand := concat.children[len(concat.children)-1]
			concat.children[len(concat.children)-1] = &node{
				kind: opClosure, closureOp: a.text[0], children: []*node{operand},
			}

		case lexQuantifier:
			if len(concat.children) == 0 {
				return nil, syntaxErrorf(ErrQuantifier, "quantifier {%s} with nothing to repeat", a.text)
			}
			lo, hi, err := parseQuantifier(a.text)
			if err != nil {
				return nil, err
			}
			operand := concat.children[len(concat.children)-1]
			concat.children[len(concat.children)-1] = &node{
				kind: opRange, lo: lo, hi: hi, children: []*node{operand},
			}

		case lexChar:
			leaf, err := convertChar(a.text)
			if err != nil {
				return nil, err
			}
			concat.children = append(concat.children, leaf)
		}
	}
	return concat, nil
}

// parseQuantifier parses a {...} body of the form "n", "n,", or
// "n,m" into inclusive bounds; hi == -1 means unbounded.
func parseQuantifier(text string) (lo, hi int, err error) {
	parts := strings.SplitN(text, ",", 2)
	lo, convErr := strconv.Atoi(strings.TrimSpace(parts[0]))
	if convErr != nil || lo < 0 {
		return 0, 0, syntaxErrorf(ErrQuantifier, "invalid quantifier {%s}", text)
	}
	if len(parts) == 1 {
		return lo, lo, nil
	}
	if strings.TrimSpace(parts[1]) == "" {
		return lo, -1, nil
	}
	hi, convErr = strconv.Atoi(strings.TrimSpace(parts[1]))
	if convErr != nil || hi < 0 {
		return 0, 0, syntaxErrorf(ErrQuantifier, "invalid quantifier {%s}", text)
	}
	return lo, hi, nil
}

// rangeExpand replaces every RANGE node, bottom-up, with a CONCAT of
// lo literal copies of its operand followed by either (hi-lo) optional
// ('?') copies or, if hi is unbounded, a single '*' closure — so
// nothing downstream of this pass ever has to handle RANGE directly.
func rangeExpand(n *node) (*node, error) {
	for i, c := range n.children {
		rc, err := rangeExpand(c)
		if err != nil {
			return nil, err
		}
		n.children[i] = rc
	}
	if n.kind != opRange {
		return n, nil
	}

	operand := n.children[0]
	if n.hi >= 0 && n.lo > n.hi {
		return nil, syntaxErrorf(ErrRange, "invalid quantifier range {%d,%d}", n.lo, n.hi)
	}

	concat := &node{kind: opConcat}
	for i := 0; i < n.lo; i++ {
		concat.children = append(concat.children, operand.clone())
	}
	switch {
	case n.hi == -1:
		concat.children = append(concat.children, &node{
			kind: opClosure, closureOp: '*', children: []*node{operand.clone()},
		})
	default:
		for i := 0; i < n.hi-n.lo; i++ {
			concat.children = append(concat.children, &node{
				kind: opClosure, closureOp: '?', children: []*node{operand.clone()},
			})
		}
	}
	return concat, nil
}

// collapseSingleton hoists the sole child of any CONCAT node that has
// exactly one, bottom-up, so a parenthesized single atom or a
// one-element run never carries a pointless wrapper into Thompson
// construction.
func collapseSingleton(n *node) *node {
	for i, c := range n.children {
		n.children[i] = collapseSingleton(c)
	}
	if n.kind == opConcat && len(n.children) == 1 {
		return n.children[0]
	}
	return n
}

// convertChar turns one lexChar atom's raw text into a leaf operator
// node: an anchor, a dot or escape class, a "[...]" character group,
// an escaped literal, or a plain literal rune.
func convertChar(text string) (*node, error) {
	switch text {
	case "^":
		return &node{kind: opLineBegin}, nil
	case "$":
		return &node{kind: opLineEnd}, nil
	case ".":
		return &node{kind: opIdentity, class: "."}, nil
	}

	if strings.HasPrefix(text, "[") {
		return parseSet(strings.TrimSuffix(strings.TrimPrefix(text, "["), "]"))
	}

	if strings.HasPrefix(text, "\\") {
		er, _ := utf8.DecodeRuneInString(text[1:])
		switch er {
		case 'd', 'D', 'w', 'W', 's', 'S':
			return &node{kind: opIdentity, class: string(er)}, nil
		case 'n':
			return &node{kind: opIdentity, r: '\n'}, nil
		case 't':
			return &node{kind: opIdentity, r: '\t'}, nil
		case 'r':
			return &node{kind: opIdentity, r: '\r'}, nil
		default:
			return &node{kind: opIdentity, r: er}, nil
		}
	}

	r, _ := utf8.DecodeRuneInString(text)
	return &node{kind: opIdentity, r: r}, nil
}

// setItem is one scanned element of a "[...]" body before range
// folding: a literal rune (possibly from an escape) or a named class.
type setItem struct {
	r       rune
	escaped bool
	class   string
}

// parseSet parses the body of a "[...]" group (without the brackets)
// into a SET node. A leading '^' is stripped here and recorded in the
// node's negSet flag; no NEGATION node is produced.
func parseSet(raw string) (*node, error) {
	body := raw
	neg := false
	if strings.HasPrefix(body, "^") {
		neg = true
		body = body[1:]
	}
	if body == "" {
		return nil, syntaxErrorf(ErrCharset, "empty character group []")
	}

	var items []setItem
	for i := 0; i < len(body); {
		r, size := utf8.DecodeRuneInString(body[i:])
		if r == '\\' && i+size < len(body) {
			er, esize := utf8.DecodeRuneInString(body[i+size:])
			switch er {
			case 'd', 'D', 'w', 'W', 's', 'S':
				items = append(items, setItem{class: string(er)})
			case 'n':
				items = append(items, setItem{r: '\n', escaped: true})
			case 't':
				items = append(items, setItem{r: '\t', escaped: true})
			case 'r':
				items = append(items, setItem{r: '\r', escaped: true})
			default:
				items = append(items, setItem{r: er, escaped: true})
			}
			i += size + esize
			continue
		}
		items = append(items, setItem{r: r})
		i += size
	}

	var members []setMember
	for i := 0; i < len(items); i++ {
		if items[i].class != "" {
			members = append(members, setMember{isClass: true, class: items[i].class, match: classPredicate(items[i].class)})
			continue
		}
		if items[i].r == '-' && !items[i].escaped && i > 0 && i+1 < len(items) &&
			items[i-1].class == "" && items[i+1].class == "" {
			from, to := items[i-1].r, items[i+1].r
			if !validRange(from, to) {
				return nil, syntaxErrorf(ErrCharset, "invalid character range %c-%c", from, to)
			}
			members[len(members)-1] = setMember{isRange: true, lo: from, hi: to}
			i++
			continue
		}
		members = append(members, setMember{r: items[i].r})
	}

	return &node{kind: opSet, members: members, negSet: neg, setText: raw}, nil
}

// validRange applies the "same script" rule: a valid range's bounds
// are both digits, both lowercase letters, or both uppercase letters,
// with from <= to.
func validRange(from, to rune) bool {
	if from > to {
		return false
	}
	bothDigit := from >= '0' && from <= '9' && to >= '0' && to <= '9'
	bothLower := from >= 'a' && from <= 'z' && to >= 'a' && to <= 'z'
	bothUpper := from >= 'A' && from <= 'Z' && to >= 'A' && to <= 'Z'
	return bothDigit || bothLower || bothUpper
}
