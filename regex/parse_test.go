package regex

import "testing"

func TestLexTree_UnbalancedParen(t *testing.T) {
	if _, err := lexTree("(ab"); err == nil {
		t.Fatal("expected error for unbalanced (")
	}
	if _, err := lexTree("ab)"); err == nil {
		t.Fatal("expected error for unmatched )")
	}
}

func TestLexTree_UnbalancedBracket(t *testing.T) {
	if _, err := lexTree("[abc"); err == nil {
		t.Fatal("expected error for unbalanced [")
	}
}

func TestParseTree_Literal(t *testing.T) {
	n, err := parseTree("abc")
	if err != nil {
		t.Fatal(err)
	}
	if n.kind != opConcat || len(n.children) != 3 {
		t.Fatalf("got %+v", n)
	}
}

func TestParseTree_SingletonCollapses(t *testing.T) {
	n, err := parseTree("(a)")
	if err != nil {
		t.Fatal(err)
	}
	if n.kind != opIdentity || n.r != 'a' {
		t.Fatalf("expected a bare IDENTITY leaf, got %+v", n)
	}
}

func TestParseTree_Alternation(t *testing.T) {
	n, err := parseTree("foo|bar|baz")
	if err != nil {
		t.Fatal(err)
	}
	if n.kind != opAlternation || len(n.children) != 3 {
		t.Fatalf("got %+v", n)
	}
}

func TestParseTree_Closure(t *testing.T) {
	n, err := parseTree("a*")
	if err != nil {
		t.Fatal(err)
	}
	if n.kind != opClosure || n.closureOp != '*' {
		t.Fatalf("got %+v", n)
	}
}

func TestParseTree_QuantifierWithNothingToRepeat(t *testing.T) {
	if _, err := parseTree("*abc"); err == nil {
		t.Fatal("expected error for leading *")
	}
	se, ok := mustSyntaxErr(t, "*abc")
	if ok && se.Kind != ErrQuantifier {
		t.Fatalf("got kind %v, want ErrQuantifier", se.Kind)
	}
}

func mustSyntaxErr(t *testing.T, pattern string) (*SyntaxError, bool) {
	t.Helper()
	_, err := parseTree(pattern)
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected *SyntaxError, got %T (%v)", err, err)
	}
	return se, ok
}

func TestParseTree_RangeExpandsToExactRepetition(t *testing.T) {
	n, err := parseTree("a{3}")
	if err != nil {
		t.Fatal(err)
	}
	if n.kind != opConcat || len(n.children) != 3 {
		t.Fatalf("want 3-way concat, got %+v", n)
	}
	for _, c := range n.children {
		if c.kind != opIdentity || c.r != 'a' {
			t.Fatalf("expected literal 'a' copies, got %+v", c)
		}
	}
}

func TestParseTree_RangeBoundedOptionalTail(t *testing.T) {
	n, err := parseTree("a{1,3}")
	if err != nil {
		t.Fatal(err)
	}
	if n.kind != opConcat || len(n.children) != 3 {
		t.Fatalf("want 1 literal + 2 optional closures, got %+v", n)
	}
	if n.children[0].kind != opIdentity {
		t.Fatalf("first child should be the mandatory literal, got %+v", n.children[0])
	}
	for _, c := range n.children[1:] {
		if c.kind != opClosure || c.closureOp != '?' {
			t.Fatalf("expected '?' closures, got %+v", c)
		}
	}
}

func TestParseTree_RangeUnboundedTail(t *testing.T) {
	n, err := parseTree("a{2,}")
	if err != nil {
		t.Fatal(err)
	}
	if n.kind != opConcat || len(n.children) != 3 {
		t.Fatalf("want 2 literals + 1 star closure, got %+v", n)
	}
	last := n.children[len(n.children)-1]
	if last.kind != opClosure || last.closureOp != '*' {
		t.Fatalf("expected trailing '*' closure, got %+v", last)
	}
}

func TestParseTree_InvalidQuantifierRange(t *testing.T) {
	se, ok := mustSyntaxErr(t, "a{5,2}")
	if ok && se.Kind != ErrRange {
		t.Fatalf("got kind %v, want ErrRange", se.Kind)
	}
}

func TestParseTree_MalformedQuantifierBody(t *testing.T) {
	se, ok := mustSyntaxErr(t, "a{x,y}")
	if ok && se.Kind != ErrQuantifier {
		t.Fatalf("got kind %v, want ErrQuantifier", se.Kind)
	}
}

func TestParseTree_CharsetRange(t *testing.T) {
	n, err := parseTree("[a-z]")
	if err != nil {
		t.Fatal(err)
	}
	if n.kind != opSet || len(n.members) != 1 || !n.members[0].isRange {
		t.Fatalf("got %+v", n)
	}
}

func TestParseTree_CharsetNegation(t *testing.T) {
	n, err := parseTree("[^abc]")
	if err != nil {
		t.Fatal(err)
	}
	if n.kind != opSet || !n.negSet {
		t.Fatalf("got %+v", n)
	}
}

func TestParseTree_CharsetInvalidRange(t *testing.T) {
	se, ok := mustSyntaxErr(t, "[a-1]")
	if ok && se.Kind != ErrCharset {
		t.Fatalf("got kind %v, want ErrCharset", se.Kind)
	}
}

func TestParseTree_CharsetReversedRange(t *testing.T) {
	se, ok := mustSyntaxErr(t, "[z-a]")
	if ok && se.Kind != ErrCharset {
		t.Fatalf("got kind %v, want ErrCharset", se.Kind)
	}
}

func TestParseTree_EscapeClasses(t *testing.T) {
	n, err := parseTree(`\d+`)
	if err != nil {
		t.Fatal(err)
	}
	if n.kind != opClosure || n.closureOp != '+' {
		t.Fatalf("got %+v", n)
	}
	if n.children[0].kind != opIdentity || n.children[0].class != "d" {
		t.Fatalf("got %+v", n.children[0])
	}
}

func TestParseTree_Anchors(t *testing.T) {
	n, err := parseTree("^abc$")
	if err != nil {
		t.Fatal(err)
	}
	rest, start, end := stripAnchors(n)
	if !start || !end {
		t.Fatalf("expected both anchors stripped, got start=%v end=%v", start, end)
	}
	if rest.kind != opConcat || len(rest.children) != 3 {
		t.Fatalf("got %+v", rest)
	}
}
