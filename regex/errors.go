package regex

import "fmt"

// SyntaxErrorKind classifies a pattern rejected before automaton
// construction is even attempted.
type SyntaxErrorKind int

const (
	// ErrParens is a mismatched or unbalanced '(', ')', '[' or ']'.
	ErrParens SyntaxErrorKind = iota
	// ErrRange is an invalid {l,h} quantifier (l > h).
	ErrRange
	// ErrQuantifier is a malformed {...} body (not digits/comma).
	ErrQuantifier
	// ErrCharset is an invalid character range inside [...] (reversed,
	// or bounds not the same script: both letters of the same case, or
	// both digits).
	ErrCharset
)

func (k SyntaxErrorKind) String() string {
	switch k {
	case ErrParens:
		return "Parens"
	case ErrRange:
		return "Range"
	case ErrQuantifier:
		return "Quantifier"
	case ErrCharset:
		return "Charset"
	default:
		return "Unknown"
	}
}

// SyntaxError is returned by Compile for any pattern that fails to
// parse, tagged with the specific RegexSyntax{Parens,Range,Quantifier,
// Charset} kind.
type SyntaxError struct {
	Kind SyntaxErrorKind
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("regex: %s: %s", e.Kind, e.Msg)
}

func syntaxErrorf(kind SyntaxErrorKind, format string, args ...any) error {
	return &SyntaxError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// AutomatonConstructionFailedError wraps a failure building the NFA or
// DFA from an otherwise syntactically valid operator tree.
type AutomatonConstructionFailedError struct {
	Msg string
}

func (e *AutomatonConstructionFailedError) Error() string {
	return "regex: automaton construction failed: " + e.Msg
}
