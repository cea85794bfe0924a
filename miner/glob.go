package miner

import (
	"fmt"
	"strings"
	stdunicode "unicode"
	"unicode/utf8"

	"github.com/spongedata/goextractor/occurrence"
	"github.com/spongedata/goextractor/unicode"
)

// NewGlob builds a miner matching shell-glob-like patterns against
// delimiter-bounded tokens of the stream: literal runs, '*' (any run of
// codepoints up to the next delimiter, tried shortest-first with
// backtracking), '?' (any single non-delimiter codepoint), '\' escapes,
// and '[...]' character classes with '-' ranges. Matching is
// case-insensitive.
func NewGlob(glob string) (*Base, error) {
	if !isGlob(glob) {
		return nil, fmt.Errorf("miner: %q is not a syntactically correct glob pattern", glob)
	}
	return NewBase("Glob", glob, matchGlobImpl), nil
}

func matchGlobImpl(m *Base) *occurrence.Occurrence {
	glob, _ := m.Params.(string)

	if !startsWithDelimiter(glob) {
		for m.CanMove(Right) && m.MatchDelimiter(Right) {
		}
	}
	if !m.CanMove(Right) {
		skipToken(m)
		return nil
	}
	if !m.MarkStart() {
		skipToken(m)
		return nil
	}

	if !matchGlobBody(m, glob) {
		skipToken(m)
		return nil
	}
	return m.MakeOccurrence(1.0)
}

// skipToken advances past the rest of the current token, leaving the
// cursor at the next delimiter or at EOF.
func skipToken(m *Base) {
	for m.CanMove(Right) && !m.MatchDelimiter(Right) {
		m.Move(Right)
	}
}

// matchGlobBody matches glob's tokens from the cursor's current
// position, including the end-of-token check (mark_end followed by
// either a trailing delimiter or EOF). It reports whether the whole
// remaining pattern matched.
func matchGlobBody(m *Base, glob string) bool {
	for len(glob) > 0 {
		switch {
		case strings.HasPrefix(glob, "*"):
			rest := glob[1:]
			if rest == "" {
				for m.CanMove(Right) && !m.MatchDelimiter(Stay) {
					m.Move(Right)
				}
				return finishToken(m)
			}
			for {
				mk := m.MarkPos()
				if matchGlobBody(m, rest) {
					return true
				}
				m.ResetPos(mk)
				if !m.CanMove(Right) || m.MatchDelimiter(Stay) {
					return false
				}
				m.Move(Right)
			}

		case strings.HasPrefix(glob, "?"):
			if !matchAnyCharacter(m) {
				return false
			}
			glob = glob[1:]

		case strings.HasPrefix(glob, "\\"):
			rest := glob[1:]
			if rest == "" {
				return false
			}
			r, size := utf8.DecodeRuneInString(rest)
			if !matchCharacter(m, r) {
				return false
			}
			glob = rest[size:]

		case strings.HasPrefix(glob, "["):
			body, tail, ok := splitBracket(glob[1:])
			if !ok || !matchCharClass(m, body) {
				return false
			}
			glob = tail

		default:
			r, size := utf8.DecodeRuneInString(glob)
			if !matchCharacter(m, r) {
				return false
			}
			glob = glob[size:]
		}
	}
	return finishToken(m)
}

// finishToken records the match's end and requires it fall on a token
// boundary: either a delimiter follows (and is consumed) or the cursor
// is already at EOF.
func finishToken(m *Base) bool {
	if !m.MarkEnd() {
		return false
	}
	if !m.MatchDelimiter(Right) && m.CanMove(Right) {
		return false
	}
	return true
}

func matchCharacter(m *Base, r rune) bool {
	var lb, ub [utf8.UTFMax]byte
	ln := utf8.EncodeRune(lb[:], stdunicode.ToLower(r))
	un := utf8.EncodeRune(ub[:], stdunicode.ToUpper(r))
	return m.Match(lb[:ln], Right) || m.Match(ub[:un], Right)
}

func matchAnyCharacter(m *Base) bool {
	if !m.CanMove(Right) || m.MatchDelimiter(Stay) {
		return false
	}
	return m.Move(Right)
}

func matchRange(m *Base, from, to rune) bool {
	for c := from; c <= to; c++ {
		if matchCharacter(m, c) {
			return true
		}
	}
	return false
}

// splitBracket locates the first unescaped ']' in s and returns the
// bracket's contents and the text following it.
func splitBracket(s string) (body, tail string, ok bool) {
	escape := false
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case escape:
			escape = false
		case r == '\\':
			escape = true
		case r == ']':
			return s[:i], s[i+size:], true
		}
		i += size
	}
	return "", "", false
}

func matchCharClass(m *Base, body string) bool {
	type item struct {
		r       rune
		escaped bool
	}
	var items []item
	esc := false
	for _, r := range body {
		if esc {
			items = append(items, item{r, true})
			esc = false
			continue
		}
		if r == '\\' {
			esc = true
			continue
		}
		items = append(items, item{r, false})
	}

	for i := 0; i < len(items); i++ {
		if !items[i].escaped && items[i].r == '-' && i > 0 && i+1 < len(items) {
			if matchRange(m, items[i-1].r, items[i+1].r) {
				return true
			}
			i++
			continue
		}
		if matchCharacter(m, items[i].r) {
			return true
		}
	}
	return false
}

// startsWithDelimiter reports whether glob's first matchable codepoint
// is itself a delimiter — in that case the token-skip prefix in
// matchGlobImpl must not run, or the pattern could never match an
// empty token boundary.
func startsWithDelimiter(glob string) bool {
	if glob == "" {
		return false
	}
	switch glob[0] {
	case '[':
		escape := false
		for _, r := range glob[1:] {
			if r == ']' && !escape {
				return false
			}
			if r == '\\' && !escape {
				escape = true
				continue
			}
			escape = false
			if unicode.IsDelimiter([]byte(string(r))) {
				return true
			}
		}
		return false
	case '*', '?':
		return false
	case '\\':
		rest := glob[1:]
		if rest == "" {
			return false
		}
		r, _ := utf8.DecodeRuneInString(rest)
		return unicode.IsDelimiter([]byte(string(r)))
	default:
		r, _ := utf8.DecodeRuneInString(glob)
		return unicode.IsDelimiter([]byte(string(r)))
	}
}

// isGlob reports whether glob is syntactically well formed: brackets
// balanced and never negative, and no ambiguous adjacent '-' inside a
// character class.
func isGlob(glob string) bool {
	brackets := 0
	escape := false
	var prelast, last rune
	havePrelast, haveLast := false, false

	for _, r := range glob {
		if escape {
			escape = false
			continue
		}
		switch r {
		case '-':
			if brackets > 0 && ((haveLast && last == '-') || (havePrelast && prelast == '-')) {
				return false
			}
		case '\\':
			escape = true
		case '[':
			brackets++
		case ']':
			brackets--
			if brackets < 0 {
				return false
			}
		}
		prelast, havePrelast = last, haveLast
		last, haveLast = r, true
	}

	return brackets == 0
}
