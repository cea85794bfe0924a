// Package unicode provides the codepoint-classified predicates and
// single-codepoint comparisons the miner framework matches against.
//
// Every predicate here operates on one UTF-8 codepoint at the front of a
// byte slice — never on position or direction, which is the cursor's job.
package unicode

import (
	stdunicode "unicode"
	"unicode/utf8"
)

// ByteSize returns the number of bytes (1-4) the leading byte of c declares
// for the codepoint it starts. Invalid leading bytes are treated as 1-byte
// runes so callers always make forward progress.
func ByteSize(c byte) int {
	switch {
	case c&0b11111000 == 0b11110000:
		return 4
	case c&0b11110000 == 0b11100000:
		return 3
	case c&0b11100000 == 0b11000000:
		return 2
	default:
		return 1
	}
}

// Decode returns the rune at the front of b and its encoded byte size.
// An empty slice decodes to utf8.RuneError with size 0.
func Decode(b []byte) (rune, int) {
	if len(b) == 0 {
		return utf8.RuneError, 0
	}
	r, size := utf8.DecodeRune(b)
	return r, size
}

// Equal reports whether the codepoints at the front of a and b are
// byte-identical (same encoded length, same bytes).
func Equal(a, b []byte) bool {
	sa := ByteSize(a[0])
	sb := ByteSize(b[0])
	if sa != sb || sa > len(a) || sb > len(b) {
		return false
	}
	for i := 0; i < sa; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Predicate classifies the codepoint at the front of b.
type Predicate func(b []byte) bool

func IsAlnum(b []byte) bool {
	r, _ := Decode(b)
	return stdunicode.IsLetter(r) || stdunicode.IsDigit(r)
}

func IsAlpha(b []byte) bool {
	r, _ := Decode(b)
	return stdunicode.IsLetter(r)
}

func IsCntrl(b []byte) bool {
	r, _ := Decode(b)
	return stdunicode.IsControl(r)
}

func IsDigit(b []byte) bool {
	r, _ := Decode(b)
	return stdunicode.IsDigit(r)
}

func IsGraph(b []byte) bool {
	r, _ := Decode(b)
	return stdunicode.IsGraphic(r) && !stdunicode.IsSpace(r)
}

func IsLower(b []byte) bool {
	r, _ := Decode(b)
	return stdunicode.IsLower(r)
}

func IsPrint(b []byte) bool {
	r, _ := Decode(b)
	return stdunicode.IsPrint(r)
}

func IsPunct(b []byte) bool {
	r, _ := Decode(b)
	return stdunicode.IsPunct(r) || stdunicode.IsSymbol(r)
}

func IsSpace(b []byte) bool {
	r, _ := Decode(b)
	return stdunicode.IsSpace(r)
}

func IsUpper(b []byte) bool {
	r, _ := Decode(b)
	return stdunicode.IsUpper(r)
}

func IsXDigit(b []byte) bool {
	r, _ := Decode(b)
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	default:
		return false
	}
}

// IsLinebreak is true iff the leading byte is exactly '\n'.
func IsLinebreak(b []byte) bool {
	return len(b) > 0 && b[0] == '\n'
}

// IsW reports alnum or underscore, matching regex \w.
func IsW(b []byte) bool {
	r, _ := Decode(b)
	return stdunicode.IsLetter(r) || stdunicode.IsDigit(r) || r == '_'
}

// IsDelimiter is space, punct or control — the boundary test tokenizers use.
func IsDelimiter(b []byte) bool {
	return IsSpace(b) || IsPunct(b) || IsCntrl(b)
}

// Not negates a predicate, mirroring the unicode_not_* family in the
// original C API.
func Not(p Predicate) Predicate {
	return func(b []byte) bool { return !p(b) }
}
