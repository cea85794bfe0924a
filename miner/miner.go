// Package miner implements the cursor-bound matching primitives every
// pattern recognizer is built from, the mark/reset protocol for
// speculative matching, and the occurrence-construction contract: a
// miner never emits two occurrences whose spans overlap.
package miner

import (
	"github.com/spongedata/goextractor/occurrence"
	"github.com/spongedata/goextractor/stream"
	"github.com/spongedata/goextractor/unicode"
)

// Dir is the direction a primitive moves the cursor in.
type Dir int

const (
	Left  Dir = -1
	Stay  Dir = 0
	Right Dir = 1
)

// unset marks Start/End/EndLast/PosLast as "not currently recorded".
const unset = -1

// MatcherFunc finds (at most) one occurrence starting from the miner's
// current cursor position. It returns nil if nothing matched.
type MatcherFunc func(m *Base) *occurrence.Occurrence

// Miner is the capability the extractor orchestrator drives: every
// concrete recognizer (glob, regex-derived, PATRICIA-backed, word-set)
// implements it by embedding *Base and supplying a MatcherFunc.
type Miner interface {
	Name() string
	SetStream(s stream.Stream)
	Stream() stream.Stream
	Run() *occurrence.Occurrence
	PosLast() int
	EndLast() int
}

// Base is the shared miner state and primitive table. Concrete miners
// embed it and pass a MatcherFunc to NewBase.
type Base struct {
	name       string
	Params     any
	stream     stream.Stream
	matchLast  int
	start      int
	end        int
	startUcp   uint64
	endUcp     uint64
	endLast    int
	posLast    int
	AllowEmpty bool
	matcher    MatcherFunc
}

// NewBase constructs a miner's shared state. name is borrowed as the
// label attached to every occurrence it produces.
func NewBase(name string, params any, matcher MatcherFunc) *Base {
	return &Base{
		name:     name,
		Params:   params,
		matcher:  matcher,
		start:    unset,
		end:      unset,
		endLast:  unset,
		posLast:  unset,
		matchLast: unset,
	}
}

func (m *Base) Name() string { return m.name }

func (m *Base) SetStream(s stream.Stream) {
	m.stream = s
	m.matchLast, m.start, m.end, m.endLast, m.posLast = unset, unset, unset, unset, unset
}

func (m *Base) Stream() stream.Stream { return m.stream }

func (m *Base) PosLast() int { return m.posLast }
func (m *Base) EndLast() int { return m.endLast }

// Run invokes the matcher, then unconditionally advances PosLast to
// max(end-of-match, current cursor position) and clears in-progress
// marks — the orchestrator relies on PosLast to skip already-scanned
// territory on the next batch even when the matcher produced nothing.
func (m *Base) Run() *occurrence.Occurrence {
	o := m.matcher(m)

	cur := m.stream.Pos()
	if m.end > cur {
		m.posLast = m.end
	} else {
		m.posLast = cur
	}
	m.start, m.startUcp = unset, 0
	m.end, m.endUcp = unset, 0
	return o
}

// CanMove reports whether BOF/EOF blocks movement in dir.
func (m *Base) CanMove(dir Dir) bool {
	switch dir {
	case Left:
		return !m.stream.AtBOF()
	case Right:
		return !m.stream.AtEOF()
	default:
		return true
	}
}

// Move advances the cursor by one codepoint in dir. Callers must check
// CanMove first if they want to avoid a no-op at a boundary.
func (m *Base) Move(dir Dir) bool {
	switch dir {
	case Left:
		m.stream.PrevChar()
	case Right:
		m.stream.NextChar()
	}
	return true
}

// GetNext returns the codepoint at the current position without moving.
func (m *Base) GetNext() []byte {
	return m.stream.Remaining()
}

// Match advances past literal in dir if the current codepoint equals it,
// otherwise leaves the cursor in place.
func (m *Base) Match(literal []byte, dir Dir) bool {
	if !m.CanMove(dir) {
		return false
	}
	if !unicode.Equal(m.GetNext(), literal) {
		return false
	}
	matchLast := m.stream.Pos()
	m.Move(dir)
	m.matchLast = matchLast
	return true
}

// MatchFn is Match generalized to a predicate.
func (m *Base) MatchFn(fn unicode.Predicate, dir Dir) bool {
	if !m.CanMove(dir) {
		return false
	}
	if !fn(m.GetNext()) {
		return false
	}
	matchLast := m.stream.Pos()
	m.Move(dir)
	m.matchLast = matchLast
	return true
}

// MatchFnPlus greedily matches one-or-more codepoints satisfying fn.
func (m *Base) MatchFnPlus(fn unicode.Predicate, dir Dir) bool {
	return m.matchFnMod(fn, dir, false)
}

// MatchFnStar greedily matches zero-or-more codepoints satisfying fn.
func (m *Base) MatchFnStar(fn unicode.Predicate, dir Dir) bool {
	return m.matchFnMod(fn, dir, true)
}

func (m *Base) matchFnMod(fn unicode.Predicate, dir Dir, hasMatch bool) bool {
	matched := unset
	for {
		cur := m.stream.Pos()
		if !(m.CanMove(dir) && fn(m.GetNext()) && m.Move(dir)) {
			break
		}
		matched = cur
		hasMatch = true
	}
	if matched != unset {
		m.matchLast = matched
	}
	return hasMatch
}

// MatchFnTimes matches exactly `times` codepoints satisfying fn. It is
// atomic: on failure the cursor is rolled back to where it started.
func (m *Base) MatchFnTimes(fn unicode.Predicate, dir Dir, times int) bool {
	if times <= 0 {
		return true
	}
	mk := m.stream.Mark()
	var last int
	for i := 0; i < times; i++ {
		last = m.stream.Pos()
		if !(m.CanMove(dir) && fn(m.GetNext()) && m.Move(dir)) {
			m.stream.Reset(mk)
			return false
		}
	}
	m.matchLast = last
	return true
}

// MatchDelimiter is MatchFn(unicode.IsDelimiter, dir).
func (m *Base) MatchDelimiter(dir Dir) bool {
	return m.MatchFn(unicode.IsDelimiter, dir)
}

// MatchString matches str codepoint-by-codepoint moving in dir (only
// Right is currently supported, matching spec §4.C). Atomic: rolls back
// entirely on a failed partial match.
func (m *Base) MatchString(str []byte, dir Dir) bool {
	if dir != Right {
		panic("miner: MatchString only supports Right matching")
	}
	mk := m.stream.Mark()
	for i := 0; i < len(str); {
		size := unicode.ByteSize(str[i])
		if i+size > len(str) {
			size = len(str) - i
		}
		if !m.Match(str[i:i+size], dir) {
			m.stream.Reset(mk)
			return false
		}
		i += size
	}
	return true
}

// MatchOne matches any single codepoint present in the packed codepoint
// list chars.
func (m *Base) MatchOne(chars []byte, dir Dir) bool {
	if !m.CanMove(dir) {
		return false
	}
	for i := 0; i < len(chars); {
		size := unicode.ByteSize(chars[i])
		if i+size > len(chars) {
			size = len(chars) - i
		}
		if unicode.Equal(m.GetNext(), chars[i:i+size]) {
			matchLast := m.stream.Pos()
			if m.Move(dir) {
				m.matchLast = matchLast
				return true
			}
			break
		}
		i += size
	}
	return false
}

// MarkStart records the current position as the span's start. It fails
// if the current position precedes the end of the last emitted
// occurrence — the overlap guard from spec §4.C.
func (m *Base) MarkStart() bool {
	if m.endLast != unset && m.stream.Pos() < m.endLast {
		return false
	}
	m.start = m.stream.Pos()
	m.startUcp = m.stream.CodepointOffset()
	return true
}

// MarkEnd records the current position as the span's end, under the
// same overlap guard as MarkStart.
func (m *Base) MarkEnd() bool {
	if m.endLast != unset && m.stream.Pos() < m.endLast {
		return false
	}
	m.end = m.stream.Pos()
	m.endUcp = m.stream.CodepointOffset()
	return true
}

// MarkedSpan returns the bytes between the current start and end marks,
// or nil if either is unset. Unlike MakeOccurrence it performs no
// validation and does not consume the marks — useful for miners that
// need to inspect the matched text before deciding whether to accept it.
func (m *Base) MarkedSpan() []byte {
	if m.start == unset || m.end == unset || m.start > m.end {
		return nil
	}
	return m.stream.Bytes()[m.start:m.end]
}

// MarkPos snapshots the cursor for later speculative rollback.
func (m *Base) MarkPos() stream.Mark { return m.stream.Mark() }

// ResetPos restores a cursor snapshot taken by MarkPos.
func (m *Base) ResetPos(mk stream.Mark) { m.stream.Reset(mk) }

// MakeOccurrence builds an occurrence from the marked start/end. Both
// marks must be set; an empty span is only allowed when AllowEmpty is
// set; start must not exceed end; and the span must not precede the end
// of the previously emitted occurrence.
func (m *Base) MakeOccurrence(prob float32) *occurrence.Occurrence {
	if m.start == unset || m.end == unset {
		return nil
	}
	if !m.AllowEmpty && m.start == m.end {
		return nil
	}
	if m.start > m.end {
		return nil
	}
	if m.endLast != unset && m.start < m.endLast {
		return nil
	}

	m.endLast = m.end

	data := m.stream.Bytes()
	return &occurrence.Occurrence{
		Str:   data[m.start:m.end],
		Pos:   uint64(m.start),
		UPos:  m.startUcp,
		Len:   uint32(m.end - m.start),
		ULen:  uint32(m.endUcp - m.startUcp),
		Label: m.name,
		Prob:  prob,
	}
}
