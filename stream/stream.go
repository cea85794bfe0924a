// Package stream implements the UTF-8 byte-region cursor the miner
// framework and the extractor orchestrator navigate: bidirectional,
// codepoint-granular movement over either a memory-mapped file or a
// caller-owned buffer, with position snapshots ("marks") for speculative
// matching.
package stream

import (
	"errors"
	"fmt"

	"github.com/spongedata/goextractor/unicode"
)

// Flags is the cursor's public state bitset, matching spec §6 exactly.
type Flags uint32

const (
	BOF Flags = 1 << iota
	EOF
	Inited
	Failed
	Processing
	Done
	MMap
	Malloc
)

// Sentinel stream errors; OpenFile does not return them, it reports
// failures as *OpenError. Navigation methods never error —
// they clamp and report limits through Flags instead, per spec §4.B.
var (
	ErrOpenFailed = errors.New("stream: failed to open")
	ErrFailed     = errors.New("stream: cursor is in a failed state")
)

// OpenError wraps a failure with the path that caused it.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("stream: open %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Mark is a pure-value snapshot of a cursor's position. It never owns
// memory and is cheap to copy.
type Mark struct {
	Pos             int
	CodepointOffset uint64
	Flags           Flags
}

// Cursor is the common byte-region navigator shared by FileCursor and
// BufferCursor. It never allocates during navigation.
type Cursor struct {
	data            []byte
	pos             int
	codepointOffset uint64
	flags           Flags
}

func newCursor(data []byte) Cursor {
	c := Cursor{data: data, pos: 0, flags: Inited}
	c.normalize()
	return c
}

// normalize re-derives BOF/EOF from pos, clearing stale flags first —
// mirrors stream_c_normalize_position in the reference design.
func (c *Cursor) normalize() {
	c.flags &^= BOF | EOF
	if c.pos >= len(c.data) {
		c.pos = len(c.data)
		c.flags |= EOF
	} else if c.pos <= 0 {
		c.pos = 0
		c.flags |= BOF
	}
}

// Bytes returns the whole backing region (start..end).
func (c *Cursor) Bytes() []byte { return c.data }

// Pos returns the current byte offset from the region start.
func (c *Cursor) Pos() int { return c.pos }

// CodepointOffset returns the logical codepoint offset from the region start.
func (c *Cursor) CodepointOffset() uint64 { return c.codepointOffset }

// State returns the current flag bitset.
func (c *Cursor) State() Flags { return c.flags }

// AtBOF / AtEOF report the begin/end-of-stream condition.
func (c *Cursor) AtBOF() bool { return c.flags&BOF != 0 }
func (c *Cursor) AtEOF() bool { return c.flags&EOF != 0 }

// Remaining returns the bytes from the current position to the end of the
// region, without moving. This is the cursor's "get_next" window: callers
// read from it but never hold onto it past the next mutation.
func (c *Cursor) Remaining() []byte {
	return c.data[c.pos:]
}

// NextChar returns the byte position before advancing, then moves one
// codepoint forward. At EOF it is a no-op and returns the end position.
func (c *Cursor) NextChar() int {
	start := c.pos
	if c.AtEOF() {
		return start
	}
	c.pos += unicode.ByteSize(c.data[c.pos])
	c.codepointOffset++
	c.normalize()
	return start
}

// PrevChar moves one codepoint backward, skipping UTF-8 continuation bytes
// (10xxxxxx) until a leading byte is found. At BOF it is a no-op.
func (c *Cursor) PrevChar() int {
	if c.AtBOF() {
		return c.pos
	}
	c.pos--
	for c.pos > 0 && isContinuation(c.data[c.pos]) {
		c.pos--
	}
	c.codepointOffset--
	c.normalize()
	return c.pos
}

func isContinuation(b byte) bool {
	return b&0b11000000 == 0b10000000
}

// Move moves |n| codepoints in the sign direction, clamped to the region
// bounds, and returns the signed codepoint delta actually traversed.
func (c *Cursor) Move(n int64) int64 {
	if n == 0 {
		return 0
	}
	if n > 0 {
		var moved int64
		for i := int64(0); i < n && !c.AtEOF(); i++ {
			c.NextChar()
			moved++
		}
		return moved
	}
	var moved int64
	for i := int64(0); i > n && !c.AtBOF(); i-- {
		c.PrevChar()
		moved--
	}
	return moved
}

// Sync copies pos, codepoint offset and flags from another cursor — used
// by miners to follow the extractor's shared position at batch start.
func (c *Cursor) Sync(other *Cursor) {
	c.pos = other.pos
	c.codepointOffset = other.codepointOffset
	c.flags = other.flags
}

// Mark snapshots the current position.
func (c *Cursor) Mark() Mark {
	return Mark{Pos: c.pos, CodepointOffset: c.codepointOffset, Flags: c.flags}
}

// Reset restores a previously taken Mark.
func (c *Cursor) Reset(m Mark) {
	c.pos = m.Pos
	c.codepointOffset = m.CodepointOffset
	c.normalize()
}

// Clone returns an independent cursor over the same backing region (no
// ownership transfer — the clone never unmaps/closes anything).
func (c *Cursor) Clone() Cursor {
	clone := *c
	return clone
}
