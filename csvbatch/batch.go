package csvbatch

import (
	"encoding/binary"
	"io"

	"github.com/spongedata/goextractor/occurrence"
)

// lenPrefixSize is the width of the length prefix written before every
// value. The reference C encoder wrote a full size_t here but its
// reader only ever dereferenced the prefix's first byte, silently
// truncating any value 256 bytes or longer; this port reads back the
// same width it writes, so no such truncation is possible.
const lenPrefixSize = 8

// rowEnd is the prefix value that marks the end of a row.
const rowEnd = ^uint64(0)

// Batch accumulates CSV values into a length-prefixed byte stream: each
// value is lenPrefixSize little-endian bytes giving its length,
// followed by that many raw bytes (none for an empty value). A prefix
// of rowEnd with no trailing bytes marks the end of a row.
type Batch struct {
	buf []byte
}

// NewBatch returns an empty Batch.
func NewBatch() *Batch { return &Batch{} }

// AddOccurrence appends o's matched bytes as one value.
func (b *Batch) AddOccurrence(o *occurrence.Occurrence) {
	b.addValue(o.Str)
}

func (b *Batch) addValue(v []byte) {
	var prefix [lenPrefixSize]byte
	binary.LittleEndian.PutUint64(prefix[:], uint64(len(v)))
	b.buf = append(b.buf, prefix[:]...)
	b.buf = append(b.buf, v...)
}

// AddNewline appends a row-boundary marker.
func (b *Batch) AddNewline() {
	var marker [lenPrefixSize]byte
	binary.LittleEndian.PutUint64(marker[:], rowEnd)
	b.buf = append(b.buf, marker[:]...)
}

// Bytes returns the batch's encoded byte stream.
func (b *Batch) Bytes() []byte { return b.buf }

// Len returns the number of encoded bytes in the batch.
func (b *Batch) Len() int { return len(b.buf) }

// Reader walks a Batch's encoded stream back into values and newline
// markers.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf (normally a Batch's own Bytes()) for reading.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// HasNext reports whether any encoded record remains.
func (r *Reader) HasNext() bool { return r.pos < len(r.buf) }

// Next returns the next value. At a row boundary it returns
// (nil, true, nil); at the end of the stream it returns io.EOF.
func (r *Reader) Next() (value []byte, newline bool, err error) {
	if !r.HasNext() {
		return nil, false, io.EOF
	}
	if r.pos+lenPrefixSize > len(r.buf) {
		return nil, false, ErrCorrupt
	}
	n := binary.LittleEndian.Uint64(r.buf[r.pos : r.pos+lenPrefixSize])
	r.pos += lenPrefixSize

	if n == rowEnd {
		return nil, true, nil
	}
	end := r.pos + int(n)
	if end > len(r.buf) {
		return nil, false, ErrCorrupt
	}
	v := r.buf[r.pos:end]
	r.pos = end
	return v, false, nil
}
