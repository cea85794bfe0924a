package stream

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Stream is the capability every cursor implementation exposes — the
// miner framework and extractor only ever depend on this interface, never
// on the concrete FileCursor/BufferCursor type (spec §9's "small
// capability interface per subsystem").
type Stream interface {
	Bytes() []byte
	Pos() int
	CodepointOffset() uint64
	State() Flags
	AtBOF() bool
	AtEOF() bool
	Remaining() []byte
	NextChar() int
	PrevChar() int
	Move(n int64) int64
	Sync(other *Cursor)
	Mark() Mark
	Reset(m Mark)
	Close() error
}

// FileCursor maps a file read-only and owns that mapping exclusively: it
// is unmapped and closed on Close.
type FileCursor struct {
	Cursor
	f   *os.File
	raw []byte // the mmap'd region; nil once unmapped
}

// OpenFile maps path read-only (shared, no-reserve when the platform
// supports it). A zero-size file sets EOF; an I/O failure sets Failed and
// returns a cursor that is unusable but still safe to Close.
func OpenFile(path string) (*FileCursor, error) {
	f, err := os.Open(path)
	if err != nil {
		return &FileCursor{Cursor: Cursor{flags: Failed}}, &OpenError{Path: path, Err: err}
	}

	fc := &FileCursor{f: f}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		fc.flags = Failed
		return fc, &OpenError{Path: path, Err: err}
	}

	size := info.Size()
	if size == 0 {
		fc.Cursor = newCursor(nil)
		fc.flags |= EOF | MMap
		return fc, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED|mapNoReserve())
	if err != nil {
		f.Close()
		fc.flags = Failed
		return fc, &OpenError{Path: path, Err: err}
	}

	fc.raw = data
	fc.Cursor = newCursor(data)
	fc.flags |= MMap
	return fc, nil
}

// Close unmaps the file region and closes the descriptor. Safe to call on
// a cursor that failed to open.
func (fc *FileCursor) Close() error {
	var err error
	if fc.raw != nil {
		err = unix.Munmap(fc.raw)
		fc.raw = nil
	}
	if fc.f != nil {
		if cerr := fc.f.Close(); err == nil {
			err = cerr
		}
		fc.f = nil
	}
	if err != nil {
		return fmt.Errorf("stream: close: %w", err)
	}
	return nil
}
