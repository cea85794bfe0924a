package stream

// BufferCursor wraps a caller-owned, lifetime-tied byte slice. Ownership
// is never transferred: Close is a no-op.
type BufferCursor struct {
	Cursor
}

// OpenBuffer wraps buf without copying it. The caller must keep buf alive
// and unmodified for the cursor's lifetime.
func OpenBuffer(buf []byte) *BufferCursor {
	bc := &BufferCursor{Cursor: newCursor(buf)}
	bc.flags |= Malloc
	return bc
}

// Close releases only what the cursor owns, which for a buffer is nothing.
func (bc *BufferCursor) Close() error { return nil }
