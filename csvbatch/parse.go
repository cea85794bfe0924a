package csvbatch

// ParseBatch drives m across its stream, accumulating recognized values
// into a Batch until batchSize complete rows have been read (0 meaning
// unlimited) or the stream is exhausted. A row ends at a newline or EOF
// boundary. If the stream ended right after a trailing delimiter — an
// implied empty final field — one more empty value is appended for it.
// Returns nil if not a single complete row was produced.
func ParseBatch(m *Miner, batchSize int) *Batch {
	m.WasDelimiter, m.WasNewline, m.WasEOF = false, false, false

	batch := NewBatch()
	rows := 0

	for !m.Stream().AtEOF() {
		o := m.Run()
		if o == nil {
			break
		}
		batch.AddOccurrence(o)
		if m.WasNewline || m.WasEOF {
			batch.AddNewline()
			rows++
			if batchSize > 0 && rows >= batchSize {
				break
			}
		}
	}

	if m.WasDelimiter {
		if m.MarkStart() && m.MarkEnd() {
			if o := m.MakeOccurrence(1.0); o != nil {
				batch.AddOccurrence(o)
				batch.AddNewline()
				rows++
			}
		}
	}

	if rows == 0 {
		return nil
	}
	return batch
}
