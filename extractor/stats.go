package extractor

import "sync/atomic"

// Stats is a snapshot of an Extractor's running counters.
type Stats struct {
	BatchesRun          uint64
	OccurrencesEmitted  uint64
	OccurrencesFiltered uint64
}

// stats holds the live atomic counters an Extractor updates as batches
// run; Stats() takes a point-in-time snapshot.
type stats struct {
	batchesRun          atomic.Uint64
	occurrencesEmitted  atomic.Uint64
	occurrencesFiltered atomic.Uint64
}

// Stats returns a snapshot of the extractor's counters.
func (e *Extractor) Stats() Stats {
	return Stats{
		BatchesRun:          e.stats.batchesRun.Load(),
		OccurrencesEmitted:  e.stats.occurrencesEmitted.Load(),
		OccurrencesFiltered: e.stats.occurrencesFiltered.Load(),
	}
}

// ResetStats zeroes the extractor's running counters.
func (e *Extractor) ResetStats() {
	e.stats.batchesRun.Store(0)
	e.stats.occurrencesEmitted.Store(0)
	e.stats.occurrencesFiltered.Store(0)
}
