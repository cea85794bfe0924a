package extractor

import (
	"sync"

	"github.com/spongedata/goextractor/miner"
	"github.com/spongedata/goextractor/occurrence"
)

// task is one miner's share of a single Next(batch) call.
type task struct {
	mnr    miner.Miner
	budget int
	pout   *outputBuffer
}

// outputBuffer is the write-side of a batch's result array, guarded by
// its own mutex (mutex_pout) so every worker's write-critical section
// stays short.
type outputBuffer struct {
	mu  sync.Mutex
	out []*occurrence.Occurrence
}

// workerLoop is one of the Extractor's fixed pool of goroutines: it
// drains tasks until told to stop.
func (e *Extractor) workerLoop() {
	defer e.workersWG.Done()
	for {
		select {
		case <-e.quit:
			return
		case t := <-e.tasks:
			e.runTask(t)
		}
	}
}

// runTask drives one miner across its budget of codepoints: skip
// territory a previous match already covered, otherwise attempt a
// match, then account for how far the cursor actually moved. It always
// calls wg.Done() exactly once, mirroring the reference design's
// sem_post(sem_main) at the end of a task.
func (e *Extractor) runTask(t *task) {
	defer e.wg.Done()

	s := t.mnr.Stream()
	budget := t.budget

	for budget > 0 && !s.AtEOF() {
		skipTo := t.mnr.PosLast()
		if end := t.mnr.EndLast(); end > skipTo {
			skipTo = end
		}
		if s.Pos() < skipTo {
			s.NextChar()
			budget--
			continue
		}

		mark := s.Mark()
		startCp := s.CodepointOffset()

		occ := t.mnr.Run()
		if occ != nil {
			e.writeOccurrence(t.pout, occ)
		}

		delta := int(s.CodepointOffset() - startCp)
		if delta > 0 {
			budget -= delta - 1
			s.PrevChar() // re-examine the boundary next iteration
		} else {
			// The matcher made no progress at all; restore the mark and
			// force one codepoint forward so the loop still terminates
			// on a budget that would otherwise never drain. Miners are
			// expected to always make forward progress on failure (see
			// regex's noMatch and wordset's token-consuming scan), so
			// this path is a backstop, not the common case.
			s.Reset(mark)
			if !s.AtEOF() {
				s.NextChar()
			}
		}
		budget--
	}
}

// writeOccurrence applies thread-local enclosed gating (when
// NoEnclosedOccurrences is set) against the high-water mark left by
// earlier batches, then appends the survivor under mutex_pout.
func (e *Extractor) writeOccurrence(pout *outputBuffer, occ *occurrence.Occurrence) {
	if Flags(e.flags.Load())&NoEnclosedOccurrences != 0 {
		if occ.End() <= e.lastMax.Load() {
			e.stats.occurrencesFiltered.Add(1)
			return
		}
	}
	pout.mu.Lock()
	pout.out = append(pout.out, occ)
	pout.mu.Unlock()
	e.stats.occurrencesEmitted.Add(1)
}
