package extractor

import "github.com/spongedata/goextractor/occurrence"

// applyEnclosedFilter runs the batch-level O(n^2) sweep: for every
// ordered pair, if one occurrence is enclosed in the other, the
// enclosed one is dropped. Identical spans under different labels
// survive, since occurrence.Encloses never considers a span enclosed
// in an identical one.
func (e *Extractor) applyEnclosedFilter(in []*occurrence.Occurrence) []*occurrence.Occurrence {
	drop := make([]bool, len(in))
	for i := range in {
		for j := range in {
			if i == j {
				continue
			}
			if occurrence.Encloses(in[j], in[i]) {
				drop[i] = true
				break
			}
		}
	}

	out := in[:0]
	for i, o := range in {
		if drop[i] {
			e.stats.occurrencesFiltered.Add(1)
			continue
		}
		out = append(out, o)
	}
	return out
}
