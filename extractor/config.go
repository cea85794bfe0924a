package extractor

import "runtime"

// Config sizes an Extractor's worker pool and default batch granularity.
type Config struct {
	// Workers is the fixed number of goroutines draining the task
	// channel. Zero means DefaultConfig's online-CPU count.
	Workers int
	// BatchSize is used by callers that want a canonical granularity for
	// Next; the Extractor itself only ever batches by the size Next is
	// called with.
	BatchSize int
}

// DefaultConfig sizes the worker pool to the online CPU count, mirroring
// the reference extractor's default thread count.
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU(), BatchSize: 4096}
}
