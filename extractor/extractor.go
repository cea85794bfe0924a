// Package extractor implements the concurrent batch orchestrator: a
// fixed worker pool drives every registered miner across the shared
// input stream one batch of codepoints at a time, merging, filtering
// and (optionally) sorting their occurrences into a single result.
package extractor

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/spongedata/goextractor/loader"
	"github.com/spongedata/goextractor/miner"
	"github.com/spongedata/goextractor/occurrence"
	"github.com/spongedata/goextractor/stream"
)

// Flags are the bits accepted by SetFlags/UnsetFlags.
type Flags uint32

const (
	// NoEnclosedOccurrences drops any occurrence fully contained in
	// another, both within a batch and against the high-water mark left
	// by earlier batches.
	NoEnclosedOccurrences Flags = 1 << iota
	// SortResults stably sorts a batch's occurrences by (byte offset,
	// byte length) before returning it.
	SortResults
)

const allFlags = NoEnclosedOccurrences | SortResults

// minerEntry is one registered miner plus enough provenance to release
// its plugin artifact (if any) on Destroy.
type minerEntry struct {
	m        miner.Miner
	artifact string // empty for miners registered directly via AddMiner
	symbol   string
	params   any
}

// Extractor drives a fixed worker pool over every registered miner,
// batch by batch, against a single shared input stream.
type Extractor struct {
	mu     sync.Mutex // serializes every public call below (mutex_extractor)
	cfg    Config
	ld     *loader.Loader
	str    stream.Stream
	miners []*minerEntry

	flags   atomic.Uint32
	lastMax atomic.Uint64
	stats   stats

	tasks chan *task
	quit  chan struct{}

	wg        sync.WaitGroup // per-batch completion barrier (sem_main)
	workersWG sync.WaitGroup // tracks the pool for a clean Destroy

	destroyed bool
}

// NewExtractor starts cfg.Workers (or the online CPU count, if unset)
// goroutines and returns an Extractor ready to accept miners and a
// stream.
func NewExtractor(cfg Config) *Extractor {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultConfig().Workers
	}
	e := &Extractor{
		cfg:   cfg,
		ld:    loader.New(),
		tasks: make(chan *task),
		quit:  make(chan struct{}),
	}
	e.workersWG.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go e.workerLoop()
	}
	return e
}

// SetStream installs s as the shared input, rejecting a cursor already
// latched in a failed state, and gives every already-registered miner a
// private cursor over the same bytes synchronized to s's position.
func (e *Extractor) SetStream(s stream.Stream) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return ErrDestroyed
	}
	if s.State()&stream.Failed != 0 {
		return ErrStreamFailed
	}
	e.str = s
	e.lastMax.Store(0)
	for _, me := range e.miners {
		installMinerStream(me.m, s)
	}
	return nil
}

// UnsetStream drops the shared stream reference. Registered miners keep
// their private cursors until the next SetStream.
func (e *Extractor) UnsetStream() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.str = nil
}

// AddMinerSO loads (or reuses) the plugin artifact at path, resolves
// symbol as a factory, instantiates it with params, and registers the
// result. A repeat call with the same (path, symbol) and nil params is
// a no-op — the miner set never grows a duplicate entry for it.
func (e *Extractor) AddMinerSO(path, symbol string, params any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return ErrDestroyed
	}
	if params == nil {
		for _, me := range e.miners {
			if me.artifact == path && me.symbol == symbol && me.params == nil {
				return nil
			}
		}
	}

	mn, _, err := e.ld.Load(path, symbol, params)
	if err != nil {
		return &MinerLoadError{Artifact: path, Symbol: symbol, Err: err}
	}
	if e.str != nil {
		installMinerStream(mn, e.str)
	}
	e.miners = append(e.miners, &minerEntry{m: mn, artifact: path, symbol: symbol, params: params})
	return nil
}

// AddMiner registers an already-constructed miner directly, bypassing
// plugin loading entirely. This is the path tests and any in-process
// caller use; it carries no plugin provenance, so Destroy never tries
// to release it through the loader.
func (e *Extractor) AddMiner(m miner.Miner) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.destroyed {
		return ErrDestroyed
	}
	if e.str != nil {
		installMinerStream(m, e.str)
	}
	e.miners = append(e.miners, &minerEntry{m: m})
	return nil
}

// SetFlags ORs mask into the active flag set. An unknown bit is
// rejected and leaves the flag set unchanged.
func (e *Extractor) SetFlags(mask Flags) error {
	if mask&^allFlags != 0 {
		return &UnknownFlagError{Mask: mask}
	}
	for {
		old := e.flags.Load()
		if e.flags.CompareAndSwap(old, old|uint32(mask)) {
			return nil
		}
	}
}

// UnsetFlags clears mask from the active flag set.
func (e *Extractor) UnsetFlags(mask Flags) error {
	if mask&^allFlags != 0 {
		return &UnknownFlagError{Mask: mask}
	}
	for {
		old := e.flags.Load()
		if e.flags.CompareAndSwap(old, old&^uint32(mask)) {
			return nil
		}
	}
}

// Next runs one batch of up to `batch` codepoints across every
// registered miner and returns their merged occurrences, filtered and
// sorted per the active flags.
func (e *Extractor) Next(batch int) ([]*occurrence.Occurrence, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.destroyed {
		return nil, ErrDestroyed
	}
	if e.str == nil {
		return nil, ErrNoStream
	}
	if batch <= 0 || len(e.miners) == 0 {
		return nil, nil
	}

	pout := &outputBuffer{out: make([]*occurrence.Occurrence, 0, batch*len(e.miners)+1)}

	e.wg.Add(len(e.miners))
	for _, me := range e.miners {
		resyncMinerCursor(me.m, e.str)
		e.tasks <- &task{mnr: me.m, budget: batch, pout: pout}
	}

	e.str.Move(int64(batch))

	e.wg.Wait()

	out := pout.out
	if Flags(e.flags.Load())&NoEnclosedOccurrences != 0 {
		out = e.applyEnclosedFilter(out)
		e.bumpLastMax(out)
	}
	if Flags(e.flags.Load())&SortResults != 0 {
		sort.SliceStable(out, func(i, j int) bool { return occurrence.Compare(out[i], out[j]) < 0 })
	}

	e.stats.batchesRun.Add(1)
	return out, nil
}

func (e *Extractor) bumpLastMax(out []*occurrence.Occurrence) {
	var max uint64
	for _, o := range out {
		if end := o.End(); end > max {
			max = end
		}
	}
	for {
		cur := e.lastMax.Load()
		if max <= cur {
			return
		}
		if e.lastMax.CompareAndSwap(cur, max) {
			return
		}
	}
}

// Destroy signals every worker to stop after its in-flight task,
// releases every plugin-backed miner's artifact reference, and blocks
// until the pool has fully drained. A destroyed Extractor rejects every
// further public call.
func (e *Extractor) Destroy() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.destroyed = true
	close(e.quit)
	for _, me := range e.miners {
		if me.artifact != "" {
			e.ld.Release(me.artifact, me.symbol, me.params)
		}
	}
	e.miners = nil
	e.mu.Unlock()
	e.workersWG.Wait()
}

// installMinerStream gives m a fresh private cursor over src's backing
// bytes, positioned at src's current offset. Used when a miner is
// registered (or the shared stream is replaced), never on a per-batch
// resync — SetStream resets a miner's pos_last/end_last bookkeeping,
// which per-batch resyncs must NOT do.
func installMinerStream(m miner.Miner, src stream.Stream) {
	ms := stream.OpenBuffer(src.Bytes())
	m.SetStream(ms)
	resyncMinerCursor(m, src)
}

// resyncMinerCursor moves m's existing private cursor to src's current
// position without touching the miner's pos_last/end_last state, so a
// match tail that ran past the previous batch boundary still gates the
// next batch's skip logic correctly.
func resyncMinerCursor(m miner.Miner, src stream.Stream) {
	m.Stream().Reset(stream.Mark{
		Pos:             src.Pos(),
		CodepointOffset: src.CodepointOffset(),
		Flags:           src.State(),
	})
}
