// Package loader implements plugin artifact loading for the extractor:
// opening a shared object once per path, resolving its factory and Meta
// symbols, and tracking every instantiation so a handle is only ever
// considered unloadable once its last user has released it.
package loader

import (
	"fmt"
	"plugin"
	"sync"

	"github.com/spongedata/goextractor/miner"
)

// Factory is the signature every factory symbol in a plugin artifact
// must have: build a ready-to-register miner from caller-supplied
// params (nil when a miner needs none).
type Factory func(params any) (miner.Miner, error)

// MetaEntry is one (factory symbol name, human label) pair an
// artifact's exported `Meta` symbol must enumerate — one per factory
// it exposes.
type MetaEntry struct {
	Factory string
	Label   string
}

// handle is the bookkeeping for one opened artifact: the plugin handle
// itself, its declared Meta table, and how many live instantiations
// are still using it.
type handle struct {
	plug *plugin.Plugin
	meta []MetaEntry
	refs int
}

// instanceKey identifies one (path, symbol, params) instantiation.
// params must be a comparable value — nil or a pointer, mirroring the
// original's void* identity-by-pointer equality; passing a slice or
// map here panics, same as using one as a Go map key anywhere else.
type instanceKey struct {
	path   string
	symbol string
	params any
}

// Loader opens plugin artifacts lazily and at most once per path.
type Loader struct {
	mu        sync.Mutex
	handles   map[string]*handle
	instances map[instanceKey]bool
}

// New returns an empty Loader.
func New() *Loader {
	return &Loader{handles: map[string]*handle{}, instances: map[instanceKey]bool{}}
}

// Load opens the artifact at path if not already open, resolves symbol
// as a Factory, calls it with params, and returns the resulting miner
// plus the human label Meta declares for symbol (symbol itself if
// Meta has no entry for it). Idempotent on (path, symbol) when params
// is nil: a repeat call with the same key does not grow the handle's
// reference count, matching the spec's add_miner_so contract.
func (l *Loader) Load(path, symbol string, params any) (miner.Miner, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	h, ok := l.handles[path]
	if !ok {
		p, err := plugin.Open(path)
		if err != nil {
			return nil, "", &LoadError{Path: path, Err: err}
		}
		metaSym, err := p.Lookup("Meta")
		if err != nil {
			return nil, "", &SymbolError{Path: path, Symbol: "Meta", Err: err}
		}
		meta, ok := metaSym.(*[]MetaEntry)
		if !ok {
			return nil, "", &SymbolError{Path: path, Symbol: "Meta", Err: fmt.Errorf("want *[]loader.MetaEntry, got %T", metaSym)}
		}
		h = &handle{plug: p, meta: *meta}
		l.handles[path] = h
	}

	factorySym, err := h.plug.Lookup(symbol)
	if err != nil {
		return nil, "", &SymbolError{Path: path, Symbol: symbol, Err: err}
	}
	factory, ok := factorySym.(func(any) (miner.Miner, error))
	if !ok {
		return nil, "", &SymbolError{Path: path, Symbol: symbol, Err: fmt.Errorf("symbol is not a loader.Factory, got %T", factorySym)}
	}

	mn, err := factory(params)
	if err != nil {
		return nil, "", &FactoryError{Path: path, Symbol: symbol, Err: err}
	}

	key := instanceKey{path: path, symbol: symbol, params: params}
	if !l.instances[key] {
		l.instances[key] = true
		h.refs++
	}

	label := symbol
	for _, e := range h.meta {
		if e.Factory == symbol {
			label = e.Label
			break
		}
	}
	return mn, label, nil
}

// Release drops one (path, symbol, params) instantiation. Once a
// handle's last instantiation is released its bookkeeping is dropped;
// Go's plugin package has no dlclose/munmap equivalent, so the process
// keeps the code mapped, but a later Load of the same path opens (and
// re-registers) a fresh handle rather than silently reusing stale
// refcount state.
func (l *Loader) Release(path, symbol string, params any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := instanceKey{path: path, symbol: symbol, params: params}
	if !l.instances[key] {
		return
	}
	delete(l.instances, key)

	if h, ok := l.handles[path]; ok {
		h.refs--
		if h.refs <= 0 {
			delete(l.handles, path)
		}
	}
}
