package extractor

import (
	"errors"
	"fmt"
)

// ErrNoStream is returned by Next when called before SetStream.
var ErrNoStream = errors.New("extractor: no stream installed")

// ErrStreamFailed is returned by SetStream when the supplied cursor is
// already latched in a failed state.
var ErrStreamFailed = errors.New("extractor: stream is in a failed state")

// ErrDestroyed is returned by any public method called after Destroy.
var ErrDestroyed = errors.New("extractor: extractor has been destroyed")

// UnknownFlagError is returned by SetFlags/UnsetFlags when mask contains
// bits outside the known flag set.
type UnknownFlagError struct {
	Mask Flags
}

func (e *UnknownFlagError) Error() string {
	return fmt.Sprintf("extractor: unknown flag bits: %#x", uint32(e.Mask&^allFlags))
}

// MinerLoadError wraps a failure instantiating a miner from a plugin
// artifact, attributing it to the (artifact, symbol) pair that failed.
type MinerLoadError struct {
	Artifact string
	Symbol   string
	Err      error
}

func (e *MinerLoadError) Error() string {
	return fmt.Sprintf("extractor: load miner %q from %q: %v", e.Symbol, e.Artifact, e.Err)
}

func (e *MinerLoadError) Unwrap() error { return e.Err }
