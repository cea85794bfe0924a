//go:build linux

package stream

import "golang.org/x/sys/unix"

// mapNoReserve adds MAP_NORESERVE where the platform supports it, avoiding
// a swap-space reservation for a read-only mapping.
func mapNoReserve() int {
	return unix.MAP_NORESERVE
}
