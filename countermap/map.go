//go:build amd64 || arm64 || loong64 || mips64 || mips64le || ppc64 || ppc64le || riscv64 || s390x

// Package countermap keeps a family of xatomic.Uint64 counters addressed by
// key, such as per-peer reference counts or per-event tallies.
//
// The map itself is github.com/llxisdsh/pb, which only builds for 64-bit
// targets; the counters in package xatomic have no such limit.
package countermap

import (
	"github.com/llxisdsh/pb"

	"github.com/llxisdsh/xatomic"
)

// Map is a keyed set of independent counters.
//
// Counters are created on first use and stay at a fixed address until
// deleted, so a caller may keep the *xatomic.Uint64 returned by Counter and
// skip the map lookup on the hot path. Snapshot and Range see every counter
// at some instant, but not all at the same one.
//
// Concurrent first use of keys is reported by the race detector: pb reads
// its bucket metadata without synchronization the detector can see. The
// counters themselves are race-clean.
//
// The zero value is ready to use.
type Map[K comparable] struct {
	m pb.MapOf[K, *xatomic.Uint64]
}

// Counter returns the counter for key, creating it at zero if needed.
func (c *Map[K]) Counter(key K) *xatomic.Uint64 {
	var ctr *xatomic.Uint64
	c.m.ProcessEntry(
		key,
		func(l *pb.EntryOf[K, *xatomic.Uint64]) (*pb.EntryOf[K, *xatomic.Uint64], *xatomic.Uint64, bool) {
			if l != nil {
				ctr = l.Value
				return l, ctr, true
			}
			ctr = &xatomic.Uint64{}
			return &pb.EntryOf[K, *xatomic.Uint64]{Value: ctr}, ctr, false
		},
	)
	return ctr
}

// Add adds delta to the counter for key and returns the new value.
func (c *Map[K]) Add(key K, delta uint64) uint64 {
	return c.Counter(key).AddReturn(delta)
}

// Inc increments the counter for key and returns the new value.
func (c *Map[K]) Inc(key K) uint64 {
	return c.Add(key, 1)
}

// Load returns the value of the counter for key. A key never counted reads
// as zero and is not created.
func (c *Map[K]) Load(key K) uint64 {
	ctr, ok := c.m.Load(key)
	if !ok {
		return 0
	}
	return ctr.Load()
}

// Delete drops the counter for key. Holders of its *xatomic.Uint64 keep a
// valid counter that is no longer reachable from the map.
func (c *Map[K]) Delete(key K) {
	c.m.Delete(key)
}

// Len returns the number of counters.
func (c *Map[K]) Len() int {
	return c.m.Size()
}

// Range calls yield for every counter until yield returns false.
func (c *Map[K]) Range(yield func(key K, value uint64) bool) {
	c.m.Range(func(key K, ctr *xatomic.Uint64) bool {
		return yield(key, ctr.Load())
	})
}

// Snapshot copies every counter value into a plain map.
func (c *Map[K]) Snapshot() map[K]uint64 {
	out := make(map[K]uint64, c.m.Size())
	c.Range(func(key K, value uint64) bool {
		out[key] = value
		return true
	})
	return out
}
