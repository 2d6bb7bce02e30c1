// Package spin provides bit-locks embedded in a uint32 word.
//
// A lock is held while (word & mask) != 0. The remaining bits of the word
// are free for the owner to use, which is how the interrupt mask word keeps
// its saved flags next to its lock bit.
package spin

import (
	"runtime"
	"sync/atomic"
	_ "unsafe" // for linkname
)

// Lock acquires the bit-lock on addr using mask and returns the word as it
// was just before the lock bit was set.
// It spins until the lock can be acquired.
func Lock(addr *uint32, mask uint32) (prev uint32) {
	cur := atomic.LoadUint32(addr)
	if atomic.CompareAndSwapUint32(addr, cur&^mask, cur|mask) {
		return cur &^ mask
	}
	return slowLock(addr, mask)
}

func slowLock(addr *uint32, mask uint32) uint32 {
	var spins int
	for {
		if prev, ok := TryLock(addr, mask); ok {
			return prev
		}
		delay(&spins)
	}
}

// TryLock attempts to take the bit-lock once. It only fails when the lock
// bit is observed set; a lost race on the other bits is retried.
//
//go:nosplit
func TryLock(addr *uint32, mask uint32) (prev uint32, ok bool) {
	for {
		cur := atomic.LoadUint32(addr)
		if cur&mask != 0 {
			return cur, false
		}
		if atomic.CompareAndSwapUint32(addr, cur, cur|mask) {
			return cur, true
		}
	}
}

// Unlock releases the bit-lock by clearing mask.
// It preserves other bits in the word.
//
//go:nosplit
func Unlock(addr *uint32, mask uint32) {
	atomic.StoreUint32(addr, atomic.LoadUint32(addr)&^mask)
}

// UnlockWithStore releases the bit-lock and simultaneously replaces the
// other bits of the word with value.
//
//go:nosplit
func UnlockWithStore(addr *uint32, mask uint32, value uint32) {
	atomic.StoreUint32(addr, value&^mask)
}

// Held reports whether the bit-lock is currently taken by anyone.
//
//go:nosplit
func Held(addr *uint32, mask uint32) bool {
	return atomic.LoadUint32(addr)&mask != 0
}

func trySpin(spins *int) bool {
	if runtime_canSpin(*spins) {
		*spins++
		runtime_doSpin()
		return true
	}
	return false
}

// delay backs off between attempts. Critical sections guarded by these
// locks are a handful of instructions long, so after active spinning the
// waiter yields instead of sleeping.
func delay(spins *int) {
	if trySpin(spins) {
		return
	}
	*spins = 0
	runtime.Gosched()
}

// nolint:all
//
//go:linkname runtime_canSpin sync.runtime_canSpin
//goland:noinspection ALL
func runtime_canSpin(i int) bool

// nolint:all
//
//go:linkname runtime_doSpin sync.runtime_doSpin
//goland:noinspection ALL
func runtime_doSpin()
