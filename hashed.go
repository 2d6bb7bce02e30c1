package xatomic

import (
	"unsafe"

	"github.com/llxisdsh/xatomic/internal/opt"
	"github.com/llxisdsh/xatomic/internal/spin"
)

// hashedLocks is the number of locks shared by all hashed words.
// Must be a power of two.
const hashedLocks = 16

const hashedLockBit = 1

// lockTable serializes hashed operations. Words whose addresses hash to
// the same slot share a lock; that costs contention, never correctness.
var lockTable [hashedLocks]opt.LockSlot_

// hashed is the generic backend for targets that lack double-word
// exclusive access: every operation, loads and stores included, runs
// under a spin lock picked by the word's address, so a 64-bit value is
// never observed half written even when the hardware moves it as two
// 32-bit halves.
type hashed[T word] struct{}

//go:nosplit
func lockFor[T word](addr *T) *uint32 {
	// Addresses are at least 4-byte aligned and usually 8, so the low
	// three bits carry no information.
	idx := (uintptr(unsafe.Pointer(addr)) >> 3) & (hashedLocks - 1)
	return &lockTable[idx].W
}

func (hashed[T]) load(addr *T) T {
	l := lockFor(addr)
	spin.Lock(l, hashedLockBit)
	val := *addr
	spin.Unlock(l, hashedLockBit)
	return val
}

func (hashed[T]) store(addr *T, v T) {
	l := lockFor(addr)
	spin.Lock(l, hashedLockBit)
	*addr = v
	spin.Unlock(l, hashedLockBit)
}

// Every hashed access already holds the lock, whose acquire and release
// give loads and stores the required ordering.
func (h hashed[T]) loadAcquire(addr *T) T {
	return h.load(addr)
}

func (h hashed[T]) storeRelease(addr *T, v T) {
	h.store(addr, v)
}

func (hashed[T]) add(addr *T, delta T) {
	l := lockFor(addr)
	spin.Lock(l, hashedLockBit)
	*addr += delta
	spin.Unlock(l, hashedLockBit)
}

func (hashed[T]) sub(addr *T, delta T) {
	l := lockFor(addr)
	spin.Lock(l, hashedLockBit)
	*addr -= delta
	spin.Unlock(l, hashedLockBit)
}

func (hashed[T]) addReturn(addr *T, delta T) T {
	l := lockFor(addr)
	spin.Lock(l, hashedLockBit)
	val := *addr + delta
	*addr = val
	spin.Unlock(l, hashedLockBit)
	return val
}

func (hashed[T]) subReturn(addr *T, delta T) T {
	l := lockFor(addr)
	spin.Lock(l, hashedLockBit)
	val := *addr - delta
	*addr = val
	spin.Unlock(l, hashedLockBit)
	return val
}

func (hashed[T]) cmpxchg(addr *T, old, new T) T {
	l := lockFor(addr)
	spin.Lock(l, hashedLockBit)
	val := *addr
	if val == old {
		*addr = new
	}
	spin.Unlock(l, hashedLockBit)
	return val
}

func (hashed[T]) xchg(addr *T, new T) T {
	l := lockFor(addr)
	spin.Lock(l, hashedLockBit)
	val := *addr
	*addr = new
	spin.Unlock(l, hashedLockBit)
	return val
}

func (hashed[T]) clearMask(addr *T, mask T) {
	l := lockFor(addr)
	spin.Lock(l, hashedLockBit)
	*addr &^= mask
	spin.Unlock(l, hashedLockBit)
}

func (hashed[T]) push(addr *T, value T, width uint) {
	l := lockFor(addr)
	spin.Lock(l, hashedLockBit)
	*addr = *addr<<width | value&lowMask[T](width)
	spin.Unlock(l, hashedLockBit)
}

func (hashed[T]) pop(addr *T, width uint) T {
	l := lockFor(addr)
	spin.Lock(l, hashedLockBit)
	val := *addr
	*addr = shr(val, width)
	spin.Unlock(l, hashedLockBit)
	return val & lowMask[T](width)
}

func (hashed[T]) decIfPositive(addr *T) T {
	l := lockFor(addr)
	spin.Lock(l, hashedLockBit)
	val := *addr - 1
	if !negative(val) {
		*addr = val
	}
	spin.Unlock(l, hashedLockBit)
	return val
}

func (hashed[T]) addUnless(addr *T, delta, u T) bool {
	l := lockFor(addr)
	spin.Lock(l, hashedLockBit)
	val := *addr
	ok := val != u
	if ok {
		*addr = val + delta
	}
	spin.Unlock(l, hashedLockBit)
	return ok
}
