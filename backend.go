package xatomic

import (
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/llxisdsh/xatomic/internal/opt"
)

// word is the set of integer types a backend can operate on.
// Only 4- and 8-byte widths exist.
type word interface {
	~int32 | ~uint32 | ~int64 | ~uint64 | ~uintptr
}

// backend is the contract every strategy implements for one word width.
//
// Implementations are zero-size structs. The strategy in use is bound by
// type alias at build time (see select_*.go), so callers reach the
// concrete methods directly and never pay for dynamic dispatch.
type backend[T word] interface {
	// load and store are plain accesses with no ordering beyond that of
	// ordinary loads and stores.
	load(addr *T) T
	store(addr *T, v T)

	// loadAcquire orders every later access after the load; storeRelease
	// orders every earlier access before the store. A value published with
	// storeRelease and observed with loadAcquire carries the writer's prior
	// stores with it.
	loadAcquire(addr *T) T
	storeRelease(addr *T, v T)

	// add and sub carry no barrier.
	add(addr *T, delta T)
	sub(addr *T, delta T)

	// addReturn and subReturn return the new value and are fully ordered.
	addReturn(addr *T, delta T) T
	subReturn(addr *T, delta T) T

	// cmpxchg stores new only if the current value equals old, and returns
	// the value observed at the comparison. Fully ordered.
	cmpxchg(addr *T, old, new T) T

	// xchg stores new and returns the previous value. Fully ordered.
	xchg(addr *T, new T) T

	// clearMask clears the bits set in mask. No barrier.
	clearMask(addr *T, mask T)

	// push shifts the word left by width and ors in the low width bits of
	// value. No barrier.
	push(addr *T, value T, width uint)

	// pop shifts the word right by width and returns the low width bits of
	// the previous value. Fully ordered.
	pop(addr *T, width uint) T

	// decIfPositive returns the current value minus one, storing it only if
	// the result is not negative. Fully ordered.
	decIfPositive(addr *T) T

	// addUnless adds delta unless the current value equals u, reporting
	// whether it did. Fully ordered when it succeeds.
	addUnless(addr *T, delta, u T) bool
}

// backend32 serves Int32.
type backend32 = native[int32]

var (
	_ backend[int32]  = exclusive[int32]{}
	_ backend[uint64] = exclusive[uint64]{}
	_ backend[int32]  = critical[int32]{}
	_ backend[uint64] = critical[uint64]{}
	_ backend[int32]  = hashed[int32]{}
	_ backend[uint64] = hashed[uint64]{}
)

// ============================================================================
// Width Utilities
// ============================================================================

const (
	intSize = 32 << (^uint(0) >> 63) // 32 or 64
)

// bitsOf returns the width of T in bits.
//
//go:nosplit
func bitsOf[T word]() uint {
	return uint(unsafe.Sizeof(T(0))) * 8
}

// lowMask returns a word with the low width bits set.
// Widths at or beyond the word size yield all ones.
//
//go:nosplit
func lowMask[T word](width uint) T {
	return T(uint64(1)<<width - 1)
}

// shr shifts v right by width, filling with zeros regardless of whether T
// is signed.
//
//go:nosplit
func shr[T word](v T, width uint) T {
	return T((uint64(v) & (uint64(1)<<bitsOf[T]() - 1)) >> width)
}

// negative reports whether the sign bit of v is set, treating unsigned
// words as two's complement.
//
//go:nosplit
func negative[T word](v T) bool {
	return uint64(v)>>(bitsOf[T]()-1)&1 != 0
}

// ============================================================================
// Atomic Utilities
// ============================================================================

// isTSO_ detects TSO architectures; on TSO, plain reads/writes are safe for
// native word-sized integers
const isTSO_ = !opt.Race_ &&
	(runtime.GOARCH == "amd64" ||
		runtime.GOARCH == "386" ||
		runtime.GOARCH == "s390x")

//go:nosplit
func loadAtomic[T word](addr *T) T {
	if unsafe.Sizeof(T(0)) == 4 {
		return T(atomic.LoadUint32((*uint32)(unsafe.Pointer(addr))))
	} else {
		return T(atomic.LoadUint64((*uint64)(unsafe.Pointer(addr))))
	}
}

//go:nosplit
func storeAtomic[T word](addr *T, val T) {
	if unsafe.Sizeof(T(0)) == 4 {
		atomic.StoreUint32((*uint32)(unsafe.Pointer(addr)), uint32(val))
	} else {
		atomic.StoreUint64((*uint64)(unsafe.Pointer(addr)), uint64(val))
	}
}

//go:nosplit
func cas[T word](addr *T, old, new T) bool {
	if unsafe.Sizeof(T(0)) == 4 {
		return atomic.CompareAndSwapUint32(
			(*uint32)(unsafe.Pointer(addr)), uint32(old), uint32(new))
	} else {
		return atomic.CompareAndSwapUint64(
			(*uint64)(unsafe.Pointer(addr)), uint64(old), uint64(new))
	}
}

// loadInt aligned integer load; plain on TSO when width matches,
// otherwise atomic
//
//go:nosplit
func loadInt[T word](addr *T) T {
	if opt.Race_ {
		return loadAtomic(addr)
	} else {
		if unsafe.Sizeof(T(0)) == 4 {
			if isTSO_ {
				return *addr
			} else {
				return loadAtomic(addr)
			}
		} else {
			if isTSO_ && intSize == 64 {
				return *addr
			} else {
				return loadAtomic(addr)
			}
		}
	}
}

// storeInt aligned integer store; plain on TSO when width matches,
// otherwise atomic
//
//go:nosplit
func storeInt[T word](addr *T, val T) {
	if opt.Race_ {
		storeAtomic(addr, val)
	} else {
		if unsafe.Sizeof(T(0)) == 4 {
			if isTSO_ {
				*addr = val
			} else {
				storeAtomic(addr, val)
			}
		} else {
			if isTSO_ && intSize == 64 {
				*addr = val
			} else {
				storeAtomic(addr, val)
			}
		}
	}
}

// loadIntFast performs a non-atomic read, safe only when the caller holds
// a relevant lock or has interrupts masked.
//
//go:nosplit
func loadIntFast[T word](addr *T) T {
	if opt.Race_ {
		return loadInt(addr)
	} else {
		return *addr
	}
}

// Concurrency variable access rules for the locked backends
//  1. A counter word is only ever written inside a masked region or while
//     holding its table lock, but Load may run outside of it:
//     - Writes inside the region must be atomic (storeInt).
//     - Reads inside the region may be plain (loadIntFast).
//  2. The hashed table takes the lock for Load as well, so every access is
//     covered and plain reads and writes are sufficient there.

// ============================================================================
// Locker Utilities
// ============================================================================

// noCopy may be added to structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
//
// Note that it must not be embedded, due to the Lock and Unlock methods.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
