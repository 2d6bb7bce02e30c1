package xatomic

import (
	"github.com/llxisdsh/xatomic/internal/opt"
)

// exclusive is the lock-free backend for hardware with an exclusive-access
// load/store pair.
//
// Every read-modify-write is the same loop:
//
//	START -> LOAD -> COMPUTE -> STORE_ATTEMPT -> SUCCESS
//	                                  |
//	                                  +-> RETRY -> LOAD
//
// plus an ABORT edge out of COMPUTE for the operations with a precondition
// (cmpxchg, decIfPositive, addUnless). A failed store means another context
// wrote the word in between and therefore made progress, so the loop is
// lock-free but not wait-free.
type exclusive[T word] struct{}

// loadExclusive reads the word and opens an exclusive window on it.
//
//go:nosplit
func loadExclusive[T word](addr *T) T {
	return loadAtomic(addr)
}

// storeExclusive closes the window opened by loadExclusive. It succeeds
// only if the word still holds seen, i.e. nothing else stored a different
// value since the matching load.
//
//go:nosplit
func storeExclusive[T word](addr *T, seen, v T) bool {
	return cas(addr, seen, v)
}

//go:nosplit
func (exclusive[T]) load(addr *T) T {
	return loadInt(addr)
}

//go:nosplit
func (exclusive[T]) store(addr *T, v T) {
	storeInt(addr, v)
}

// sync/atomic loads and stores are sequentially consistent, which covers
// the one-way ordering of lda/stl.
//
//go:nosplit
func (exclusive[T]) loadAcquire(addr *T) T {
	return loadAtomic(addr)
}

//go:nosplit
func (exclusive[T]) storeRelease(addr *T, v T) {
	storeAtomic(addr, v)
}

//go:nosplit
func (exclusive[T]) add(addr *T, delta T) {
	for {
		old := loadExclusive(addr)
		if storeExclusive(addr, old, old+delta) {
			return
		}
	}
}

//go:nosplit
func (exclusive[T]) sub(addr *T, delta T) {
	for {
		old := loadExclusive(addr)
		if storeExclusive(addr, old, old-delta) {
			return
		}
	}
}

func (exclusive[T]) addReturn(addr *T, delta T) T {
	var result T
	opt.FullBarrier()
	for {
		old := loadExclusive(addr)
		result = old + delta
		if storeExclusive(addr, old, result) {
			break
		}
	}
	opt.FullBarrier()
	return result
}

func (exclusive[T]) subReturn(addr *T, delta T) T {
	var result T
	opt.FullBarrier()
	for {
		old := loadExclusive(addr)
		result = old - delta
		if storeExclusive(addr, old, result) {
			break
		}
	}
	opt.FullBarrier()
	return result
}

// cmpxchg does not retry after a mismatch: the observed value is returned
// straight away.
func (exclusive[T]) cmpxchg(addr *T, old, new T) T {
	var seen T
	opt.FullBarrier()
	for {
		seen = loadExclusive(addr)
		if seen != old {
			break
		}
		if storeExclusive(addr, seen, new) {
			break
		}
	}
	opt.FullBarrier()
	return seen
}

func (exclusive[T]) xchg(addr *T, new T) T {
	var old T
	opt.FullBarrier()
	for {
		old = loadExclusive(addr)
		if storeExclusive(addr, old, new) {
			break
		}
	}
	opt.FullBarrier()
	return old
}

//go:nosplit
func (exclusive[T]) clearMask(addr *T, mask T) {
	for {
		old := loadExclusive(addr)
		if storeExclusive(addr, old, old&^mask) {
			return
		}
	}
}

//go:nosplit
func (exclusive[T]) push(addr *T, value T, width uint) {
	value &= lowMask[T](width)
	for {
		old := loadExclusive(addr)
		if storeExclusive(addr, old, old<<width|value) {
			return
		}
	}
}

func (exclusive[T]) pop(addr *T, width uint) T {
	var old T
	opt.FullBarrier()
	for {
		old = loadExclusive(addr)
		if storeExclusive(addr, old, shr(old, width)) {
			break
		}
	}
	opt.FullBarrier()
	return old & lowMask[T](width)
}

func (exclusive[T]) decIfPositive(addr *T) T {
	var result T
	opt.FullBarrier()
	for {
		old := loadExclusive(addr)
		result = old - 1
		if negative(result) {
			break
		}
		if storeExclusive(addr, old, result) {
			break
		}
	}
	opt.FullBarrier()
	return result
}

func (exclusive[T]) addUnless(addr *T, delta, u T) bool {
	opt.FullBarrier()
	for {
		old := loadExclusive(addr)
		if old == u {
			return false
		}
		if storeExclusive(addr, old, old+delta) {
			break
		}
	}
	opt.FullBarrier()
	return true
}
