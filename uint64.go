package xatomic

import (
	"sync/atomic"
	"unsafe"
)

// Uint64 is a 64-bit atomic counter, 8-byte aligned on every platform.
//
// On targets that move a double word as two 32-bit halves the halves are
// always read and written together; a torn value is never observable.
// The zero value is a counter holding 0. A Uint64 must not be copied after
// first use.
type Uint64 struct {
	_ noCopy
	// v is only used for its layout: atomic.Uint64 carries the 64-bit
	// alignment guarantee that a plain uint64 field lacks on 32-bit
	// platforms.
	v atomic.Uint64
}

//go:nosplit
func (a *Uint64) ptr() *uint64 {
	return (*uint64)(unsafe.Pointer(&a.v))
}

// Load returns the current value.
func (a *Uint64) Load() uint64 {
	return backend64{}.load(a.ptr())
}

// Store sets the value.
func (a *Uint64) Store(v uint64) {
	backend64{}.store(a.ptr(), v)
}

// LoadAcquire returns the current value. Accesses after it in program
// order are not reordered before it.
func (a *Uint64) LoadAcquire() uint64 {
	return backend64{}.loadAcquire(a.ptr())
}

// StoreRelease sets the value. Accesses before it in program order are
// not reordered after it.
func (a *Uint64) StoreRelease(v uint64) {
	backend64{}.storeRelease(a.ptr(), v)
}

// Add adds delta. It does not order surrounding memory accesses.
func (a *Uint64) Add(delta uint64) {
	backend64{}.add(a.ptr(), delta)
}

// Sub subtracts delta. It does not order surrounding memory accesses.
func (a *Uint64) Sub(delta uint64) {
	backend64{}.sub(a.ptr(), delta)
}

// AddReturn adds delta and returns the new value.
// It acts as a full memory barrier.
func (a *Uint64) AddReturn(delta uint64) uint64 {
	return backend64{}.addReturn(a.ptr(), delta)
}

// SubReturn subtracts delta and returns the new value.
// It acts as a full memory barrier.
func (a *Uint64) SubReturn(delta uint64) uint64 {
	return backend64{}.subReturn(a.ptr(), delta)
}

// CompareAndSwap sets the value to new if it currently equals old and
// returns the value seen at the comparison.
// It acts as a full memory barrier.
func (a *Uint64) CompareAndSwap(old, new uint64) (prev uint64) {
	return backend64{}.cmpxchg(a.ptr(), old, new)
}

// Swap sets the value to new and returns the previous value.
// It acts as a full memory barrier.
func (a *Uint64) Swap(new uint64) (old uint64) {
	return backend64{}.xchg(a.ptr(), new)
}

// ClearMask clears the bits set in mask.
func (a *Uint64) ClearMask(mask uint64) {
	backend64{}.clearMask(a.ptr(), mask)
}

// DecIfPositive decrements the counter unless the result, read as a signed
// value, would be negative. It returns the decremented value either way;
// a negative result means nothing was stored.
func (a *Uint64) DecIfPositive() int64 {
	return int64(backend64{}.decIfPositive(a.ptr()))
}

// AddUnless adds delta unless the value equals u, and reports whether it
// did. Only the successful path is fully ordered.
func (a *Uint64) AddUnless(delta, u uint64) bool {
	return backend64{}.addUnless(a.ptr(), delta, u)
}

// Inc adds one. It does not order surrounding memory accesses.
func (a *Uint64) Inc() { a.Add(1) }

// Dec subtracts one. It does not order surrounding memory accesses.
func (a *Uint64) Dec() { a.Sub(1) }

// IncReturn adds one and returns the new value.
func (a *Uint64) IncReturn() uint64 { return a.AddReturn(1) }

// DecReturn subtracts one and returns the new value.
func (a *Uint64) DecReturn() uint64 { return a.SubReturn(1) }

// IncAndTest increments and reports whether the result is zero.
func (a *Uint64) IncAndTest() bool { return a.AddReturn(1) == 0 }

// DecAndTest decrements and reports whether the result is zero.
func (a *Uint64) DecAndTest() bool { return a.SubReturn(1) == 0 }

// SubAndTest subtracts delta and reports whether the result is zero.
func (a *Uint64) SubAndTest(delta uint64) bool { return a.SubReturn(delta) == 0 }

// AddNegative adds delta and reports whether the result, read as a signed
// value, is negative.
func (a *Uint64) AddNegative(delta uint64) bool {
	return negative(a.AddReturn(delta))
}

// IncNotZero increments unless the value is zero, and reports whether it
// did.
func (a *Uint64) IncNotZero() bool { return a.AddUnless(1, 0) }
