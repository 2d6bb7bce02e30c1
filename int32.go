package xatomic

// Int32 is a 32-bit atomic counter.
//
// The zero value is a counter holding 0. Every value another context can
// observe is the result of one complete operation; no partial update is
// ever visible.
//
// The same word doubles as a small bit-field queue through Push and Pop.
// Widths are the caller's business: nothing tracks how many bits are in
// use, and pushing past 32 bits silently drops the oldest fields.
//
// All access must go through the methods. An Int32 must not be copied
// after first use.
type Int32 struct {
	_ noCopy
	v int32
}

// Load returns the current value. It is a plain load with no ordering
// beyond that of ordinary loads.
func (a *Int32) Load() int32 {
	return backend32{}.load(&a.v)
}

// Store sets the value. It is a plain store.
func (a *Int32) Store(v int32) {
	backend32{}.store(&a.v, v)
}

// LoadAcquire returns the current value. Accesses after it in program
// order are not reordered before it.
func (a *Int32) LoadAcquire() int32 {
	return backend32{}.loadAcquire(&a.v)
}

// StoreRelease sets the value. Accesses before it in program order are
// not reordered after it, so a reader that sees v with LoadAcquire also
// sees everything written before the store.
func (a *Int32) StoreRelease(v int32) {
	backend32{}.storeRelease(&a.v, v)
}

// Add adds delta. It does not order surrounding memory accesses.
func (a *Int32) Add(delta int32) {
	backend32{}.add(&a.v, delta)
}

// Sub subtracts delta. It does not order surrounding memory accesses.
func (a *Int32) Sub(delta int32) {
	backend32{}.sub(&a.v, delta)
}

// AddReturn adds delta and returns the new value.
// It acts as a full memory barrier.
func (a *Int32) AddReturn(delta int32) int32 {
	return backend32{}.addReturn(&a.v, delta)
}

// SubReturn subtracts delta and returns the new value.
// It acts as a full memory barrier.
func (a *Int32) SubReturn(delta int32) int32 {
	return backend32{}.subReturn(&a.v, delta)
}

// CompareAndSwap sets the value to new if it currently equals old.
// It returns the value seen at the comparison, so the swap happened iff
// prev == old. It acts as a full memory barrier.
func (a *Int32) CompareAndSwap(old, new int32) (prev int32) {
	return backend32{}.cmpxchg(&a.v, old, new)
}

// Swap sets the value to new and returns the previous value.
// It acts as a full memory barrier.
func (a *Int32) Swap(new int32) (old int32) {
	return backend32{}.xchg(&a.v, new)
}

// ClearMask clears the bits set in mask.
func (a *Int32) ClearMask(mask uint32) {
	backend32{}.clearMask(&a.v, int32(mask))
}

// Push shifts the counter left by width bits and stores the low width bits
// of value in the freed space.
func (a *Int32) Push(value int32, width uint) {
	backend32{}.push(&a.v, value, width)
}

// Pop shifts the counter right by width bits, filling with zeros, and
// returns the low width bits it shifted out.
// It acts as a full memory barrier.
func (a *Int32) Pop(width uint) int32 {
	return backend32{}.pop(&a.v, width)
}

// AddUnless adds delta unless the value equals u, and reports whether it
// did.
func (a *Int32) AddUnless(delta, u int32) bool {
	return backend32{}.addUnless(&a.v, delta, u)
}

// DecIfPositive decrements the counter unless that would make it negative.
// It returns the decremented value either way, so a negative result means
// the counter was left untouched.
func (a *Int32) DecIfPositive() int32 {
	return backend32{}.decIfPositive(&a.v)
}

// Inc adds one. It does not order surrounding memory accesses.
func (a *Int32) Inc() { a.Add(1) }

// Dec subtracts one. It does not order surrounding memory accesses.
func (a *Int32) Dec() { a.Sub(1) }

// IncReturn adds one and returns the new value.
func (a *Int32) IncReturn() int32 { return a.AddReturn(1) }

// DecReturn subtracts one and returns the new value.
func (a *Int32) DecReturn() int32 { return a.SubReturn(1) }

// IncAndTest increments and reports whether the result is zero.
func (a *Int32) IncAndTest() bool { return a.AddReturn(1) == 0 }

// DecAndTest decrements and reports whether the result is zero.
func (a *Int32) DecAndTest() bool { return a.SubReturn(1) == 0 }

// SubAndTest subtracts delta and reports whether the result is zero.
func (a *Int32) SubAndTest(delta int32) bool { return a.SubReturn(delta) == 0 }

// AddNegative adds delta and reports whether the result is negative.
func (a *Int32) AddNegative(delta int32) bool { return a.AddReturn(delta) < 0 }

// IncNotZero increments unless the value is zero, and reports whether it
// did.
func (a *Int32) IncNotZero() bool { return a.AddUnless(1, 0) }
