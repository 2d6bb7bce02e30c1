package xatomic

import (
	"github.com/llxisdsh/xatomic/internal/irq"
)

// critical is the backend for single-core hardware without exclusive
// access. Each operation masks interrupts, does a plain read-modify-write
// and restores the mask. With one core, preemption is the only source of
// interleaving, and the masked region excludes it.
//
// Building it for a multi-core target is refused; see internal/opt.
type critical[T word] struct{}

//go:nosplit
func (critical[T]) load(addr *T) T {
	return loadInt(addr)
}

func (critical[T]) store(addr *T, v T) {
	flags := irq.Disable()
	storeInt(addr, v)
	irq.Restore(flags)
}

// loadAcquire reads inside a masked region: the mask handoff orders it
// after every store made under an earlier mask.
func (critical[T]) loadAcquire(addr *T) T {
	flags := irq.Disable()
	val := loadIntFast(addr)
	irq.Restore(flags)
	return val
}

func (critical[T]) storeRelease(addr *T, v T) {
	flags := irq.Disable()
	storeInt(addr, v)
	irq.Restore(flags)
}

func (critical[T]) add(addr *T, delta T) {
	flags := irq.Disable()
	storeInt(addr, loadIntFast(addr)+delta)
	irq.Restore(flags)
}

func (critical[T]) sub(addr *T, delta T) {
	flags := irq.Disable()
	storeInt(addr, loadIntFast(addr)-delta)
	irq.Restore(flags)
}

func (critical[T]) addReturn(addr *T, delta T) T {
	flags := irq.Disable()
	val := loadIntFast(addr) + delta
	storeInt(addr, val)
	irq.Restore(flags)
	return val
}

func (critical[T]) subReturn(addr *T, delta T) T {
	flags := irq.Disable()
	val := loadIntFast(addr) - delta
	storeInt(addr, val)
	irq.Restore(flags)
	return val
}

func (critical[T]) cmpxchg(addr *T, old, new T) T {
	flags := irq.Disable()
	ret := loadIntFast(addr)
	if ret == old {
		storeInt(addr, new)
	}
	irq.Restore(flags)
	return ret
}

func (critical[T]) xchg(addr *T, new T) T {
	flags := irq.Disable()
	ret := loadIntFast(addr)
	storeInt(addr, new)
	irq.Restore(flags)
	return ret
}

func (critical[T]) clearMask(addr *T, mask T) {
	flags := irq.Disable()
	storeInt(addr, loadIntFast(addr)&^mask)
	irq.Restore(flags)
}

func (critical[T]) push(addr *T, value T, width uint) {
	flags := irq.Disable()
	storeInt(addr, loadIntFast(addr)<<width|value&lowMask[T](width))
	irq.Restore(flags)
}

func (critical[T]) pop(addr *T, width uint) T {
	flags := irq.Disable()
	result := loadIntFast(addr)
	storeInt(addr, shr(result, width))
	irq.Restore(flags)
	return result & lowMask[T](width)
}

func (critical[T]) decIfPositive(addr *T) T {
	flags := irq.Disable()
	result := loadIntFast(addr) - 1
	if !negative(result) {
		storeInt(addr, result)
	}
	irq.Restore(flags)
	return result
}

func (critical[T]) addUnless(addr *T, delta, u T) bool {
	flags := irq.Disable()
	cur := loadIntFast(addr)
	ok := cur != u
	if ok {
		storeInt(addr, cur+delta)
	}
	irq.Restore(flags)
	return ok
}
