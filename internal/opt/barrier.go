package opt

import "sync/atomic"

// FullBarrier orders every load and store issued before it against every
// load and store issued after it.
//
// sync/atomic read-modify-write operations are sequentially consistent, so
// an atomic add on a private word serves as the fence. The word lives on
// the caller's stack and is never shared.
//
//go:nosplit
func FullBarrier() {
	var fence uint32
	atomic.AddUint32(&fence, 0)
}
