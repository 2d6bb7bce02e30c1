package xatomic

import (
	"unsafe"

	"github.com/llxisdsh/xatomic/internal/opt"
)

// ClearMask atomically clears the bits set in mask from the word at addr.
// It does not order surrounding memory accesses.
//
// addr is caller-owned storage, typically a flags word embedded in some
// larger structure. 8-byte words must be 8-byte aligned, and once a word is
// shared every access to it must be atomic. With the xatomic_generic64 tag
// 8-byte words go through the same lock table as Uint64, so they must not
// be mixed with sync/atomic operations on the same address.
func ClearMask[T ~int32 | ~uint32 | ~int64 | ~uint64 | ~uintptr](addr *T, mask T) {
	if unsafe.Sizeof(T(0)) == 8 && opt.Generic64_ {
		hashed[T]{}.clearMask(addr, mask)
		return
	}
	native[T]{}.clearMask(addr, mask)
}
