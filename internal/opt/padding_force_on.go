//go:build xatomic_enable_padding && !xatomic_disable_padding

package opt

import (
	"unsafe"
)

const Padded_ = true

// LockSlot_ holds one spin-lock word of a lock table.
// Padding is force-enabled via the xatomic_enable_padding build tag.
// Use: go build -tags=xatomic_enable_padding
type LockSlot_ struct {
	W uint32 // lock word, accessed atomically
	_ [(CacheLineSize_ - unsafe.Sizeof(struct {
		W uint32
	}{})%CacheLineSize_) % CacheLineSize_]byte
}
