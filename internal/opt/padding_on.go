//go:build !(386 || arm || mips || mipsle || wasm) && !xatomic_disable_padding && !xatomic_enable_padding

package opt

import (
	"unsafe"
)

const Padded_ = true

// LockSlot_ holds one spin-lock word of a lock table.
// Padding is automatically enabled for architectures that are NOT:
// - 32-bit architectures (386, arm, mips, mipsle, wasm)
//
// Enabled for: amd64, arm64, s390x, ppc64, ppc64le, riscv64, loong64, mips64, etc.
type LockSlot_ struct {
	W uint32 // lock word, accessed atomically
	_ [(CacheLineSize_ - unsafe.Sizeof(struct {
		W uint32
	}{})%CacheLineSize_) % CacheLineSize_]byte
}
