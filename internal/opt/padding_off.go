//go:build (386 || arm || mips || mipsle || wasm) && !xatomic_disable_padding && !xatomic_enable_padding

package opt

const Padded_ = false

// LockSlot_ holds one spin-lock word of a lock table.
// Padding is disabled by default for 32-bit architectures
// (386, arm, mips, mipsle, wasm): small caches, and the table is
// rarely contended on the single-core parts these targets usually are.
type LockSlot_ struct {
	W uint32 // lock word, accessed atomically
}
