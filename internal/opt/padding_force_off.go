//go:build xatomic_disable_padding

package opt

const Padded_ = false

// LockSlot_ holds one spin-lock word of a lock table.
// Padding is force-disabled via the xatomic_disable_padding build tag.
// Use: go build -tags=xatomic_disable_padding
type LockSlot_ struct {
	W uint32 // lock word, accessed atomically
}
