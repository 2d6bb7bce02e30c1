// Package irq models the local interrupt mask of a single-core target.
//
// Go code has no interrupt flag to clear, so the mask is a process-wide
// word: bit 31 is the "interrupts masked" bit and doubles as a spin-lock
// bit, the low bits carry the flags saved by the masking context. While one
// goroutine holds the mask no other goroutine can enter a masked region,
// which is exactly the exclusion a single core gets from disabling
// interrupts.
package irq

import (
	"github.com/llxisdsh/xatomic/internal/spin"
)

const maskedBit = 1 << 31

// State is the flags word saved by Disable and handed back to Restore.
type State uint32

// flags is the simulated processor status word.
var flags uint32

// Disable masks interrupts and returns the previous state.
// Masked regions must not nest within one goroutine.
func Disable() State {
	return State(spin.Lock(&flags, maskedBit))
}

// Restore returns the mask to the state saved by the matching Disable.
//
//go:nosplit
func Restore(s State) {
	spin.UnlockWithStore(&flags, maskedBit, uint32(s))
}

// Disabled reports whether some context currently has interrupts masked.
func Disabled() bool {
	return spin.Held(&flags, maskedBit)
}
