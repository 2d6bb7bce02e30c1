//go:build !xatomic_critical

package xatomic

// native is the strategy compiled in for both counter widths: the
// exclusive-access loops.
type native[T word] = exclusive[T]

const backendName = "exclusive"
