//go:build xatomic_critical

package xatomic

// native is the strategy compiled in for both counter widths: interrupt
// masked critical sections.
type native[T word] = critical[T]

const backendName = "critical"
