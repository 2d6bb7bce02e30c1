//go:build !xatomic_smp

package opt

// SMP_ reports whether the build targets a multi-core system.
const SMP_ = false
