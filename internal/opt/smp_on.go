//go:build xatomic_smp

package opt

// SMP_ reports whether the build targets a multi-core system.
// Use: go build -tags=xatomic_smp
const SMP_ = true
