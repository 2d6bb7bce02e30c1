//go:build xatomic_critical && xatomic_smp

package opt

// Masking interrupts only excludes the local core. A multi-core target
// must use exclusive access, so this combination does not build.
const _ = SMP_not_supported_by_the_critical_section_backend
