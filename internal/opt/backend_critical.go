//go:build xatomic_critical

package opt

// Critical_ reports whether the critical-section backend is compiled in.
// Enabled via the xatomic_critical build tag, for single-core targets
// without exclusive-access instructions.
// Use: go build -tags=xatomic_critical
const Critical_ = true
