//go:build !xatomic_critical

package opt

// Critical_ reports whether the critical-section backend is compiled in.
// Default: hardware exclusive access (load + conditional store) is assumed.
const Critical_ = false
