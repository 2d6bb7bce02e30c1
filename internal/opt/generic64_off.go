//go:build !xatomic_generic64

package opt

// Generic64_ reports whether 64-bit counters use the hashed lock table
// instead of the selected native backend.
const Generic64_ = false
