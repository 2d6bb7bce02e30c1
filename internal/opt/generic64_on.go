//go:build xatomic_generic64

package opt

// Generic64_ reports whether 64-bit counters use the hashed lock table
// instead of the selected native backend.
// Use: go build -tags=xatomic_generic64
const Generic64_ = true
