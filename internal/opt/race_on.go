//go:build race

package opt

// Race_ under race detector, disable TSO optimizations and use conservative
// atomic loads/stores
const Race_ = true
