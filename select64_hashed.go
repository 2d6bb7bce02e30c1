//go:build xatomic_generic64

package xatomic

// backend64 serves Uint64 from the hashed lock table.
type backend64 = hashed[uint64]

const backend64Name = "hashed"
