//go:build !xatomic_generic64

package xatomic

// backend64 serves Uint64 with the same strategy as Int32.
type backend64 = native[uint64]

const backend64Name = backendName
