//go:build xatomic_cachelinesize_64

package opt

// CacheLineSize_ is pinned to 64 bytes via the xatomic_cachelinesize_64 build tag.
const CacheLineSize_ = uintptr(64)
