//go:build xatomic_cachelinesize_128 && !xatomic_cachelinesize_64

package opt

// CacheLineSize_ is pinned to 128 bytes via the xatomic_cachelinesize_128 build tag.
const CacheLineSize_ = uintptr(128)
