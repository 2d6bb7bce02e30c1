// Package xatomic provides 32- and 64-bit atomic counters with two
// interchangeable implementations behind one API.
//
// By default every read-modify-write is a lock-free retry loop over an
// exclusive load and a conditional store. Single-core targets without
// exclusive access build with -tags=xatomic_critical instead, which turns
// each operation into a short region with interrupts masked. The 64-bit
// family can be routed to an address-hashed lock table with
// -tags=xatomic_generic64. The choice is made at build time; nothing is
// dispatched at run time.
//
// Operations without a Return/Test suffix (Add, Sub, Push, ClearMask) do
// not order surrounding memory accesses. AddReturn, SubReturn,
// CompareAndSwap, Swap, Pop and DecIfPositive are full barriers, and
// AddUnless is one when it succeeds. LoadAcquire and StoreRelease give the
// one-way ordering needed to publish data through a counter.
//
// Keyed families of counters live in package countermap.
package xatomic
