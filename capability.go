package xatomic

import (
	"errors"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/llxisdsh/xatomic/internal/opt"
)

// ErrSMPUnsupported is returned by Check when the critical-section backend
// is compiled in for a build declared multi-core, or the host has more than
// one CPU. Masking interrupts
// only excludes the local core, so the counters would not be atomic.
var ErrSMPUnsupported = errors.New("xatomic: critical-section backend on a multi-core host")

// Backend names the strategy serving Int32: "exclusive" or "critical".
func Backend() string {
	return backendName
}

// Backend64 names the strategy serving Uint64: "exclusive", "critical" or
// "hashed".
func Backend64() string {
	return backend64Name
}

// Features describes what the host offers to the exclusive backend.
type Features struct {
	// Exclusive reports a load/store-conditional pair (or an equivalent
	// compare-and-swap) for both counter widths.
	Exclusive bool
	// DoubleWordCopy reports that an aligned 64-bit plain load or store is
	// single-copy atomic (ARM LPAE, every 64-bit GOARCH).
	DoubleWordCopy bool
	// FarAtomics reports single-instruction read-modify-write (ARM64 LSE).
	FarAtomics bool
	// CacheLineSize is the padding unit of the hashed lock table.
	CacheLineSize uintptr
	// CPUs is the number of logical CPUs usable by the process.
	CPUs int
}

// DetectFeatures probes the host processor.
func DetectFeatures() Features {
	f := Features{
		Exclusive:      true,
		DoubleWordCopy: intSize == 64,
		CacheLineSize:  opt.CacheLineSize_,
		CPUs:           runtime.NumCPU(),
	}
	switch runtime.GOARCH {
	case "arm":
		// ldrexd/strexd came with ARMv6K, the same revision that added the
		// user TLS register the kernel reports as HWCAP_TLS.
		f.Exclusive = cpu.ARM.HasTLS || cpu.ARM.HasLPAE
		f.DoubleWordCopy = cpu.ARM.HasLPAE
	case "arm64":
		f.FarAtomics = cpu.ARM64.HasATOMICS
	case "386":
		// cmpxchg8b is part of every CPU Go supports for 386, and 64-bit
		// loads go through the FPU as a single access.
		f.DoubleWordCopy = true
	case "amd64":
		f.DoubleWordCopy = true
	}
	return f
}

// Check reports whether the compiled-in configuration is usable on this
// host. Programs built with the critical-section backend should call it
// during initialization and refuse to start on error.
func Check() error {
	return check(opt.Critical_, opt.SMP_, DetectFeatures())
}

func check(criticalBackend, smp bool, f Features) error {
	if criticalBackend && (smp || f.CPUs > 1) {
		return ErrSMPUnsupported
	}
	return nil
}
