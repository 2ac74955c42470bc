package config

import "runtime"

// Limit resolution chain (highest priority first):
//   1. CLI flags (-workers, -max-shift, -max-digits)
//   2. Environment variables (BIGCALC_WORKERS, etc.)
//   3. Hardware estimation (this file)
//   4. Static defaults in config.go

// ApplyAdaptiveLimits fills the limits left at zero with values derived from
// the host. Values set by a flag or the environment are preserved.
func ApplyAdaptiveLimits(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	if cfg.MaxShift == 0 {
		cfg.MaxShift = EstimateMaxShift()
	}
	return cfg
}

// EstimateOptimalWorkers returns the batch concurrency for this machine.
// Every worker may hold several operand-sized buffers, so very high core
// counts are capped.
func EstimateOptimalWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 1:
		return 1
	case numCPU <= 4:
		return numCPU
	case numCPU <= 16:
		return numCPU - 1 // leave one core to the reader and the printer
	default:
		return 16
	}
}

// EstimateMaxShift returns the largest shift count worth accepting on this
// architecture. A shift result is allocated in full, so 32-bit hosts get a
// smaller ceiling.
func EstimateMaxShift() uint64 {
	wordSize := 32 << (^uint(0) >> 63)

	if wordSize == 64 {
		return DefaultMaxShift
	}
	return DefaultMaxShift >> 4
}
