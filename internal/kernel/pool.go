// This file provides scratch-buffer pooling for kernel routines that need
// temporaries (the shifted divisor in long division, the working copy in
// decimal conversion).

package kernel

import (
	"math/bits"
	"sync"
	"unsafe"
)

// ─────────────────────────────────────────────────────────────────────────────
// Scratch Pools
// ─────────────────────────────────────────────────────────────────────────────

// scratchPools pools uint64 backing arrays by size class. Every digit type
// reinterprets the same backing, which keeps alignment valid for all widths.
// Size classes are powers of 4 from 16 to 1M uint64 words (8MB).
var scratchPools = [...]sync.Pool{
	{New: func() any { return make([]uint64, 16) }},
	{New: func() any { return make([]uint64, 64) }},
	{New: func() any { return make([]uint64, 256) }},
	{New: func() any { return make([]uint64, 1024) }},
	{New: func() any { return make([]uint64, 4096) }},
	{New: func() any { return make([]uint64, 16384) }},
	{New: func() any { return make([]uint64, 65536) }},
	{New: func() any { return make([]uint64, 262144) }},
	{New: func() any { return make([]uint64, 1048576) }},
}

// scratchSizes defines the size classes, in uint64 words, of scratchPools.
var scratchSizes = [...]int{16, 64, 256, 1024, 4096, 16384, 65536, 262144, 1048576}

// scratchPoolIndex returns the pool index for a backing of the given number
// of uint64 words, or -1 when it is too large for pooling.
//
// Sizes are powers of 4 starting at 4^2, so bits.Len(size-1) maps directly to
// the index.
func scratchPoolIndex(words int) int {
	if words <= 0 {
		return 0
	}
	if words > scratchSizes[len(scratchSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(words-1)) - 3) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// scratchPoolIndexLinear is the linear-search reference for scratchPoolIndex.
func scratchPoolIndexLinear(words int) int {
	for i, s := range scratchSizes {
		if words <= s {
			return i
		}
	}
	return -1
}

// backingWords returns the number of uint64 words needed for n digits of T.
func backingWords[T Digit](n int) int {
	size := int(unsafe.Sizeof(T(0)))
	return (n*size + 7) / 8
}

// acquire returns a zeroed scratch slice of n digits. Release it with
// release when done:
//
//	s := acquire[T](n)
//	defer release(s)
func acquire[T Digit](n int) []T {
	idx := scratchPoolIndex(backingWords[T](n))
	if idx < 0 {
		return make([]T, n)
	}
	backing := scratchPools[idx].Get().([]uint64)
	clear(backing)
	digits := int(uintptr(len(backing)) * 8 / unsafe.Sizeof(T(0)))
	s := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(backing))), digits)
	return s[:n]
}

// release returns a slice obtained from acquire to its pool. Slices that were
// allocated directly are left to the GC. Safe to call with nil.
func release[T Digit](s []T) {
	if s == nil {
		return
	}
	words := backingWords[T](cap(s))
	idx := scratchPoolIndex(words)
	if idx < 0 || scratchSizes[idx] != words {
		return
	}
	backing := unsafe.Slice((*uint64)(unsafe.Pointer(unsafe.SliceData(s[:cap(s)]))), words)
	scratchPools[idx].Put(backing)
}
