package kernel

import "unsafe"

// span returns the address range [lo, hi) covered by x's elements.
func span[T Digit](x []T) (lo, hi uintptr) {
	if len(x) == 0 {
		return 0, 0
	}
	lo = uintptr(unsafe.Pointer(unsafe.SliceData(x)))
	return lo, lo + uintptr(len(x))*unsafe.Sizeof(x[0])
}

// overlaps reports whether x and y share any element.
func overlaps[T Digit](x, y []T) bool {
	xlo, xhi := span(x)
	ylo, yhi := span(y)
	if xlo == xhi || ylo == yhi {
		return false
	}
	return xlo < yhi && ylo < xhi
}

// sameStart reports whether x and y begin at the same element.
func sameStart[T Digit](x, y []T) bool {
	return len(x) > 0 && len(y) > 0 && unsafe.SliceData(x) == unsafe.SliceData(y)
}

// alignedOrDisjoint reports whether x and y are either disjoint or start at
// the same element, the only two aliasing shapes in-place routines accept.
func alignedOrDisjoint[T Digit](x, y []T) bool {
	return !overlaps(x, y) || sameStart(x, y)
}
