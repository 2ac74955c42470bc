package kernel

// Add adds src into dst in place and reports whether a carry survived past the
// most significant digit of dst. In that case the true sum is dst + 2^(W*len(dst))
// and the caller appends a digit of value 1.
//
// dst must be at least as long as src. dst and src may be the same buffer.
func Add[T Digit](dst, src []T) (carry bool, err error) {
	if len(dst) < len(src) {
		return false, precondition("Add", "dst has %d digits, src has %d", len(dst), len(src))
	}
	if !alignedOrDisjoint(dst, src) {
		return false, precondition("Add", "dst partially overlaps src")
	}
	return addVV(dst, src), nil
}

// Sub subtracts smaller from bigger in place and reports whether a borrow
// survived past the most significant digit.
//
// The routine expects bigger >= smaller. When that does not hold, bigger is
// left holding the two's-complement wraparound and borrow is true; callers
// that need a signed difference compare first and swap, tracking the sign
// themselves. bigger must be at least as long as smaller, and the two may be
// the same buffer.
func Sub[T Digit](bigger, smaller []T) (borrow bool, err error) {
	if len(bigger) < len(smaller) {
		return false, precondition("Sub", "minuend has %d digits, subtrahend has %d", len(bigger), len(smaller))
	}
	if !alignedOrDisjoint(bigger, smaller) {
		return false, precondition("Sub", "minuend partially overlaps subtrahend")
	}
	return subVV(bigger, smaller), nil
}

// addVV computes z += x over len(x) digits and propagates the carry through
// the rest of z. len(z) >= len(x).
func addVV[T Digit](z, x []T) (carry bool) {
	for i, xi := range x {
		z[i], carry = AddDigit(z[i], xi, carry)
	}
	return addVW(z[len(x):], carry)
}

// addVW propagates a single carry bit through z.
func addVW[T Digit](z []T, carry bool) bool {
	for i := 0; carry && i < len(z); i++ {
		z[i]++
		carry = z[i] == 0
	}
	return carry
}

// subVV computes z -= x over len(x) digits and propagates the borrow through
// the rest of z. len(z) >= len(x).
func subVV[T Digit](z, x []T) (borrow bool) {
	for i, xi := range x {
		z[i], borrow = SubDigit(z[i], xi, borrow)
	}
	return subVW(z[len(x):], borrow)
}

// subVW propagates a single borrow bit through z.
func subVW[T Digit](z []T, borrow bool) bool {
	for i := 0; borrow && i < len(z); i++ {
		borrow = z[i] == 0
		z[i]--
	}
	return borrow
}
