package kernel

// And stores x & y in dst and returns the normalized length of the result.
// dst must hold min(len(x), len(y)) digits and may start at either operand.
func And[T Digit](dst, x, y []T) (int, error) {
	n := min(len(x), len(y))
	if err := checkBitwise("And", dst, x, y, n); err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		dst[i] = x[i] & y[i]
	}
	return Len(dst[:n]), nil
}

// Or stores x | y in dst and returns the normalized length of the result.
// dst must hold max(len(x), len(y)) digits and may start at either operand.
func Or[T Digit](dst, x, y []T) (int, error) {
	return combine("Or", dst, x, y, func(a, b T) T { return a | b })
}

// Xor stores x ^ y in dst and returns the normalized length of the result.
// dst must hold max(len(x), len(y)) digits and may start at either operand.
func Xor[T Digit](dst, x, y []T) (int, error) {
	return combine("Xor", dst, x, y, func(a, b T) T { return a ^ b })
}

// Not stores the complement of x, taken within len(x) digits, in dst and
// returns the normalized length of the result. dst must hold len(x) digits
// and may start at x.
func Not[T Digit](dst, x []T) (int, error) {
	if err := checkBitwise("Not", dst, x, nil, len(x)); err != nil {
		return 0, err
	}
	for i, xi := range x {
		dst[i] = ^xi
	}
	return Len(dst[:len(x)]), nil
}

// combine applies op digit-wise, treating missing digits of the shorter
// operand as zero.
func combine[T Digit](name string, dst, x, y []T, op func(a, b T) T) (int, error) {
	if len(x) < len(y) {
		x, y = y, x
	}
	n := len(x)
	if err := checkBitwise(name, dst, x, y, n); err != nil {
		return 0, err
	}
	for i := 0; i < n; i++ {
		var yi T
		if i < len(y) {
			yi = y[i]
		}
		dst[i] = op(x[i], yi)
	}
	return Len(dst[:n]), nil
}

func checkBitwise[T Digit](name string, dst, x, y []T, n int) error {
	if n == 0 {
		return precondition(name, "empty operand")
	}
	if len(dst) < n {
		return precondition(name, "dst has %d digits, result needs %d", len(dst), n)
	}
	if !alignedOrDisjoint(dst, x) || !alignedOrDisjoint(dst, y) {
		return precondition(name, "dst partially overlaps an operand")
	}
	return nil
}
