package kernel

// Mul stores the exact product lhs*rhs in dst[:len(lhs)+len(rhs)].
//
// dst must hold at least len(lhs)+len(rhs) digits and must not overlap either
// operand; lhs and rhs may be the same buffer. The product window is cleared
// before accumulation, digits of dst beyond it are left untouched. The result
// is not normalized: use Len on the window to trim it.
func Mul[T Digit](dst, lhs, rhs []T) error {
	if len(lhs) == 0 || len(rhs) == 0 {
		return precondition("Mul", "empty operand")
	}
	n := len(lhs) + len(rhs)
	if len(dst) < n {
		return precondition("Mul", "dst has %d digits, product needs %d", len(dst), n)
	}
	if overlaps(dst, lhs) || overlaps(dst, rhs) {
		return precondition("Mul", "dst overlaps an operand")
	}
	z := dst[:n]

	// Single-digit operands need only one pass.
	switch {
	case len(rhs) == 1:
		z[len(lhs)] = mulAddVWW(z[:len(lhs)], lhs, rhs[0], 0)
		return nil
	case len(lhs) == 1:
		z[len(rhs)] = mulAddVWW(z[:len(rhs)], rhs, lhs[0], 0)
		return nil
	}

	clear(z)
	for j, r := range rhs {
		if r == 0 {
			continue
		}
		z[len(lhs)+j] = addMulVVW(z[j:j+len(lhs)], lhs, r)
	}
	return nil
}

// MulDigitInto stores x*y + r in dst[:len(x)] and returns the carry-out
// digit. dst must hold at least len(x) digits and may start at x.
func MulDigitInto[T Digit](dst, x []T, y, r T) (T, error) {
	if len(dst) < len(x) {
		return 0, precondition("MulDigitInto", "dst has %d digits, x has %d", len(dst), len(x))
	}
	if !alignedOrDisjoint(dst, x) {
		return 0, precondition("MulDigitInto", "dst partially overlaps x")
	}
	return mulAddVWW(dst[:len(x)], x, y, r), nil
}

// mulAddVWW computes z = x*y + r over len(z) == len(x) digits and returns
// the carry-out digit.
func mulAddVWW[T Digit](z, x []T, y, r T) (c T) {
	c = r
	for i, xi := range x {
		lo, hi := MulDigit(xi, y)
		var carry bool
		z[i], carry = AddDigit(lo, c, false)
		c = hi
		if carry {
			c++
		}
	}
	return c
}

// addMulVVW computes z += x*y over len(z) == len(x) digits and returns the
// carry-out digit. The high half of each partial product moves one position
// up together with the carries produced at the current position.
func addMulVVW[T Digit](z, x []T, y T) (c T) {
	for i, xi := range x {
		lo, hi := MulDigit(xi, y)
		var c1, c2 bool
		lo, c1 = AddDigit(lo, z[i], false)
		z[i], c2 = AddDigit(lo, c, false)
		c = hi
		if c1 {
			c++
		}
		if c2 {
			c++
		}
	}
	return c
}
