package kernel

// DivDigit stores x / d in q[:len(x)] and returns the remainder.
//
// q must hold at least len(x) digits and may start at x. This is the
// single-digit path: each step divides the running remainder and the next
// digit with one double-digit division, so the quotient digit never overflows.
func DivDigit[T Digit](q, x []T, d T) (r T, err error) {
	if d == 0 {
		return 0, ErrDivisionByZero
	}
	if len(q) < len(x) {
		return 0, precondition("DivDigit", "quotient has %d digits, dividend has %d", len(q), len(x))
	}
	if !alignedOrDisjoint(q, x) {
		return 0, precondition("DivDigit", "quotient partially overlaps dividend")
	}
	return divVW(q[:len(x)], x, d), nil
}

// divVW is DivDigit without the checks.
func divVW[T Digit](z, x []T, d T) (r T) {
	for i := len(x) - 1; i >= 0; i-- {
		z[i], r = divDoubleDigit(x[i], r, d)
	}
	return r
}

// Div computes lhs / rhs. The quotient is written to q and the remainder to r;
// their normalized lengths are returned so the caller can re-slice.
//
// Both q and r must hold at least Len(lhs) digits. r may start at lhs, which
// turns the call into an in-place reduction; q must not overlap any other
// argument. A zero rhs returns ErrDivisionByZero before anything is written.
//
// A single-digit divisor uses DivDigit. Longer divisors use binary long
// division: the divisor is aligned under the remainder's top bit, shifted
// down as the remainder shrinks, and subtracted once per quotient bit.
func Div[T Digit](q, r, lhs, rhs []T) (qn, rn int, err error) {
	if len(rhs) == 0 || IsZero(rhs) {
		return 0, 0, ErrDivisionByZero
	}
	if len(lhs) == 0 {
		return 0, 0, precondition("Div", "empty dividend")
	}
	lhs, rhs = Trim(lhs), Trim(rhs)
	if len(q) < len(lhs) || len(r) < len(lhs) {
		return 0, 0, precondition("Div", "quotient and remainder need %d digits, have %d and %d", len(lhs), len(q), len(r))
	}
	if overlaps(q, lhs) || overlaps(q, rhs) || overlaps(q, r) {
		return 0, 0, precondition("Div", "quotient overlaps another argument")
	}
	if !alignedOrDisjoint(r, lhs) || overlaps(r, rhs) {
		return 0, 0, precondition("Div", "remainder may only alias the dividend")
	}

	if Compare(lhs, rhs) < 0 {
		copy(r, lhs)
		q[0] = 0
		return 1, len(lhs), nil
	}

	if len(rhs) == 1 {
		rem := divVW(q[:len(lhs)], lhs, rhs[0])
		r[0] = rem
		return Len(q[:len(lhs)]), 1, nil
	}

	qn, rn = divBinary(q[:len(lhs)], r[:len(lhs)], lhs, rhs)
	return qn, rn, nil
}

// divBinary is the multi-digit long division. lhs >= rhs, both normalized,
// len(rhs) > 1, len(q) == len(rem) == len(lhs).
//
// TODO(agbru): replace with Knuth's Algorithm D once divDoubleDigit is used to
// estimate whole quotient digits; this loop costs one subtraction per bit.
func divBinary[T Digit](q, rem, lhs, rhs []T) (qn, rn int) {
	w := Width[T]()
	copy(rem, lhs)
	clear(q)

	topR := TopBit(rhs)
	bitDiff := TopBit(lhs) - topR

	// divider = rhs << bitDiff, one spare digit for the carry.
	divider := acquire[T](len(rhs) + int(bitDiff/w) + 1)
	defer release(divider)
	c, _ := LeftShift(divider, rhs, bitDiff)
	divider[len(rhs)+int(bitDiff/w)] = c
	divider = Trim(divider)

	for Compare(rem, rhs) >= 0 {
		newBitDiff := TopBit(rem) - topR

		// Low bits of divider are zero, so the shift is exact.
		divider = divider[:len(divider)-RightShift(divider, bitDiff-newBitDiff)]
		if Compare(divider, rem) > 0 {
			divider = divider[:len(divider)-RightShift(divider, 1)]
			newBitDiff--
		}

		setBit(q, newBitDiff)
		subVV(rem, divider)
		rem = Trim(rem)
		bitDiff = newBitDiff
	}
	return Len(q), len(rem)
}
