package kernel

import (
	"math/bits"
	"unsafe"
)

// Digit is the set of unsigned fixed-width integers a magnitude can be built
// from. Named types such as big.Word satisfy it through their underlying type.
type Digit interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Width returns W, the bit width of the digit type T.
func Width[T Digit]() uint {
	var d T
	return uint(unsafe.Sizeof(d)) * 8
}

// MaxDigit returns 2^W - 1 for the digit type T.
func MaxDigit[T Digit]() T {
	return ^T(0)
}

// ─────────────────────────────────────────────────────────────────────────────
// Single-digit primitives
// ─────────────────────────────────────────────────────────────────────────────

// AddDigit returns a + b + carry mod 2^W and whether the sum overflowed W bits.
// Both the a+b and the +carry steps may wrap; at most one of them can.
func AddDigit[T Digit](a, b T, carry bool) (sum T, carryOut bool) {
	sum = a + b
	carryOut = sum < a
	if carry {
		sum++
		carryOut = carryOut || sum == 0
	}
	return sum, carryOut
}

// SubDigit returns a - b - borrow mod 2^W and whether the subtraction
// borrowed, that is whether a < b + borrow.
func SubDigit[T Digit](a, b T, borrow bool) (diff T, borrowOut bool) {
	diff = a - b
	borrowOut = a < b
	if borrow {
		borrowOut = borrowOut || diff == 0
		diff--
	}
	return diff, borrowOut
}

// MulDigit returns the full double-digit product hi<<W + lo = a*b.
func MulDigit[T Digit](a, b T) (lo, hi T) {
	switch Width[T]() {
	case 64:
		h, l := bits.Mul64(uint64(a), uint64(b))
		return T(l), T(h)
	case 8, 16, 32:
		p := uint64(a) * uint64(b)
		return T(p), T(p >> Width[T]())
	}
	return mulDigitPortable(a, b)
}

// mulDigitPortable computes the double-digit product from four half-width
// partial products without any type wider than T.
// Adapted from Warren, Hacker's Delight, p. 132.
func mulDigitPortable[T Digit](a, b T) (lo, hi T) {
	half := Width[T]() / 2
	mask := T(1)<<half - 1

	a0, a1 := a&mask, a>>half
	b0, b1 := b&mask, b>>half

	w0 := a0 * b0
	t := a1*b0 + w0>>half
	w1 := t & mask
	w2 := t >> half
	w1 += a0 * b1

	hi = a1*b1 + w2 + w1>>half
	lo = a * b
	return lo, hi
}

// DivDoubleDigit divides the 2W-bit value hi<<W + lo by d.
//
// The quotient only fits in one digit when hi < d; otherwise
// ErrQuotientOverflow is returned. A zero divisor yields ErrDivisionByZero.
func DivDoubleDigit[T Digit](lo, hi, d T) (q, r T, err error) {
	if d == 0 {
		return 0, 0, ErrDivisionByZero
	}
	if hi >= d {
		return 0, 0, ErrQuotientOverflow
	}
	q, r = divDoubleDigit(lo, hi, d)
	return q, r, nil
}

// divDoubleDigit is DivDoubleDigit without the checks. The caller guarantees
// d != 0 and hi < d.
func divDoubleDigit[T Digit](lo, hi, d T) (q, r T) {
	switch Width[T]() {
	case 64:
		qq, rr := bits.Div64(uint64(hi), uint64(lo), uint64(d))
		return T(qq), T(rr)
	case 8, 16, 32:
		n := uint64(hi)<<Width[T]() | uint64(lo)
		return T(n / uint64(d)), T(n % uint64(d))
	}
	return divDoubleDigitPortable(lo, hi, d)
}

// divDoubleDigitPortable divides with half-width digits only. The caller
// guarantees d != 0 and hi < d.
// Adapted from Warren, Hacker's Delight, p. 152.
func divDoubleDigitPortable[T Digit](lo, hi, d T) (q, r T) {
	w := Width[T]()
	half := w / 2
	b := T(1) << half
	mask := b - 1

	s := leadingZeros(d)
	d <<= s

	dn1 := d >> half
	dn0 := d & mask
	un32 := hi<<s | lo>>(w-s)
	un10 := lo << s
	un1 := un10 >> half
	un0 := un10 & mask

	q1 := un32 / dn1
	rhat := un32 - q1*dn1
	for q1 >= b || q1*dn0 > b*rhat+un1 {
		q1--
		rhat += dn1
		if rhat >= b {
			break
		}
	}

	un21 := un32*b + un1 - q1*d
	q0 := un21 / dn1
	rhat = un21 - q0*dn1
	for q0 >= b || q0*dn0 > b*rhat+un0 {
		q0--
		rhat += dn1
		if rhat >= b {
			break
		}
	}

	return q1*b + q0, (un21*b + un0 - q0*d) >> s
}

// digitLen returns the number of significant bits in x; 0 for x == 0.
func digitLen[T Digit](x T) uint {
	return uint(bits.Len64(uint64(x)))
}

// leadingZeros returns the number of leading zero bits of x within W bits.
func leadingZeros[T Digit](x T) uint {
	return Width[T]() - digitLen(x)
}
