// Package magnitude wraps the digit-array kernel in immutable values.
//
// A Magnitude owns a normalized digit slice and allocates a fresh one for
// every result, so values can be shared between goroutines without copying.
// Int pairs a Magnitude with a sign.
package magnitude

import (
	"errors"
	"fmt"

	"github.com/agbru/bigcalc/internal/kernel"
)

var (
	// ErrUnderflow is returned by Magnitude.Sub when the subtrahend is larger
	// than the minuend.
	ErrUnderflow = errors.New("magnitude: subtraction underflow")
	// ErrDivisionByZero is the kernel's division-by-zero sentinel.
	ErrDivisionByZero = kernel.ErrDivisionByZero
	// ErrSyntax is returned by Parse and ParseInt for malformed input.
	ErrSyntax = kernel.ErrSyntax
)

// Magnitude is an unsigned integer of arbitrary size stored as digits of T,
// least significant first. The zero value is 0.
type Magnitude[T kernel.Digit] struct {
	d []T // normalized; nil means zero
}

// must turns a kernel precondition failure into a panic. Magnitude sizes
// every buffer itself, so a failure here is a bug in this package.
func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("magnitude: %v", err))
	}
}

func wrap[T kernel.Digit](d []T) Magnitude[T] {
	d = kernel.Trim(d)
	if len(d) == 0 || (len(d) == 1 && d[0] == 0) {
		return Magnitude[T]{}
	}
	return Magnitude[T]{d: d}
}

// Zero returns the magnitude 0.
func Zero[T kernel.Digit]() Magnitude[T] {
	return Magnitude[T]{}
}

// FromDigits returns the magnitude whose digits, least significant first,
// are d. Leading zero digits are dropped; d is copied.
func FromDigits[T kernel.Digit](d []T) Magnitude[T] {
	return wrap(append([]T(nil), d...))
}

// FromUint64 returns the magnitude of v.
func FromUint64[T kernel.Digit](v uint64) Magnitude[T] {
	return wrap(kernel.FromUint64[T](v))
}

// FromDecimal converts the leading decimal number of s, ignoring leading
// whitespace and an optional '+'. Anything after the digits is ignored and
// a string without digits yields 0.
func FromDecimal[T kernel.Digit](s string) Magnitude[T] {
	return wrap(kernel.FromDecimal[T](s))
}

// Parse converts s, which must consist of an optional '+' and decimal digits
// only.
func Parse[T kernel.Digit](s string) (Magnitude[T], error) {
	d, err := kernel.ParseDecimal[T](s)
	if err != nil {
		return Magnitude[T]{}, fmt.Errorf("parsing %q: %w", s, err)
	}
	return wrap(d), nil
}

// digits returns the normalized digits, with a single zero digit for 0.
func (x Magnitude[T]) digits() []T {
	if len(x.d) == 0 {
		return []T{0}
	}
	return x.d
}

// Digits returns a copy of the normalized digits, least significant first.
// Zero has one zero digit.
func (x Magnitude[T]) Digits() []T {
	return append([]T(nil), x.digits()...)
}

// Len returns the number of digits, 1 for zero.
func (x Magnitude[T]) Len() int {
	return max(len(x.d), 1)
}

// IsZero reports whether x == 0.
func (x Magnitude[T]) IsZero() bool {
	return len(x.d) == 0
}

// BitLen returns the number of significant bits of x.
func (x Magnitude[T]) BitLen() uint {
	return kernel.BitLen(x.d)
}

// Bit returns bit i of x.
func (x Magnitude[T]) Bit(i uint) uint {
	return kernel.Bit(x.d, i)
}

// Cmp returns -1, 0 or +1 depending on whether x < y, x == y or x > y.
func (x Magnitude[T]) Cmp(y Magnitude[T]) int {
	return kernel.Compare(x.d, y.d)
}

// Add returns x + y.
func (x Magnitude[T]) Add(y Magnitude[T]) Magnitude[T] {
	a, b := x.digits(), y.digits()
	if len(a) < len(b) {
		a, b = b, a
	}
	z := make([]T, len(a), len(a)+1)
	copy(z, a)
	carry, err := kernel.Add(z, b)
	must(err)
	if carry {
		z = append(z, 1)
	}
	return wrap(z)
}

// Sub returns x - y, or ErrUnderflow when y > x.
func (x Magnitude[T]) Sub(y Magnitude[T]) (Magnitude[T], error) {
	if x.Cmp(y) < 0 {
		return Magnitude[T]{}, ErrUnderflow
	}
	z := x.Digits()
	_, err := kernel.Sub(z, y.digits())
	must(err)
	return wrap(z), nil
}

// Mul returns x * y.
func (x Magnitude[T]) Mul(y Magnitude[T]) Magnitude[T] {
	if x.IsZero() || y.IsZero() {
		return Magnitude[T]{}
	}
	z := make([]T, len(x.d)+len(y.d))
	must(kernel.Mul(z, x.d, y.d))
	return wrap(z)
}

// DivMod returns the quotient and remainder of x / y.
// It returns ErrDivisionByZero when y == 0.
func (x Magnitude[T]) DivMod(y Magnitude[T]) (q, r Magnitude[T], err error) {
	if y.IsZero() {
		return Magnitude[T]{}, Magnitude[T]{}, ErrDivisionByZero
	}
	a := x.digits()
	qd := make([]T, len(a))
	rd := make([]T, len(a))
	qn, rn, err := kernel.Div(qd, rd, a, y.d)
	must(err)
	return wrap(qd[:qn]), wrap(rd[:rn]), nil
}

// Div returns x / y rounded towards zero.
func (x Magnitude[T]) Div(y Magnitude[T]) (Magnitude[T], error) {
	q, _, err := x.DivMod(y)
	return q, err
}

// Mod returns x mod y.
func (x Magnitude[T]) Mod(y Magnitude[T]) (Magnitude[T], error) {
	_, r, err := x.DivMod(y)
	return r, err
}

// Lsh returns x << n.
func (x Magnitude[T]) Lsh(n uint) Magnitude[T] {
	if x.IsZero() {
		return x
	}
	whole := int(n / kernel.Width[T]())
	z := make([]T, len(x.d)+whole+1)
	c, err := kernel.LeftShift(z, x.d, n)
	must(err)
	z[len(z)-1] = c
	return wrap(z)
}

// Rsh returns x >> n.
func (x Magnitude[T]) Rsh(n uint) Magnitude[T] {
	if x.IsZero() {
		return x
	}
	z := x.Digits()
	return wrap(z[:len(z)-kernel.RightShift(z, n)])
}

// And returns x & y.
func (x Magnitude[T]) And(y Magnitude[T]) Magnitude[T] {
	a, b := x.digits(), y.digits()
	z := make([]T, min(len(a), len(b)))
	n, err := kernel.And(z, a, b)
	must(err)
	return wrap(z[:n])
}

// Or returns x | y.
func (x Magnitude[T]) Or(y Magnitude[T]) Magnitude[T] {
	a, b := x.digits(), y.digits()
	z := make([]T, max(len(a), len(b)))
	n, err := kernel.Or(z, a, b)
	must(err)
	return wrap(z[:n])
}

// Xor returns x ^ y.
func (x Magnitude[T]) Xor(y Magnitude[T]) Magnitude[T] {
	a, b := x.digits(), y.digits()
	z := make([]T, max(len(a), len(b)))
	n, err := kernel.Xor(z, a, b)
	must(err)
	return wrap(z[:n])
}

// Not returns the complement of x taken within its own digit count, so the
// result depends on the digit width: Not(1) is 0xFE with 8-bit digits and
// 0xFFFFFFFE with 32-bit digits. Not(0) is all ones in one digit.
func (x Magnitude[T]) Not() Magnitude[T] {
	a := x.digits()
	z := make([]T, len(a))
	n, err := kernel.Not(z, a)
	must(err)
	return wrap(z[:n])
}

// Uint64 returns x as a uint64 and whether it fits.
func (x Magnitude[T]) Uint64() (uint64, bool) {
	return kernel.ToUint64(x.d)
}

// String returns the decimal representation of x.
func (x Magnitude[T]) String() string {
	return kernel.ToDecimal(x.d)
}
