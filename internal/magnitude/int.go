package magnitude

import (
	"fmt"

	"github.com/agbru/bigcalc/internal/kernel"
)

// Int is a signed integer: a Magnitude and a sign. The zero value is 0, and
// 0 is never negative.
type Int[T kernel.Digit] struct {
	neg bool
	abs Magnitude[T]
}

func makeInt[T kernel.Digit](neg bool, abs Magnitude[T]) Int[T] {
	return Int[T]{neg: neg && !abs.IsZero(), abs: abs}
}

// NewInt returns the Int with value v.
func NewInt[T kernel.Digit](v int64) Int[T] {
	if v < 0 {
		// -(v+1)+1 avoids overflowing on math.MinInt64.
		return makeInt(true, FromUint64[T](uint64(-(v+1))+1))
	}
	return makeInt(false, FromUint64[T](uint64(v)))
}

// NewIntFromMagnitude returns the Int with absolute value abs, negative when
// neg is set and abs is not zero.
func NewIntFromMagnitude[T kernel.Digit](neg bool, abs Magnitude[T]) Int[T] {
	return makeInt(neg, abs)
}

// ParseInt converts s, an optional sign followed by decimal digits.
func ParseInt[T kernel.Digit](s string) (Int[T], error) {
	neg := false
	body := s
	if len(body) > 0 && body[0] == '-' {
		neg = true
		body = body[1:]
		// "-+5" is not a number.
		if len(body) > 0 && body[0] == '+' {
			return Int[T]{}, fmt.Errorf("parsing %q: %w", s, ErrSyntax)
		}
	}
	abs, err := Parse[T](body)
	if err != nil {
		return Int[T]{}, fmt.Errorf("parsing %q: %w", s, ErrSyntax)
	}
	return makeInt(neg, abs), nil
}

// Sign returns -1, 0 or +1.
func (x Int[T]) Sign() int {
	switch {
	case x.abs.IsZero():
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// Magnitude returns |x| as a Magnitude.
func (x Int[T]) Magnitude() Magnitude[T] {
	return x.abs
}

// Abs returns |x|.
func (x Int[T]) Abs() Int[T] {
	return Int[T]{abs: x.abs}
}

// Neg returns -x.
func (x Int[T]) Neg() Int[T] {
	return makeInt(!x.neg, x.abs)
}

// Cmp returns -1, 0 or +1 depending on whether x < y, x == y or x > y.
func (x Int[T]) Cmp(y Int[T]) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	case x.neg:
		return -x.abs.Cmp(y.abs)
	}
	return x.abs.Cmp(y.abs)
}

// Add returns x + y.
func (x Int[T]) Add(y Int[T]) Int[T] {
	if x.neg == y.neg {
		return makeInt(x.neg, x.abs.Add(y.abs))
	}
	return x.addOpposite(y)
}

// Sub returns x - y.
func (x Int[T]) Sub(y Int[T]) Int[T] {
	return x.Add(y.Neg())
}

// addOpposite adds operands of opposite signs: the smaller magnitude is
// subtracted from the larger, and the result takes the larger one's sign.
func (x Int[T]) addOpposite(y Int[T]) Int[T] {
	big, small, neg := x.abs, y.abs, x.neg
	if big.Cmp(small) < 0 {
		big, small, neg = small, big, y.neg
	}
	d, err := big.Sub(small)
	if err != nil {
		panic(err) // unreachable: big >= small
	}
	return makeInt(neg, d)
}

// Mul returns x * y.
func (x Int[T]) Mul(y Int[T]) Int[T] {
	return makeInt(x.neg != y.neg, x.abs.Mul(y.abs))
}

// QuoRem returns the quotient rounded towards zero and the remainder, which
// takes the sign of x, so that q*y + r == x and |r| < |y|.
// It returns ErrDivisionByZero when y == 0.
func (x Int[T]) QuoRem(y Int[T]) (q, r Int[T], err error) {
	qa, ra, err := x.abs.DivMod(y.abs)
	if err != nil {
		return Int[T]{}, Int[T]{}, err
	}
	return makeInt(x.neg != y.neg, qa), makeInt(x.neg, ra), nil
}

// String returns the decimal representation of x.
func (x Int[T]) String() string {
	if x.neg {
		return "-" + x.abs.String()
	}
	return x.abs.String()
}
