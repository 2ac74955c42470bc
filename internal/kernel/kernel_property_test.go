package kernel

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// The helpers below compose kernel calls the way a value-level wrapper would:
// allocate, call, and trim.

func normalized[T Digit](x []T) []T {
	if len(x) == 0 {
		return []T{0}
	}
	return Trim(cloneDigits(x))
}

func sum[T Digit](a, b []T) []T {
	if len(a) < len(b) {
		a, b = b, a
	}
	z := make([]T, len(a), len(a)+1)
	copy(z, a)
	if carry, _ := Add(z, b); carry {
		z = append(z, 1)
	}
	return Trim(z)
}

func difference[T Digit](a, b []T) ([]T, bool) {
	if len(a) < len(b) {
		return nil, false
	}
	z := cloneDigits(a)
	borrow, _ := Sub(z, b)
	return Trim(z), !borrow
}

func product[T Digit](a, b []T) []T {
	z := make([]T, len(a)+len(b))
	_ = Mul(z, a, b)
	return Trim(z)
}

func quoRem[T Digit](a, b []T) (q, r []T, err error) {
	q = make([]T, len(a))
	r = make([]T, len(a))
	qn, rn, err := Div(q, r, a, b)
	if err != nil {
		return nil, nil, err
	}
	return q[:qn], r[:rn], nil
}

func shiftedLeft[T Digit](a []T, n uint) []T {
	z := make([]T, len(a)+int(n/Width[T]())+1)
	c, _ := LeftShift(z, a, n)
	z[len(z)-1] = c
	return Trim(z)
}

func shiftedRight[T Digit](a []T, n uint) []T {
	z := cloneDigits(a)
	return z[:len(z)-RightShift(z, n)]
}

func equal[T Digit](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func kernelProperties[T Digit](t *testing.T, name string, digitGen gopter.Gen) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	mag := gen.SliceOf(digitGen)

	properties.Property(name+": decimal round-trip", prop.ForAll(
		func(raw []T) bool {
			a := normalized(raw)
			return equal(FromDecimal[T](ToDecimal(a)), a)
		},
		mag,
	))

	properties.Property(name+": (a+b)-b == a and (a+b)-a == b", prop.ForAll(
		func(ra, rb []T) bool {
			a, b := normalized(ra), normalized(rb)
			s := sum(a, b)
			da, ok1 := difference(s, b)
			db, ok2 := difference(s, a)
			return ok1 && ok2 && equal(da, a) && equal(db, b)
		},
		mag, mag,
	))

	properties.Property(name+": (a/b)*b + a%b == a and a%b < b", prop.ForAll(
		func(ra, rb []T) bool {
			a, b := normalized(ra), normalized(rb)
			if IsZero(b) {
				b = []T{1}
			}
			q, r, err := quoRem(a, b)
			if err != nil {
				return false
			}
			return Compare(r, b) < 0 && equal(sum(product(q, b), r), a)
		},
		mag, mag,
	))

	properties.Property(name+": a*1 == a and a*0 == 0", prop.ForAll(
		func(raw []T) bool {
			a := normalized(raw)
			return equal(product(a, []T{1}), a) && equal(product(a, []T{0}), []T{0})
		},
		mag,
	))

	properties.Property(name+": (a<<n)>>n == a", prop.ForAll(
		func(raw []T, n uint) bool {
			a := normalized(raw)
			return equal(shiftedRight(shiftedLeft(a, n), n), a)
		},
		mag, gen.UIntRange(0, 300),
	))

	properties.Property(name+": comparison is a total order", prop.ForAll(
		func(ra, rb []T) bool {
			a, b := normalized(ra), normalized(rb)
			c := Compare(a, b)
			switch c {
			case 0:
				return equal(a, b) && Compare(b, a) == 0
			case -1, 1:
				return !equal(a, b) && Compare(b, a) == -c
			}
			return false
		},
		mag, mag,
	))

	properties.TestingRun(t)
}

func TestKernel_PropertyBased(t *testing.T) {
	t.Run("uint8", func(t *testing.T) { kernelProperties[uint8](t, "uint8", gen.UInt8()) })
	t.Run("uint16", func(t *testing.T) { kernelProperties[uint16](t, "uint16", gen.UInt16()) })
	t.Run("uint32", func(t *testing.T) { kernelProperties[uint32](t, "uint32", gen.UInt32()) })
	t.Run("uint64", func(t *testing.T) { kernelProperties[uint64](t, "uint64", gen.UInt64()) })
}
