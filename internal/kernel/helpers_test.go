package kernel

import (
	"math/big"
	"math/rand"
)

// toBig converts a little-endian digit slice to a big.Int.
func toBig[T Digit](x []T) *big.Int {
	z := new(big.Int)
	w := Width[T]()
	for i := len(x) - 1; i >= 0; i-- {
		z.Lsh(z, w)
		z.Or(z, new(big.Int).SetUint64(uint64(x[i])))
	}
	return z
}

// fromBig converts a non-negative big.Int to normalized digits of T.
func fromBig[T Digit](v *big.Int) []T {
	w := Width[T]()
	mask := new(big.Int).SetUint64(uint64(MaxDigit[T]()))
	v = new(big.Int).Set(v)
	z := []T{}
	for v.Sign() > 0 {
		z = append(z, T(new(big.Int).And(v, mask).Uint64()))
		v.Rsh(v, w)
	}
	if len(z) == 0 {
		z = append(z, 0)
	}
	return z
}

// randomDigits returns n random digits with a non-zero top digit.
func randomDigits[T Digit](r *rand.Rand, n int) []T {
	z := make([]T, n)
	for i := range z {
		z[i] = T(r.Uint64())
	}
	for z[n-1] == 0 {
		z[n-1] = T(r.Uint64())
	}
	return z
}

// digitsFromBytes builds normalized digits from fuzzer bytes, one digit per
// chunk of the digit's size.
func digitsFromBytes[T Digit](b []byte) []T {
	size := int(Width[T]() / 8)
	z := make([]T, 0, len(b)/size+1)
	for len(b) > 0 {
		n := min(size, len(b))
		var d T
		for i := n - 1; i >= 0; i-- {
			d = d<<8 | T(b[i])
		}
		z = append(z, d)
		b = b[n:]
	}
	if len(z) == 0 {
		return []T{0}
	}
	return Trim(z)
}

func cloneDigits[T Digit](x []T) []T {
	return append([]T(nil), x...)
}

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
