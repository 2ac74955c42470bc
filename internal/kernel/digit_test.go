package kernel

import (
	"errors"
	"math/bits"
	"math/rand"
	"testing"
)

// ─────────────────────────────────────────────────────────────────────────────
// Exhaustive 8-bit checks
// ─────────────────────────────────────────────────────────────────────────────

func TestAddSubDigit_Exhaustive8(t *testing.T) {
	t.Parallel()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			for _, c := range []bool{false, true} {
				ci := 0
				if c {
					ci = 1
				}

				sum, carry := AddDigit(uint8(a), uint8(b), c)
				want := a + b + ci
				if int(sum) != want&0xFF || carry != (want > 0xFF) {
					t.Fatalf("AddDigit(%d, %d, %v) = (%d, %v), want (%d, %v)", a, b, c, sum, carry, want&0xFF, want > 0xFF)
				}

				diff, borrow := SubDigit(uint8(a), uint8(b), c)
				wantD := a - b - ci
				if int(diff) != wantD&0xFF || borrow != (wantD < 0) {
					t.Fatalf("SubDigit(%d, %d, %v) = (%d, %v), want (%d, %v)", a, b, c, diff, borrow, wantD&0xFF, wantD < 0)
				}
			}
		}
	}
}

func TestMulDigit_Exhaustive8(t *testing.T) {
	t.Parallel()
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			p := a * b
			lo, hi := MulDigit(uint8(a), uint8(b))
			if int(lo) != p&0xFF || int(hi) != p>>8 {
				t.Fatalf("MulDigit(%d, %d) = (%d, %d), want (%d, %d)", a, b, lo, hi, p&0xFF, p>>8)
			}
			plo, phi := mulDigitPortable(uint8(a), uint8(b))
			if plo != lo || phi != hi {
				t.Fatalf("mulDigitPortable(%d, %d) = (%d, %d), want (%d, %d)", a, b, plo, phi, lo, hi)
			}
		}
	}
}

func TestDivDoubleDigit_Exhaustive8(t *testing.T) {
	t.Parallel()
	for d := 1; d < 256; d++ {
		for hi := 0; hi < d; hi++ {
			for lo := 0; lo < 256; lo++ {
				n := hi<<8 | lo
				q, r, err := DivDoubleDigit(uint8(lo), uint8(hi), uint8(d))
				if err != nil {
					t.Fatalf("DivDoubleDigit(%d, %d, %d) unexpected error: %v", lo, hi, d, err)
				}
				if int(q) != n/d || int(r) != n%d {
					t.Fatalf("DivDoubleDigit(%d, %d, %d) = (%d, %d), want (%d, %d)", lo, hi, d, q, r, n/d, n%d)
				}
				pq, pr := divDoubleDigitPortable(uint8(lo), uint8(hi), uint8(d))
				if pq != q || pr != r {
					t.Fatalf("divDoubleDigitPortable(%d, %d, %d) = (%d, %d), want (%d, %d)", lo, hi, d, pq, pr, q, r)
				}
			}
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Portable paths against the native ones
// ─────────────────────────────────────────────────────────────────────────────

func TestPortablePrimitives_Random(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(42))

	t.Run("uint16", func(t *testing.T) {
		checkPortable[uint16](t, r.Uint64)
	})
	t.Run("uint32", func(t *testing.T) {
		checkPortable[uint32](t, r.Uint64)
	})
	t.Run("uint64", func(t *testing.T) {
		checkPortable[uint64](t, r.Uint64)
	})
}

func checkPortable[T Digit](t *testing.T, next func() uint64) {
	t.Helper()
	edges := []T{0, 1, 2, MaxDigit[T](), MaxDigit[T]() - 1, MaxDigit[T]() >> 1, MaxDigit[T]()>>1 + 1}
	values := append([]T(nil), edges...)
	for range 200 {
		values = append(values, T(next()))
	}

	for _, a := range values {
		for _, b := range values {
			lo, hi := MulDigit(a, b)
			plo, phi := mulDigitPortable(a, b)
			if lo != plo || hi != phi {
				t.Fatalf("mulDigitPortable(%#x, %#x) = (%#x, %#x), native (%#x, %#x)", a, b, plo, phi, lo, hi)
			}

			d := b
			if d == 0 {
				continue
			}
			h := a % d
			q, rem := divDoubleDigit(a, h, d)
			pq, prem := divDoubleDigitPortable(a, h, d)
			if q != pq || rem != prem {
				t.Fatalf("divDoubleDigitPortable(%#x, %#x, %#x) = (%#x, %#x), native (%#x, %#x)", a, h, d, pq, prem, q, rem)
			}
		}
	}
}

func TestMulDigit_Uint64MatchesBits(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(7))
	for range 1000 {
		a, b := r.Uint64(), r.Uint64()
		wantHi, wantLo := bits.Mul64(a, b)
		lo, hi := MulDigit(a, b)
		if lo != wantLo || hi != wantHi {
			t.Fatalf("MulDigit(%#x, %#x) = (%#x, %#x), want (%#x, %#x)", a, b, lo, hi, wantLo, wantHi)
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Error cases
// ─────────────────────────────────────────────────────────────────────────────

func TestDivDoubleDigit_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		lo, hi  uint32
		d       uint32
		wantErr error
	}{
		{"zero divisor", 5, 0, 0, ErrDivisionByZero},
		{"high equals divisor", 0, 7, 7, ErrQuotientOverflow},
		{"high above divisor", 0, 9, 7, ErrQuotientOverflow},
		{"fits", 0xFFFFFFFF, 6, 7, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := DivDoubleDigit(tt.lo, tt.hi, tt.d)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DivDoubleDigit(%#x, %#x, %#x) error = %v, want %v", tt.lo, tt.hi, tt.d, err, tt.wantErr)
			}
		})
	}
}

func TestWidthAndMaxPow10(t *testing.T) {
	t.Parallel()
	type myWord uint

	checks := []struct {
		name  string
		width uint
		pow   uint64
		k     int
		gotW  uint
		gotP  uint64
		gotK  int
	}{
		{name: "uint8", width: 8, pow: 100, k: 2},
		{name: "uint16", width: 16, pow: 10000, k: 4},
		{name: "uint32", width: 32, pow: 1000000000, k: 9},
		{name: "uint64", width: 64, pow: 10000000000000000000, k: 19},
	}
	p8, k8 := MaxPow10[uint8]()
	p16, k16 := MaxPow10[uint16]()
	p32, k32 := MaxPow10[uint32]()
	p64, k64 := MaxPow10[uint64]()
	checks[0].gotW, checks[0].gotP, checks[0].gotK = Width[uint8](), uint64(p8), k8
	checks[1].gotW, checks[1].gotP, checks[1].gotK = Width[uint16](), uint64(p16), k16
	checks[2].gotW, checks[2].gotP, checks[2].gotK = Width[uint32](), uint64(p32), k32
	checks[3].gotW, checks[3].gotP, checks[3].gotK = Width[uint64](), uint64(p64), k64

	for _, c := range checks {
		if c.gotW != c.width || c.gotP != c.pow || c.gotK != c.k {
			t.Errorf("%s: width=%d pow=%d k=%d, want width=%d pow=%d k=%d", c.name, c.gotW, c.gotP, c.gotK, c.width, c.pow, c.k)
		}
	}

	if got := Width[myWord](); got != bits.UintSize {
		t.Errorf("Width[myWord]() = %d, want %d", got, bits.UintSize)
	}
}
