package magnitude

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConstructors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		got  Magnitude[uint32]
		want []uint32
	}{
		{"zero value", Magnitude[uint32]{}, []uint32{0}},
		{"Zero", Zero[uint32](), []uint32{0}},
		{"FromDigits trims", FromDigits([]uint32{5, 0, 0}), []uint32{5}},
		{"FromDigits all zero", FromDigits([]uint32{0, 0}), []uint32{0}},
		{"FromDigits empty", FromDigits([]uint32{}), []uint32{0}},
		{"FromUint64", FromUint64[uint32](1 << 40), []uint32{0, 1 << 8}},
		{"FromDecimal", FromDecimal[uint32]("4294967296"), []uint32{0, 1}},
		{"FromDecimal junk", FromDecimal[uint32]("x1"), []uint32{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, tt.got.Digits()); diff != "" {
				t.Errorf("Digits mismatch (-want +got):\n%s", diff)
			}
			if tt.got.Len() != len(tt.want) {
				t.Errorf("Len = %d, want %d", tt.got.Len(), len(tt.want))
			}
		})
	}
}

func TestFromDigits_Copies(t *testing.T) {
	t.Parallel()
	src := []uint16{1, 2}
	m := FromDigits(src)
	src[0] = 99
	if got := m.Digits()[0]; got != 1 {
		t.Errorf("FromDigits shares its input: digit 0 = %d", got)
	}
	d := m.Digits()
	d[1] = 77
	if got := m.Digits()[1]; got != 2 {
		t.Errorf("Digits shares internal storage: digit 1 = %d", got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"0", "0", false},
		{"+123", "123", false},
		{"000", "0", false},
		{"18446744073709551616", "18446744073709551616", false},
		{"", "", true},
		{"-1", "", true},
		{"1e3", "", true},
		{" 7", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := Parse[uint8](tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrSyntax) {
					t.Errorf("Parse(%q) error = %v, want ErrSyntax", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	t.Parallel()
	a := FromDecimal[uint32]("340282366920938463463374607431768211455") // 2^128-1
	b := FromDecimal[uint32]("18446744073709551616")                    // 2^64
	one := FromUint64[uint32](1)

	tests := []struct {
		name string
		got  Magnitude[uint32]
		want string
	}{
		{"add carry", a.Add(one), "340282366920938463463374607431768211456"},
		{"add zero", a.Add(Zero[uint32]()), a.String()},
		{"mul", b.Mul(b), "340282366920938463463374607431768211456"},
		{"mul zero", a.Mul(Zero[uint32]()), "0"},
		{"lsh", one.Lsh(64), b.String()},
		{"lsh zero", Zero[uint32]().Lsh(100), "0"},
		{"rsh", a.Rsh(64), "18446744073709551615"},
		{"rsh everything", a.Rsh(500), "0"},
		{"and", a.And(b), "18446744073709551616"},
		{"or", b.Or(one), "18446744073709551617"},
		{"xor self", a.Xor(a), "0"},
		{"not one", one.Not(), "4294967294"},
		{"not zero", Zero[uint32]().Not(), "4294967295"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got.String() != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestSub(t *testing.T) {
	t.Parallel()
	a := FromUint64[uint8](1000)
	b := FromUint64[uint8](999)

	d, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub returned error: %v", err)
	}
	if diff := cmp.Diff([]uint8{1}, d.Digits()); diff != "" {
		t.Errorf("1000-999 mismatch (-want +got):\n%s", diff)
	}

	d, err = a.Sub(a)
	if err != nil || !d.IsZero() {
		t.Errorf("a-a = (%s, %v), want (0, nil)", d, err)
	}

	if _, err := b.Sub(a); !errors.Is(err, ErrUnderflow) {
		t.Errorf("999-1000 error = %v, want ErrUnderflow", err)
	}
}

func TestDivMod(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		x, y         string
		wantQ, wantR string
	}{
		{"small by large", "5", "18446744073709551616", "0", "5"},
		{"single digit", "1000000000000000000000", "7", "142857142857142857142", "6"},
		{"multi digit", "340282366920938463463374607431768211457", "18446744073709551617", "18446744073709551615", "2"},
		{"zero dividend", "0", "3", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			x, y := FromDecimal[uint16](tt.x), FromDecimal[uint16](tt.y)
			q, r, err := x.DivMod(y)
			if err != nil {
				t.Fatalf("DivMod returned error: %v", err)
			}
			if q.String() != tt.wantQ || r.String() != tt.wantR {
				t.Errorf("DivMod(%s, %s) = (%s, %s), want (%s, %s)", tt.x, tt.y, q, r, tt.wantQ, tt.wantR)
			}
			if q2, _ := x.Div(y); q2.Cmp(q) != 0 {
				t.Errorf("Div = %s, want %s", q2, q)
			}
			if r2, _ := x.Mod(y); r2.Cmp(r) != 0 {
				t.Errorf("Mod = %s, want %s", r2, r)
			}
		})
	}
}

func TestDivMod_ByZero(t *testing.T) {
	t.Parallel()
	x := FromUint64[uint64](42)
	if _, _, err := x.DivMod(Zero[uint64]()); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("DivMod error = %v, want ErrDivisionByZero", err)
	}
	if _, err := x.Div(Magnitude[uint64]{}); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Div error = %v, want ErrDivisionByZero", err)
	}
	if _, err := x.Mod(FromDigits([]uint64{0, 0})); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Mod error = %v, want ErrDivisionByZero", err)
	}
}

func TestUint64AndBits(t *testing.T) {
	t.Parallel()
	m := FromDecimal[uint8]("18446744073709551615")
	v, ok := m.Uint64()
	if !ok || v != ^uint64(0) {
		t.Errorf("Uint64 = (%d, %v), want (max, true)", v, ok)
	}
	if _, ok := m.Add(FromUint64[uint8](1)).Uint64(); ok {
		t.Errorf("2^64 reported as fitting in uint64")
	}
	if m.BitLen() != 64 {
		t.Errorf("BitLen = %d, want 64", m.BitLen())
	}
	if m.Bit(63) != 1 || m.Bit(64) != 0 {
		t.Errorf("Bit(63), Bit(64) = %d, %d, want 1, 0", m.Bit(63), m.Bit(64))
	}
}

func TestCmp(t *testing.T) {
	t.Parallel()
	small := FromUint64[uint16](65535)
	large := FromUint64[uint16](65536)
	if small.Cmp(large) != -1 || large.Cmp(small) != 1 || small.Cmp(small) != 0 {
		t.Errorf("Cmp ordering broken for %s and %s", small, large)
	}
	if Zero[uint16]().Cmp(FromDigits([]uint16{0, 0, 0})) != 0 {
		t.Errorf("zero forms compare unequal")
	}
}
