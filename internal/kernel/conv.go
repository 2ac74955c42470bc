package kernel

var pow10tab = [...]uint64{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
	10000000000, 100000000000, 1000000000000, 10000000000000, 100000000000000, 1000000000000000,
	10000000000000000, 100000000000000000, 1000000000000000000, 10000000000000000000,
}

// MaxPow10 returns (10^k, k) for the largest k such that 10^k fits in one
// digit of T: (100, 2) for uint8 up to (10^19, 19) for uint64. Decimal
// conversion moves k decimal digits per digit-level pass.
func MaxPow10[T Digit]() (pow T, k int) {
	limit := uint64(MaxDigit[T]()) / 10
	p := uint64(1)
	for p <= limit {
		p *= 10
		k++
	}
	return T(p), k
}

// ─────────────────────────────────────────────────────────────────────────────
// Decimal → digits
// ─────────────────────────────────────────────────────────────────────────────

// FromDecimal converts the leading decimal number in s to a normalized
// magnitude. Leading whitespace and one '+' are skipped; the first character
// that is not a decimal digit ends the number. When no digit is found the
// result is zero.
func FromDecimal[T Digit](s string) []T {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '+' {
		i++
	}
	j := i
	for j < len(s) && isDecimal(s[j]) {
		j++
	}
	return fromDecimalDigits[T](s[i:j])
}

// ParseDecimal is the strict form of FromDecimal: s must be an optional '+'
// followed by one or more decimal digits and nothing else.
func ParseDecimal[T Digit](s string) ([]T, error) {
	ds := s
	if len(ds) > 0 && ds[0] == '+' {
		ds = ds[1:]
	}
	if ds == "" {
		return nil, ErrSyntax
	}
	for i := 0; i < len(ds); i++ {
		if !isDecimal(ds[i]) {
			return nil, ErrSyntax
		}
	}
	return fromDecimalDigits[T](ds), nil
}

// fromDecimalDigits converts a string of decimal digits, most significant
// chunk first: each chunk of up to k digits scales the accumulator by
// 10^len(chunk) and is added in the same pass.
func fromDecimalDigits[T Digit](ds string) []T {
	if ds == "" {
		return []T{0}
	}
	_, k := MaxPow10[T]()
	// log2(10) ~= 3.322 bits per decimal digit.
	estimate := len(ds)*3322/(1000*int(Width[T]())) + 2
	z := make([]T, 1, estimate)

	for len(ds) > 0 {
		n := min(k, len(ds))
		var chunk T
		for _, ch := range []byte(ds[:n]) {
			chunk = chunk*10 + T(ch-'0')
		}
		if c := mulAddVWW(z, z, T(pow10tab[n]), chunk); c != 0 {
			z = append(z, c)
		}
		ds = ds[n:]
	}
	return Trim(z)
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDecimal(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// ─────────────────────────────────────────────────────────────────────────────
// Digits → decimal
// ─────────────────────────────────────────────────────────────────────────────

// ToDecimal returns the decimal representation of x without leading zeros.
// x is not modified.
//
// The value is divided by 10^k repeatedly through the single-digit division
// path; every remainder but the last becomes exactly k zero-padded characters,
// placed in front of the chunks produced before it.
func ToDecimal[T Digit](x []T) string {
	x = Trim(x)
	if len(x) == 0 || IsZero(x) {
		return "0"
	}
	bb, k := MaxPow10[T]()

	// log10(2) ~= 0.30103 decimal digits per bit, rounded up.
	s := make([]byte, int(BitLen(x))*30103/100000+1+k)
	i := len(s)

	q := acquire[T](len(x))
	defer release(q)
	copy(q, x)

	for {
		r := divVW(q, q, bb)
		q = Trim(q)
		if IsZero(q) {
			for r > 0 {
				i--
				s[i] = '0' + byte(r%10)
				r /= 10
			}
			break
		}
		for j := 0; j < k; j++ {
			i--
			s[i] = '0' + byte(r%10)
			r /= 10
		}
	}
	return string(s[i:])
}

// ─────────────────────────────────────────────────────────────────────────────
// Native integers
// ─────────────────────────────────────────────────────────────────────────────

// FromUint64 splits v into normalized digits of T.
func FromUint64[T Digit](v uint64) []T {
	w := Width[T]()
	if w >= 64 {
		return []T{T(v)}
	}
	z := make([]T, 0, 64/w)
	for {
		z = append(z, T(v))
		v >>= w
		if v == 0 {
			return z
		}
	}
}

// ToUint64 returns the value of x as a uint64 and whether it fits.
func ToUint64[T Digit](x []T) (uint64, bool) {
	x = Trim(x)
	w := Width[T]()
	if BitLen(x) > 64 {
		return 0, false
	}
	var v uint64
	for i := len(x) - 1; i >= 0; i-- {
		if w < 64 {
			v <<= w
		}
		v |= uint64(x[i])
	}
	return v, true
}
