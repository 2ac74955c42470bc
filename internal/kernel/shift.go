package kernel

// LeftShift stores src << bitCount in dst[:len(src)+bitCount/W] and returns
// the bits shifted out of the top as a carry digit. When the carry is non-zero
// the caller stores it at dst[len(src)+bitCount/W].
//
// dst must hold at least len(src)+bitCount/W digits. It may start at src or be
// disjoint from it.
func LeftShift[T Digit](dst, src []T, bitCount uint) (carry T, err error) {
	w := Width[T]()
	q, r := int(bitCount/w), bitCount%w
	if len(dst) < len(src)+q {
		return 0, precondition("LeftShift", "dst has %d digits, shift needs %d", len(dst), len(src)+q)
	}
	if !alignedOrDisjoint(dst, src) {
		return 0, precondition("LeftShift", "dst partially overlaps src")
	}
	if len(src) == 0 {
		return 0, nil
	}

	// Whole digits first; copy is overlap-safe.
	z := dst[q : q+len(src)]
	copy(z, src)
	clear(dst[:q])

	if r == 0 {
		return 0, nil
	}
	return shlVU(z, r), nil
}

// shlVU shifts z left by 0 < s < W bits in place and returns the bits shifted
// out of the top digit.
func shlVU[T Digit](z []T, s uint) (c T) {
	n := len(z)
	if n == 0 {
		return 0
	}
	ŝ := Width[T]() - s
	c = z[n-1] >> ŝ
	for i := n - 1; i > 0; i-- {
		z[i] = z[i]<<s | z[i-1]>>ŝ
	}
	z[0] <<= s
	return c
}

// RightShift shifts buf right by bitCount bits in place and returns how many
// most-significant digits are now zero and may be dropped; the caller
// re-slices with buf[:len(buf)-trailing]. Shifting every digit out leaves a
// single zero digit.
func RightShift[T Digit](buf []T, bitCount uint) (trailing int) {
	if len(buf) == 0 {
		return 0
	}
	w := Width[T]()
	q, r := bitCount/w, bitCount%w
	if q >= uint(len(buf)) {
		clear(buf)
		return len(buf) - 1
	}

	m := len(buf) - int(q)
	if q > 0 {
		copy(buf, buf[q:])
		clear(buf[m:])
	}
	if r > 0 {
		shrVU(buf[:m], r)
	}
	return len(buf) - Len(buf)
}

// shrVU shifts z right by 0 < s < W bits in place. The low bits of each digit
// are replaced by the low bits of the next higher digit.
func shrVU[T Digit](z []T, s uint) {
	n := len(z)
	if n == 0 {
		return
	}
	ŝ := Width[T]() - s
	for i := 0; i < n-1; i++ {
		z[i] = z[i]>>s | z[i+1]<<ŝ
	}
	z[n-1] >>= s
}
