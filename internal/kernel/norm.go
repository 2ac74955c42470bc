package kernel

// Len returns the normalized length of x: the index one past its most
// significant non-zero digit, or 1 when every digit is zero. An empty slice
// has length 0.
func Len[T Digit](x []T) int {
	n := len(x)
	for n > 1 && x[n-1] == 0 {
		n--
	}
	return n
}

// Trim returns x without its most-significant zero digits. A zero value keeps
// exactly one digit.
func Trim[T Digit](x []T) []T {
	return x[:Len(x)]
}

// IsZero reports whether every digit of x is zero.
func IsZero[T Digit](x []T) bool {
	for _, d := range x {
		if d != 0 {
			return false
		}
	}
	return true
}

// BitLen returns the number of significant bits in x; 0 for a zero value.
func BitLen[T Digit](x []T) uint {
	n := Len(x)
	if n == 0 {
		return 0
	}
	return uint(n-1)*Width[T]() + digitLen(x[n-1])
}

// TopBit returns the index of the highest set bit of x, counting from the
// least significant bit of x[0]. A zero value reports 0.
func TopBit[T Digit](x []T) uint {
	if b := BitLen(x); b > 0 {
		return b - 1
	}
	return 0
}

// Bit returns bit i of x.
func Bit[T Digit](x []T, i uint) uint {
	w := Width[T]()
	j := int(i / w)
	if j >= len(x) {
		return 0
	}
	return uint(x[j]>>(i%w)) & 1
}

// setBit sets bit i of x. The caller guarantees x is long enough.
func setBit[T Digit](x []T, i uint) {
	w := Width[T]()
	x[i/w] |= T(1) << (i % w)
}

// Compare returns -1, 0 or +1 depending on whether x < y, x == y or x > y.
// Leading zero digits are ignored, so the operands need not be normalized.
// An empty slice compares as zero.
func Compare[T Digit](x, y []T) int {
	var zero [1]T
	if len(x) == 0 {
		x = zero[:]
	}
	if len(y) == 0 {
		y = zero[:]
	}
	x, y = Trim(x), Trim(y)
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	}
	for i := len(x) - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}
