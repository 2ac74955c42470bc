package format

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatNumberString inserts thousands separators into a decimal string of
// any length. An optional leading '-' is preserved.
func FormatNumberString(s string) string {
	if s == "" {
		return s
	}
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var sb strings.Builder
	sb.Grow(len(sign) + len(s) + len(s)/3)
	sb.WriteString(sign)
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	sb.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		sb.WriteByte(',')
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

// FormatCount renders a count with thousands separators, e.g. a number of
// decimal digits or evaluated lines.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatBytes renders a byte count in SI units ("1.2 MB").
func FormatBytes(n uint64) string {
	return humanize.Bytes(n)
}
