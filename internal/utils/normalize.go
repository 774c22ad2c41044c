package utils

import (
	"strconv"
	"strings"
)

// FormatFrequency renders a frequency with comma separated thousands,
// keeping at most one decimal: 740270 -> "740,270", 66981.4 -> "66,981.4".
func FormatFrequency(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && len(frac) > 1 {
		s = strconv.FormatFloat(f, 'f', 1, 64)
		intPart, frac, _ = strings.Cut(s, ".")
	}

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasFrac && frac != "0" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
