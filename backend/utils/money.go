package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount reads a decimal-string money field. Blank, malformed,
// NaN or infinite values count as zero so one bad row cannot poison an
// aggregate.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// FormatAmount renders a money value back to its decimal-string form.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
