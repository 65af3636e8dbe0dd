package unitconv

import (
	"math"
	"strconv"
)

// FormatValue renders v with a fixed number of decimals for display.
// Negative decimals render the shortest exact representation.
func FormatValue(v float64, decimals int) string {
	if decimals < 0 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if math.Signbit(v) && isZeroString(s) {
		// -0.001 at two decimals shows as 0.00, not -0.00
		s = s[1:]
	}
	return s
}

func isZeroString(s string) bool {
	for _, r := range s {
		if r != '-' && r != '0' && r != '.' {
			return false
		}
	}
	return true
}

// Format renders the result as "<value> <destination label>".
func (r Result) Format(decimals int) string {
	return FormatValue(r.Value, decimals) + " " + r.To.Name
}
