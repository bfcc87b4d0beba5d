// Package utils provides small shared helpers.
package utils

import (
	"math"
	"strconv"
)

// FormatFloat renders v without exponent notation or trailing zeros.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Round4 rounds v to four decimal places.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
