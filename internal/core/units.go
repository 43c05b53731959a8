// Package core provides the pure domain for the dashboard: transaction
// aggregation, display-magnitude conversion, age computation and chart
// dataset construction. Nothing in this package performs I/O.
package core

import (
	"math"
	"strconv"
)

// Display-magnitude divisors. Experience points are shown in kB, audit
// volumes in MB since they run two orders of magnitude larger.
const (
	DivisorKB int64 = 1_000
	DivisorMB int64 = 1_000_000
)

// ToMagnitude converts a raw byte-style amount to a display magnitude,
// rounded half-up to two decimal places.
func ToMagnitude(amount, divisor int64) float64 {
	if divisor == 0 {
		divisor = 1
	}
	return math.Round(float64(amount)/float64(divisor)*100) / 100
}

func ToKilobytes(amount int64) float64 { return ToMagnitude(amount, DivisorKB) }

func ToMegabytes(amount int64) float64 { return ToMagnitude(amount, DivisorMB) }

// RoundRatio rounds the provider-supplied audit ratio to two decimals.
// The provider value is authoritative; it is never recomputed locally.
func RoundRatio(ratio float64) float64 {
	return math.Round(ratio*100) / 100
}

// FormatMagnitude renders a display magnitude with exactly two decimals,
// matching the "5.00 kB" style used in the dashboard text.
func FormatMagnitude(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
