// Package accounting holds the money rules shared by invoices, statements and
// reports: two-decimal rounding, line-level tax, aggregation and display formatting.
//
// Amounts are float64 throughout. Every final figure passes through Round2 exactly
// once at the point it is produced; line figures are rounded per line and the
// aggregates over them are rounded again.
package accounting

import "math"

// Round2 rounds x to two decimal places. Halves resolve toward positive infinity,
// unlike math.Round: Round2(-0.125) == -0.12 and Round2(0.125) == 0.13.
func Round2(x float64) float64 {
	v := float64(x * 100)

	f := math.Floor(v)
	if v-f >= 0.5 {
		f++
	}

	return f / 100
}
