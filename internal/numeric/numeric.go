// Package numeric holds float helpers shared by the metrics engine and the
// row writers.
package numeric

import "math"

// Finite returns v unchanged when it is a finite number and 0 otherwise.
// NaN, +Inf and -Inf all map to 0.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Ratio divides num by den without guarding the zero denominator; the
// result may be NaN or infinite and is expected to pass through Finite
// before it leaves the process.
func Ratio(num, den float64) float64 {
	return num / den
}
