package domain

import "math"

// MaxAmount is the largest value a decimal(15,2) money column holds
const MaxAmount = 9999999999999.99

// ValidAmount reports whether a is a positive amount in whole cents that
// fits the money columns
func ValidAmount(a float64) bool {
	if math.IsNaN(a) || math.IsInf(a, 0) || a <= 0 || a > MaxAmount {
		return false
	}
	cents := a * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}
