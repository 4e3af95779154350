package coords

import "math"

// Exponential is a number decomposed as Mantissa * Base^Exponent with
// 1 <= Mantissa < Base. Zero decomposes to a zero mantissa and exponent.
type Exponential struct {
	Mantissa float64
	Exponent int
}

// ToExponential decomposes |x| in the given base. The base must be greater
// than one. The exponent drives tick label precision in the grid.
func ToExponential(x, base float64) Exponential {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return Exponential{}
	}
	x = math.Abs(x)

	exp := int(math.Floor(math.Log(x) / math.Log(base)))
	// The logarithm can land one off near exact powers; settle with
	// comparisons against the same powers callers compute.
	for x < pow(base, exp) {
		exp--
	}
	for x >= pow(base, exp+1) {
		exp++
	}
	return Exponential{Mantissa: x / pow(base, exp), Exponent: exp}
}

func pow(base float64, exp int) float64 {
	if base == 10 {
		return math.Pow10(exp)
	}
	return math.Pow(base, float64(exp))
}
