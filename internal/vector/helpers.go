package vector

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(math.Min(v, hi), lo)
}

// Remap clamps v to [lo, hi] and rescales the result to [0, 1].
// An empty band maps everything to 0.
func Remap(v, lo, hi float64) float64 {
	if hi-lo == 0 {
		return 0
	}
	return (Clamp(v, lo, hi) - lo) / (hi - lo)
}

// Finite returns v, or 0 when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SafeDiv returns a/b, or 0 when b is too small to divide by.
func SafeDiv(a, b float64) float64 {
	if math.Abs(b) < MinLength {
		return 0
	}
	return Finite(a / b)
}

// ToDegrees converts radians to degrees.
func ToDegrees(rad float64) float64 {
	return rad * (180 / math.Pi)
}
