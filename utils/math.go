package utils

import "math"

// Square returns n*n; math.Pow(x, 2) is slow.
func Square(n float64) float64 {
	return n * n
}

// Float64RelAlmostEqual compares two float64s against an absolute tolerance plus a tolerance
// relative to the larger magnitude.
func Float64RelAlmostEqual(a, b, absEpsilon, relEpsilon float64) bool {
	return math.Abs(a-b) <= absEpsilon+relEpsilon*math.Max(math.Abs(a), math.Abs(b))
}

// Clamp returns value limited to [low, high].
func Clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MaxIdx returns the index of the first maximum among the entries for which include returns
// true, or -1 if none are included.
func MaxIdx(values []float64, include func(i int) bool) int {
	idx := -1
	for i, v := range values {
		if !include(i) {
			continue
		}
		if idx == -1 || v > values[idx] {
			idx = i
		}
	}
	return idx
}
