package vmath

import "math"

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1], mapping NaN to 0
func Clamp01(v float64) float64 {
	if v != v {
		return 0
	}
	return Clamp(v, 0, 1)
}

// Lerp interpolates between a and b by t (unclamped)
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Abs returns the absolute value of x
func Abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1 matching the sign of x
func Sign(x float64) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// Wrap returns (i + delta) modulo n in [0, n), n must be positive
func Wrap(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// ApproxEqual reports whether a and b differ by less than eps
func ApproxEqual(a, b, eps float64) bool {
	return Abs(a-b) < eps
}
