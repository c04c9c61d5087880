package utils

import (
	"math"
)

func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// SignOr returns the sign of x as +/-1, or fallback when x is zero.
func SignOr(x, fallback float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return fallback
}
