package utils

import (
	"math"
)

func Deg(rads float64) float64 {
	return rads / (math.Pi / 180)
}

func Rad(degrees float64) float64 {
	return (math.Pi / 180) * degrees
}

// ClampAbs limits the magnitude of val to max, keeping its sign.
func ClampAbs(val, max float64) float64 {
	if math.Abs(val) < max {
		return val
	}

	return math.Copysign(max, val)
}

// Clamp returns val limited to the closed range [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
