package math3d

import (
	"math"
)

// WrapAngle normalizes a in radians to (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}

	return a
}

// AngleDelta returns the shortest signed rotation from one heading to another.
func AngleDelta(from, to float64) float64 {
	return WrapAngle(to - from)
}

// LerpAngle interpolates along the shortest arc between two headings. The
// result is not wrapped, so interpolating from 3 to -3 passes through π rather
// than jumping.
func LerpAngle(a, b, t float64) float64 {
	return a + AngleDelta(a, b)*t
}
