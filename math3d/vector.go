package math3d

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Vector2 is a point or direction on the ground plane. X points to the right
// of the robot, Y points forwards.
type Vector2 = r2.Point

// Vector3 is a point or direction in space. Z points up, away from the ground.
type Vector3 = r3.Vector

var (
	ZeroVector2 = Vector2{}
	ZeroVector3 = Vector3{}
)

// Extend lifts a 2D vector into 3D at the given height.
func Extend(v Vector2, z float64) Vector3 {
	return Vector3{X: v.X, Y: v.Y, Z: z}
}

// XY drops the Z component.
func XY(v Vector3) Vector2 {
	return Vector2{X: v.X, Y: v.Y}
}

// WithMaxLength returns v, shortened to max if it's longer than that.
func WithMaxLength(v Vector3, max float64) Vector3 {
	n := v.Norm()
	if n <= max || n == 0 {
		return v
	}

	return v.Mul(max / n)
}

// WithMaxLength2 is WithMaxLength for planar vectors.
func WithMaxLength2(v Vector2, max float64) Vector2 {
	n := v.Norm()
	if n <= max || n == 0 {
		return v
	}

	return v.Mul(max / n)
}

// Lerp2 linearly interpolates between a and b.
func Lerp2(a, b Vector2, t float64) Vector2 {
	return a.Add(b.Sub(a).Mul(t))
}

// Lerp3 linearly interpolates between a and b.
func Lerp3(a, b Vector3, t float64) Vector3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Rotate2 rotates v counter-clockwise by angle (radians).
func Rotate2(v Vector2, angle float64) Vector2 {
	s, c := math.Sincos(angle)
	return Vector2{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
	}
}

// FromAngle returns the vector of the given length pointing at angle, measured
// counter-clockwise from the X axis.
func FromAngle(angle, length float64) Vector2 {
	s, c := math.Sincos(angle)
	return Vector2{X: c * length, Y: s * length}
}

// AngleFromXAxis returns the heading of v, in (-π, π].
func AngleFromXAxis(v Vector2) float64 {
	return math.Atan2(v.Y, v.X)
}

// SignedAngle2 returns the signed angle which rotates from onto to.
func SignedAngle2(from, to Vector2) float64 {
	return math.Atan2(from.Cross(to), from.Dot(to))
}

// AngleBetween3 returns the unsigned angle between a and b, in [0, π].
func AngleBetween3(a, b Vector3) float64 {
	return a.Angle(b).Radians()
}

// IsFinite returns false if any component is NaN or infinite.
func IsFinite(v Vector3) bool {
	for _, f := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}

	return true
}
