package math3d

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hexwalker/hexapod/utils"
	"gonum.org/v1/gonum/stat"
)

const (

	// Tolerance used by ApproxEqual.
	epsilon = 1e-6
)

// Pose is a position and heading on the ground plane. It's a rigid transform
// which rotates by Heading (counter-clockwise, radians) and then translates.
type Pose struct {
	Translation Vector2
	Heading     float64
}

var (
	IdentityPose = Pose{}
)

func NewPose(x, y, heading float64) Pose {
	return Pose{
		Translation: Vector2{X: x, Y: y},
		Heading:     heading,
	}
}

func (p Pose) String() string {
	return fmt.Sprintf("Pose{x=%+07.2f y=%+07.2f, r=%+07.2f°}", p.Translation.X, p.Translation.Y, p.Heading*180/math.Pi)
}

// Then returns the pose which applies p first, and then o.
func (p Pose) Then(o Pose) Pose {
	return Pose{
		Translation: o.TransformPoint(p.Translation),
		Heading:     p.Heading + o.Heading,
	}
}

// Inverse returns the pose which undoes p.
func (p Pose) Inverse() Pose {
	return Pose{
		Translation: Rotate2(p.Translation, -p.Heading).Mul(-1),
		Heading:     -p.Heading,
	}
}

func (p Pose) TransformPoint(v Vector2) Vector2 {
	return Rotate2(v, p.Heading).Add(p.Translation)
}

func (p Pose) InvTransformPoint(v Vector2) Vector2 {
	return Rotate2(v.Sub(p.Translation), -p.Heading)
}

func (p Pose) TransformVector(v Vector2) Vector2 {
	return Rotate2(v, p.Heading)
}

func (p Pose) InvTransformVector(v Vector2) Vector2 {
	return Rotate2(v, -p.Heading)
}

// TransformPoint3 transforms the X/Y of v, leaving the height alone.
func (p Pose) TransformPoint3(v Vector3) Vector3 {
	return Extend(p.TransformPoint(XY(v)), v.Z)
}

func (p Pose) InvTransformPoint3(v Vector3) Vector3 {
	return Extend(p.InvTransformPoint(XY(v)), v.Z)
}

// To3D returns the equivalent 3D transform, rotating around the Z axis.
func (p Pose) To3D() Transform3 {
	return Transform3{
		Rotation:    mgl64.QuatRotate(p.Heading, mgl64.Vec3{0, 0, 1}),
		Translation: Extend(p.Translation, 0),
	}
}

// ApproxEqual returns true if both poses are within a small tolerance of each
// other. Headings are compared modulo a full turn.
func (p Pose) ApproxEqual(o Pose) bool {
	return math.Abs(p.Translation.X-o.Translation.X) < epsilon &&
		math.Abs(p.Translation.Y-o.Translation.Y) < epsilon &&
		math.Abs(AngleDelta(p.Heading, o.Heading)) < epsilon
}

// StepTowards moves p towards target by at most maxLinear (in translation) and
// maxAngular (in heading). The heading is spread over the estimated number of
// translation steps, so both arrive together. The second return value is true
// once the target has effectively been reached.
func (p Pose) StepTowards(target Pose, maxLinear, maxAngular float64) (Pose, bool) {
	diff := target.Translation.Sub(p.Translation)
	steps := diff.Norm() / maxLinear

	delta := AngleDelta(p.Heading, target.Heading)
	if steps > 1 {
		delta /= steps
	}

	next := Pose{
		Translation: p.Translation.Add(WithMaxLength2(diff, maxLinear)),
		Heading:     p.Heading + utils.ClampAbs(delta, maxAngular),
	}

	return next, steps < 0.1 && math.Abs(delta) < maxAngular*0.1
}

// LerpPose interpolates linearly between the translations of a and b, and
// along the shortest arc between their headings.
func LerpPose(a, b Pose, t float64) Pose {
	return Pose{
		Translation: Lerp2(a.Translation, b.Translation, t),
		Heading:     LerpAngle(a.Heading, b.Heading, t),
	}
}

// CenterPoses returns the average of the given poses. Translations are always
// averaged arithmetically. Headings are too, unless circular is set, in which
// case the circular mean is used. The arithmetic mean misbehaves when headings
// straddle ±π, but matches headings which are accumulated without wrapping.
func CenterPoses(poses []Pose, circular bool) Pose {
	if len(poses) == 0 {
		return IdentityPose
	}

	xs := make([]float64, len(poses))
	ys := make([]float64, len(poses))
	hs := make([]float64, len(poses))
	for i, p := range poses {
		xs[i] = p.Translation.X
		ys[i] = p.Translation.Y
		hs[i] = p.Heading
	}

	var h float64
	if circular {
		h = stat.CircularMean(hs, nil)
	} else {
		h = stat.Mean(hs, nil)
	}

	return Pose{
		Translation: Vector2{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)},
		Heading:     h,
	}
}
