package math3d

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform3 is a rigid transform in space. It rotates first, and then
// translates.
type Transform3 struct {
	Rotation    mgl64.Quat
	Translation Vector3
}

var (
	IdentityTransform3 = Transform3{Rotation: mgl64.QuatIdent()}
)

func NewTransform3(rotation mgl64.Quat, translation Vector3) Transform3 {
	return Transform3{
		Rotation:    rotation.Normalize(),
		Translation: translation,
	}
}

// TranslationTransform3 returns a transform which only moves.
func TranslationTransform3(v Vector3) Transform3 {
	return Transform3{Rotation: mgl64.QuatIdent(), Translation: v}
}

func (t Transform3) String() string {
	return fmt.Sprintf("Transform3{t=%v r=%v}", t.Translation, t.Rotation)
}

// Then returns the transform which applies t first, and then o.
func (t Transform3) Then(o Transform3) Transform3 {
	return Transform3{
		Rotation:    o.Rotation.Mul(t.Rotation).Normalize(),
		Translation: o.TransformPoint(t.Translation),
	}
}

func (t Transform3) Inverse() Transform3 {
	inv := t.Rotation.Inverse()
	return Transform3{
		Rotation:    inv,
		Translation: rotate(inv, t.Translation).Mul(-1),
	}
}

func (t Transform3) TransformPoint(v Vector3) Vector3 {
	return rotate(t.Rotation, v).Add(t.Translation)
}

func (t Transform3) InvTransformPoint(v Vector3) Vector3 {
	return rotate(t.Rotation.Inverse(), v.Sub(t.Translation))
}

func (t Transform3) TransformVector(v Vector3) Vector3 {
	return rotate(t.Rotation, v)
}

func (t Transform3) InvTransformVector(v Vector3) Vector3 {
	return rotate(t.Rotation.Inverse(), v)
}

// ApproxEqual compares translations componentwise, and rotations by the angle
// between them, so q and -q are equal.
func (t Transform3) ApproxEqual(o Transform3) bool {
	d := t.Translation.Sub(o.Translation)
	if math.Abs(d.X) >= epsilon || math.Abs(d.Y) >= epsilon || math.Abs(d.Z) >= epsilon {
		return false
	}

	dot := math.Abs(t.Rotation.Dot(o.Rotation))
	return dot > 1-epsilon
}

// SlerpTransform3 interpolates rotations along the shortest arc, and
// translations linearly.
func SlerpTransform3(a, b Transform3, t float64) Transform3 {
	return Transform3{
		Rotation:    mgl64.QuatSlerp(a.Rotation, b.Rotation, t).Normalize(),
		Translation: Lerp3(a.Translation, b.Translation, t),
	}
}

func rotate(q mgl64.Quat, v Vector3) Vector3 {
	r := q.Rotate(mgl64.Vec3{v.X, v.Y, v.Z})
	return Vector3{X: r[0], Y: r[1], Z: r[2]}
}
