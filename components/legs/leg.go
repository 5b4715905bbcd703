package legs

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hexwalker/hexapod/math3d"
)

const (

	// Segment lengths (mm). The hip is the horizontal link between the joint on
	// the body and the vertical hip servo. The upper and lower links meet at the
	// knee.
	HipLength      = 28.0
	UpperLegLength = 43.0
	LowerLegLength = 92.0
)

var (
	yAxis = mgl64.Vec3{0, 1, 0}
	zAxis = mgl64.Vec3{0, 0, 1}
)

// Leg solves the joint positions of one leg, relative to its joint on the body.
// The zero value is a leg folded at the joint, with no valid solution.
type Leg struct {
	hip  math3d.Vector3
	knee math3d.Vector3
	foot math3d.Vector3

	// Set when the last target couldn't be reached. The geometry above is then
	// whatever the last successful solve left behind.
	unreachable bool
}

// Solve positions the leg so that the foot is at target, which is relative to
// the leg joint. It returns false (and leaves the previous geometry alone) if
// the target can't be reached.
func (l *Leg) Solve(target math3d.Vector3) bool {

	// The hip always points at the foot, seen from above.
	flat := math3d.Vector2{X: target.X, Y: target.Y}
	if flat.Norm() == 0 {
		l.unreachable = true
		return false
	}

	hip := math3d.Extend(flat.Normalize().Mul(HipLength), 0)

	// The hip, knee and foot form a triangle with sides UpperLegLength,
	// LowerLegLength and d, so the angle at the hip follows from the law of
	// cosines.
	hipToFoot := target.Sub(hip)
	d := hipToFoot.Norm()
	if d == 0 {
		l.unreachable = true
		return false
	}

	cos := (UpperLegLength*UpperLegLength + d*d - LowerLegLength*LowerLegLength) / (2 * UpperLegLength * d)
	if math.IsNaN(cos) || cos < -1 || cos > 1 {
		l.unreachable = true
		return false
	}

	beta := math.Acos(cos)

	// Switch to a side view of the plane containing the hip and foot, and
	// rotate the hip->foot line upwards to find the knee.
	top := math3d.XY(hipToFoot)
	side := math3d.Vector2{X: top.Norm(), Y: hipToFoot.Z}
	side = math3d.Rotate2(side, beta).Normalize().Mul(UpperLegLength)

	hipToKnee := math3d.Extend(top.Normalize().Mul(side.X), side.Y)

	l.hip = hip
	l.knee = hip.Add(hipToKnee)
	l.foot = target
	l.unreachable = false

	return true
}

// Reachable returns false if the last target couldn't be reached.
func (l *Leg) Reachable() bool {
	return !l.unreachable
}

func (l *Leg) Hip() math3d.Vector3  { return l.hip }
func (l *Leg) Knee() math3d.Vector3 { return l.knee }
func (l *Leg) Foot() math3d.Vector3 { return l.foot }

// Angles returns the servo angles [hip yaw, hip pitch, knee] for the current
// geometry, each in (-π, π]. The hip yaw is measured from orientation, which
// is the direction the hip points at its zero angle. It returns false while
// the leg is unreachable.
func (l *Leg) Angles(orientation math3d.Vector2) ([3]float64, bool) {
	if l.unreachable {
		return [3]float64{}, false
	}

	alpha := math3d.SignedAngle2(orientation, math3d.XY(l.hip))

	hipToKnee := l.knee.Sub(l.hip)
	beta := math.Atan2(hipToKnee.Z, math3d.XY(hipToKnee).Norm())

	gamma := math3d.AngleBetween3(l.hip.Sub(l.knee), l.foot.Sub(l.knee)) - math.Pi/2

	return [3]float64{
		math3d.WrapAngle(alpha),
		math3d.WrapAngle(beta),
		math3d.WrapAngle(gamma),
	}, true
}

// Chain builds the segments of a leg with the given servo angles, starting at
// the leg joint.
func Chain(angles [3]float64, orientation math3d.Vector2) (hip, upper, lower *Segment) {
	bearing := math3d.AngleFromXAxis(orientation) + angles[0]

	// Both the upper and lower links pivot around the Y axis of their parent.
	// Rotating X around Y by a positive angle points it downwards, hence the
	// negated angles.
	knee := angles[2] + math.Pi/2

	hip = MakeRootSegment(mgl64.QuatRotate(bearing, zAxis), math3d.Vector3{X: HipLength})
	upper = MakeSegment("upper", hip, mgl64.QuatRotate(-angles[1], yAxis), math3d.Vector3{X: UpperLegLength})
	lower = MakeSegment("lower", upper, mgl64.QuatRotate(-(knee+math.Pi), yAxis), math3d.Vector3{X: LowerLegLength})

	return hip, upper, lower
}

// Forward returns the positions of the hip, knee and foot for the given servo
// angles, relative to the leg joint. It's the inverse of Solve followed by
// Angles.
func Forward(angles [3]float64, orientation math3d.Vector2) (hip, knee, foot math3d.Vector3) {
	h, u, lo := Chain(angles, orientation)
	return h.End(), u.End(), lo.End()
}

// Telemetry is the world position of each point of a leg.
type Telemetry struct {
	Joint [3]float64 `json:"joint"`
	Hip   [3]float64 `json:"hip"`
	Knee  [3]float64 `json:"knee"`
	Foot  [3]float64 `json:"foot"`
}

// Telemetry returns the world positions of the leg, given the position of its
// joint on the body and the transform from the body to the world.
func (l *Leg) Telemetry(joint math3d.Vector2, bodyToWorld math3d.Transform3) Telemetry {
	j := math3d.Extend(joint, 0)
	arr := func(v math3d.Vector3) [3]float64 {
		w := bodyToWorld.TransformPoint(v)
		return [3]float64{w.X, w.Y, w.Z}
	}

	return Telemetry{
		Joint: arr(j),
		Hip:   arr(l.hip.Add(j)),
		Knee:  arr(l.knee.Add(j)),
		Foot:  arr(l.foot.Add(j)),
	}
}
