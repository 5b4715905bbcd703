package legs

import (
	"math"

	"github.com/hexwalker/hexapod/math3d"
)

const (

	// Body dimensions (mm), measured between the leg joints.
	BodyWidth       = 78.0
	BodyWidthMiddle = 105.0
	BodyLength      = 140.0

	// The corner legs are mounted at this angle away from the X axis.
	CornerJointRotation = math.Pi / 4

	// Resting foot positions, relative to the center of the body.
	CenterToFootX   = 85.0
	CenterToFootY   = 130.0
	MiddleFootShift = 50.0

	// The distance between the ground and the leg joints when standing.
	BodyHeight = 70.0
)

// Foot identifies one of the six legs. The order matters: it's the order of
// every per-leg array, including the joint angles sent to the servos.
type Foot int

const (
	RightFront Foot = iota
	RightMiddle
	RightBack
	LeftBack
	LeftMiddle
	LeftFront
)

// NumFeet is the number of legs.
const NumFeet = 6

var names = [NumFeet]string{
	"right-front",
	"right-middle",
	"right-back",
	"left-back",
	"left-middle",
	"left-front",
}

func All() [NumFeet]Foot {
	return [NumFeet]Foot{RightFront, RightMiddle, RightBack, LeftBack, LeftMiddle, LeftFront}
}

func (f Foot) String() string {
	if f < 0 || int(f) >= NumFeet {
		return "unknown"
	}

	return names[f]
}

func (f Foot) IsRight() bool {
	return f == RightFront || f == RightMiddle || f == RightBack
}

func (f Foot) IsMiddle() bool {
	return f == RightMiddle || f == LeftMiddle
}

func (f Foot) multX() float64 {
	if f.IsRight() {
		return 1
	}

	return -1
}

func (f Foot) multY() float64 {
	switch f {
	case RightFront, LeftFront:
		return 1
	case RightBack, LeftBack:
		return -1
	default:
		return 0
	}
}

// JointPosition returns the point at which the leg is attached to the body,
// relative to the center of the body.
func (f Foot) JointPosition() math3d.Vector2 {
	width := BodyWidth
	if f.IsMiddle() {
		width = BodyWidthMiddle
	}

	return math3d.Vector2{
		X: f.multX() * width / 2,
		Y: f.multY() * BodyLength / 2,
	}
}

// InitialPosition returns the resting position of the foot on the ground,
// relative to the center of the body.
func (f Foot) InitialPosition() math3d.Vector3 {
	x := f.multX() * CenterToFootX
	if f.IsMiddle() {
		x += f.multX() * MiddleFootShift
	}

	return math3d.Vector3{X: x, Y: f.multY() * CenterToFootY, Z: 0}
}

// Orientation returns the unit vector along which the hip servo points at its
// zero angle.
func (f Foot) Orientation() math3d.Vector2 {
	angle := f.multY() * CornerJointRotation
	if !f.IsRight() {
		angle = math.Pi - angle
	}

	return math3d.FromAngle(angle, 1)
}
