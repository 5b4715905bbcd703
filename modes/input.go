package modes

import (
	"math"

	"github.com/hexwalker/hexapod/components/controller"
	"github.com/hexwalker/hexapod/math3d"
)

// WalkingInput is the travel command: X and Y are the direction of travel
// (from the left stick), and Rot is the rate of turn. Turning right on the
// stick is a clockwise (negative) turn.
type WalkingInput struct {
	vec      math3d.Vector3
	deadzone float64
}

// NewWalkingInput returns the travel command for the given stick values. Each
// axis below the deadzone is ignored.
func NewWalkingInput(x, y, rot, deadzone float64) WalkingInput {
	dz := func(v float64) float64 {
		if math.Abs(v) < deadzone {
			return 0
		}

		return v
	}

	return WalkingInput{
		vec:      math3d.Vector3{X: dz(x), Y: dz(y), Z: -dz(rot)},
		deadzone: deadzone,
	}
}

// InputFromEvent reads the travel command from the left stick, and the turn
// from the right.
func InputFromEvent(ev controller.Event, deadzone float64) WalkingInput {
	return NewWalkingInput(ev.LX, ev.LY, ev.RX, deadzone)
}

// Significant returns true if the robot should be walking.
func (w WalkingInput) Significant() bool {
	return w.vec.Norm() > w.deadzone
}

// Similar returns true if the two commands are indistinguishable.
func (w WalkingInput) Similar(o WalkingInput) bool {
	return w.vec.Sub(o.vec).Norm() < w.deadzone
}

func (w WalkingInput) Translation() math3d.Vector2 {
	return math3d.XY(w.vec)
}

func (w WalkingInput) Rot() float64 {
	return w.vec.Z
}
