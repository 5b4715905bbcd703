package hexapod

import (
	"time"

	"github.com/hexwalker/hexapod/components/legs"
	"github.com/hexwalker/hexapod/math3d"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "hexapod",
})

// NumAngles is the number of servo angles: three per leg.
const NumAngles = legs.NumFeet * 3

type Hexapod struct {
	Components []Component

	// The position and heading of the body on the ground, in the world space.
	Origin math3d.Pose

	// The offset and rotation of the body relative to the origin. This is where
	// the height of the body off the ground lives.
	Body math3d.Transform3

	legs [legs.NumFeet]legs.Leg

	// Foot positions in the WORLD coordinate space. We must store them in this
	// space rather than the body space, so they stay put when the origin moves.
	feet [legs.NumFeet]math3d.Vector3

	// Components can set this to true to indicate that the hex should shut down.
	Shutdown bool
}

type Component interface {
	Boot() error
	Tick(now time.Time, hex *Hexapod) error
}

// New returns a hexapod standing at the world origin, with every foot at its
// resting position.
func New() *Hexapod {
	h := &Hexapod{
		Components: []Component{},
		Origin:     math3d.IdentityPose,
		Body:       math3d.TranslationTransform3(math3d.Vector3{Z: legs.BodyHeight}),
	}

	for _, f := range legs.All() {
		h.feet[f] = f.InitialPosition()
	}

	h.Update()
	return h
}

// Add registers a component to receive ticks every frame.
func (h *Hexapod) Add(c Component) {
	h.Components = append(h.Components, c)
}

// Boot calls Boot on each component.
func (h *Hexapod) Boot() error {
	for _, c := range h.Components {
		err := c.Boot()
		if err != nil {
			return err
		}
	}

	return nil
}

// Tick calls Tick on each component, in the order they were added. It stops at
// the first error.
func (h *Hexapod) Tick(now time.Time) error {
	for _, c := range h.Components {
		err := c.Tick(now, h)
		if err != nil {
			return err
		}
	}

	return nil
}

func (h *Hexapod) FootPosition(f legs.Foot) math3d.Vector3 {
	return h.feet[f]
}

// SetFootPosition sets the world position of a foot. The legs aren't solved
// until the next Update.
func (h *Hexapod) SetFootPosition(f legs.Foot, p math3d.Vector3) {
	h.feet[f] = p
}

// World returns the transform from the body space to the world space.
func (h *Hexapod) World() math3d.Transform3 {
	return h.Body.Then(h.Origin.To3D())
}

// Local returns the transform from the world space to the body space.
func (h *Hexapod) Local() math3d.Transform3 {
	return h.World().Inverse()
}

// Update solves every leg for the current foot positions and body transform,
// and returns the body to world transform that was used.
func (h *Hexapod) Update() math3d.Transform3 {
	world := h.World()
	local := world.Inverse()

	for _, f := range legs.All() {
		rel := local.TransformPoint(h.feet[f]).Sub(math3d.Extend(f.JointPosition(), 0))

		was := h.legs[f].Reachable()
		ok := h.legs[f].Solve(rel)
		if !ok && was {
			log.Warnf("%s leg can't reach %v", f, rel)
		} else if ok && !was {
			log.Infof("%s leg is reachable again", f)
		}
	}

	return world
}

// Leg returns the solver of the given leg.
func (h *Hexapod) Leg(f legs.Foot) *legs.Leg {
	return &h.legs[f]
}

// Center returns the world position of the center of the body, seen from
// above.
func (h *Hexapod) Center() math3d.Vector2 {
	return math3d.XY(h.World().TransformPoint(math3d.ZeroVector3))
}

// Heading returns the direction which the X axis of the body points in, seen
// from above.
func (h *Hexapod) Heading() float64 {
	return math3d.AngleFromXAxis(math3d.XY(h.World().TransformVector(math3d.Vector3{X: 1})))
}

// Angles returns the servo angles of every leg, in foot order, three per leg:
// hip yaw, hip pitch, knee. Angles of unreachable legs are nil.
func (h *Hexapod) Angles() [NumAngles]*float64 {
	var out [NumAngles]*float64

	for _, f := range legs.All() {
		angles, ok := h.legs[f].Angles(f.Orientation())
		if !ok {
			continue
		}

		for i := range angles {
			a := angles[i]
			out[int(f)*3+i] = &a
		}
	}

	return out
}
