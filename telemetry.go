package hexapod

import (
	"github.com/hexwalker/hexapod/components/legs"
)

// Telemetry is a snapshot of the robot, for visualization.
type Telemetry struct {
	Center   [2]float64                   `json:"center"`
	Rotation float64                      `json:"rotation"`
	Legs     [legs.NumFeet]legs.Telemetry `json:"legs"`
	Angles   [NumAngles]*float64          `json:"angles"`
}

// Telemetry solves the legs and returns a snapshot of the current state.
func (h *Hexapod) Telemetry() Telemetry {
	world := h.Update()
	center := h.Center()

	t := Telemetry{
		Center:   [2]float64{center.X, center.Y},
		Rotation: h.Heading(),
		Angles:   h.Angles(),
	}

	for _, f := range legs.All() {
		t.Legs[f] = h.legs[f].Telemetry(f.JointPosition(), world)
	}

	return t
}
