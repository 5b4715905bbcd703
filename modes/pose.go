package modes

import (
	"math"

	"github.com/hexwalker/hexapod"
	"github.com/hexwalker/hexapod/components/controller"
	"github.com/hexwalker/hexapod/components/legs"
	"github.com/hexwalker/hexapod/config"
	"github.com/hexwalker/hexapod/math3d"
	"github.com/hexwalker/hexapod/utils"
)

const (

	// How far (mm) the body shifts at full stick.
	poseShift = 15.0

	// How far (radians) the body tilts or turns at full stick.
	poseTilt = 0.25
)

// Pose moves the body around over the planted feet: the left stick shifts it,
// and the right stick tilts it. Holding L turns the right stick X axis into yaw.
type Pose struct {
	yaw  float64
	tilt math3d.Vector2
}

func NewPose() *Pose {
	return &Pose{}
}

func (p *Pose) Name() string {
	return "pose"
}

func (p *Pose) HandleInput(ev controller.Event, body *hexapod.Hexapod, cfg *config.Config) {
	p.move(ev, body, cfg)
}

// ReturnToIdle levels and centers the body at its standing height.
func (p *Pose) ReturnToIdle(body *hexapod.Hexapod, cfg *config.Config) bool {
	return p.move(controller.Event{}, body, cfg)
}

// move steps the body towards the pose asked for by ev, and returns true once
// it's there.
func (p *Pose) move(ev controller.Event, body *hexapod.Hexapod, cfg *config.Config) bool {
	yaw := 0.0
	tilt := math3d.Vector2{X: ev.RX, Y: ev.RY}.Mul(poseTilt)
	if ev.IsPressed(controller.L) {
		yaw = ev.RX * poseTilt
		tilt.X = 0
	}

	t := body.Body.Translation
	current := math3d.Pose{Translation: math3d.XY(t), Heading: p.yaw}
	target := math3d.NewPose(ev.LX*poseShift, ev.LY*poseShift, yaw)
	next, reached := current.StepTowards(target, cfg.TranslatingResolution*0.5, cfg.RotatingResolution)
	p.yaw = next.Heading

	p.tilt = p.tilt.Add(math3d.WithMaxLength2(tilt.Sub(p.tilt), cfg.RotatingResolution))

	dz := legs.BodyHeight - t.Z
	z := t.Z + utils.ClampAbs(dz, cfg.TranslatingResolution*0.5)

	body.Body = math3d.Transform3{
		Rotation:    math3d.EulerAngles{Roll: -p.tilt.Y, Pitch: p.tilt.X, Yaw: p.yaw}.Quat(),
		Translation: math3d.Extend(next.Translation, z),
	}

	return reached && math.Abs(legs.BodyHeight-z) < 0.1 && p.tilt.Sub(tilt).Norm() < 1e-3
}
