package modes

import (
	"fmt"
	"time"

	"github.com/hexwalker/hexapod"
	"github.com/hexwalker/hexapod/components/controller"
	"github.com/hexwalker/hexapod/components/legs"
	"github.com/hexwalker/hexapod/components/legs/gait"
	"github.com/hexwalker/hexapod/config"
	"github.com/hexwalker/hexapod/math3d"
)

// FootState is what one foot is doing. A standing foot is planted at the
// anchor From. A stepping foot is swinging from From to To.
type FootState struct {
	Stepping bool
	From     math3d.Pose
	To       math3d.Pose

	// Set once the foot has stopped (or is stepping) somewhere that needs no
	// further correction for the robot to stop.
	Settled bool
}

func standing(at math3d.Pose, settled bool) FootState {
	return FootState{From: at, To: at, Settled: settled}
}

func stepping(from, to math3d.Pose, settled bool) FootState {
	return FootState{Stepping: true, From: from, To: to, Settled: settled}
}

// Anchor returns the pose that the foot's resting position is relative to, at
// the given progress through the step.
func (fs FootState) Anchor(progress float64) math3d.Pose {
	if fs.Stepping {
		return math3d.LerpPose(fs.From, fs.To, progress)
	}

	return fs.From
}

func (fs FootState) String() string {
	if fs.Stepping {
		return fmt.Sprintf("stepping(%s -> %s)", fs.From, fs.To)
	}

	return fmt.Sprintf("standing(%s)", fs.From)
}

// WalkingState is the state of the gait while walking.
type WalkingState struct {
	Gait gait.Info
	Feet [legs.NumFeet]FootState

	// Where each foot currently is, as an anchor pose. The body is placed in
	// the middle of them.
	Anchors [legs.NumFeet]math3d.Pose

	// The pose which the next step is planned relative to. Each step moves it.
	FixedCenter math3d.Pose

	Phase float64
}

func newWalkingState(info gait.Info, origin math3d.Pose) *WalkingState {
	s := &WalkingState{
		Gait:        info,
		FixedCenter: origin,
	}

	for i := range s.Feet {
		s.Feet[i] = standing(origin, false)
		s.Anchors[i] = origin
	}

	return s
}

// step advances the gait by one tick, and returns false once every foot is
// planted and settled, i.e. the robot can stop walking.
func (s *WalkingState) step(input WalkingInput, body *hexapod.Hexapod, cfg *config.Config) bool {
	for _, foot := range legs.All() {
		i := int(foot)
		progress, height := s.Gait.FootPhase(i, s.Phase, cfg.FootHeight)
		swing := gait.Stepping(progress)
		fs := s.Feet[i]
		wasStepping := fs.Stepping

		switch {
		case fs.Stepping && !swing:
			fs = standing(fs.To, fs.Settled)

		case !fs.Stepping && swing:
			if input.Significant() {
				w := s.Gait.Weight[i]
				fc := s.FixedCenter

				translation := fc.TransformVector(input.Translation()).Mul(2 * cfg.MaxStepDistance * w)
				to := math3d.Pose{
					Translation: fc.Translation.Add(translation),
					Heading:     fc.Heading + cfg.MaxRotationDistance*input.Rot()*w,
				}

				s.FixedCenter = to
				fs = stepping(fs.From, to, false)
			} else if fs.From.ApproxEqual(s.FixedCenter) {
				fs = standing(fs.From, true)
			} else {
				fs = stepping(fs.From, s.FixedCenter, true)
			}
		}

		s.Feet[i] = fs
		s.Anchors[i] = fs.Anchor(progress)

		// A foot which just landed is placed once more, so it ends up on the
		// ground rather than wherever the last tick of the swing left it.
		if fs.Stepping || wasStepping {
			p := s.Anchors[i].TransformPoint3(foot.InitialPosition())
			p.Z = height * cfg.StepHeight
			body.SetFootPosition(foot, p)
		}
	}

	body.Origin = math3d.CenterPoses(s.Anchors[:], cfg.CircularCentering)

	s.Phase += cfg.Timestep
	if s.Phase >= s.Gait.Duration*2 {
		s.Phase -= s.Gait.Duration
	}

	for _, fs := range s.Feet {
		if fs.Stepping || !fs.Settled {
			return true
		}
	}

	return false
}

// Walk is the gait engine. It's idle until the travel command becomes
// significant, and then walks until every foot has settled after the command
// goes away.
type Walk struct {
	gait    gait.Type
	walking *WalkingState

	now        func() time.Time
	lastInput  WalkingInput
	lastChange time.Time
	finalized  bool
}

// NewWalk returns an idle gait engine. The clock is used to tell how long the
// input has been unchanged; nil means time.Now.
func NewWalk(clock func() time.Time) *Walk {
	if clock == nil {
		clock = time.Now
	}

	return &Walk{
		gait:       gait.Tripod,
		now:        clock,
		lastChange: clock(),
	}
}

func (w *Walk) Name() string {
	return "walk"
}

// Gait returns the selected gait.
func (w *Walk) Gait() gait.Type {
	return w.gait
}

// Walking returns the state of the gait, or nil if idle.
func (w *Walk) Walking() *WalkingState {
	return w.walking
}

func (w *Walk) Idle() bool {
	return w.walking == nil
}

// InputFinalized returns true once the travel command has been unchanged for
// long enough.
func (w *Walk) InputFinalized() bool {
	return w.finalized
}

func (w *Walk) HandleInput(ev controller.Event, body *hexapod.Hexapod, cfg *config.Config) {
	input := InputFromEvent(ev, cfg.InputDeadzone)
	w.trackInput(input, cfg)

	if w.walking == nil {
		if ev.IsTriggered(controller.Left) {
			w.gait = w.gait.Prev()
			log.Infof("gait=%s", w.gait)
		} else if ev.IsTriggered(controller.Right) {
			w.gait = w.gait.Next()
			log.Infof("gait=%s", w.gait)
		}

		if input.Significant() {
			log.Infof("walking (%s)", w.gait)
			w.walking = newWalkingState(w.gait.Info(), body.Origin)
		}

		return
	}

	if !w.walking.step(input, body, cfg) {
		log.Infof("stopped at %s", body.Origin)
		w.walking = nil
	}
}

func (w *Walk) ReturnToIdle(body *hexapod.Hexapod, cfg *config.Config) bool {
	w.HandleInput(controller.Event{}, body, cfg)
	return w.walking == nil
}

func (w *Walk) trackInput(input WalkingInput, cfg *config.Config) {
	now := w.now()
	if !input.Similar(w.lastInput) {
		w.lastChange = now
	}

	w.lastInput = input
	w.finalized = now.Sub(w.lastChange) > cfg.InputFinalizedDelay
}
