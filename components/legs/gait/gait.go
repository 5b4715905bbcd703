package gait

import (
	"math"

	"github.com/hexwalker/hexapod/utils"
	"github.com/pkg/errors"
)

const (
	numLegs = 6

	// Tolerance on the sum of the step weights.
	weightTolerance = 1e-9
)

var (
	ErrWeights  = errors.New("step weights must sum to one")
	ErrDuration = errors.New("cycle duration must be positive")
	ErrStart    = errors.New("step starts must not be negative")
)

// Sampler maps the progress of a step (0 to 1) to the height of the foot, as a
// fraction of the maximum step height.
type Sampler interface {
	Sample(progress float64) float64
}

// Info describes the timing of a gait. Each foot is swung through the air for
// one unit of phase, starting at its Start. The cycle repeats every Duration.
type Info struct {

	// When each foot begins its step, in units of phase.
	Start [numLegs]float64

	// How much each step contributes to the distance travelled per cycle.
	Weight [numLegs]float64

	// The length of one full cycle.
	Duration float64
}

// NewInfo returns a validated gait.
func NewInfo(start, weight [numLegs]float64, duration float64) (Info, error) {
	info := Info{Start: start, Weight: weight, Duration: duration}
	if err := info.Validate(); err != nil {
		return Info{}, err
	}

	return info, nil
}

// FromStarts returns a gait in which every step is weighted equally, and the
// cycle ends one unit after the last step begins.
func FromStarts(start [numLegs]float64) (Info, error) {
	var weight [numLegs]float64
	max := math.Inf(-1)
	for i, s := range start {
		weight[i] = 1.0 / numLegs
		max = math.Max(max, s)
	}

	return NewInfo(start, weight, max+1)
}

func (g Info) Validate() error {
	if !(g.Duration > 0) {
		return errors.Wrapf(ErrDuration, "got %v", g.Duration)
	}

	sum := 0.0
	for i := 0; i < numLegs; i++ {
		if g.Start[i] < 0 || math.IsNaN(g.Start[i]) {
			return errors.Wrapf(ErrStart, "leg %d starts at %v", i, g.Start[i])
		}

		sum += g.Weight[i]
	}

	if math.Abs(sum-1) > weightTolerance {
		return errors.Wrapf(ErrWeights, "sum is %v", sum)
	}

	return nil
}

// FootPhase returns the progress (0 to 1) of the given leg through its step at
// the given phase, and the height of the foot sampled from the profile. Legs
// which aren't stepping have a progress of exactly zero or one.
func (g Info) FootPhase(leg int, phase float64, profile Sampler) (progress, height float64) {
	progress = math.Mod(phase-g.Start[leg], g.Duration)
	progress = utils.Clamp(progress, 0, 1)

	return progress, profile.Sample(progress)
}

// Stepping returns true if the given progress is strictly inside a step.
func Stepping(progress float64) bool {
	return progress > 0 && progress < 1
}
