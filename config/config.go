package config

import (
	"math"
	"time"

	"github.com/hexwalker/hexapod/utils"
	"github.com/pkg/errors"
)

const (

	// Walking inputs smaller than this (per axis, and overall) are ignored.
	DefaultInputDeadzone = 0.1

	// How long the walking input must be unchanged before it's considered
	// final.
	DefaultInputFinalizedDelay = 250 * time.Millisecond
)

// Config holds the runtime tunables of the robot. Angles are in radians and
// distances in millimeters.
type Config struct {

	// The furthest the body may move per tick when posing.
	TranslatingResolution float64

	// The furthest the body may turn (or tilt) per tick when posing.
	RotatingResolution float64

	// How far the body moves per gait cycle, at full input.
	MaxStepDistance float64

	// How far the body turns per gait cycle, at full input.
	MaxRotationDistance float64

	// How far the gait phase advances per tick.
	Timestep float64

	// How high feet are lifted when stepping.
	StepHeight float64

	// The height of a foot (as a fraction of StepHeight) through a step.
	FootHeight *Profile

	InputDeadzone       float64
	InputFinalizedDelay time.Duration

	// Average the headings of the feet on the circle, rather than
	// arithmetically, when placing the body between them.
	CircularCentering bool
}

func Default() *Config {
	return &Config{
		TranslatingResolution: 14,
		RotatingResolution:    utils.Rad(4),
		MaxStepDistance:       50,
		MaxRotationDistance:   utils.Rad(35),
		Timestep:              0.03,
		StepHeight:            15,
		FootHeight:            DefaultFootHeight(),
		InputDeadzone:         DefaultInputDeadzone,
		InputFinalizedDelay:   DefaultInputFinalizedDelay,
		CircularCentering:     false,
	}
}

// Validate checks that the values are usable.
func (c *Config) Validate() error {
	positive := []struct {
		name string
		val  float64
	}{
		{"translating_resolution", c.TranslatingResolution},
		{"rotating_resolution", c.RotatingResolution},
		{"timestep", c.Timestep},
	}

	for _, p := range positive {
		if !(p.val > 0) || math.IsInf(p.val, 0) {
			return errors.Errorf("%s must be positive, got %v", p.name, p.val)
		}
	}

	nonNegative := []struct {
		name string
		val  float64
	}{
		{"max_step_distance", c.MaxStepDistance},
		{"max_rotation_distance", c.MaxRotationDistance},
		{"step_height", c.StepHeight},
		{"input_deadzone", c.InputDeadzone},
	}

	for _, p := range nonNegative {
		if !(p.val >= 0) || math.IsInf(p.val, 0) {
			return errors.Errorf("%s must not be negative, got %v", p.name, p.val)
		}
	}

	if c.InputDeadzone >= 1 {
		return errors.Errorf("input_deadzone must be less than one, got %v", c.InputDeadzone)
	}

	if c.InputFinalizedDelay < 0 {
		return errors.Errorf("input_finalized_delay must not be negative, got %s", c.InputFinalizedDelay)
	}

	if c.FootHeight == nil {
		return errors.New("foot_height profile is missing")
	}

	return nil
}

// ScaleTimestep multiplies the gait timestep by f. Used by the operator to
// speed up or slow down the gait.
func (c *Config) ScaleTimestep(f float64) {
	c.Timestep *= f
}
