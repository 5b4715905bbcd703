package servos

import (
	"math"

	"github.com/pkg/errors"
)

// ServosPerSide is the number of servos driven by each board: three legs of
// three joints each, in the order hip yaw, hip pitch, knee.
const ServosPerSide = 9

const (
	MinPulse = 170
	MaxPulse = 480

	// Board ticks (of 4096, at 50Hz) per radian.
	pulsePerRadian = 380 / math.Pi
)

var (
	ErrAngleRange = errors.New("angle out of range")
	ErrPulseRange = errors.New("pulse out of range")
)

// Joint limits, by joint kind (servo % 3).
var limits = [3][2]float64{
	{-math.Pi * 0.25, math.Pi * 0.25},
	{-math.Pi * 0.33, math.Pi * 0.4},
	{-math.Pi * 0.28, math.Pi * 0.45},
}

// The hip pitch servos are mounted upside down.
var invert = [3]bool{false, true, false}

// Side describes how the servos of one side of the body are wired to a board.
type Side struct {
	Name string

	// I2C address of the board, where that's relevant.
	Address uint8

	// Board channel of each servo.
	Pins [ServosPerSide]uint8

	// Pulse (in ticks) which puts each servo at zero radians.
	Calibration [ServosPerSide]int
}

// Right drives right-front, right-middle, right-back.
var Right = Side{
	Name:        "right",
	Address:     0x40,
	Pins:        [ServosPerSide]uint8{10, 9, 8, 5, 6, 7, 2, 3, 4},
	Calibration: [ServosPerSide]int{306, 330, 317, 306, 302, 306, 331, 350, 350},
}

// Left drives left-back, left-middle, left-front.
var Left = Side{
	Name:        "left",
	Address:     0x41,
	Pins:        [ServosPerSide]uint8{7, 6, 5, 4, 3, 2, 8, 9, 10},
	Calibration: [ServosPerSide]int{345, 326, 330, 304, 331, 326, 337, 313, 315},
}

// Pulse returns the pulse width (in board ticks) which moves the given servo
// to the given angle, or an error if the angle or the pulse is out of range.
func (s Side) Pulse(servo int, angle float64) (int, error) {
	if servo < 0 || servo >= ServosPerSide {
		return 0, errors.Errorf("no such servo: %d", servo)
	}

	kind := servo % 3
	lim := limits[kind]
	if math.IsNaN(angle) || angle < lim[0] || angle > lim[1] {
		return 0, errors.Wrapf(ErrAngleRange, "servo %d (kind %d), angle %.3f", servo, kind, angle)
	}

	if invert[kind] {
		angle = -angle
	}

	pulse := s.Calibration[servo] + int(math.Trunc(pulsePerRadian*angle))
	if pulse < MinPulse || pulse > MaxPulse {
		return 0, errors.Wrapf(ErrPulseRange, "servo %d (kind %d), pulse %d", servo, kind, pulse)
	}

	return pulse, nil
}
