package gait

import (
	"fmt"
)

// Type is one of the built-in gaits.
type Type int

const (

	// Three feet at a time, alternating.
	Tripod Type = iota

	// Like tripod, but the feet of each group lift slightly apart.
	DelayedTripod

	// Two overlapping waves, one per side.
	Ripple

	// One foot at a time.
	Wave

	numTypes = 4
)

var typeNames = [numTypes]string{
	"tripod",
	"delayed-tripod",
	"ripple",
	"wave",
}

func (t Type) String() string {
	if t < 0 || t >= numTypes {
		return fmt.Sprintf("Type(%d)", int(t))
	}

	return typeNames[t]
}

func (t Type) Next() Type {
	return (t + 1) % numTypes
}

func (t Type) Prev() Type {
	return (t + numTypes - 1) % numTypes
}

// Types returns every gait, in cycling order.
func Types() []Type {
	return []Type{Tripod, DelayedTripod, Ripple, Wave}
}

// Info returns the timing of the gait. The built-in tables are valid, so this
// panics if one of them somehow isn't.
func (t Type) Info() Info {
	var info Info
	var err error

	switch t {
	case Tripod:
		info, err = NewInfo(
			[numLegs]float64{1, 0, 1, 0, 1, 0},
			[numLegs]float64{0.5, 0.5, 0, 0, 0, 0},
			2.0,
		)

	case DelayedTripod:
		info, err = NewInfo(
			[numLegs]float64{0, 1.2, 0.2, 1.4, 0.4, 1.6},
			[numLegs]float64{0.4, 0.4, 0.05, 0.05, 0.05, 0.05},
			2.4,
		)

	case Ripple:
		info, err = NewInfo(
			[numLegs]float64{1, 0, 2, 0.5, 1.5, 2.5},
			[numLegs]float64{1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6},
			3.0,
		)

	case Wave:
		info, err = FromStarts([numLegs]float64{0, 1, 2, 3, 4, 5})

	default:
		panic(fmt.Sprintf("invalid gait: %d", int(t)))
	}

	if err != nil {
		panic(err)
	}

	return info
}
