package gait

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The default swing profile: up quickly, flat, down quickly.
type trapezoid struct{}

func (trapezoid) Sample(x float64) float64 {
	switch {
	case x <= 0 || x >= 1:
		return 0
	case x < 0.2:
		return x / 0.2
	case x > 0.8:
		return (1 - x) / 0.2
	default:
		return 1
	}
}

func TestWeightsSumToOne(t *testing.T) {
	for _, typ := range Types() {
		info := typ.Info()

		sum := 0.0
		for _, w := range info.Weight {
			sum += w
		}

		assert.InDelta(t, 1.0, sum, 1e-9, typ.String())
		assert.NoError(t, info.Validate(), typ.String())
	}
}

func TestWaveDuration(t *testing.T) {
	assert.Equal(t, 6.0, Wave.Info().Duration)
}

func TestTripodScenario(t *testing.T) {
	info := Tripod.Info()
	const rightMiddle = 1

	type eg struct {
		phase    float64
		progress float64
		height   float64
	}

	examples := []eg{
		{0.0, 0.0, 0.0},
		{0.5, 0.5, 1.0},
		{1.5, 1.0, 0.0},
		{2.5, 0.5, 1.0},
	}

	for i, x := range examples {
		p, h := info.FootPhase(rightMiddle, x.phase, trapezoid{})
		assert.InDelta(t, x.progress, p, 1e-9, "example %d", i+1)
		assert.InDelta(t, x.height, h, 1e-9, "example %d", i+1)
	}

	// The other tripod is planted while the first is in the air.
	p, h := info.FootPhase(0, 0.5, trapezoid{})
	assert.Equal(t, 0.0, p)
	assert.Equal(t, 0.0, h)
	assert.False(t, Stepping(p))
}

func TestNewInfoValidation(t *testing.T) {
	even := [numLegs]float64{1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6, 1.0 / 6}

	_, err := NewInfo([numLegs]float64{}, [numLegs]float64{1, 1}, 1)
	assert.True(t, errors.Is(err, ErrWeights))

	_, err = NewInfo([numLegs]float64{}, even, 0)
	assert.True(t, errors.Is(err, ErrDuration))

	_, err = NewInfo([numLegs]float64{-1}, even, 2)
	assert.True(t, errors.Is(err, ErrStart))

	info, err := NewInfo([numLegs]float64{}, even, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, info.Duration)
}

func TestTypeCycle(t *testing.T) {
	assert.Equal(t, DelayedTripod, Tripod.Next())
	assert.Equal(t, Tripod, Wave.Next())
	assert.Equal(t, Wave, Tripod.Prev())
	assert.Equal(t, Ripple, Wave.Prev())

	for _, typ := range Types() {
		assert.Equal(t, typ, typ.Next().Prev())
	}

	assert.Equal(t, "delayed-tripod", DelayedTripod.String())
}
