package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDegRad(t *testing.T) {
	assert.InDelta(t, 180.0, Deg(math.Pi), 1e-9)
	assert.InDelta(t, math.Pi/4, Rad(45), 1e-9)
	assert.InDelta(t, 35.0, Deg(Rad(35)), 1e-9)
}

func TestClampAbs(t *testing.T) {
	type eg struct {
		val float64
		max float64
		out float64
	}

	examples := []eg{
		{0.5, 1, 0.5},
		{-0.5, 1, -0.5},
		{3, 1, 1},
		{-3, 1, -1},
		{1, 1, 1},
	}

	for i, x := range examples {
		assert.Equal(t, x.out, ClampAbs(x.val, x.max), "example %d", i+1)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-0.2, 0, 1))
	assert.Equal(t, 1.0, Clamp(1.7, 0, 1))
	assert.Equal(t, 0.4, Clamp(0.4, 0, 1))
}
