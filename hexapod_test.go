package hexapod

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/hexwalker/hexapod/components/legs"
	"github.com/hexwalker/hexapod/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Vector3 = math3d.Vector3

type eg struct {
	pos math3d.Pose // origin
	vec Vector3     // input
	exp Vector3     // expected result
}

func TestWorld(t *testing.T) {
	data := []eg{
		{math3d.NewPose(0, 0, 0), Vector3{X: 0, Y: 0, Z: 0}, Vector3{X: 0, Y: 0, Z: 70}},
		{math3d.NewPose(10, 0, 0), Vector3{X: 0, Y: 0, Z: 0}, Vector3{X: 10, Y: 0, Z: 70}},
		{math3d.NewPose(0, 0, math.Pi/2), Vector3{X: 1, Y: 0, Z: 0}, Vector3{X: 0, Y: 1, Z: 70}},
		{math3d.NewPose(5, 5, math.Pi), Vector3{X: 1, Y: 2, Z: -70}, Vector3{X: 4, Y: 3, Z: 0}},
	}

	for i, x := range data {
		h := New()
		h.Origin = x.pos

		actual := h.World().TransformPoint(x.vec)
		if actual.Distance(x.exp) > 0.000001 {
			t.Errorf("Example #%d: got %s, expected: %s", i+1, actual, x.exp)
		}
	}
}

func TestLocal(t *testing.T) {
	data := []eg{
		{math3d.NewPose(0, 0, 0), Vector3{X: 10, Y: 20, Z: 30}, Vector3{X: 10, Y: 20, Z: -40}},
		{math3d.NewPose(10, 0, 0), Vector3{X: 10, Y: 20, Z: 30}, Vector3{X: 0, Y: 20, Z: -40}},
		{math3d.NewPose(0, 0, math.Pi/2), Vector3{X: 0, Y: 1, Z: 70}, Vector3{X: 1, Y: 0, Z: 0}},
	}

	for i, x := range data {
		h := New()
		h.Origin = x.pos

		actual := h.Local().TransformPoint(x.vec)
		if actual.Distance(x.exp) > 0.000001 {
			t.Errorf("Example #%d: got %s, expected: %s", i+1, actual, x.exp)
		}
	}
}

func TestNewIsReachable(t *testing.T) {
	h := New()

	angles := h.Angles()
	for i, a := range angles {
		require.NotNil(t, a, "angle %d", i)
		assert.False(t, math.IsNaN(*a), "angle %d", i)
	}

	for _, f := range legs.All() {
		assert.Equal(t, f.InitialPosition(), h.FootPosition(f))
		assert.True(t, h.Leg(f).Reachable())

		// Hips point straight at the feet, which are mirrored left to right.
		assert.InDelta(t, 0.0, math.Abs(*angles[int(f)*3])-math.Abs(*angles[int(legs.LeftFront-f)*3]), 1e-9)
	}

	assert.InDelta(t, 0.0, *angles[int(legs.RightMiddle)*3], 1e-9)
	assert.InDelta(t, 0.0, *angles[int(legs.LeftMiddle)*3], 1e-9)
}

func TestUnreachableLegIsWithheld(t *testing.T) {
	h := New()
	h.SetFootPosition(legs.RightFront, Vector3{X: 1000, Y: 1000, Z: 0})
	h.Update()

	angles := h.Angles()
	for i := 0; i < 3; i++ {
		assert.Nil(t, angles[i])
	}

	for i := 3; i < NumAngles; i++ {
		assert.NotNil(t, angles[i])
	}

	// Moving the foot back brings the leg back.
	h.SetFootPosition(legs.RightFront, legs.RightFront.InitialPosition())
	h.Update()
	assert.NotNil(t, h.Angles()[0])
}

func TestMovingOriginKeepsFeet(t *testing.T) {
	h := New()
	before := h.Angles()

	// Moving both the origin and the feet by the same amount changes nothing
	// for the legs.
	move := math3d.NewPose(20, -10, 0.3)
	h.Origin = move
	for _, f := range legs.All() {
		h.SetFootPosition(f, move.TransformPoint3(f.InitialPosition()))
	}
	h.Update()

	after := h.Angles()
	for i := range before {
		assert.InDelta(t, *before[i], *after[i], 1e-9, "angle %d", i)
	}

	c := h.Center()
	assert.InDelta(t, 20.0, c.X, 1e-9)
	assert.InDelta(t, -10.0, c.Y, 1e-9)
	assert.InDelta(t, 0.3, h.Heading(), 1e-9)
}

func TestTelemetryJSON(t *testing.T) {
	h := New()
	h.SetFootPosition(legs.LeftBack, Vector3{X: -1000, Y: 0, Z: 0})

	tm := h.Telemetry()
	assert.Nil(t, tm.Angles[int(legs.LeftBack)*3])
	assert.Equal(t, [3]float64{39, 70, 70}, tm.Legs[legs.RightFront].Joint)

	b, err := json.Marshal(tm)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Contains(t, m, "center")
	assert.Contains(t, m, "rotation")
	assert.Len(t, m["legs"], 6)
	assert.Len(t, m["angles"], 18)

	leg := m["legs"].([]interface{})[0].(map[string]interface{})
	for _, k := range []string{"joint", "hip", "knee", "foot"} {
		assert.Contains(t, leg, k)
	}
}

type countingComponent struct {
	booted int
	ticks  int
	err    error
}

func (c *countingComponent) Boot() error {
	c.booted++
	return nil
}

func (c *countingComponent) Tick(now time.Time, hex *Hexapod) error {
	c.ticks++
	return c.err
}

func TestComponents(t *testing.T) {
	h := New()
	a := &countingComponent{}
	b := &countingComponent{}
	h.Add(a)
	h.Add(b)

	require.NoError(t, h.Boot())
	assert.Equal(t, 1, a.booted)
	assert.Equal(t, 1, b.booted)

	require.NoError(t, h.Tick(time.Now()))
	a.err = errors.New("boom")
	assert.Error(t, h.Tick(time.Now()))

	assert.Equal(t, 2, a.ticks)
	assert.Equal(t, 1, b.ticks)
}
