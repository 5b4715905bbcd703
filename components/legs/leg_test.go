package legs

import (
	"math"
	"testing"

	"github.com/hexwalker/hexapod/math3d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Vector3 = math3d.Vector3

func TestRoundTrip(t *testing.T) {
	type eg struct {
		orientation math3d.Vector2
		target      Vector3
	}

	examples := []eg{
		{math3d.Vector2{X: 1}, Vector3{X: 82.5, Y: 0, Z: -70}},
		{math3d.FromAngle(math.Pi/4, 1), Vector3{X: 46, Y: 60, Z: -70}},
		{math3d.FromAngle(3*math.Pi/4, 1), Vector3{X: -46, Y: 60, Z: -55}},
		{math3d.FromAngle(-math.Pi/4, 1), Vector3{X: 50, Y: -40, Z: -85}},
		{math3d.Vector2{X: -1}, Vector3{X: -90, Y: 20, Z: -60}},
		{math3d.Vector2{X: 1}, Vector3{X: 110, Y: 0, Z: -30}},
	}

	for i, x := range examples {
		var leg Leg
		require.True(t, leg.Solve(x.target), "example %d", i+1)

		angles, ok := leg.Angles(x.orientation)
		require.True(t, ok, "example %d", i+1)

		hip, knee, foot := Forward(angles, x.orientation)
		for _, p := range []struct{ exp, act Vector3 }{
			{leg.Hip(), hip},
			{leg.Knee(), knee},
			{x.target, foot},
		} {
			assert.InDelta(t, p.exp.X, p.act.X, 1e-6, "example %d", i+1)
			assert.InDelta(t, p.exp.Y, p.act.Y, 1e-6, "example %d", i+1)
			assert.InDelta(t, p.exp.Z, p.act.Z, 1e-6, "example %d", i+1)
		}

		// Link lengths are kept.
		assert.InDelta(t, HipLength, math3d.XY(leg.Hip()).Norm(), 1e-9)
		assert.InDelta(t, UpperLegLength, leg.Knee().Distance(leg.Hip()), 1e-9)
		assert.InDelta(t, LowerLegLength, leg.Foot().Distance(leg.Knee()), 1e-9)
	}
}

func TestAnglesAtRest(t *testing.T) {
	var leg Leg
	require.True(t, leg.Solve(Vector3{X: 82.5, Z: -70}))

	angles, ok := leg.Angles(RightMiddle.Orientation())
	require.True(t, ok)
	assert.InDelta(t, 0.0, angles[0], 1e-9)

	for _, a := range angles {
		assert.False(t, math.IsNaN(a))
		assert.Greater(t, a, -math.Pi)
		assert.LessOrEqual(t, a, math.Pi)
	}

	j := RightFront.JointPosition()
	f := RightFront.InitialPosition()
	require.True(t, leg.Solve(Vector3{X: f.X - j.X, Y: f.Y - j.Y, Z: -BodyHeight}))

	angles, ok = leg.Angles(RightFront.Orientation())
	require.True(t, ok)
	assert.InDelta(t, math.Atan2(60, 46)-math.Pi/4, angles[0], 1e-9)
}

func TestReachBoundary(t *testing.T) {
	type eg struct {
		target Vector3
		ok     bool
	}

	reach := UpperLegLength + LowerLegLength
	fold := LowerLegLength - UpperLegLength

	examples := []eg{
		{Vector3{X: HipLength + reach - 0.1}, true},
		{Vector3{X: HipLength + reach + 0.1}, false},
		{Vector3{X: HipLength + fold + 0.1}, true},
		{Vector3{X: HipLength + fold - 0.1}, false},

		// The foot is exactly at the hip.
		{Vector3{X: HipLength}, false},

		// Directly below the joint, so the hip has no direction to point in.
		{Vector3{Z: -70}, false},
		{Vector3{X: 500, Y: 500, Z: -70}, false},
	}

	for i, x := range examples {
		var leg Leg
		assert.Equal(t, x.ok, leg.Solve(x.target), "example %d", i+1)
		assert.Equal(t, x.ok, leg.Reachable(), "example %d", i+1)

		_, ok := leg.Angles(math3d.Vector2{X: 1})
		assert.Equal(t, x.ok, ok, "example %d", i+1)
	}
}

func TestExactlyOnReachBoundary(t *testing.T) {
	type eg struct {
		d float64
		z float64
	}

	reach := UpperLegLength + LowerLegLength
	fold := LowerLegLength - UpperLegLength

	examples := []eg{
		{reach, 0},
		{reach, -30},
		{reach, -70},
		{reach, -100},
		{fold, 0},
		{fold, -30},
	}

	for _, x := range examples {
		// Straight out from the joint, so the distance from the hip is d.
		target := Vector3{X: HipLength + math.Sqrt(x.d*x.d-x.z*x.z), Z: x.z}

		var leg Leg
		ok := leg.Solve(target)
		assert.Equal(t, ok, leg.Reachable(), "d=%v z=%v", x.d, x.z)

		angles, aok := leg.Angles(math3d.Vector2{X: 1})
		assert.Equal(t, ok, aok, "d=%v z=%v", x.d, x.z)

		if !aok {
			continue
		}

		for _, a := range angles {
			assert.False(t, math.IsNaN(a), "d=%v z=%v: %v", x.d, x.z, angles)
		}

		assert.False(t, math.IsNaN(leg.Knee().X) || math.IsNaN(leg.Knee().Z), "d=%v z=%v", x.d, x.z)
	}
}

func TestUnreachableKeepsGeometry(t *testing.T) {
	var leg Leg
	require.True(t, leg.Solve(Vector3{X: 82.5, Z: -70}))
	hip, knee, foot := leg.Hip(), leg.Knee(), leg.Foot()

	assert.False(t, leg.Solve(Vector3{X: 1000, Z: -70}))
	assert.Equal(t, hip, leg.Hip())
	assert.Equal(t, knee, leg.Knee())
	assert.Equal(t, foot, leg.Foot())

	// Becomes valid again as soon as a reachable target arrives.
	assert.True(t, leg.Solve(Vector3{X: 80, Z: -60}))
	_, ok := leg.Angles(math3d.Vector2{X: 1})
	assert.True(t, ok)
}

func TestTelemetry(t *testing.T) {
	var leg Leg
	require.True(t, leg.Solve(Vector3{X: 82.5, Z: -70}))

	tr := math3d.TranslationTransform3(Vector3{X: 10, Z: 70})
	tm := leg.Telemetry(math3d.Vector2{X: 52.5}, tr)

	assert.Equal(t, [3]float64{62.5, 0, 70}, tm.Joint)
	assert.InDelta(t, 62.5+HipLength, tm.Hip[0], 1e-9)
	assert.InDelta(t, 145.0, tm.Foot[0], 1e-9)
	assert.InDelta(t, 0.0, tm.Foot[2], 1e-9)
}

func TestSegmentChain(t *testing.T) {
	root := MakeRootSegment(math3d.IdentityTransform3.Rotation, Vector3{X: 10})
	child := MakeSegment("child", root, math3d.EulerAngles{Yaw: math.Pi / 2}.Quat(), Vector3{X: 5})

	assert.Equal(t, child, root.Child)
	assert.InDelta(t, 10.0, child.Start().X, 1e-9)
	assert.InDelta(t, 10.0, child.End().X, 1e-9)
	assert.InDelta(t, 5.0, child.End().Y, 1e-9)
}
