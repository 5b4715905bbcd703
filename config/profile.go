package config

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/interp"
)

// Key is one control point of a Profile.
type Key struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Profile is a piecewise linear curve. The gait engine uses it to map the
// progress of a step to the height of the foot. Outside of the keys, it holds
// the value of the first or last key.
type Profile struct {
	keys []Key
	pl   interp.PiecewiseLinear
}

// NewProfile fits a profile to the given keys, which must be in strictly
// increasing order of X.
func NewProfile(keys []Key) (*Profile, error) {
	if len(keys) < 2 {
		return nil, errors.Errorf("profile needs at least two keys, got %d", len(keys))
	}

	xs := make([]float64, len(keys))
	ys := make([]float64, len(keys))
	for i, k := range keys {
		if i > 0 && !(k.X > keys[i-1].X) {
			return nil, errors.Errorf("profile keys must be strictly increasing, got x=%v after x=%v", k.X, keys[i-1].X)
		}

		xs[i] = k.X
		ys[i] = k.Y
	}

	p := &Profile{keys: append([]Key(nil), keys...)}
	if err := p.pl.Fit(xs, ys); err != nil {
		return nil, errors.Wrap(err, "fit profile")
	}

	return p, nil
}

// Sample returns the value of the curve at x.
func (p *Profile) Sample(x float64) float64 {
	return p.pl.Predict(x)
}

// Keys returns a copy of the control points.
func (p *Profile) Keys() []Key {
	return append([]Key(nil), p.keys...)
}

// DefaultFootHeight lifts the foot during the first fifth of a step, holds it,
// and lowers it during the last fifth.
func DefaultFootHeight() *Profile {
	p, err := NewProfile([]Key{{0, 0}, {0.2, 1}, {0.8, 1}, {1, 0}})
	if err != nil {
		panic(err)
	}

	return p
}
