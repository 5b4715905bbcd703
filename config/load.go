package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/hexwalker/hexapod/utils"
	"github.com/pkg/errors"
)

const (
	maxFileSize = 1 * 1024 * 1024 // 1MB
)

// File is the on-disk form of a Config. Angles are in degrees, and the delay
// is a duration string like "250ms". Omitted fields keep their defaults.
type File struct {
	TranslatingResolution *float64 `json:"translating_resolution,omitempty"`
	RotatingResolution    *float64 `json:"rotating_resolution_deg,omitempty"`
	MaxStepDistance       *float64 `json:"max_step_distance,omitempty"`
	MaxRotationDistance   *float64 `json:"max_rotation_distance_deg,omitempty"`
	Timestep              *float64 `json:"timestep,omitempty"`
	StepHeight            *float64 `json:"step_height,omitempty"`
	FootHeight            []Key    `json:"foot_height,omitempty"`
	InputDeadzone         *float64 `json:"input_deadzone,omitempty"`
	InputFinalizedDelay   *string  `json:"input_finalized_delay,omitempty"`
	CircularCentering     *bool    `json:"circular_centering,omitempty"`
}

// Load reads a config from a JSON file. The file must have a .json extension
// and be under 1MB.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, errors.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "stat config file")
	}

	if fileInfo.Size() > maxFileSize {
		return nil, errors.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	return Parse(data)
}

// Parse applies a JSON config on top of the defaults.
func Parse(data []byte) (*Config, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse config JSON")
	}

	cfg, err := f.Apply(Default())
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// Apply copies the fields which are set onto cfg, and returns it.
func (f *File) Apply(cfg *Config) (*Config, error) {
	setFloat := func(dst *float64, src *float64, conv func(float64) float64) {
		if src != nil {
			*dst = conv(*src)
		}
	}

	same := func(v float64) float64 { return v }

	setFloat(&cfg.TranslatingResolution, f.TranslatingResolution, same)
	setFloat(&cfg.RotatingResolution, f.RotatingResolution, utils.Rad)
	setFloat(&cfg.MaxStepDistance, f.MaxStepDistance, same)
	setFloat(&cfg.MaxRotationDistance, f.MaxRotationDistance, utils.Rad)
	setFloat(&cfg.Timestep, f.Timestep, same)
	setFloat(&cfg.StepHeight, f.StepHeight, same)
	setFloat(&cfg.InputDeadzone, f.InputDeadzone, same)

	if f.FootHeight != nil {
		p, err := NewProfile(f.FootHeight)
		if err != nil {
			return nil, errors.Wrap(err, "foot_height")
		}

		cfg.FootHeight = p
	}

	if f.InputFinalizedDelay != nil && *f.InputFinalizedDelay != "" {
		d, err := time.ParseDuration(*f.InputFinalizedDelay)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid input_finalized_delay %q", *f.InputFinalizedDelay)
		}

		cfg.InputFinalizedDelay = d
	}

	if f.CircularCentering != nil {
		cfg.CircularCentering = *f.CircularCentering
	}

	return cfg, nil
}
