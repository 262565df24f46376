package main

import (
	"github.com/pthm-cable/shatter/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the difficulty parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "initial_cooldown", Path: "spawn.initial_cooldown", Min: 1.0, Max: 8.0, Default: 4.0},
			{Name: "persistence", Path: "spawn.persistence", Min: 0.85, Max: 0.995, Default: 0.96},
			{Name: "min_cooldown", Path: "spawn.min_cooldown", Min: 0.2, Max: 3.0, Default: 0.5},
			{Name: "max_start_speed", Path: "targets.max_start_speed", Min: 1.0, Max: 8.0, Default: 4.0},
			{Name: "explosion_strength", Path: "targets.explosion_strength", Min: 0.5, Max: 5.0, Default: 2.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(v[i], spec.Max))
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg and refreshes its
// derived values. Order matches Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	cfg.Spawn.InitialCooldown = c[0]
	cfg.Spawn.Persistence = c[1]
	cfg.Spawn.MinCooldown = c[2]
	cfg.Targets.MaxStartSpeed = c[3]
	cfg.Targets.ExplosionStrength = c[4]
	cfg.Recompute()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Spawn.InitialCooldown,
		cfg.Spawn.Persistence,
		cfg.Spawn.MinCooldown,
		cfg.Targets.MaxStartSpeed,
		cfg.Targets.ExplosionStrength,
	}
}
