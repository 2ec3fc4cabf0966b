package main

import (
	"math"

	"github.com/pthm-cable/hunt/config"
)

// ParamSpec defines a single tunable difficulty constant.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable constants.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable constants.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Animal behaviour
			{Name: "act_chance", Path: "behavior.act_chance", Min: 0.1, Max: 0.6, Default: 0.3},
			{Name: "pursue_chance", Path: "behavior.pursue_chance", Min: 0.4, Max: 1.0, Default: 0.8},
			// Hunger economy
			{Name: "escape_chance", Path: "hunger.escape_chance", Min: 0.1, Max: 0.9, Default: 0.5},
			{Name: "decay_amount", Path: "hunger.decay_amount", Min: 0.1, Max: 2.0, Default: 0.5},
			// Population
			{Name: "wolves_per_level", Path: "population.wolves_per_level", Min: 1, Max: 3, Default: 1},
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
		clamped[i] = math.Min(math.Max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes parameter values into cfg. Order must match Specs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Behavior.ActChance = clamped[0]
	cfg.Behavior.PursueChance = clamped[1]
	cfg.Hunger.EscapeChance = clamped[2]
	cfg.Hunger.DecayAmount = clamped[3]
	cfg.Population.WolvesPerLevel = int(math.Round(clamped[4]))

	cfg.ComputeDerived()
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Behavior.ActChance,
		cfg.Behavior.PursueChance,
		cfg.Hunger.EscapeChance,
		cfg.Hunger.DecayAmount,
		float64(cfg.Population.WolvesPerLevel),
	}
}
