// Package main provides CMA-ES search over simulation parameters.
package main

import (
	"github.com/s-lawrence/autopoiesis/config"
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

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Forces
			{Name: "cohesion_divisor", Path: "forces.cohesion_divisor", Min: 20, Max: 400, Default: 100},
			{Name: "pursuit_divisor", Path: "forces.pursuit_divisor", Min: 10, Max: 200, Default: 40},
			{Name: "space", Path: "forces.space", Min: 5, Max: 100, Default: 25},
			{Name: "max_vel", Path: "forces.max_vel", Min: 0.5, Max: 8.0, Default: 2.0},
			// Lifecycle
			{Name: "split_threshold", Path: "unity.split_threshold", Min: 6, Max: 60, Default: 20},
			{Name: "metabolise_spawn", Path: "resource.metabolise_spawn", Min: 1, Max: 8, Default: 3},
			// Seeding and replenishment
			{Name: "drip_interval", Path: "seeding.drip_interval", Min: 2, Max: 40, Default: 10},
			{Name: "replenish_max", Path: "resource.replenish_max", Min: 1, Max: 6, Default: 2},
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
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	// Clamp values to ensure they're within bounds
	clamped := pv.Clamp(values)

	// Order must match Specs order
	cfg.Forces.CohesionDivisor = clamped[0]
	cfg.Forces.PursuitDivisor = clamped[1]
	cfg.Forces.Space = clamped[2]
	cfg.Forces.MaxVel = clamped[3]
	cfg.Unity.SplitThreshold = int(clamped[4])
	cfg.Resource.MetaboliseSpawn = int(clamped[5])
	cfg.Seeding.DripInterval = int(clamped[6])
	cfg.Resource.ReplenishMax = int(clamped[7])

	cfg.Recompute()
}
