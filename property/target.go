// Package property fits and applies per-property regression models mapping
// orbital distance to a planetary property. Each property gets its own
// polynomial degree, selected by cross-validation, and its own physical
// bounds.
package property

import (
	"github.com/stellar-forge/planetgen/pkg/errors"
	"github.com/stellar-forge/planetgen/synth"
)

// Target identifies a planetary property to model.
type Target int

const (
	Mass Target = iota
	Radius
	Temperature
)

// AllTargets lists the modeled properties in canonical order.
func AllTargets() []Target {
	return []Target{Mass, Radius, Temperature}
}

func (t Target) String() string {
	switch t {
	case Mass:
		return "mass"
	case Radius:
		return "radius"
	case Temperature:
		return "temperature"
	default:
		return "unknown"
	}
}

// TargetFromString parses a target name as stored in model artifacts.
func TargetFromString(s string) (Target, error) {
	switch s {
	case "mass":
		return Mass, nil
	case "radius":
		return Radius, nil
	case "temperature":
		return Temperature, nil
	default:
		return 0, errors.NewValueError("TargetFromString", "unknown target "+s)
	}
}

// LowerBound returns the inference-time floor for the property. Inference
// clipping is one-sided: predictions are floored but never capped, unlike
// generation which clips both ends.
func (t Target) LowerBound() float64 {
	switch t {
	case Mass:
		return synth.MinMass
	case Radius:
		return synth.MinRadius
	case Temperature:
		return synth.MinTemperature
	default:
		return 0
	}
}

// GenerationBounds returns the two-sided clip range used when synthesizing
// training data for the property.
func (t Target) GenerationBounds() (lo, hi float64) {
	switch t {
	case Mass:
		return synth.MinMass, synth.MaxMass
	case Radius:
		return synth.MinRadius, synth.MaxRadius
	case Temperature:
		return synth.MinTemperature, synth.MaxTemperature
	default:
		return 0, 0
	}
}

// Column extracts the target's value column from a sample set.
func (t Target) Column(set *synth.SampleSet) []float64 {
	switch t {
	case Mass:
		return set.Mass
	case Radius:
		return set.Radius
	case Temperature:
		return set.Temperature
	default:
		return nil
	}
}
