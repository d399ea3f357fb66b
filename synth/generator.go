// Package synth generates reproducible synthetic planet data. Orbital
// distances are drawn from a gamma distribution and the planetary
// properties (mass, radius, temperature) follow closed-form curves with
// injected Gaussian noise.
package synth

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stellar-forge/planetgen/pkg/errors"
)

// Generation bounds. Every generated value is clipped into these ranges,
// never rejected.
const (
	MinDistance = 0.2
	MaxDistance = 50.0

	MinMass = 0.01
	MaxMass = 1000.0

	MinRadius = 0.1
	MaxRadius = 25.0

	MinTemperature = 10.0
	MaxTemperature = 2000.0
)

// Orbital distance distribution: Gamma(shape=2, scale=3), offset by 0.2 AU.
// distuv parameterizes the gamma by rate, so Beta is 1/scale.
const (
	distanceGammaShape = 2.0
	distanceGammaScale = 3.0
	distanceOffset     = 0.2
)

// Noise model constants. Mass and radius noise are proportional to the value
// (heteroscedastic); temperature noise has a constant standard deviation.
const (
	massNoiseFactor    = 0.3
	radiusNoiseFactor  = 0.15
	temperatureNoiseSD = 20.0
)

// SampleSet holds generated (distance, mass, radius, temperature) records in
// column form. A SampleSet is created once per seed and must not be mutated
// afterwards.
type SampleSet struct {
	Distance    []float64
	Mass        []float64
	Radius      []float64
	Temperature []float64
}

// Len returns the number of records.
func (s *SampleSet) Len() int {
	return len(s.Distance)
}

// DistanceVec returns the orbital distances as a column vector for use with
// gonum-based fitters. The vector shares no memory with the SampleSet.
func (s *SampleSet) DistanceVec() *mat.VecDense {
	data := make([]float64, len(s.Distance))
	copy(data, s.Distance)
	return mat.NewVecDense(len(data), data)
}

// Generate produces a SampleSet of numSamples records. The same
// (numSamples, seed) pair always reproduces bit-identical output: distance
// sampling and noise injection consume two independent streams, both seeded
// from the same value, so adding a property never perturbs the distances.
func Generate(numSamples int, seed int64) (*SampleSet, error) {
	if numSamples <= 0 {
		return nil, errors.NewValueError("synth.Generate", "numSamples must be positive")
	}

	distSrc := rand.NewSource(uint64(seed))
	noiseSrc := rand.NewSource(uint64(seed))

	gamma := distuv.Gamma{Alpha: distanceGammaShape, Beta: 1.0 / distanceGammaScale, Src: distSrc}
	stdNormal := distuv.Normal{Mu: 0, Sigma: 1, Src: noiseSrc}

	set := &SampleSet{
		Distance:    make([]float64, numSamples),
		Mass:        make([]float64, numSamples),
		Radius:      make([]float64, numSamples),
		Temperature: make([]float64, numSamples),
	}

	// All distances come out of the distance stream before any noise is
	// drawn, so the two streams stay aligned across properties.
	for i := 0; i < numSamples; i++ {
		set.Distance[i] = clip(gamma.Rand()+distanceOffset, MinDistance, MaxDistance)
	}

	for i := 0; i < numSamples; i++ {
		d := set.Distance[i]

		// Gas-giant bump near 5 AU plus a rocky component decaying with
		// distance.
		massBase := 5.0*math.Exp(-(d-5.0)*(d-5.0)/15.0) + 0.5
		massRocky := 1.5*math.Exp(-d) + 0.1
		mass := massBase + massRocky
		mass += stdNormal.Rand() * massNoiseFactor * mass
		// Order matters: add noise, take the absolute value, then clip.
		set.Mass[i] = clip(math.Abs(mass), MinMass, MaxMass)

		densityFactor := 1.0 + 1.5*math.Exp(-d/2.0)
		radius := math.Cbrt(set.Mass[i] / densityFactor)
		radius += stdNormal.Rand() * radiusNoiseFactor * radius
		set.Radius[i] = clip(math.Abs(radius), MinRadius, MaxRadius)

		temperature := 280.0 / math.Sqrt(d)
		temperature += stdNormal.Rand() * temperatureNoiseSD
		set.Temperature[i] = clip(math.Abs(temperature), MinTemperature, MaxTemperature)
	}

	return set, nil
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
