package systemgen

import (
	"math"
	"math/rand/v2"

	"github.com/stellar-forge/planetgen/mixture"
	"github.com/stellar-forge/planetgen/pkg/errors"
	"github.com/stellar-forge/planetgen/property"
	"github.com/stellar-forge/planetgen/synth"
)

const (
	// gravitationalConstant is G in AU³/(yr²·M☉), so circular orbital
	// velocity comes out in AU per year.
	gravitationalConstant = 4 * math.Pi * math.Pi

	minStarMass = 0.5
	maxStarMass = 2.0

	minPlanets = 3
	maxPlanets = 8

	// Orbital spacing between neighbors, loosely Titius-Bode.
	minSpacingFactor = 1.4
	maxSpacingFactor = 2.2

	velocityJitter = 0.05
	propertyJitter = 0.10
)

// Generator produces star systems from fitted property models and a zone
// model. The same seed and models always produce the same sequence of
// systems.
type Generator struct {
	models map[property.Target]*property.Model
	zones  *mixture.ZoneModel
	rng    *rand.Rand
}

// NewGenerator builds a Generator. All three property models and the zone
// model must be fitted.
func NewGenerator(models map[property.Target]*property.Model, zones *mixture.ZoneModel, seed int64) (*Generator, error) {
	const op = "systemgen.NewGenerator"

	for _, target := range property.AllTargets() {
		m, ok := models[target]
		if !ok || m == nil {
			return nil, errors.NewValueError(op, "missing model for "+target.String())
		}
		if !m.IsFitted() {
			return nil, errors.NewNotFittedError("PropertyModel", op)
		}
	}
	if zones == nil || !zones.IsFitted() {
		return nil, errors.NewNotFittedError("ZoneModel", op)
	}

	return &Generator{
		models: models,
		zones:  zones,
		rng:    rand.New(rand.NewPCG(uint64(seed), uint64(seed))),
	}, nil
}

// Generate produces one star system.
func (g *Generator) Generate() (*System, error) {
	star := g.drawStar()

	count := minPlanets + g.rng.IntN(maxPlanets-minPlanets+1)
	distances := g.drawOrbits(count)

	planets := make([]Planet, 0, len(distances))
	for _, d := range distances {
		p, err := g.drawPlanet(d, star.Mass)
		if err != nil {
			return nil, err
		}
		planets = append(planets, p)
	}

	return &System{Star: star, Planets: planets}, nil
}

// GenerateN produces n independent systems from the generator's stream.
func (g *Generator) GenerateN(n int) ([]*System, error) {
	if n <= 0 {
		return nil, errors.NewValueError("systemgen.GenerateN", "n must be positive")
	}
	systems := make([]*System, 0, n)
	for i := 0; i < n; i++ {
		s, err := g.Generate()
		if err != nil {
			return nil, err
		}
		systems = append(systems, s)
	}
	return systems, nil
}

func (g *Generator) drawStar() Star {
	mass := minStarMass + (maxStarMass-minStarMass)*g.rng.Float64()

	// Heavier stars run hotter and bluer. t in [0, 1] sweeps from a cool
	// orange toward blue-white.
	t := (mass - minStarMass) / (maxStarMass - minStarMass)
	color := [3]float64{
		255 - 60*t,
		200 + 20*t,
		140 + 115*t,
	}
	return Star{
		Mass:   mass,
		Radius: 0.05 * math.Cbrt(mass),
		Color:  color,
	}
}

// drawOrbits places count planets at multiplicatively spaced distances
// inside the modeled band. Orbits past the outer edge are dropped.
func (g *Generator) drawOrbits(count int) []float64 {
	distances := make([]float64, 0, count)

	d := synth.MinDistance + (1.0-synth.MinDistance)*g.rng.Float64()
	for i := 0; i < count; i++ {
		if d > synth.MaxDistance {
			break
		}
		distances = append(distances, d)
		factor := minSpacingFactor + (maxSpacingFactor-minSpacingFactor)*g.rng.Float64()
		d *= factor
	}
	return distances
}

func (g *Generator) drawPlanet(distance, starMass float64) (Planet, error) {
	mass, err := g.drawProperty(property.Mass, distance)
	if err != nil {
		return Planet{}, err
	}
	radius, err := g.drawProperty(property.Radius, distance)
	if err != nil {
		return Planet{}, err
	}
	temperature, err := g.drawProperty(property.Temperature, distance)
	if err != nil {
		return Planet{}, err
	}

	_, _, density, color, err := g.zones.SampleProperties(distance, g.rng)
	if err != nil {
		return Planet{}, err
	}

	angle := 2 * math.Pi * g.rng.Float64()
	velocity := math.Sqrt(gravitationalConstant * starMass / distance)
	velocity *= 1 + velocityJitter*(2*g.rng.Float64()-1)

	return Planet{
		OrbitalDistance: distance,
		Angle:           angle,
		X:               distance * math.Cos(angle),
		Y:               distance * math.Sin(angle),
		OrbitalVelocity: velocity,
		Mass:            mass,
		Radius:          radius,
		Temperature:     temperature,
		Density:         density,
		Color:           color,
	}, nil
}

// drawProperty predicts the target at the given distance, applies
// proportional jitter and clips the result back into the generation bounds.
func (g *Generator) drawProperty(target property.Target, distance float64) (float64, error) {
	base, err := g.models[target].PredictOne(distance)
	if err != nil {
		return 0, err
	}
	v := base * (1 + propertyJitter*g.rng.NormFloat64())

	lo, hi := target.GenerationBounds()
	return math.Min(math.Max(v, lo), hi), nil
}
