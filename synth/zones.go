package synth

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stellar-forge/planetgen/pkg/errors"
)

// Zone describes one orbital band and the property distributions of the
// planets found in it. Units: distance in AU, mass in Earth masses, radius
// in Earth radii, density in g/cm³, color as RGB 0-255.
type Zone struct {
	Name        string
	DistanceMin float64
	DistanceMax float64
	MassMin     float64
	MassMax     float64
	RadiusMin   float64
	RadiusMax   float64
	DensityMin  float64
	DensityMax  float64
	ColorMean   [3]float64
	ColorStd    [3]float64
}

// Zones is the canonical table of orbital bands, from hot inner rocky worlds
// out to distant icy bodies. Adjacent bands deliberately overlap.
var Zones = []Zone{
	{
		Name:        "inner rocky",
		DistanceMin: 0.1, DistanceMax: 1.5,
		MassMin: 0.1, MassMax: 5.0,
		RadiusMin: 0.4, RadiusMax: 1.8,
		DensityMin: 3.5, DensityMax: 6.0,
		ColorMean: [3]float64{180, 150, 120},
		ColorStd:  [3]float64{30, 30, 30},
	},
	{
		Name:        "habitable super-earth",
		DistanceMin: 0.8, DistanceMax: 2.5,
		MassMin: 0.5, MassMax: 15.0,
		RadiusMin: 0.8, RadiusMax: 3.0,
		DensityMin: 3.0, DensityMax: 5.5,
		ColorMean: [3]float64{100, 150, 200},
		ColorStd:  [3]float64{40, 40, 40},
	},
	{
		Name:        "gas giant",
		DistanceMin: 3.0, DistanceMax: 15.0,
		MassMin: 50.0, MassMax: 2000.0,
		RadiusMin: 5.0, RadiusMax: 15.0,
		DensityMin: 0.5, DensityMax: 2.0,
		ColorMean: [3]float64{200, 180, 150},
		ColorStd:  [3]float64{30, 40, 40},
	},
	{
		Name:        "ice giant",
		DistanceMin: 10.0, DistanceMax: 50.0,
		MassMin: 10.0, MassMax: 100.0,
		RadiusMin: 3.0, RadiusMax: 8.0,
		DensityMin: 1.0, DensityMax: 2.5,
		ColorMean: [3]float64{150, 200, 220},
		ColorStd:  [3]float64{30, 30, 30},
	},
	{
		Name:        "distant icy body",
		DistanceMin: 30.0, DistanceMax: 100.0,
		MassMin: 0.01, MassMax: 1.0,
		RadiusMin: 0.1, RadiusMax: 0.8,
		DensityMin: 1.5, DensityMax: 3.0,
		ColorMean: [3]float64{210, 210, 230},
		ColorStd:  [3]float64{20, 20, 20},
	},
}

// Minimum property values enforced on every generated zone record.
const (
	MinZoneMass    = 0.01
	MinZoneRadius  = 0.1
	MinZoneDensity = 0.1
)

// ZoneSampleSet holds generated zone records in column form. Zone records
// carry density and color in addition to the regression properties, and
// remember the zone each row was drawn from.
type ZoneSampleSet struct {
	Distance []float64
	Mass     []float64
	Radius   []float64
	Density  []float64
	Color    [][3]float64
	Zone     []int
}

// Len returns the number of records.
func (z *ZoneSampleSet) Len() int {
	return len(z.Distance)
}

// GenerateZones produces numSamples records spread evenly across the zone
// table, deterministically for a given seed. Distances are drawn uniformly
// inside each zone's band widened by 20% on both ends, properties normally
// around the band midpoints, and the combined rows are shuffled so zone
// blocks do not survive into the output.
func GenerateZones(numSamples int, seed int64) (*ZoneSampleSet, error) {
	if numSamples <= 0 {
		return nil, errors.NewValueError("synth.GenerateZones", "numSamples must be positive")
	}
	perZone := numSamples / len(Zones)
	if perZone == 0 {
		return nil, errors.NewValueError("synth.GenerateZones", "numSamples must be at least the number of zones")
	}

	src := rand.NewSource(uint64(seed))
	rng := rand.New(src)
	stdNormal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	total := perZone * len(Zones)
	set := &ZoneSampleSet{
		Distance: make([]float64, 0, total),
		Mass:     make([]float64, 0, total),
		Radius:   make([]float64, 0, total),
		Density:  make([]float64, 0, total),
		Color:    make([][3]float64, 0, total),
		Zone:     make([]int, 0, total),
	}

	for zoneIdx, zone := range Zones {
		distLo := zone.DistanceMin * 0.8
		distHi := zone.DistanceMax * 1.2

		for i := 0; i < perZone; i++ {
			d := distLo + rng.Float64()*(distHi-distLo)

			mass := normalAround(zone.MassMin, zone.MassMax, &stdNormal)
			radius := normalAround(zone.RadiusMin, zone.RadiusMax, &stdNormal)
			density := normalAround(zone.DensityMin, zone.DensityMax, &stdNormal)

			var color [3]float64
			for c := 0; c < 3; c++ {
				color[c] = clip(zone.ColorMean[c]+stdNormal.Rand()*zone.ColorStd[c], 0, 255)
			}

			set.Distance = append(set.Distance, d)
			set.Mass = append(set.Mass, max(MinZoneMass, mass))
			set.Radius = append(set.Radius, max(MinZoneRadius, radius))
			set.Density = append(set.Density, max(MinZoneDensity, density))
			set.Color = append(set.Color, color)
			set.Zone = append(set.Zone, zoneIdx)
		}
	}

	rng.Shuffle(total, func(i, j int) {
		set.Distance[i], set.Distance[j] = set.Distance[j], set.Distance[i]
		set.Mass[i], set.Mass[j] = set.Mass[j], set.Mass[i]
		set.Radius[i], set.Radius[j] = set.Radius[j], set.Radius[i]
		set.Density[i], set.Density[j] = set.Density[j], set.Density[i]
		set.Color[i], set.Color[j] = set.Color[j], set.Color[i]
		set.Zone[i], set.Zone[j] = set.Zone[j], set.Zone[i]
	})

	return set, nil
}

// normalAround draws from a normal centered on the midpoint of [lo, hi] with
// a standard deviation of a quarter of the range.
func normalAround(lo, hi float64, stdNormal *distuv.Normal) float64 {
	mean := (lo + hi) / 2.0
	std := (hi - lo) / 4.0
	return mean + stdNormal.Rand()*std
}
