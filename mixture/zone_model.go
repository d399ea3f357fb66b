package mixture

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/stellar-forge/planetgen/core/model"
	"github.com/stellar-forge/planetgen/pkg/errors"
	"github.com/stellar-forge/planetgen/pkg/log"
	"github.com/stellar-forge/planetgen/preprocessing"
	"github.com/stellar-forge/planetgen/synth"
)

// Component search range for the zone model. The zone table has five bands,
// so the sweep brackets that count from both sides.
const (
	MinZoneComponents = 2
	MaxZoneComponents = 8
)

// Profile holds the property statistics of one mixture component.
type Profile struct {
	MassMean    float64    `json:"mass_mean"`
	MassStd     float64    `json:"mass_std"`
	RadiusMean  float64    `json:"radius_mean"`
	RadiusStd   float64    `json:"radius_std"`
	DensityMean float64    `json:"density_mean"`
	DensityStd  float64    `json:"density_std"`
	ColorMean   [3]float64 `json:"color_mean"`
	ColorStd    [3]float64 `json:"color_std"`
}

// ZoneModel discovers orbital zones as mixture components over scaled
// distance and records a property Profile per component. Sampling a
// property vector for a distance picks the most responsible component and
// draws around that component's profile.
type ZoneModel struct {
	state    *model.StateManager
	scaler   *preprocessing.StandardScaler
	gmm      *GaussianMixture
	profiles []Profile
	fallback Profile
}

// NewZoneModel creates an unfitted ZoneModel.
func NewZoneModel() *ZoneModel {
	return &ZoneModel{
		state:  model.NewStateManager(),
		scaler: preprocessing.NewStandardScaler(),
	}
}

// IsFitted reports whether the model is usable.
func (zm *ZoneModel) IsFitted() bool {
	return zm.state.IsFitted()
}

// NComponents returns the selected component count.
func (zm *ZoneModel) NComponents() int {
	if zm.gmm == nil {
		return 0
	}
	return zm.gmm.NComponents()
}

// Profiles returns the per-component property profiles.
func (zm *ZoneModel) Profiles() []Profile {
	return zm.profiles
}

// Fit standardizes the distances, sweeps component counts by BIC and builds
// one property profile per selected component. Components that claim fewer
// than two rows fall back to the global profile and emit a
// SparseComponentWarning.
func (zm *ZoneModel) Fit(set *synth.ZoneSampleSet, options ...Option) error {
	const op = "ZoneModel.Fit"

	if set == nil || set.Len() == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	n := set.Len()

	scaled, err := zm.scaler.FitTransform(mat.NewDense(n, 1, append([]float64(nil), set.Distance...)))
	if err != nil {
		return err
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = scaled.At(i, 0)
	}

	gmm, err := SelectByBIC(x, MinZoneComponents, MaxZoneComponents, options...)
	if err != nil {
		return err
	}
	zm.gmm = gmm

	bic, err := gmm.BIC()
	if err != nil {
		return err
	}
	slog.Info("zone mixture selected",
		log.OperationKey, "fit",
		log.ComponentsKey, gmm.NComponents(),
		log.BICKey, bic,
		log.SamplesKey, n,
	)

	// Bucket rows by their most responsible component.
	assignments := make([][]int, gmm.NComponents())
	for i, v := range x {
		comp, err := gmm.PredictComponent(v)
		if err != nil {
			return err
		}
		assignments[comp] = append(assignments[comp], i)
	}

	zm.fallback = profileOf(set, allIndices(n))
	zm.profiles = make([]Profile, gmm.NComponents())
	for comp, rows := range assignments {
		if len(rows) < 2 {
			errors.Warn(errors.NewSparseComponentWarning(comp, len(rows)))
			zm.profiles[comp] = zm.fallback
			continue
		}
		zm.profiles[comp] = profileOf(set, rows)
	}

	zm.state.SetDimensions(1, n)
	zm.state.SetFitted()
	return nil
}

// SampleProperties draws a property vector for one orbital distance from
// the component most responsible for it. Mass, radius and density are
// floored at their physical minimums and colors clipped to [0, 255].
func (zm *ZoneModel) SampleProperties(distance float64, rng *rand.Rand) (mass, radius, density float64, color [3]float64, err error) {
	const op = "ZoneModel.SampleProperties"

	if err = zm.state.RequireFitted("ZoneModel", "SampleProperties"); err != nil {
		return 0, 0, 0, color, err
	}
	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		return 0, 0, 0, color, errors.NewInvalidDistanceError(op, 0, distance)
	}

	scaled, err := zm.scaler.TransformValue(distance)
	if err != nil {
		return 0, 0, 0, color, err
	}
	comp, err := zm.gmm.PredictComponent(scaled)
	if err != nil {
		return 0, 0, 0, color, err
	}
	p := zm.profiles[comp]

	mass = math.Max(p.MassMean+p.MassStd*rng.NormFloat64(), synth.MinZoneMass)
	radius = math.Max(p.RadiusMean+p.RadiusStd*rng.NormFloat64(), synth.MinZoneRadius)
	density = math.Max(p.DensityMean+p.DensityStd*rng.NormFloat64(), synth.MinZoneDensity)
	for c := 0; c < 3; c++ {
		v := p.ColorMean[c] + p.ColorStd[c]*rng.NormFloat64()
		color[c] = math.Min(math.Max(v, 0), 255)
	}
	return mass, radius, density, color, nil
}

// profileOf computes the property statistics of the given rows. Standard
// deviations are floored relative to the mean so a uniform cluster still
// produces usable spread, and color spread never drops below one count.
func profileOf(set *synth.ZoneSampleSet, rows []int) Profile {
	var p Profile
	p.MassMean, p.MassStd = meanStd(set.Mass, rows)
	p.RadiusMean, p.RadiusStd = meanStd(set.Radius, rows)
	p.DensityMean, p.DensityStd = meanStd(set.Density, rows)

	p.MassStd = math.Max(p.MassStd, 1e-3*math.Abs(p.MassMean))
	p.RadiusStd = math.Max(p.RadiusStd, 1e-3*math.Abs(p.RadiusMean))
	p.DensityStd = math.Max(p.DensityStd, 1e-3*math.Abs(p.DensityMean))

	for c := 0; c < 3; c++ {
		var vals []float64
		for _, i := range rows {
			vals = append(vals, set.Color[i][c])
		}
		p.ColorMean[c], p.ColorStd[c] = meanStd(vals, allIndices(len(vals)))
		p.ColorStd[c] = math.Max(p.ColorStd[c], 1.0)
	}
	return p
}

// meanStd returns the mean and population standard deviation of the
// selected rows.
func meanStd(xs []float64, rows []int) (mean, std float64) {
	if len(rows) == 0 {
		return 0, 0
	}
	for _, i := range rows {
		mean += xs[i]
	}
	mean /= float64(len(rows))

	var sumSq float64
	for _, i := range rows {
		d := xs[i] - mean
		sumSq += d * d
	}
	return mean, math.Sqrt(sumSq / float64(len(rows)))
}

func allIndices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
