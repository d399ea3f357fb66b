package property

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar-forge/planetgen/pkg/errors"
)

// quadraticData produces y = 0.5x^2 - 2x + 3 with small seeded noise.
func quadraticData(n int) (distances, values []float64) {
	rng := rand.New(rand.NewPCG(7, 7))
	distances = make([]float64, n)
	values = make([]float64, n)
	for i := range distances {
		x := 0.2 + 10.0*rng.Float64()
		distances[i] = x
		values[i] = 0.5*x*x - 2.0*x + 3.0 + 0.05*rng.NormFloat64()
	}
	return distances, values
}

func TestFitRecoversQuadratic(t *testing.T) {
	distances, values := quadraticData(400)

	result, err := Fit(distances, values, Mass, DefaultFitConfig())
	require.NoError(t, err)
	require.NotNil(t, result.Model)

	// Noise is tiny, so CV must not prefer a plain line. Degrees above
	// the true order may occasionally edge out on a given split, but the
	// winner should stay close to two.
	assert.GreaterOrEqual(t, result.Degree, 2)
	assert.LessOrEqual(t, result.Degree, 4)
	assert.Equal(t, result.Degree, result.Model.Degree())

	// Predictions should track the underlying curve.
	out, err := result.Model.Predict([]float64{2.0, 6.0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5*4-4+3, out[0], 0.2)
	assert.InDelta(t, 0.5*36-12+3, out[1], 0.2)
}

func TestFitIsDeterministic(t *testing.T) {
	distances, values := quadraticData(200)
	cfg := DefaultFitConfig()

	a, err := Fit(distances, values, Radius, cfg)
	require.NoError(t, err)
	b, err := Fit(distances, values, Radius, cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Degree, b.Degree)
	require.Equal(t, len(a.Scores), len(b.Scores))
	for i := range a.Scores {
		assert.Equal(t, a.Scores[i].Degree, b.Scores[i].Degree)
		assert.Equal(t, a.Scores[i].MeanScore, b.Scores[i].MeanScore)
	}
}

func TestFitScoresCoverEveryDegree(t *testing.T) {
	distances, values := quadraticData(200)

	result, err := Fit(distances, values, Mass, DefaultFitConfig())
	require.NoError(t, err)

	require.Len(t, result.Scores, 7)
	for i, s := range result.Scores {
		assert.Equal(t, i+1, s.Degree)
		assert.False(t, math.IsNaN(s.MeanScore))
		// Neg-MSE never exceeds zero.
		assert.LessOrEqual(t, s.MeanScore, 0.0)
	}
}

func TestFitInsufficientSamples(t *testing.T) {
	cfg := DefaultFitConfig()
	// Threshold is folds * (maxDegree + 1) = 40; one below must fail.
	need := cfg.MinTrainingSamples()

	distances := make([]float64, need-1)
	values := make([]float64, need-1)
	for i := range distances {
		distances[i] = 1.0 + float64(i)
		values[i] = float64(i)
	}

	_, err := Fit(distances, values, Mass, cfg)
	require.Error(t, err)

	var insufficient *errors.InsufficientSamplesError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, need, insufficient.Required)
	assert.Equal(t, need-1, insufficient.Got)
}

func TestFitExactThresholdSucceeds(t *testing.T) {
	cfg := DefaultFitConfig()
	need := cfg.MinTrainingSamples()

	rng := rand.New(rand.NewPCG(3, 3))
	distances := make([]float64, need)
	values := make([]float64, need)
	for i := range distances {
		distances[i] = 0.5 + 12.0*rng.Float64()
		values[i] = 2.0*distances[i] + 1.0 + 0.01*rng.NormFloat64()
	}

	result, err := Fit(distances, values, Temperature, cfg)
	require.NoError(t, err)
	assert.True(t, result.Model.IsFitted())
}

func TestFitTiesPreferLowestDegree(t *testing.T) {
	// An exact line scores essentially perfectly at every degree >= 1.
	// Selection walks degrees in ascending order and only replaces the
	// incumbent on a strict improvement, so the line must win as degree
	// one unless a higher degree genuinely beats it.
	distances := make([]float64, 100)
	values := make([]float64, 100)
	for i := range distances {
		distances[i] = 0.3 + float64(i)*0.1
		values[i] = 4.0 * distances[i]
	}

	result, err := Fit(distances, values, Mass, DefaultFitConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Degree)
}

func TestFitMismatchedLengths(t *testing.T) {
	_, err := Fit([]float64{1, 2, 3}, []float64{1, 2}, Mass, DefaultFitConfig())
	require.Error(t, err)

	var dim *errors.DimensionError
	assert.True(t, errors.As(err, &dim))
}

func TestFitConfigValidation(t *testing.T) {
	distances, values := quadraticData(200)

	cases := []struct {
		name   string
		mutate func(*FitConfig)
	}{
		{name: "zero min degree", mutate: func(c *FitConfig) { c.MinDegree = 0 }},
		{name: "inverted range", mutate: func(c *FitConfig) { c.MinDegree = 5; c.MaxDegree = 3 }},
		{name: "one fold", mutate: func(c *FitConfig) { c.Folds = 1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFitConfig()
			tc.mutate(&cfg)
			_, err := Fit(distances, values, Mass, cfg)
			assert.Error(t, err)
		})
	}
}
