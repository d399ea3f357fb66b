package property

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar-forge/planetgen/pkg/errors"
)

// fitLinearTestModel builds a small fitted model on y = a*x + b data.
func fitLinearTestModel(t *testing.T, target Target, a, b float64) *Model {
	t.Helper()

	distances := make([]float64, 60)
	values := make([]float64, 60)
	for i := range distances {
		distances[i] = 0.5 + float64(i)*0.5
		values[i] = a*distances[i] + b
	}

	cfg := DefaultFitConfig()
	cfg.MaxDegree = 2
	result, err := Fit(distances, values, target, cfg)
	require.NoError(t, err)
	return result.Model
}

func TestPredictFloorsAtLowerBound(t *testing.T) {
	// A steeply descending line goes far below the mass floor at large
	// distances; predictions must be clipped to the floor, not rejected.
	m := fitLinearTestModel(t, Mass, -5.0, 10.0)

	out, err := m.Predict([]float64{0.0, 1000.0})
	require.NoError(t, err)

	for _, v := range out {
		assert.GreaterOrEqual(t, v, Mass.LowerBound())
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
	// The extreme distance must have hit the floor exactly.
	assert.Equal(t, Mass.LowerBound(), out[1])
}

func TestPredictNoUpperCap(t *testing.T) {
	// Inference clipping is one-sided: a rising line may exceed the
	// generation ceiling.
	m := fitLinearTestModel(t, Radius, 2.0, 0.0)

	out, err := m.Predict([]float64{1000.0})
	require.NoError(t, err)
	assert.Greater(t, out[0], 25.0)
}

func TestPredictRejectsInvalidDistances(t *testing.T) {
	m := fitLinearTestModel(t, Temperature, 1.0, 100.0)

	cases := []struct {
		name string
		in   float64
	}{
		{name: "negative", in: -1.0},
		{name: "nan", in: math.NaN()},
		{name: "positive infinity", in: math.Inf(1)},
		{name: "negative infinity", in: math.Inf(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.Predict([]float64{1.0, tc.in})
			require.Error(t, err)

			var invalid *errors.InvalidDistanceError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, 1, invalid.Index)
		})
	}
}

func TestPredictZeroDistanceAllowed(t *testing.T) {
	m := fitLinearTestModel(t, Mass, 1.0, 1.0)
	out, err := m.Predict([]float64{0.0})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestPredictEmptyInput(t *testing.T) {
	m := fitLinearTestModel(t, Mass, 1.0, 1.0)
	_, err := m.Predict(nil)
	assert.Error(t, err)
}

func TestTargetRoundTrip(t *testing.T) {
	for _, target := range AllTargets() {
		parsed, err := TargetFromString(target.String())
		require.NoError(t, err)
		assert.Equal(t, target, parsed)
	}

	_, err := TargetFromString("density")
	assert.Error(t, err)
}

func TestTargetBounds(t *testing.T) {
	lo, hi := Mass.GenerationBounds()
	assert.Equal(t, 0.01, lo)
	assert.Equal(t, 1000.0, hi)
	assert.Equal(t, 0.1, Radius.LowerBound())
	assert.Equal(t, 10.0, Temperature.LowerBound())
}
