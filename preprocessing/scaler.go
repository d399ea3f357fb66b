package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/stellar-forge/planetgen/core/model"
	"github.com/stellar-forge/planetgen/pkg/errors"
)

// StandardScaler standardizes features to zero mean and unit variance.
// The zone mixture model scales orbital distances through it before
// clustering.
type StandardScaler struct {
	state *model.StateManager

	// Learned parameters, exported for artifact serialization.
	Mean  []float64
	Scale []float64
}

// NewStandardScaler creates an unfitted StandardScaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{state: model.NewStateManager()}
}

// Fit computes per-feature means and standard deviations. Features with zero
// variance get a scale of 1 so Transform stays finite.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		var sum float64
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		mean := sum / float64(r)

		var sqSum float64
		for i := 0; i < r; i++ {
			diff := X.At(i, j) - mean
			sqSum += diff * diff
		}
		scale := math.Sqrt(sqSum / float64(r))
		if scale == 0 {
			scale = 1.0
		}

		s.Mean[j] = mean
		s.Scale[j] = scale
	}

	s.state.SetDimensions(c, r)
	s.state.SetFitted()
	return nil
}

// Transform standardizes X using the fitted statistics.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.state.RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != len(s.Mean) {
		return nil, errors.NewDimensionError("StandardScaler.Transform", len(s.Mean), c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
		}
	}
	return out, nil
}

// FitTransform fits the scaler and transforms X in one call.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// TransformValue standardizes a single scalar using the first feature's
// statistics.
func (s *StandardScaler) TransformValue(x float64) (float64, error) {
	if err := s.state.RequireFitted("StandardScaler", "TransformValue"); err != nil {
		return 0, err
	}
	return (x - s.Mean[0]) / s.Scale[0], nil
}

// InverseTransform maps standardized values back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.state.RequireFitted("StandardScaler", "InverseTransform"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != len(s.Mean) {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", len(s.Mean), c, 1)
	}

	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(i, j)*s.Scale[j]+s.Mean[j])
		}
	}
	return out, nil
}

// Restore rebuilds a fitted scaler from serialized statistics.
func (s *StandardScaler) Restore(mean, scale []float64) error {
	if len(mean) == 0 || len(mean) != len(scale) {
		return errors.NewValueError("StandardScaler.Restore", "mean and scale must be non-empty and equal length")
	}
	s.Mean = mean
	s.Scale = scale
	if s.state == nil {
		s.state = model.NewStateManager()
	}
	s.state.SetDimensions(len(mean), 0)
	s.state.SetFitted()
	return nil
}
