package property

import (
	"math"

	"github.com/stellar-forge/planetgen/core/model"
	"github.com/stellar-forge/planetgen/linear"
	"github.com/stellar-forge/planetgen/pkg/errors"
	"github.com/stellar-forge/planetgen/preprocessing"
)

// Model is a fitted mapping from orbital distance to one planetary
// property: a polynomial feature expansion of a selected degree composed
// with a linear coefficient vector. Models are immutable once fitted or
// loaded.
type Model struct {
	state  *model.StateManager
	target Target
	degree int
	poly   *preprocessing.PolynomialFeatures
	reg    *linear.LinearRegression
}

// newFittedModel wraps an already-fitted regression as a Model.
func newFittedModel(target Target, degree int, reg *linear.LinearRegression) *Model {
	m := &Model{
		state:  model.NewStateManager(),
		target: target,
		degree: degree,
		poly:   preprocessing.NewPolynomialFeatures(degree),
		reg:    reg,
	}
	m.state.SetFitted()
	return m
}

// Target returns the property this model predicts.
func (m *Model) Target() Target {
	return m.target
}

// Degree returns the selected polynomial degree.
func (m *Model) Degree() int {
	return m.degree
}

// IsFitted reports whether the model is usable.
func (m *Model) IsFitted() bool {
	return m.state.IsFitted()
}

// Predict maps orbital distances to property values. Every prediction is
// floored at the property's lower bound; there is no upper cap, so
// out-of-range distances can extrapolate high but never below the physical
// floor. Distances must be finite and non-negative.
func (m *Model) Predict(distances []float64) ([]float64, error) {
	if err := m.state.RequireFitted("PropertyModel", "Predict"); err != nil {
		return nil, err
	}
	if len(distances) == 0 {
		return nil, errors.NewModelError("PropertyModel.Predict", "empty data", errors.ErrEmptyData)
	}
	for i, d := range distances {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return nil, errors.NewInvalidDistanceError("PropertyModel.Predict", i, d)
		}
	}

	expanded, err := m.poly.TransformSlice(distances)
	if err != nil {
		return nil, err
	}
	raw, err := m.reg.Predict(expanded)
	if err != nil {
		return nil, err
	}

	floor := m.target.LowerBound()
	out := make([]float64, len(distances))
	for i := range out {
		v := raw.At(i, 0)
		if v < floor {
			v = floor
		}
		out[i] = v
	}
	return out, nil
}

// PredictOne maps a single orbital distance to a property value.
func (m *Model) PredictOne(distance float64) (float64, error) {
	out, err := m.Predict([]float64{distance})
	if err != nil {
		return 0, err
	}
	return out[0], nil
}
