// Package linear implements ordinary least-squares regression via the
// normal equations.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/stellar-forge/planetgen/core/model"
	"github.com/stellar-forge/planetgen/core/parallel"
	"github.com/stellar-forge/planetgen/pkg/errors"
)

// LinearRegression fits w = (XᵀX)⁻¹ Xᵀy with an optional intercept column.
type LinearRegression struct {
	state *model.StateManager

	fitIntercept bool

	// Learned parameters.
	Weights   *mat.VecDense
	Intercept float64
	NFeatures int
}

// NewLinearRegression creates an unfitted model. The intercept is fitted by
// default.
func NewLinearRegression(options ...Option) *LinearRegression {
	lr := &LinearRegression{
		state:        model.NewStateManager(),
		fitIntercept: true,
	}
	for _, opt := range options {
		opt(lr)
	}
	return lr
}

// Fit estimates the weights from a design matrix X (n×p) and a column
// vector y (n×1).
func (lr *LinearRegression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}

	lr.NFeatures = c

	design := mat.DenseCopyOf(X)
	if lr.fitIntercept {
		// Prepend a ones column for the intercept term.
		design = mat.NewDense(r, c+1, nil)
		const parallelThreshold = 1000
		parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
			for i := start; i < end; i++ {
				design.Set(i, 0, 1.0)
				for j := 0; j < c; j++ {
					design.Set(i, j+1, X.At(i, j))
				}
			}
		})
	}

	var xt mat.Dense
	xt.CloneFrom(design.T())

	var xtx mat.Dense
	xtx.Mul(&xt, design)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var xty mat.VecDense
	xty.MulVec(&xt, yVec)

	_, cols := design.Dims()
	solution := mat.NewVecDense(cols, nil)
	solution.MulVec(&xtxInv, &xty)

	if lr.fitIntercept {
		lr.Intercept = solution.AtVec(0)
		lr.Weights = mat.NewVecDense(c, nil)
		for i := 0; i < c; i++ {
			lr.Weights.SetVec(i, solution.AtVec(i+1))
		}
	} else {
		lr.Intercept = 0
		lr.Weights = mat.VecDenseCopyOf(solution)
	}

	lr.state.SetDimensions(c, r)
	lr.state.SetFitted()
	return nil
}

// Predict returns the n×1 matrix of fitted values for X.
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if err := lr.state.RequireFitted("LinearRegression", "Predict"); err != nil {
		return nil, err
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// Score returns the coefficient of determination R² on (X, y).
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if err := lr.state.RequireFitted("LinearRegression", "Score"); err != nil {
		return 0, err
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.At(i, 0)
		yHat := yPred.At(i, 0)
		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += (yTrue - yHat) * (yTrue - yHat)
	}

	if tss == 0 {
		return 0, errors.Newf("total sum of squares is zero")
	}
	return 1 - rss/tss, nil
}

// GetWeights returns a copy of the learned coefficients.
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.Weights == nil {
		return nil
	}
	weights := make([]float64, lr.Weights.Len())
	for i := 0; i < lr.Weights.Len(); i++ {
		weights[i] = lr.Weights.AtVec(i)
	}
	return weights
}

// GetIntercept returns the learned intercept, or 0 when unfitted.
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.state.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// IsFitted reports whether Fit or Restore has completed.
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// Restore rebuilds a fitted model from serialized parameters.
func (lr *LinearRegression) Restore(weights []float64, intercept float64) error {
	if len(weights) == 0 {
		return errors.NewValueError("LinearRegression.Restore", "weights must be non-empty")
	}
	data := make([]float64, len(weights))
	copy(data, weights)
	lr.Weights = mat.NewVecDense(len(data), data)
	lr.Intercept = intercept
	lr.NFeatures = len(data)
	if lr.state == nil {
		lr.state = model.NewStateManager()
	}
	lr.state.SetDimensions(len(data), 0)
	lr.state.SetFitted()
	return nil
}
