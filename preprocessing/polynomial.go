// Package preprocessing provides feature transforms applied before fitting:
// polynomial expansion of the orbital-distance feature and mean/variance
// standardization.
package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/stellar-forge/planetgen/pkg/errors"
)

// PolynomialFeatures expands a single scalar feature x into the vector
// [x, x², ..., x^degree]. No bias column is produced; the regression adds
// its own intercept term.
type PolynomialFeatures struct {
	Degree int
}

// NewPolynomialFeatures creates a transformer for the given degree.
func NewPolynomialFeatures(degree int) *PolynomialFeatures {
	return &PolynomialFeatures{Degree: degree}
}

// Transform expands an n×1 matrix into an n×degree matrix of powers.
func (p *PolynomialFeatures) Transform(X mat.Matrix) (mat.Matrix, error) {
	if p.Degree < 1 {
		return nil, errors.NewValueError("PolynomialFeatures.Transform", "degree must be at least 1")
	}

	r, c := X.Dims()
	if r == 0 {
		return nil, errors.NewModelError("PolynomialFeatures.Transform", "empty data", errors.ErrEmptyData)
	}
	if c != 1 {
		return nil, errors.NewDimensionError("PolynomialFeatures.Transform", 1, c, 1)
	}

	out := mat.NewDense(r, p.Degree, nil)
	for i := 0; i < r; i++ {
		x := X.At(i, 0)
		power := 1.0
		for j := 0; j < p.Degree; j++ {
			power *= x
			out.Set(i, j, power)
		}
	}
	return out, nil
}

// TransformSlice expands a slice of scalar inputs. Convenience wrapper for
// inference paths that hold plain float64 slices.
func (p *PolynomialFeatures) TransformSlice(xs []float64) (mat.Matrix, error) {
	if len(xs) == 0 {
		return nil, errors.NewModelError("PolynomialFeatures.TransformSlice", "empty data", errors.ErrEmptyData)
	}
	data := make([]float64, len(xs))
	copy(data, xs)
	return p.Transform(mat.NewDense(len(xs), 1, data))
}
