package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter is anything trainable from a design matrix and target.
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor produces predictions for a design matrix.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Regressor is a trainable predictor with an R² score.
type Regressor interface {
	Fitter
	Predictor
	Score(X, y mat.Matrix) (float64, error)
}

// Transformer maps a design matrix to a transformed design matrix.
type Transformer interface {
	Transform(X mat.Matrix) (mat.Matrix, error)
}

// FitTransformer is a Transformer whose parameters are learned from data.
type FitTransformer interface {
	Transformer
	Fit(X mat.Matrix) error
	FitTransform(X mat.Matrix) (mat.Matrix, error)
}
