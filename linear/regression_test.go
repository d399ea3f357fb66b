package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestLinearRegressionExactLine(t *testing.T) {
	// y = 2x + 1, noiseless.
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{3, 5, 7, 9})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if math.Abs(lr.GetWeights()[0]-2.0) > 1e-9 {
		t.Errorf("slope = %v, want 2", lr.GetWeights()[0])
	}
	if math.Abs(lr.GetIntercept()-1.0) > 1e-9 {
		t.Errorf("intercept = %v, want 1", lr.GetIntercept())
	}

	pred, err := lr.Predict(mat.NewDense(2, 1, []float64{5, 10}))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if math.Abs(pred.At(0, 0)-11.0) > 1e-9 || math.Abs(pred.At(1, 0)-21.0) > 1e-9 {
		t.Errorf("predictions = [%v, %v], want [11, 21]", pred.At(0, 0), pred.At(1, 0))
	}

	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("R² = %v, want 1", score)
	}
}

func TestLinearRegressionNoIntercept(t *testing.T) {
	// y = 3x through the origin.
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{3, 6, 9})

	lr := NewLinearRegression(WithFitIntercept(false))
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if lr.GetIntercept() != 0 {
		t.Errorf("intercept = %v, want 0", lr.GetIntercept())
	}
	if math.Abs(lr.GetWeights()[0]-3.0) > 1e-9 {
		t.Errorf("slope = %v, want 3", lr.GetWeights()[0])
	}
}

func TestLinearRegressionMultiFeature(t *testing.T) {
	// y = 1 + 2a + 3b on a small grid.
	X := mat.NewDense(4, 2, []float64{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
	})
	y := mat.NewDense(4, 1, []float64{1, 3, 4, 6})

	lr := NewLinearRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	w := lr.GetWeights()
	if math.Abs(w[0]-2.0) > 1e-9 || math.Abs(w[1]-3.0) > 1e-9 {
		t.Errorf("weights = %v, want [2, 3]", w)
	}
}

func TestLinearRegressionValidations(t *testing.T) {
	lr := NewLinearRegression()

	if _, err := lr.Predict(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Error("Predict before Fit should fail")
	}

	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	yBad := mat.NewDense(2, 1, []float64{1, 2})
	if err := lr.Fit(X, yBad); err == nil {
		t.Error("Fit with mismatched rows should fail")
	}
}

func TestLinearRegressionRestore(t *testing.T) {
	lr := NewLinearRegression()
	if err := lr.Restore([]float64{2.0}, 1.0); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	pred, err := lr.Predict(mat.NewDense(1, 1, []float64{4}))
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if math.Abs(pred.At(0, 0)-9.0) > 1e-12 {
		t.Errorf("restored prediction = %v, want 9", pred.At(0, 0))
	}
}
