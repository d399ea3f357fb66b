package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestStandardScalerFitTransform(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	if math.Abs(scaler.Mean[0]-5.0) > 1e-12 {
		t.Errorf("mean = %v, want 5", scaler.Mean[0])
	}

	// Scaled column must have zero mean and unit variance.
	r, _ := scaled.Dims()
	var sum, sqSum float64
	for i := 0; i < r; i++ {
		sum += scaled.At(i, 0)
	}
	mean := sum / float64(r)
	for i := 0; i < r; i++ {
		diff := scaled.At(i, 0) - mean
		sqSum += diff * diff
	}
	if math.Abs(mean) > 1e-12 {
		t.Errorf("scaled mean = %v, want 0", mean)
	}
	if math.Abs(sqSum/float64(r)-1.0) > 1e-12 {
		t.Errorf("scaled variance = %v, want 1", sqSum/float64(r))
	}
}

func TestStandardScalerInverseTransform(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{0.5, 1.5, 12.0})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	back, err := scaler.InverseTransform(scaled)
	if err != nil {
		t.Fatalf("InverseTransform() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if math.Abs(back.At(i, 0)-X.At(i, 0)) > 1e-10 {
			t.Errorf("row %d: round trip %v, want %v", i, back.At(i, 0), X.At(i, 0))
		}
	}
}

func TestStandardScalerConstantFeature(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{4, 4, 4})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if v := scaled.At(i, 0); v != 0 {
			t.Errorf("constant feature should scale to 0, got %v", v)
		}
	}
}

func TestStandardScalerNotFitted(t *testing.T) {
	scaler := NewStandardScaler()
	if _, err := scaler.Transform(mat.NewDense(1, 1, []float64{1})); err == nil {
		t.Fatal("Transform before Fit should fail")
	}
	if _, err := scaler.TransformValue(1.0); err == nil {
		t.Fatal("TransformValue before Fit should fail")
	}
}

func TestStandardScalerRestore(t *testing.T) {
	scaler := NewStandardScaler()
	if err := scaler.Restore([]float64{5.0}, []float64{2.0}); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	got, err := scaler.TransformValue(9.0)
	if err != nil {
		t.Fatalf("TransformValue() error = %v", err)
	}
	if got != 2.0 {
		t.Errorf("TransformValue(9) = %v, want 2", got)
	}
}
