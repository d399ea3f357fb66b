package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestPolynomialFeaturesTransform(t *testing.T) {
	tests := []struct {
		name    string
		degree  int
		input   []float64
		want    [][]float64
		wantErr bool
	}{
		{
			name:   "degree one is identity",
			degree: 1,
			input:  []float64{2.0, 3.0},
			want:   [][]float64{{2.0}, {3.0}},
		},
		{
			name:   "degree three powers",
			degree: 3,
			input:  []float64{2.0},
			want:   [][]float64{{2.0, 4.0, 8.0}},
		},
		{
			name:   "negative base keeps sign pattern",
			degree: 2,
			input:  []float64{-3.0},
			want:   [][]float64{{-3.0, 9.0}},
		},
		{
			name:    "degree zero rejected",
			degree:  0,
			input:   []float64{1.0},
			wantErr: true,
		},
		{
			name:    "empty input rejected",
			degree:  2,
			input:   []float64{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poly := NewPolynomialFeatures(tt.degree)
			got, err := poly.TransformSlice(tt.input)

			if (err != nil) != tt.wantErr {
				t.Fatalf("TransformSlice() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			r, c := got.Dims()
			if r != len(tt.want) || c != tt.degree {
				t.Fatalf("dims = (%d, %d), want (%d, %d)", r, c, len(tt.want), tt.degree)
			}
			for i := range tt.want {
				for j := range tt.want[i] {
					if math.Abs(got.At(i, j)-tt.want[i][j]) > 1e-12 {
						t.Errorf("at (%d, %d) = %v, want %v", i, j, got.At(i, j), tt.want[i][j])
					}
				}
			}
		})
	}
}

func TestPolynomialFeaturesRejectsMultiColumn(t *testing.T) {
	poly := NewPolynomialFeatures(2)
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if _, err := poly.Transform(X); err == nil {
		t.Fatal("expected dimension error for 2-column input")
	}
}
