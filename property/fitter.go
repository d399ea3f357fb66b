package property

import (
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/stellar-forge/planetgen/crossval"
	"github.com/stellar-forge/planetgen/linear"
	"github.com/stellar-forge/planetgen/metrics"
	"github.com/stellar-forge/planetgen/pkg/errors"
	"github.com/stellar-forge/planetgen/preprocessing"
)

// FitConfig controls the degree search.
type FitConfig struct {
	MinDegree int
	MaxDegree int
	Folds     int
	CVSeed    int64
}

// DefaultFitConfig returns the standard search: degrees 1 through 7 scored
// by 5-fold cross-validation.
func DefaultFitConfig() FitConfig {
	return FitConfig{
		MinDegree: 1,
		MaxDegree: 7,
		Folds:     5,
		CVSeed:    42,
	}
}

// MinTrainingSamples returns the smallest training partition the search
// will accept: enough rows for every fold fit at the maximum degree.
func (c FitConfig) MinTrainingSamples() int {
	return c.Folds * (c.MaxDegree + 1)
}

func (c FitConfig) validate(op string) error {
	if c.MinDegree < 1 {
		return errors.NewValueError(op, "MinDegree must be at least 1")
	}
	if c.MaxDegree < c.MinDegree {
		return errors.NewValueError(op, "MaxDegree must not be below MinDegree")
	}
	if c.Folds < 2 {
		return errors.NewValueError(op, "Folds must be at least 2")
	}
	return nil
}

// DegreeScore records the mean cross-validation score (negative MSE, higher
// is better) of one candidate degree.
type DegreeScore struct {
	Degree    int
	MeanScore float64
}

// FitResult is the outcome of a degree search: the refitted model, the
// selected degree and the per-degree CV scores.
type FitResult struct {
	Model  *Model
	Degree int
	Scores []DegreeScore
}

// Fit searches polynomial degrees for the target property and returns the
// model refitted on the whole training slice at the winning degree.
//
// Candidate degrees are scored by k-fold cross-validation on negative MSE
// and evaluated concurrently; each fold fit is a pure function of its
// training rows, so no ordering is needed. Selection walks the scores in
// ascending degree order with a strict comparison, so ties go to the lowest
// degree.
func Fit(distances, values []float64, target Target, cfg FitConfig) (*FitResult, error) {
	const op = "property.Fit"

	if err := cfg.validate(op); err != nil {
		return nil, err
	}
	if len(distances) != len(values) {
		return nil, errors.NewDimensionError(op, len(distances), len(values), 0)
	}
	if required := cfg.MinTrainingSamples(); len(distances) < required {
		return nil, errors.NewInsufficientSamplesError(op, required, len(distances), cfg.Folds, cfg.MaxDegree)
	}

	folds, err := crossval.NewKFold(cfg.Folds, true, cfg.CVSeed).Split(len(distances))
	if err != nil {
		return nil, err
	}

	nDegrees := cfg.MaxDegree - cfg.MinDegree + 1
	scores := make([]DegreeScore, nDegrees)
	fitErrs := make([]error, nDegrees)

	var wg sync.WaitGroup
	for i := 0; i < nDegrees; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			degree := cfg.MinDegree + slot
			mean, err := crossValidateDegree(distances, values, folds, degree)
			if err != nil {
				fitErrs[slot] = errors.Wrapf(err, "degree %d", degree)
				return
			}
			scores[slot] = DegreeScore{Degree: degree, MeanScore: mean}
		}(i)
	}
	wg.Wait()

	for _, err := range fitErrs {
		if err != nil {
			return nil, errors.NewModelError(op, "cross-validation failed for "+target.String(), err)
		}
	}

	best := scores[0]
	for _, s := range scores[1:] {
		if s.MeanScore > best.MeanScore {
			best = s
		}
	}

	// Refit the winning degree on the entire training slice, not a CV fold.
	reg, err := fitDegree(distances, values, best.Degree)
	if err != nil {
		return nil, errors.NewModelError(op, "final refit failed for "+target.String(), err)
	}

	return &FitResult{
		Model:  newFittedModel(target, best.Degree, reg),
		Degree: best.Degree,
		Scores: scores,
	}, nil
}

// crossValidateDegree scores one candidate degree as the mean negative MSE
// across the folds.
func crossValidateDegree(distances, values []float64, folds []crossval.Fold, degree int) (float64, error) {
	var total float64
	for _, fold := range folds {
		reg, err := fitDegree(crossval.Take(distances, fold.TrainIndices), crossval.Take(values, fold.TrainIndices), degree)
		if err != nil {
			return 0, err
		}

		valDist := crossval.Take(distances, fold.TestIndices)
		valVals := crossval.Take(values, fold.TestIndices)

		poly := preprocessing.NewPolynomialFeatures(degree)
		expanded, err := poly.TransformSlice(valDist)
		if err != nil {
			return 0, err
		}
		pred, err := reg.Predict(expanded)
		if err != nil {
			return 0, err
		}

		predVec := mat.NewVecDense(len(valVals), nil)
		for i := range valVals {
			predVec.SetVec(i, pred.At(i, 0))
		}
		score, err := metrics.NegMSE(mat.NewVecDense(len(valVals), valVals), predVec)
		if err != nil {
			return 0, err
		}
		total += score
	}
	return total / float64(len(folds)), nil
}

// fitDegree fits an OLS regression on the polynomial expansion of the
// distances at the given degree.
func fitDegree(distances, values []float64, degree int) (*linear.LinearRegression, error) {
	poly := preprocessing.NewPolynomialFeatures(degree)
	expanded, err := poly.TransformSlice(distances)
	if err != nil {
		return nil, err
	}

	y := make([]float64, len(values))
	copy(y, values)

	reg := linear.NewLinearRegression()
	if err := reg.Fit(expanded, mat.NewDense(len(y), 1, y)); err != nil {
		return nil, err
	}
	return reg, nil
}
