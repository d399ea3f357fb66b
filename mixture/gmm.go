// Package mixture provides a one-dimensional Gaussian mixture fitted by
// expectation-maximization, BIC-based component selection and a zone model
// that profiles planetary properties per mixture component.
package mixture

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stellar-forge/planetgen/core/model"
	"github.com/stellar-forge/planetgen/pkg/errors"
)

const (
	defaultMaxIter = 200
	defaultTol     = 1e-4
	defaultSeed    = 42

	// Variances are floored so a component collapsing onto a single point
	// cannot produce an infinite density.
	minVariance = 1e-6
)

// GaussianMixture models a univariate density as a weighted sum of
// Gaussians. Fitting runs EM from a seeded initialization, so the same
// data and seed always produce the same mixture.
type GaussianMixture struct {
	state *model.StateManager

	nComponents int
	maxIter     int
	tol         float64
	seed        int64

	// Fitted parameters, one entry per component.
	Weights   []float64
	Means     []float64
	Variances []float64

	// LogLikelihood is the total log-likelihood of the training data under
	// the fitted mixture.
	LogLikelihood float64

	nSamples  int
	nIter     int
	converged bool
}

// NewGaussianMixture creates an unfitted mixture with nComponents
// components.
func NewGaussianMixture(nComponents int, options ...Option) *GaussianMixture {
	gm := &GaussianMixture{
		state:       model.NewStateManager(),
		nComponents: nComponents,
		maxIter:     defaultMaxIter,
		tol:         defaultTol,
		seed:        defaultSeed,
	}
	for _, opt := range options {
		opt(gm)
	}
	return gm
}

// NComponents returns the number of mixture components.
func (gm *GaussianMixture) NComponents() int {
	return gm.nComponents
}

// IsFitted reports whether the mixture has been fitted.
func (gm *GaussianMixture) IsFitted() bool {
	return gm.state.IsFitted()
}

// Converged reports whether EM reached the tolerance before the iteration
// cap.
func (gm *GaussianMixture) Converged() bool {
	return gm.converged
}

// NIter returns the number of EM iterations performed.
func (gm *GaussianMixture) NIter() int {
	return gm.nIter
}

// Fit estimates the mixture parameters from x by EM. Initial means are
// distinct data points chosen by a seeded shuffle, initial variances the
// overall sample variance and initial weights uniform.
func (gm *GaussianMixture) Fit(x []float64) error {
	const op = "GaussianMixture.Fit"

	if gm.nComponents < 1 {
		return errors.NewValueError(op, "nComponents must be at least 1")
	}
	if len(x) < 2*gm.nComponents {
		return errors.NewInsufficientSamplesError(op, 2*gm.nComponents, len(x), 0, 0)
	}
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.NewValueError(op, "data contains NaN or Inf")
		}
	}

	gm.initialize(x)

	n := len(x)
	k := gm.nComponents
	resp := make([]float64, n*k)
	logProbs := make([]float64, k)

	prevLL := math.Inf(-1)
	gm.converged = false

	for iter := 0; iter < gm.maxIter; iter++ {
		// E-step: responsibilities and total log-likelihood.
		ll := 0.0
		for i, v := range x {
			for j := 0; j < k; j++ {
				comp := distuv.Normal{Mu: gm.Means[j], Sigma: math.Sqrt(gm.Variances[j])}
				logProbs[j] = math.Log(gm.Weights[j]) + comp.LogProb(v)
			}
			total := floats.LogSumExp(logProbs)
			ll += total
			for j := 0; j < k; j++ {
				resp[i*k+j] = math.Exp(logProbs[j] - total)
			}
		}

		// M-step: weighted moments per component.
		for j := 0; j < k; j++ {
			var sumResp, sumX float64
			for i := 0; i < n; i++ {
				r := resp[i*k+j]
				sumResp += r
				sumX += r * x[i]
			}
			if sumResp <= 0 {
				// A starved component survives at a vanishing weight and
				// keeps its previous moments.
				gm.Weights[j] = 1e-10
				continue
			}
			mean := sumX / sumResp

			var sumSq float64
			for i := 0; i < n; i++ {
				d := x[i] - mean
				sumSq += resp[i*k+j] * d * d
			}

			gm.Weights[j] = sumResp / float64(n)
			gm.Means[j] = mean
			gm.Variances[j] = math.Max(sumSq/sumResp, minVariance)
		}

		gm.nIter = iter + 1
		gm.LogLikelihood = ll
		if math.Abs(ll-prevLL) < gm.tol {
			gm.converged = true
			break
		}
		prevLL = ll
	}

	gm.nSamples = n
	gm.state.SetDimensions(1, n)
	gm.state.SetFitted()
	return nil
}

// initialize seeds the EM parameters from the data.
func (gm *GaussianMixture) initialize(x []float64) {
	n := len(x)
	k := gm.nComponents

	var mean float64
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	var variance float64
	for _, v := range x {
		d := v - mean
		variance += d * d
	}
	variance = math.Max(variance/float64(n), minVariance)

	rng := rand.New(rand.NewPCG(uint64(gm.seed), uint64(gm.seed)))
	perm := rng.Perm(n)

	gm.Weights = make([]float64, k)
	gm.Means = make([]float64, k)
	gm.Variances = make([]float64, k)
	for j := 0; j < k; j++ {
		gm.Weights[j] = 1.0 / float64(k)
		gm.Means[j] = x[perm[j]]
		gm.Variances[j] = variance
	}
}

// BIC returns the Bayesian information criterion of the fitted mixture on
// its training data. A univariate mixture with k components has 3k-1 free
// parameters.
func (gm *GaussianMixture) BIC() (float64, error) {
	if err := gm.state.RequireFitted("GaussianMixture", "BIC"); err != nil {
		return 0, err
	}
	p := float64(3*gm.nComponents - 1)
	return -2*gm.LogLikelihood + p*math.Log(float64(gm.nSamples)), nil
}

// PredictComponent returns the index of the component with the highest
// posterior responsibility for x.
func (gm *GaussianMixture) PredictComponent(x float64) (int, error) {
	if err := gm.state.RequireFitted("GaussianMixture", "PredictComponent"); err != nil {
		return 0, err
	}

	best := 0
	bestLog := math.Inf(-1)
	for j := 0; j < gm.nComponents; j++ {
		comp := distuv.Normal{Mu: gm.Means[j], Sigma: math.Sqrt(gm.Variances[j])}
		lp := math.Log(gm.Weights[j]) + comp.LogProb(x)
		if lp > bestLog {
			bestLog = lp
			best = j
		}
	}
	return best, nil
}

// Restore rebuilds a fitted mixture from persisted parameters.
func (gm *GaussianMixture) Restore(weights, means, variances []float64, logLikelihood float64, nSamples int) error {
	const op = "GaussianMixture.Restore"

	k := len(weights)
	if k == 0 {
		return errors.NewValueError(op, "weights must not be empty")
	}
	if len(means) != k || len(variances) != k {
		return errors.NewDimensionError(op, k, len(means), 1)
	}

	gm.nComponents = k
	gm.Weights = append([]float64(nil), weights...)
	gm.Means = append([]float64(nil), means...)
	gm.Variances = append([]float64(nil), variances...)
	gm.LogLikelihood = logLikelihood
	gm.nSamples = nSamples
	gm.converged = true
	if gm.state == nil {
		gm.state = model.NewStateManager()
	}
	gm.state.SetDimensions(1, nSamples)
	gm.state.SetFitted()
	return nil
}

// SelectByBIC fits one mixture per component count in [minComponents,
// maxComponents] and returns the one with the lowest BIC. Counts are tried
// in ascending order and only a strictly lower BIC replaces the incumbent,
// so ties resolve to the smaller mixture.
func SelectByBIC(x []float64, minComponents, maxComponents int, options ...Option) (*GaussianMixture, error) {
	const op = "mixture.SelectByBIC"

	if minComponents < 1 || maxComponents < minComponents {
		return nil, errors.NewValueError(op, "component range must satisfy 1 <= min <= max")
	}

	var best *GaussianMixture
	bestBIC := math.Inf(1)
	for k := minComponents; k <= maxComponents; k++ {
		gm := NewGaussianMixture(k, options...)
		if err := gm.Fit(x); err != nil {
			return nil, errors.Wrapf(err, "fitting %d components", k)
		}
		bic, err := gm.BIC()
		if err != nil {
			return nil, err
		}
		if bic < bestBIC {
			bestBIC = bic
			best = gm
		}
	}
	return best, nil
}
