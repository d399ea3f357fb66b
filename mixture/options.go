package mixture

// Option configures a GaussianMixture.
type Option func(*GaussianMixture)

// WithMaxIter sets the EM iteration cap.
func WithMaxIter(maxIter int) Option {
	return func(gm *GaussianMixture) {
		gm.maxIter = maxIter
	}
}

// WithTol sets the log-likelihood convergence tolerance.
func WithTol(tol float64) Option {
	return func(gm *GaussianMixture) {
		gm.tol = tol
	}
}

// WithSeed sets the seed used for mean initialization.
func WithSeed(seed int64) Option {
	return func(gm *GaussianMixture) {
		gm.seed = seed
	}
}
