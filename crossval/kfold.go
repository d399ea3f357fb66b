// Package crossval provides data-splitting utilities: a k-fold splitter for
// cross-validation and a one-shot shuffled train/test partition.
package crossval

import (
	"math/rand/v2"

	"github.com/stellar-forge/planetgen/pkg/errors"
)

// Fold is a single train/validation partition of row indices.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold splits row indices into k contiguous folds, optionally shuffling the
// rows first with a seeded PCG stream so splits are reproducible.
type KFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed int64
}

// NewKFold creates a k-fold splitter. Fewer than two splits falls back to
// the 5-fold default.
func NewKFold(nSplits int, shuffle bool, randomSeed int64) *KFold {
	if nSplits < 2 {
		nSplits = 5
	}
	return &KFold{
		NSplits:    nSplits,
		Shuffle:    shuffle,
		RandomSeed: randomSeed,
	}
}

// Split partitions [0, nSamples) into NSplits folds. Fold sizes differ by at
// most one row.
func (kf *KFold) Split(nSamples int) ([]Fold, error) {
	if nSamples < kf.NSplits {
		return nil, errors.Newf("cannot split %d samples into %d folds", nSamples, kf.NSplits)
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}

	if kf.Shuffle {
		r := rand.New(rand.NewPCG(uint64(kf.RandomSeed), uint64(kf.RandomSeed)))
		r.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NSplits)
	foldSize := nSamples / kf.NSplits
	remainder := nSamples % kf.NSplits

	currentIdx := 0
	for i := 0; i < kf.NSplits; i++ {
		testSize := foldSize
		if i < remainder {
			testSize++
		}

		testIndices := make([]int, testSize)
		copy(testIndices, indices[currentIdx:currentIdx+testSize])

		trainIndices := make([]int, 0, nSamples-testSize)
		trainIndices = append(trainIndices, indices[:currentIdx]...)
		trainIndices = append(trainIndices, indices[currentIdx+testSize:]...)

		folds[i] = Fold{
			TrainIndices: trainIndices,
			TestIndices:  testIndices,
		}
		currentIdx += testSize
	}

	return folds, nil
}

// TrainTestSplit shuffles [0, nSamples) with a seeded PCG stream and splits
// it into train and test index sets. The same (nSamples, testFraction,
// seed) triple always yields the same partition, so all three property fits
// can share one split and row alignment across targets is preserved.
func TrainTestSplit(nSamples int, testFraction float64, seed int64) (train, test []int, err error) {
	if nSamples <= 0 {
		return nil, nil, errors.NewValueError("TrainTestSplit", "nSamples must be positive")
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, errors.NewValueError("TrainTestSplit", "testFraction must be in (0, 1)")
	}

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	r.Shuffle(len(indices), func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	testSize := int(float64(nSamples) * testFraction)
	if testSize == 0 {
		testSize = 1
	}
	if testSize >= nSamples {
		return nil, nil, errors.NewValueError("TrainTestSplit", "test partition would swallow every sample")
	}

	test = indices[:testSize]
	train = indices[testSize:]
	return train, test, nil
}

// Take gathers the values of xs at the given indices.
func Take(xs []float64, indices []int) []float64 {
	out := make([]float64, len(indices))
	for i, idx := range indices {
		out[i] = xs[idx]
	}
	return out
}
