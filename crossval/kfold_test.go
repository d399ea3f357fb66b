package crossval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKFoldSplitCoversEveryRowOnce(t *testing.T) {
	kf := NewKFold(5, true, 42)
	folds, err := kf.Split(103)
	require.NoError(t, err)
	require.Len(t, folds, 5)

	seen := make(map[int]int)
	for _, fold := range folds {
		for _, idx := range fold.TestIndices {
			seen[idx]++
		}
		assert.Len(t, fold.TrainIndices, 103-len(fold.TestIndices))
	}

	require.Len(t, seen, 103)
	for idx, count := range seen {
		assert.Equalf(t, 1, count, "index %d appeared in %d test folds", idx, count)
	}
}

func TestKFoldTrainExcludesTest(t *testing.T) {
	kf := NewKFold(4, true, 7)
	folds, err := kf.Split(40)
	require.NoError(t, err)

	for _, fold := range folds {
		inTest := make(map[int]bool, len(fold.TestIndices))
		for _, idx := range fold.TestIndices {
			inTest[idx] = true
		}
		for _, idx := range fold.TrainIndices {
			assert.Falsef(t, inTest[idx], "index %d in both partitions", idx)
		}
	}
}

func TestKFoldDeterministic(t *testing.T) {
	a, err := NewKFold(5, true, 42).Split(50)
	require.NoError(t, err)
	b, err := NewKFold(5, true, 42).Split(50)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestKFoldTooFewSamples(t *testing.T) {
	_, err := NewKFold(5, false, 0).Split(3)
	assert.Error(t, err)
}

func TestTrainTestSplit(t *testing.T) {
	train, test, err := TrainTestSplit(100, 0.2, 42)
	require.NoError(t, err)

	assert.Len(t, test, 20)
	assert.Len(t, train, 80)

	seen := make(map[int]bool)
	for _, idx := range append(append([]int{}, train...), test...) {
		assert.False(t, seen[idx], "duplicate index")
		seen[idx] = true
	}
	assert.Len(t, seen, 100)
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	trainA, testA, err := TrainTestSplit(64, 0.25, 9)
	require.NoError(t, err)
	trainB, testB, err := TrainTestSplit(64, 0.25, 9)
	require.NoError(t, err)

	assert.Equal(t, trainA, trainB)
	assert.Equal(t, testA, testB)
}

func TestTrainTestSplitValidation(t *testing.T) {
	_, _, err := TrainTestSplit(0, 0.2, 42)
	assert.Error(t, err)

	_, _, err = TrainTestSplit(10, 0.0, 42)
	assert.Error(t, err)

	_, _, err = TrainTestSplit(10, 1.0, 42)
	assert.Error(t, err)
}

func TestTake(t *testing.T) {
	xs := []float64{10, 20, 30, 40}
	assert.Equal(t, []float64{40, 20}, Take(xs, []int{3, 1}))
}
