package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversAllIndices(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{name: "zero items", items: 0},
		{name: "single item", items: 1},
		{name: "fewer items than cores", items: 3},
		{name: "many items", items: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited int64
			Parallelize(tt.items, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt64(&visited, 1)
				}
			})
			if visited != int64(tt.items) {
				t.Errorf("visited %d indices, want %d", visited, tt.items)
			}
		})
	}
}

func TestParallelizeDisjointRanges(t *testing.T) {
	const n = 5000
	seen := make([]int32, n)

	Parallelize(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})

	for i, count := range seen {
		if count != 1 {
			t.Fatalf("index %d visited %d times", i, count)
		}
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	// Below the threshold the callback must run exactly once over the full
	// range.
	calls := 0
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("sequential path got range [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("sequential path ran %d times, want 1", calls)
	}
}
