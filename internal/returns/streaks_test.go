package returns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeStreaks(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantPos int
		wantNeg int
	}{
		{"all non-negative", []float64{5, 3, 8}, 3, 0},
		{"all negative", []float64{-5, -3, -8}, 0, 3},
		{"alternating", []float64{5, -3, 8, -2}, 1, 1},
		{"long positive run then crash", []float64{5, 3, 8, 2, -10, -5}, 4, 2},
		{"zero counts as non-negative", []float64{-5, 0, 5, -3}, 2, 1},
		{"single year", []float64{7}, 1, 0},
		{"single negative year", []float64{-7}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := datasetFor("X", "Asia8", 2010, tt.values)

			streaks := ComputeStreaks(ds)
			require.Contains(t, streaks, "X")
			assert.Equal(t, tt.wantPos, streaks["X"].MaxPositive)
			assert.Equal(t, tt.wantNeg, streaks["X"].MaxNegative)
		})
	}
}

func TestComputeStreaksSortsUnorderedInput(t *testing.T) {
	// Years deliberately shuffled: sorted by year the sequence is
	// 5, 3, -10, 8 giving a positive streak of 2, not 3.
	ds := Dataset{
		NewObservation("X", "Asia8", 2013, 8, 0),
		NewObservation("X", "Asia8", 2010, 5, 0),
		NewObservation("X", "Asia8", 2012, -10, 0),
		NewObservation("X", "Asia8", 2011, 3, 0),
	}

	streaks := ComputeStreaks(ds)
	assert.Equal(t, 2, streaks["X"].MaxPositive)
	assert.Equal(t, 1, streaks["X"].MaxNegative)
}

func TestComputeStreaksEmptyDataset(t *testing.T) {
	assert.Empty(t, ComputeStreaks(Dataset{}))
}

func TestWalkStreaksEmptySequence(t *testing.T) {
	pos, neg := walkStreaks(nil)
	assert.Empty(t, pos)
	assert.Empty(t, neg)
}

func TestWalkStreaksRecordsEveryRun(t *testing.T) {
	// 5,-3,8,-2,0,1,-4,-4,9 closes out as runs of
	// 1 / -1 / 1 / -1 / 2 (the 0,1 pair) / -2 / 1.
	ds := datasetFor("X", "Asia8", 2000, []float64{5, -3, 8, -2, 0, 1, -4, -4, 9})

	positive, negative := walkStreaks(ds)
	assert.Equal(t, []int{1, 1, 2, 1}, positive)
	assert.Equal(t, []int{1, 1, 2}, negative)
}

func TestStreakLengthsSumToObservationCount(t *testing.T) {
	// The lengths of every recorded run, positive and negative together,
	// must sum to n for any sequence.
	sequences := [][]float64{
		{5, -3, 8, -2, 0, 1, -4, -4, 9},
		{1, 1, 1},
		{-1},
		{0, 0, -1, 0},
	}

	for _, values := range sequences {
		ds := datasetFor("X", "Asia8", 2000, values)

		positive, negative := walkStreaks(ds)

		total := 0
		for _, l := range positive {
			total += l
		}
		for _, l := range negative {
			total += l
		}
		assert.Equal(t, len(values), total, "sequence %v", values)

		streaks := ComputeStreaks(ds)
		require.Contains(t, streaks, "X")
		assert.Equal(t, maxLength(positive), streaks["X"].MaxPositive)
		assert.Equal(t, maxLength(negative), streaks["X"].MaxNegative)
	}
}
