package returns

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datasetFor(country, benchmark string, startYear int, values []float64) Dataset {
	ds := make(Dataset, 0, len(values))
	for i, v := range values {
		ds = append(ds, NewObservation(country, benchmark, startYear+i, v, 0))
	}
	return ds
}

func TestComputeSummaryBasicStatistics(t *testing.T) {
	// Returns 8, 12, 8, 12, 10: mean 10, median 10, sample sd 2
	ds := datasetFor("Betaria", "Asia8", 2018, []float64{8, 12, 8, 12, 10})

	summaries := ComputeSummary(ds)
	require.Len(t, summaries, 1)

	s := summaries[CountryKey{Country: "Betaria", Benchmark: "Asia8"}]
	assert.Equal(t, "Betaria", s.Country)
	assert.Equal(t, "Asia8", s.Benchmark)
	assert.InDelta(t, 10.0, s.MeanReturn, 1e-12)
	assert.InDelta(t, 10.0, s.MedianReturn, 1e-12)
	require.True(t, s.StdDev.Valid)
	assert.InDelta(t, 2.0, s.StdDev.Value, 1e-12)
	require.True(t, s.CoefVariation.Valid)
	assert.InDelta(t, 0.2, s.CoefVariation.Value, 1e-12)
	require.True(t, s.SharpeRatio.Valid)
	assert.InDelta(t, 5.0, s.SharpeRatio.Value, 1e-12)
	assert.Equal(t, 5, s.NumYears)
}

func TestComputeSummaryMedianEvenCount(t *testing.T) {
	ds := datasetFor("Gammastan", "Asia8", 2019, []float64{1, 9, 3, 7})

	s := ComputeSummary(ds)[CountryKey{Country: "Gammastan", Benchmark: "Asia8"}]
	assert.InDelta(t, 5.0, s.MedianReturn, 1e-12)
}

func TestComputeSummaryUndefinedMetrics(t *testing.T) {
	t.Run("zero mean leaves coefficient of variation undefined", func(t *testing.T) {
		ds := datasetFor("Deltonia", "Euro7", 2018, []float64{-5, 5, -5, 5, 0})

		s := ComputeSummary(ds)[CountryKey{Country: "Deltonia", Benchmark: "Euro7"}]
		assert.InDelta(t, 0.0, s.MeanReturn, 1e-12)
		assert.False(t, s.CoefVariation.Valid, "division by zero must not be clamped")
		// Sharpe is defined here: 0 / 5 = 0
		require.True(t, s.SharpeRatio.Valid)
		assert.InDelta(t, 0.0, s.SharpeRatio.Value, 1e-12)
	})

	t.Run("constant returns leave sharpe undefined", func(t *testing.T) {
		ds := datasetFor("Alphaland", "Asia8", 2018, []float64{10, 10, 10})

		s := ComputeSummary(ds)[CountryKey{Country: "Alphaland", Benchmark: "Asia8"}]
		require.True(t, s.StdDev.Valid)
		assert.InDelta(t, 0.0, s.StdDev.Value, 1e-12)
		assert.False(t, s.SharpeRatio.Valid)
		// CV is 0/|10| = 0, still defined
		require.True(t, s.CoefVariation.Valid)
		assert.InDelta(t, 0.0, s.CoefVariation.Value, 1e-12)
	})

	t.Run("single observation leaves std dev and dependents undefined", func(t *testing.T) {
		ds := datasetFor("Epsilonia", "Euro7", 2020, []float64{7})

		s := ComputeSummary(ds)[CountryKey{Country: "Epsilonia", Benchmark: "Euro7"}]
		assert.Equal(t, 1, s.NumYears)
		assert.False(t, s.StdDev.Valid)
		assert.False(t, s.CoefVariation.Valid)
		assert.False(t, s.SharpeRatio.Valid)
	})
}

func TestPosYearsPctStrictInequality(t *testing.T) {
	// A zero return is non-positive for this metric
	ds := datasetFor("Deltonia", "Euro7", 2018, []float64{-5, 5, -5, 5, 0})

	s := ComputeSummary(ds)[CountryKey{Country: "Deltonia", Benchmark: "Euro7"}]
	assert.InDelta(t, 40.0, s.PosYearsPct, 1e-12)
}

func TestPosYearsPctBounds(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"all positive", []float64{1, 2, 3}, 100},
		{"all negative", []float64{-1, -2, -3}, 0},
		{"all zero", []float64{0, 0}, 0},
		{"mixed", []float64{4, -2, 0, 6}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := datasetFor("X", "Asia8", 2000, tt.values)
			s := ComputeSummary(ds)[CountryKey{Country: "X", Benchmark: "Asia8"}]

			assert.InDelta(t, tt.expected, s.PosYearsPct, 1e-12)
			assert.GreaterOrEqual(t, s.PosYearsPct, 0.0)
			assert.LessOrEqual(t, s.PosYearsPct, 100.0)
		})
	}
}

func TestComputeSummaryEmptyDataset(t *testing.T) {
	summaries := ComputeSummary(Dataset{})
	assert.Empty(t, summaries)
}

func TestComputeSummaryHandComputedStdDev(t *testing.T) {
	// Deviations from mean 12: 8, -22, 13, -17, 18; sum of squares 1330
	ds := datasetFor("Gammastan", "Asia8", 2018, []float64{20, -10, 25, -5, 30})

	s := ComputeSummary(ds)[CountryKey{Country: "Gammastan", Benchmark: "Asia8"}]
	require.True(t, s.StdDev.Valid)
	assert.InDelta(t, math.Sqrt(1330.0/4.0), s.StdDev.Value, 1e-12)
}

func TestComputeRegionSummariesPooledOutperformance(t *testing.T) {
	// Country A: 10 years, 8 outperform (80%); Country B: 2 years, 0
	// outperform (0%). Pooled rate is 8/12, never the 40% per-country mean.
	ds := Dataset{}
	for i := 0; i < 10; i++ {
		ret := 10.0
		bench := 5.0
		if i >= 8 {
			bench = 15.0
		}
		ds = append(ds, NewObservation("A", "Asia8", 2010+i, ret, bench))
	}
	ds = append(ds,
		NewObservation("B", "Asia8", 2010, 2.0, 5.0),
		NewObservation("B", "Asia8", 2011, 3.0, 5.0),
	)

	regions := ComputeRegionSummaries(ds, []string{"Asia8"})
	require.Contains(t, regions, "Asia8")

	r := regions["Asia8"]
	assert.Equal(t, 12, r.NumObservations)
	assert.Equal(t, 2, r.NumCountries)
	assert.InDelta(t, 100.0*8.0/12.0, r.OutperformanceRate, 1e-9)
}

func TestComputeRegionSummariesUnrecognizedLabelsExcluded(t *testing.T) {
	ds := Dataset{
		NewObservation("India", "Asia8", 2015, 10, 5),
		NewObservation("Ruritania", "Other", 2015, 10, 5),
	}

	regions := ComputeRegionSummaries(ds, []string{"Asia8", "Euro7"})
	assert.Contains(t, regions, "Asia8")
	assert.NotContains(t, regions, "Other")
}
