package returns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedCountries(summaries []Summary) []string {
	names := make([]string, len(summaries))
	for i, s := range summaries {
		names[i] = s.Country
	}
	return names
}

func TestRankingsUndefinedSortsLast(t *testing.T) {
	summaries := map[CountryKey]Summary{
		{Country: "A", Benchmark: "Asia8"}: {Country: "A", CoefVariation: Defined(0.5), SharpeRatio: Defined(1.0)},
		{Country: "B", Benchmark: "Asia8"}: {Country: "B", CoefVariation: Undefined(), SharpeRatio: Undefined()},
		{Country: "C", Benchmark: "Asia8"}: {Country: "C", CoefVariation: Defined(0.1), SharpeRatio: Defined(2.0)},
	}

	assert.Equal(t, []string{"C", "A", "B"}, rankedCountries(MostStable(summaries)))
	assert.Equal(t, []string{"A", "C", "B"}, rankedCountries(WorstRiskAdjusted(summaries)))
}

func TestBestPerformingDescendingWithAlphabeticTieBreak(t *testing.T) {
	summaries := map[CountryKey]Summary{
		{Country: "B", Benchmark: "Asia8"}: {Country: "B", MeanReturn: 10},
		{Country: "A", Benchmark: "Asia8"}: {Country: "A", MeanReturn: 10},
		{Country: "C", Benchmark: "Asia8"}: {Country: "C", MeanReturn: 12},
	}

	assert.Equal(t, []string{"C", "A", "B"}, rankedCountries(BestPerforming(summaries)))
}

func TestByCountryAlphabetical(t *testing.T) {
	summaries := map[CountryKey]Summary{
		{Country: "India", Benchmark: "Asia8"}:   {Country: "India"},
		{Country: "Germany", Benchmark: "Euro7"}: {Country: "Germany"},
		{Country: "Japan", Benchmark: "Asia8"}:   {Country: "Japan"},
	}

	assert.Equal(t, []string{"Germany", "India", "Japan"}, rankedCountries(ByCountry(summaries)))
}

func TestRegionsByOutperformance(t *testing.T) {
	regions := map[string]RegionSummary{
		"Asia8": {Benchmark: "Asia8", OutperformanceRate: 45},
		"Euro7": {Benchmark: "Euro7", OutperformanceRate: 60},
	}

	ranked := RegionsByOutperformance(regions)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Euro7", ranked[0].Benchmark)
	assert.Equal(t, "Asia8", ranked[1].Benchmark)
}

func TestCompareFloat(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Float
		expected int
	}{
		{"both defined ascending", Defined(1), Defined(2), -1},
		{"both defined descending", Defined(2), Defined(1), 1},
		{"both defined equal", Defined(1), Defined(1), 0},
		{"undefined after defined", Undefined(), Defined(1), 1},
		{"defined before undefined", Defined(1), Undefined(), -1},
		{"both undefined", Undefined(), Undefined(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, compareFloat(tt.a, tt.b))
		})
	}
}
