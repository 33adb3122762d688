package returns

import (
	"sort"
)

// Presentation orderings over the summary table. The aggregation itself
// imposes no output order; these helpers produce the sorted views the
// report tables are built from. Undefined metric values always sort AFTER
// defined ones, with country name as the final tie-break.

// MostStable orders summaries by ascending coefficient of variation
func MostStable(summaries map[CountryKey]Summary) []Summary {
	out := collect(summaries)
	sort.SliceStable(out, func(i, j int) bool {
		if c := compareFloat(out[i].CoefVariation, out[j].CoefVariation); c != 0 {
			return c < 0
		}
		return out[i].Country < out[j].Country
	})
	return out
}

// BestPerforming orders summaries by descending mean return
func BestPerforming(summaries map[CountryKey]Summary) []Summary {
	out := collect(summaries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MeanReturn != out[j].MeanReturn {
			return out[i].MeanReturn > out[j].MeanReturn
		}
		return out[i].Country < out[j].Country
	})
	return out
}

// WorstRiskAdjusted orders summaries by ascending Sharpe-like ratio
func WorstRiskAdjusted(summaries map[CountryKey]Summary) []Summary {
	out := collect(summaries)
	sort.SliceStable(out, func(i, j int) bool {
		if c := compareFloat(out[i].SharpeRatio, out[j].SharpeRatio); c != 0 {
			return c < 0
		}
		return out[i].Country < out[j].Country
	})
	return out
}

// ByCountry orders summaries alphabetically for stable tabular output
func ByCountry(summaries map[CountryKey]Summary) []Summary {
	out := collect(summaries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Country < out[j].Country
	})
	return out
}

// RegionsByOutperformance orders regions by descending pooled
// outperformance rate
func RegionsByOutperformance(regions map[string]RegionSummary) []RegionSummary {
	out := make([]RegionSummary, 0, len(regions))
	for _, r := range regions {
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OutperformanceRate != out[j].OutperformanceRate {
			return out[i].OutperformanceRate > out[j].OutperformanceRate
		}
		return out[i].Benchmark < out[j].Benchmark
	})
	return out
}

func collect(summaries map[CountryKey]Summary) []Summary {
	out := make([]Summary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s)
	}
	return out
}

// compareFloat orders ascending by value with undefined entries last.
// Returns -1, 0, or 1.
func compareFloat(a, b Float) int {
	switch {
	case a.Valid && b.Valid:
		if a.Value < b.Value {
			return -1
		}
		if a.Value > b.Value {
			return 1
		}
		return 0
	case a.Valid:
		return -1
	case b.Valid:
		return 1
	default:
		return 0
	}
}
