package returns

import (
	"math"
	"sort"
)

// ComputeSummary produces per-country descriptive statistics grouped by
// (country, benchmark). The result carries no ordering; callers sort for
// presentation. An empty dataset yields an empty map, not an error.
func ComputeSummary(ds Dataset) map[CountryKey]Summary {
	groups := make(map[CountryKey][]float64)
	for _, o := range ds {
		key := CountryKey{Country: o.Country, Benchmark: o.Benchmark}
		groups[key] = append(groups[key], o.CountryReturn)
	}

	summaries := make(map[CountryKey]Summary, len(groups))
	for key, values := range groups {
		summaries[key] = summarize(key.Country, key.Benchmark, values)
	}
	return summaries
}

// ComputeRegionSummaries produces pooled statistics per benchmark label,
// restricted to the recognized labels. The outperformance rate is pooled
// over every observation in the region rather than averaged per country.
func ComputeRegionSummaries(ds Dataset, recognized []string) map[string]RegionSummary {
	allowed := make(map[string]bool, len(recognized))
	for _, label := range recognized {
		allowed[label] = true
	}

	type regionGroup struct {
		values       []float64
		outperformed int
		countries    map[string]bool
	}

	groups := make(map[string]*regionGroup)
	for _, o := range ds {
		if !allowed[o.Benchmark] {
			continue
		}
		g := groups[o.Benchmark]
		if g == nil {
			g = &regionGroup{countries: make(map[string]bool)}
			groups[o.Benchmark] = g
		}
		g.values = append(g.values, o.CountryReturn)
		g.countries[o.Country] = true
		if o.Outperformed {
			g.outperformed++
		}
	}

	regions := make(map[string]RegionSummary, len(groups))
	for label, g := range groups {
		s := summarize("", label, g.values)
		regions[label] = RegionSummary{
			Benchmark:          label,
			MeanReturn:         s.MeanReturn,
			MedianReturn:       s.MedianReturn,
			StdDev:             s.StdDev,
			CoefVariation:      s.CoefVariation,
			SharpeRatio:        s.SharpeRatio,
			PosYearsPct:        s.PosYearsPct,
			OutperformanceRate: float64(g.outperformed) / float64(len(g.values)) * 100,
			NumObservations:    len(g.values),
			NumCountries:       len(g.countries),
		}
	}
	return regions
}

// summarize reduces one group's return values to a Summary. values is
// guaranteed non-empty by the grouping loops.
func summarize(country, benchmark string, values []float64) Summary {
	n := len(values)
	mean := meanOf(values)
	sd := sampleStdDev(values, mean)

	s := Summary{
		Country:      country,
		Benchmark:    benchmark,
		MeanReturn:   mean,
		MedianReturn: medianOf(values),
		StdDev:       sd,
		PosYearsPct:  posYearsPct(values),
		NumYears:     n,
	}

	// Coefficient of variation: undefined when the mean is zero or the
	// standard deviation itself is undefined. Never clamped.
	if sd.Valid && mean != 0 {
		s.CoefVariation = Defined(sd.Value / math.Abs(mean))
	}

	// Sharpe-like ratio: undefined when the standard deviation is zero
	// (identical return every year) or undefined.
	if sd.Valid && sd.Value != 0 {
		s.SharpeRatio = Defined(mean / sd.Value)
	}

	return s
}

func meanOf(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func medianOf(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// sampleStdDev computes the n-1 denominator standard deviation.
// Undefined for a single observation.
func sampleStdDev(values []float64, mean float64) Float {
	n := len(values)
	if n < 2 {
		return Undefined()
	}

	sumSquared := 0.0
	for _, v := range values {
		sumSquared += (v - mean) * (v - mean)
	}
	return Defined(math.Sqrt(sumSquared / float64(n-1)))
}

// posYearsPct counts strictly positive returns. A zero return is
// non-positive for this metric.
func posYearsPct(values []float64) float64 {
	positive := 0
	for _, v := range values {
		if v > 0 {
			positive++
		}
	}
	return float64(positive) / float64(len(values)) * 100
}
