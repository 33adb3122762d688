package returns

import (
	"math"
)

// ComputeRollingReturns produces, per country, the trailing window-year
// geometric-mean annualized return.
//
// Every country's series is first reindexed onto the global contiguous year
// range (min to max year across ALL countries) with explicit missing
// markers, so rows align across countries on a common year axis. The first
// window-1 positions use a shrinking partial window down to width 1 rather
// than being reported missing; a gap year anywhere inside the window makes
// that position undefined instead of being computed over the gap.
func ComputeRollingReturns(ds Dataset, window int) map[string]RollingSeries {
	if window < 1 {
		window = DefaultRollingWindow
	}

	minYear, maxYear, ok := ds.YearRange()
	if !ok {
		return map[string]RollingSeries{}
	}

	years := make([]int, 0, maxYear-minYear+1)
	for y := minYear; y <= maxYear; y++ {
		years = append(years, y)
	}

	byCountry := make(map[string]map[int]float64)
	for _, o := range ds {
		m := byCountry[o.Country]
		if m == nil {
			m = make(map[int]float64)
			byCountry[o.Country] = m
		}
		m[o.Year] = o.CountryReturn
	}

	result := make(map[string]RollingSeries, len(byCountry))
	for country, observed := range byCountry {
		// Reindex onto the shared axis with explicit missing markers
		series := make([]Float, len(years))
		for i, y := range years {
			if v, ok := observed[y]; ok {
				series[i] = Defined(v)
			}
		}

		result[country] = RollingSeries{
			Country: country,
			Years:   years,
			Values:  rollingAnnualized(series, window),
		}
	}
	return result
}

// rollingAnnualized computes the trailing geometric-mean annualized return
// for each position of a reindexed series. Missing inputs inside the
// window propagate to a missing output.
func rollingAnnualized(series []Float, window int) []Float {
	out := make([]Float, len(series))

	for i := range series {
		w := window
		if i+1 < w {
			w = i + 1 // partial window from the start
		}

		product := 1.0
		defined := true
		for j := i - w + 1; j <= i; j++ {
			if !series[j].Valid {
				defined = false
				break
			}
			product *= 1 + series[j].Value/100
		}
		if !defined {
			continue
		}

		annualized := (math.Pow(product, 1/float64(w)) - 1) * 100
		if math.IsNaN(annualized) || math.IsInf(annualized, 0) {
			continue
		}
		out[i] = Defined(annualized)
	}
	return out
}
