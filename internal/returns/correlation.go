package returns

import (
	"math"
)

// ComputeCorrelationMatrix pivots the dataset onto a shared year axis and
// computes the Pearson correlation of annual returns for every country
// pair using pairwise-complete observations: a pair's correlation uses only
// the years where both countries have a value.
//
// Each unordered pair is computed once and mirrored into both cells, so
// m[a][b] == m[b][a] holds exactly. The diagonal is 1.0 for any country
// with at least two observations. Pairs with fewer than two overlapping
// years are undefined.
func ComputeCorrelationMatrix(ds Dataset) CorrelationMatrix {
	byCountry := make(map[string]map[int]float64)
	for _, o := range ds {
		m := byCountry[o.Country]
		if m == nil {
			m = make(map[int]float64)
			byCountry[o.Country] = m
		}
		m[o.Year] = o.CountryReturn
	}

	countries := ds.Countries()

	matrix := make(CorrelationMatrix, len(countries))
	for _, c := range countries {
		matrix[c] = make(map[string]Float, len(countries))
	}

	for i, a := range countries {
		if len(byCountry[a]) >= 2 {
			matrix[a][a] = Defined(1.0)
		} else {
			matrix[a][a] = Undefined()
		}

		for _, b := range countries[i+1:] {
			cell := pairwiseCorrelation(byCountry[a], byCountry[b])
			matrix[a][b] = cell
			matrix[b][a] = cell
		}
	}
	return matrix
}

// pairwiseCorrelation computes Pearson correlation over the years present
// in both series
func pairwiseCorrelation(a, b map[int]float64) Float {
	var xs, ys []float64
	for year, x := range a {
		if y, ok := b[year]; ok {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}

	if len(xs) < 2 {
		return Undefined()
	}

	n := float64(len(xs))
	sumX, sumY, sumXY, sumX2, sumY2 := 0.0, 0.0, 0.0, 0.0, 0.0
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
		sumY2 += ys[i] * ys[i]
	}

	numerator := n*sumXY - sumX*sumY
	denominator := math.Sqrt((n*sumX2 - sumX*sumX) * (n*sumY2 - sumY*sumY))

	if denominator == 0 {
		return Undefined()
	}

	r := numerator / denominator
	if math.IsNaN(r) {
		return Undefined()
	}
	return Defined(r)
}
