package returns

import (
	"encoding/json"
	"sort"
)

// Observation represents one (country, year) annual return data point
type Observation struct {
	Country         string  `json:"country" csv:"Country"`
	Benchmark       string  `json:"benchmark" csv:"Benchmark"`
	Year            int     `json:"year" csv:"Year"`
	CountryReturn   float64 `json:"country_return" csv:"CountryReturn"`     // Annual return in percent
	BenchmarkReturn float64 `json:"benchmark_return" csv:"BenchmarkReturn"` // Paired regional benchmark return
	Difference      float64 `json:"difference" csv:"Difference"`            // CountryReturn - BenchmarkReturn
	Outperformed    bool    `json:"outperformed" csv:"Outperformed"`        // Difference > 0
}

// NewObservation creates an observation with the derived fields recomputed
// from the two return columns rather than trusted from the source.
func NewObservation(country, benchmark string, year int, countryReturn, benchmarkReturn float64) Observation {
	diff := countryReturn - benchmarkReturn
	return Observation{
		Country:         country,
		Benchmark:       benchmark,
		Year:            year,
		CountryReturn:   countryReturn,
		BenchmarkReturn: benchmarkReturn,
		Difference:      diff,
		Outperformed:    diff > 0,
	}
}

// IsValid checks if the observation has the minimal required shape
func (o Observation) IsValid() bool {
	return o.Country != "" && o.Benchmark != "" && o.Year > 0
}

// Dataset is an order-irrelevant collection of observations.
// Every derived table is a pure projection of a Dataset snapshot.
type Dataset []Observation

// Countries returns the distinct country names in the dataset, sorted
func (ds Dataset) Countries() []string {
	seen := make(map[string]bool)
	for _, o := range ds {
		seen[o.Country] = true
	}

	countries := make([]string, 0, len(seen))
	for c := range seen {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	return countries
}

// Benchmarks returns the distinct benchmark labels in the dataset, sorted
func (ds Dataset) Benchmarks() []string {
	seen := make(map[string]bool)
	for _, o := range ds {
		seen[o.Benchmark] = true
	}

	labels := make([]string, 0, len(seen))
	for b := range seen {
		labels = append(labels, b)
	}
	sort.Strings(labels)
	return labels
}

// YearRange returns the min and max year across all observations.
// ok is false for an empty dataset.
func (ds Dataset) YearRange() (minYear, maxYear int, ok bool) {
	if len(ds) == 0 {
		return 0, 0, false
	}

	minYear, maxYear = ds[0].Year, ds[0].Year
	for _, o := range ds[1:] {
		if o.Year < minYear {
			minYear = o.Year
		}
		if o.Year > maxYear {
			maxYear = o.Year
		}
	}
	return minYear, maxYear, true
}

// Exclude returns a new dataset without observations for the given countries.
// The receiver is never mutated.
func (ds Dataset) Exclude(countries ...string) Dataset {
	if len(countries) == 0 {
		return ds
	}

	excluded := make(map[string]bool, len(countries))
	for _, c := range countries {
		excluded[c] = true
	}

	out := make(Dataset, 0, len(ds))
	for _, o := range ds {
		if !excluded[o.Country] {
			out = append(out, o)
		}
	}
	return out
}

// CountryKey identifies a per-country summary group.
// Each country maps to exactly one benchmark in valid input, so grouping by
// the pair is equivalent to grouping by country while preserving the
// benchmark assignment for output.
type CountryKey struct {
	Country   string `json:"country"`
	Benchmark string `json:"benchmark"`
}

// Float is a nullable numeric value. Undefined metrics (zero denominators,
// insufficient overlapping data, missing years) are represented explicitly
// rather than with a sentinel number, so missingness propagates through
// every computation that consumes them.
type Float struct {
	Value float64
	Valid bool
}

// Defined returns a valid Float holding v
func Defined(v float64) Float {
	return Float{Value: v, Valid: true}
}

// Undefined returns the missing marker
func Undefined() Float {
	return Float{}
}

// MarshalJSON encodes undefined values as null
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON decodes null as undefined
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Defined(v)
	return nil
}

// Summary contains the descriptive statistics for one (country, benchmark)
// group. StdDev is undefined for a single-observation group; CoefVariation
// and SharpeRatio inherit that and their own zero-denominator cases.
type Summary struct {
	Country       string  `json:"country"`
	Benchmark     string  `json:"benchmark"`
	MeanReturn    float64 `json:"mean_return"`
	MedianReturn  float64 `json:"median_return"`
	StdDev        Float   `json:"std_dev"`
	CoefVariation Float   `json:"coef_variation"` // StdDev / |MeanReturn|
	SharpeRatio   Float   `json:"sharpe_ratio"`   // MeanReturn / StdDev, no risk-free subtraction
	PosYearsPct   float64 `json:"pos_years_pct"`  // strict > 0: a zero return is non-positive
	NumYears      int     `json:"n_years"`
}

// RegionSummary contains the pooled statistics for one benchmark label.
// OutperformanceRate is pooled across all observations in the region, not a
// mean of per-country rates, so countries with more years weigh more.
type RegionSummary struct {
	Benchmark          string  `json:"benchmark"`
	MeanReturn         float64 `json:"mean_return"`
	MedianReturn       float64 `json:"median_return"`
	StdDev             Float   `json:"std_dev"`
	CoefVariation      Float   `json:"coef_variation"`
	SharpeRatio        Float   `json:"sharpe_ratio"`
	PosYearsPct        float64 `json:"pos_years_pct"`
	OutperformanceRate float64 `json:"outperformance_rate"`
	NumObservations    int     `json:"n_observations"`
	NumCountries       int     `json:"n_countries"`
}

// StreakRecord holds the longest runs of consecutive years per country.
// A zero return counts as NON-negative here (>= 0), unlike PosYearsPct's
// strict > 0. The source analysis treats the two thresholds differently and
// that behavior is preserved, not unified.
type StreakRecord struct {
	Country     string `json:"country"`
	MaxPositive int    `json:"max_positive_streak"`
	MaxNegative int    `json:"max_negative_streak"`
}

// RollingSeries is one country's trailing annualized return series aligned
// to the global contiguous year axis. Values[i] corresponds to Years[i] and
// is undefined when any year inside the trailing window has no observation.
type RollingSeries struct {
	Country string  `json:"country"`
	Years   []int   `json:"years"`
	Values  []Float `json:"values"`
}

// CorrelationMatrix maps country pairs to their pairwise-complete Pearson
// correlation. m[a][b] == m[b][a] holds exactly; cells with fewer than two
// overlapping years are undefined.
type CorrelationMatrix map[string]map[string]Float

// At returns the correlation cell for a pair of countries
func (m CorrelationMatrix) At(a, b string) Float {
	row, ok := m[a]
	if !ok {
		return Undefined()
	}
	return row[b]
}

// Countries returns the countries covered by the matrix, sorted
func (m CorrelationMatrix) Countries() []string {
	countries := make([]string, 0, len(m))
	for c := range m {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	return countries
}

// DefaultRollingWindow is the trailing window, in years, used for
// annualized rolling returns
const DefaultRollingWindow = 3
