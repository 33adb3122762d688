package returns

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Aggregator orchestrates the full set of derived tables over one dataset
// snapshot. Every table is an independent projection of the input; nothing
// is cached or invalidated between calls and the input is never mutated.
type Aggregator struct {
	window               int
	recognizedBenchmarks []string
	logger               *slog.Logger
}

// Report bundles all derived tables from one aggregation pass
type Report struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Window      int                      `json:"rolling_window"`
	Summaries   map[CountryKey]Summary   `json:"-"`
	Regions     map[string]RegionSummary `json:"regions"`
	Streaks     map[string]StreakRecord  `json:"streaks"`
	Rolling     map[string]RollingSeries `json:"rolling"`
	Correlation CorrelationMatrix        `json:"correlation"`

	// SummaryRows is the stable alphabetical view of Summaries, carried
	// alongside the map because a (country, benchmark) struct key does not
	// survive JSON encoding.
	SummaryRows []Summary `json:"summaries"`
}

// SummaryFor looks up the summary row for a country, if present
func (r *Report) SummaryFor(country string) (Summary, bool) {
	for key, s := range r.Summaries {
		if key.Country == country {
			return s, true
		}
	}
	return Summary{}, false
}

// NewAggregator creates an aggregator with the given rolling window and
// recognized regional benchmark labels
func NewAggregator(window int, recognizedBenchmarks []string, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if window < 1 {
		window = DefaultRollingWindow
	}

	return &Aggregator{
		window:               window,
		recognizedBenchmarks: recognizedBenchmarks,
		logger:               logger,
	}
}

// Aggregate computes every derived table for the dataset snapshot. The only
// error condition is a violated dataset invariant; an empty dataset
// produces an empty report.
func (a *Aggregator) Aggregate(ctx context.Context, ds Dataset) (*Report, error) {
	start := time.Now()

	a.logger.InfoContext(ctx, "starting statistics aggregation",
		"observations", len(ds),
		"rolling_window", a.window,
		"recognized_benchmarks", a.recognizedBenchmarks,
	)

	if err := ValidateDataset(ds); err != nil {
		a.logger.ErrorContext(ctx, "dataset validation failed", "error", err)
		return nil, fmt.Errorf("validate dataset: %w", err)
	}

	report := &Report{
		GeneratedAt: start,
		Window:      a.window,
		Summaries:   ComputeSummary(ds),
		Regions:     ComputeRegionSummaries(ds, a.recognizedBenchmarks),
		Streaks:     ComputeStreaks(ds),
		Rolling:     ComputeRollingReturns(ds, a.window),
		Correlation: ComputeCorrelationMatrix(ds),
	}
	report.SummaryRows = ByCountry(report.Summaries)

	a.logger.InfoContext(ctx, "statistics aggregation completed",
		"duration", time.Since(start),
		"countries", len(report.Summaries),
		"regions", len(report.Regions),
	)

	return report, nil
}

// ValidateDataset checks the two structural invariants of a dataset: at
// most one observation per (country, year) and exactly one benchmark per
// country. Shape validation of individual rows belongs to the input
// boundary, not here.
func ValidateDataset(ds Dataset) error {
	type countryYear struct {
		country string
		year    int
	}

	seen := make(map[countryYear]bool, len(ds))
	benchmarks := make(map[string]string)

	for _, o := range ds {
		if !o.IsValid() {
			return fmt.Errorf("malformed observation: country=%q benchmark=%q year=%d",
				o.Country, o.Benchmark, o.Year)
		}

		key := countryYear{o.Country, o.Year}
		if seen[key] {
			return fmt.Errorf("duplicate observation for %s in %d", o.Country, o.Year)
		}
		seen[key] = true

		if existing, ok := benchmarks[o.Country]; ok && existing != o.Benchmark {
			return fmt.Errorf("country %s mapped to multiple benchmarks: %s and %s",
				o.Country, existing, o.Benchmark)
		}
		benchmarks[o.Country] = o.Benchmark
	}
	return nil
}
