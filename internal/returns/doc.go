// Package returns implements the market statistics aggregation engine over
// annual equity-index return observations.
//
// The input is a flat collection of (country, year) observations, each
// paired with the return of the country's regional benchmark for the same
// year. From one dataset snapshot the package derives:
//
//   - per-country summaries (mean, median, sample standard deviation,
//     coefficient of variation, Sharpe-like ratio, percent positive years)
//   - pooled per-region summaries including the benchmark outperformance
//     rate, weighted by observations rather than averaged per country
//   - longest non-negative and negative year streaks per country
//   - trailing geometric-mean annualized returns on a shared year axis
//   - a pairwise-complete Pearson correlation matrix
//
// All computation is single-pass, synchronous and pure: derived tables are
// fresh projections of the input, the input is never mutated, and there is
// no caching. Numerically undefined results (zero denominators, missing
// years, insufficient overlap) are a normal output state represented by the
// explicit Float missing marker, never by a sentinel number or a silent
// clamp.
package returns
