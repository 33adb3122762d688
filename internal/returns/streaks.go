package returns

import (
	"sort"
)

// ComputeStreaks finds, per country, the longest run of consecutive years
// with non-negative return and the longest run of consecutive negative
// years. The walk is order-dependent, so each country's observations are
// explicitly sorted by year first; ambient map iteration order is never
// relied on.
func ComputeStreaks(ds Dataset) map[string]StreakRecord {
	byCountry := make(map[string][]Observation)
	for _, o := range ds {
		byCountry[o.Country] = append(byCountry[o.Country], o)
	}

	records := make(map[string]StreakRecord, len(byCountry))
	for country, obs := range byCountry {
		sort.Slice(obs, func(i, j int) bool {
			return obs[i].Year < obs[j].Year
		})

		positive, negative := walkStreaks(obs)
		records[country] = StreakRecord{
			Country:     country,
			MaxPositive: maxLength(positive),
			MaxNegative: maxLength(negative),
		}
	}
	return records
}

// walkStreaks scans a year-sorted return sequence and records the length
// of every closed-out run, split into non-negative and negative streak
// lists. A zero return counts as non-negative (>= 0), which intentionally
// differs from the strict > 0 used by PosYearsPct. The lengths across both
// lists always sum to len(obs).
func walkStreaks(obs []Observation) (positive, negative []int) {
	if len(obs) == 0 {
		return nil, nil
	}

	record := func(nonNegative bool, length int) {
		if nonNegative {
			positive = append(positive, length)
		} else {
			negative = append(negative, length)
		}
	}

	current := obs[0].CountryReturn >= 0
	length := 1

	for _, o := range obs[1:] {
		nonNegative := o.CountryReturn >= 0
		if nonNegative == current {
			length++
			continue
		}
		record(current, length)
		current = nonNegative
		length = 1
	}
	record(current, length)

	return positive, negative
}

func maxLength(lengths []int) int {
	max := 0
	for _, l := range lengths {
		if l > max {
			max = l
		}
	}
	return max
}
