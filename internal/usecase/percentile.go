package usecase

import "math"

// Percentile ranks value against population as the share of strictly lower
// entries, rounded to an integer in [0, 100]. Ties do not count toward the
// rank, so equal values share the same percentile. Returns nil when the value
// is missing or the population is empty.
func Percentile(value *float64, population []float64) *int {
	if value == nil || len(population) == 0 {
		return nil
	}

	below := 0
	for _, item := range population {
		if item < *value {
			below++
		}
	}

	pct := int(math.Round(100 * float64(below) / float64(len(population))))
	return &pct
}

// InvertedPercentile ranks lower-is-better metrics such as goals-against
// average: the best (lowest) value maps to 100.
func InvertedPercentile(value *float64, population []float64) *int {
	pct := Percentile(value, population)
	if pct == nil {
		return nil
	}

	inverted := 100 - *pct
	return &inverted
}
