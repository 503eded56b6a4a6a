package jobs

import (
	"math"
	"strings"
)

// Annualization: 40 hours/week x 52 weeks.
const hoursPerYear = 2080

// Amounts below this are assumed to be hourly rates when the posting's
// interval says "hour"; anything at or above it is treated as already
// annualized even then, guarding against mislabeled annual figures.
const hourlyCutoff = 500

// normalizeSalary coerces the raw compensation bounds to annualized
// integers. Unparseable values (NaN/Inf from the scraper) become nil; no
// error is ever returned.
func normalizeSalary(minAmount, maxAmount *float64, interval string) (*int, *int, string) {
	salaryMin := toInt(minAmount)
	salaryMax := toInt(maxAmount)
	salaryType := "annual"

	if strings.Contains(strings.ToLower(interval), "hour") {
		salaryType = "hourly"
		salaryMin = annualize(salaryMin)
		salaryMax = annualize(salaryMax)
	}

	return salaryMin, salaryMax, salaryType
}

func annualize(v *int) *int {
	if v != nil && *v != 0 && *v < hourlyCutoff {
		annual := *v * hoursPerYear
		return &annual
	}
	return v
}

func toInt(v *float64) *int {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	n := int(*v)
	return &n
}
