package parking

import "math"

// CalculateFee prices a duration at an hourly rate. Fractional hours are
// charged proportionally and the result rounded to the nearest whole unit,
// e.g. "1 hour 30 minutes" at 150/hr is 225.
func CalculateFee(durationText string, ratePerHour int) int {
	minutes := ParseDuration(durationText)
	hours := float64(minutes) / 60
	return int(math.Round(hours * float64(ratePerHour)))
}
