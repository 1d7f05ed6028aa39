package catalog

import "fmt"

const daysPerWeek = 7

// RentalCost prices a rental of the given number of whole days: full weeks are
// billed at the weekly rate and the remaining days at the daily rate. A duration
// below one day costs nothing.
func RentalCost(dailyRate, weeklyRate float64, days int) float64 {
	if days < 1 {
		return 0
	}
	weeks := days / daysPerWeek
	rest := days % daysPerWeek
	return float64(weeks)*weeklyRate + float64(rest)*dailyRate
}

// Duration is a selectable rental period.
type Duration struct {
	Days  int    `json:"days"`
	Label string `json:"label"`
}

var durationChoices = []int{1, 2, 3, 4, 5, 6, 7, 14, 21, 30}

// DurationOptions lists the rental periods offered in the booking dialog.
func DurationOptions() []Duration {
	out := make([]Duration, 0, len(durationChoices))
	for _, d := range durationChoices {
		out = append(out, Duration{Days: d, Label: durationLabel(d)})
	}
	return out
}

func durationLabel(days int) string {
	label := plural(days, "day")
	if weeks := days / daysPerWeek; weeks > 0 {
		label += fmt.Sprintf(" (%s)", plural(weeks, "week"))
	}
	return label
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
