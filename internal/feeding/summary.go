package feeding

import (
	"sort"
	"time"
	_ "time/tzdata"
)

const (
	ReferenceZoneName = "America/Los_Angeles"
	WindowDays        = 20

	dayLayout = "2006-01-02"
)

var referenceZone = mustLoadZone(ReferenceZoneName)

// Event is one feeding log row as supplied by the persistence layer.
type Event struct {
	ID           string
	FedAt        time.Time
	FoodQty      int
	WaterQty     int
	TeethBrushed bool
}

// DailyTotal is the food total for one reference-zone calendar day.
type DailyTotal struct {
	Day        string `json:"pt_day"`
	FoodTotalG int    `json:"food_total_g"`
}

// Summary aggregates food totals over the trailing window.
type Summary struct {
	MedianDailyFoodG float64      `json:"median_daily_food_g"`
	TotalFoodG       int          `json:"total_food_last_20_days_g"`
	DailyTotals      []DailyTotal `json:"daily_totals_last_20_days"`
}

// ReferenceZone returns the zone used for day bucketing and prompt timestamps.
func ReferenceZone() *time.Location {
	return referenceZone
}

// WindowStart returns local midnight in the reference zone, WindowDays-1 days
// before the reference-zone date of now.
func WindowStart(now time.Time) time.Time {
	local := now.In(referenceZone)
	first := local.AddDate(0, 0, -(WindowDays - 1))
	return time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, referenceZone)
}

// Summarize buckets events at or after WindowStart(now) by reference-zone day.
func Summarize(events []Event, now time.Time) Summary {
	start := WindowStart(now)

	totals := map[string]int{}
	for _, event := range events {
		if event.FedAt.Before(start) {
			continue
		}
		day := event.FedAt.In(referenceZone).Format(dayLayout)
		totals[day] += event.FoodQty
	}
	if len(totals) == 0 {
		return Summary{DailyTotals: []DailyTotal{}}
	}

	days := make([]DailyTotal, 0, len(totals))
	for day, total := range totals {
		days = append(days, DailyTotal{Day: day, FoodTotalG: total})
	}
	// YYYY-MM-DD sorts lexically in date order.
	sort.Slice(days, func(i, j int) bool {
		return days[i].Day < days[j].Day
	})

	values := make([]int, len(days))
	sum := 0
	for idx, day := range days {
		values[idx] = day.FoodTotalG
		sum += day.FoodTotalG
	}

	return Summary{
		MedianDailyFoodG: median(values),
		TotalFoodG:       sum,
		DailyTotals:      days,
	}
}

func median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

func mustLoadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("feeding: load reference zone " + name + ": " + err.Error())
	}
	return loc
}
