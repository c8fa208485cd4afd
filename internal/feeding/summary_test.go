package feeding

import (
	"reflect"
	"testing"
	"time"
)

func utc(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func feedingAt(at time.Time, foodQty int) Event {
	return Event{FedAt: at, FoodQty: foodQty}
}

func TestSummarizeRespectsReferenceDaysAndWindow(t *testing.T) {
	now := utc(2025, 10, 25, 8, 0)
	events := []Event{
		// Window starts at 2025-10-06T00:00:00-07:00, i.e. 07:00 UTC.
		feedingAt(utc(2025, 10, 6, 6, 59), 999),
		feedingAt(utc(2025, 10, 6, 7, 0), 10),
		feedingAt(utc(2025, 10, 24, 6, 30), 20),
		feedingAt(utc(2025, 10, 25, 7, 30), 30),
	}

	got := Summarize(events, now)
	want := Summary{
		MedianDailyFoodG: 20,
		TotalFoodG:       60,
		DailyTotals: []DailyTotal{
			{Day: "2025-10-06", FoodTotalG: 10},
			{Day: "2025-10-23", FoodTotalG: 20},
			{Day: "2025-10-25", FoodTotalG: 30},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected summary:\n got=%+v\nwant=%+v", got, want)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	got := Summarize(nil, utc(2025, 10, 25, 8, 0))
	if got.MedianDailyFoodG != 0 || got.TotalFoodG != 0 {
		t.Fatalf("expected zero summary, got %+v", got)
	}
	if got.DailyTotals == nil || len(got.DailyTotals) != 0 {
		t.Fatalf("expected empty non-nil daily totals, got %#v", got.DailyTotals)
	}
}

func TestSummarizeOnlyStaleEvents(t *testing.T) {
	now := utc(2025, 10, 25, 8, 0)
	got := Summarize([]Event{feedingAt(utc(2025, 9, 1, 12, 0), 50)}, now)
	if got.TotalFoodG != 0 || len(got.DailyTotals) != 0 {
		t.Fatalf("expected stale events to be ignored, got %+v", got)
	}
}

func TestSummarizeSumsSameDayAndSortsUnorderedInput(t *testing.T) {
	now := utc(2025, 10, 25, 20, 0)
	events := []Event{
		feedingAt(utc(2025, 10, 25, 18, 0), 40),
		feedingAt(utc(2025, 10, 20, 18, 0), 15),
		feedingAt(utc(2025, 10, 25, 15, 0), 35),
		feedingAt(utc(2025, 10, 20, 16, 0), 10),
	}

	got := Summarize(events, now)
	want := []DailyTotal{
		{Day: "2025-10-20", FoodTotalG: 25},
		{Day: "2025-10-25", FoodTotalG: 75},
	}
	if !reflect.DeepEqual(got.DailyTotals, want) {
		t.Fatalf("unexpected daily totals: %+v", got.DailyTotals)
	}
	if got.TotalFoodG != 100 {
		t.Fatalf("expected total 100, got %d", got.TotalFoodG)
	}
	if got.MedianDailyFoodG != 50 {
		t.Fatalf("expected median 50, got %v", got.MedianDailyFoodG)
	}
}

func TestSummarizeEvenDayCountAveragesMiddleValues(t *testing.T) {
	now := utc(2025, 10, 25, 20, 0)
	events := []Event{
		feedingAt(utc(2025, 10, 22, 18, 0), 10),
		feedingAt(utc(2025, 10, 23, 18, 0), 25),
	}

	got := Summarize(events, now)
	if got.MedianDailyFoodG != 17.5 {
		t.Fatalf("expected median 17.5, got %v", got.MedianDailyFoodG)
	}
}

func TestSummarizeBucketsAcrossDSTFallBack(t *testing.T) {
	// 2025-11-02 ends PDT; local midnight of 2025-11-03 is 08:00 UTC.
	now := utc(2025, 11, 3, 20, 0)
	events := []Event{
		feedingAt(utc(2025, 11, 3, 7, 30), 12),
		feedingAt(utc(2025, 11, 3, 8, 0), 18),
	}

	got := Summarize(events, now)
	want := []DailyTotal{
		{Day: "2025-11-02", FoodTotalG: 12},
		{Day: "2025-11-03", FoodTotalG: 18},
	}
	if !reflect.DeepEqual(got.DailyTotals, want) {
		t.Fatalf("expected events split across PT days, got %+v", got.DailyTotals)
	}
}

func TestWindowStartUsesLocalMidnightAcrossDST(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "daylight time",
			now:  utc(2025, 10, 25, 8, 0),
			want: utc(2025, 10, 6, 7, 0),
		},
		{
			name: "standard time now, daylight time start",
			now:  utc(2025, 11, 10, 20, 0),
			want: utc(2025, 10, 22, 7, 0),
		},
		{
			name: "late evening local is still the previous day",
			now:  utc(2025, 12, 1, 6, 30),
			want: utc(2025, 11, 11, 8, 0),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := WindowStart(tc.now)
			if !got.Equal(tc.want) {
				t.Fatalf("expected %s, got %s", tc.want.Format(time.RFC3339), got.UTC().Format(time.RFC3339))
			}
		})
	}
}

func TestSummaryTotalsAreConsistent(t *testing.T) {
	now := utc(2025, 10, 25, 20, 0)
	events := make([]Event, 0, 60)
	for i := 0; i < 60; i++ {
		at := now.Add(-time.Duration(i*11) * time.Hour)
		events = append(events, feedingAt(at, (i*37)%90))
	}

	got := Summarize(events, now)
	sum := 0
	values := make([]int, 0, len(got.DailyTotals))
	for idx, day := range got.DailyTotals {
		if idx > 0 && got.DailyTotals[idx-1].Day >= day.Day {
			t.Fatalf("daily totals not strictly ascending at %d: %+v", idx, got.DailyTotals)
		}
		sum += day.FoodTotalG
		values = append(values, day.FoodTotalG)
	}
	if len(got.DailyTotals) > WindowDays {
		t.Fatalf("expected at most %d days, got %d", WindowDays, len(got.DailyTotals))
	}
	if sum != got.TotalFoodG {
		t.Fatalf("expected total %d to match daily sum %d", got.TotalFoodG, sum)
	}
	if m := median(values); m != got.MedianDailyFoodG {
		t.Fatalf("expected median %v, got %v", m, got.MedianDailyFoodG)
	}
}
