package agent

import (
	"context"
	"fmt"
	"math"
	"time"

	"dogfood/internal/feeding"
)

// MockClient answers locally without calling the agent; used for offline
// development.
type MockClient struct{}

func (MockClient) GetSuggestion(_ context.Context, events []feeding.Event, now time.Time) (string, error) {
	summary := feeding.Summarize(events, now)
	if len(summary.DailyTotals) == 0 {
		return "Mock suggestion: no feedings logged in the last 20 PT days, start with a small portion.", nil
	}
	portion := int(math.Round(summary.MedianDailyFoodG / 2))
	return fmt.Sprintf(
		"Mock suggestion: about %dg next, half of the %vg daily median over %d logged days.",
		portion,
		summary.MedianDailyFoodG,
		len(summary.DailyTotals),
	), nil
}
