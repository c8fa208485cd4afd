package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dogfood/internal/feeding"
)

const (
	maxFoodQty  = 100
	maxWaterQty = 100

	suggestionFallback = "Agent suggestion is unavailable right now."
)

type createFoodLogRequest struct {
	FoodQty    *int  `json:"food_qty"`
	WaterQty   *int  `json:"water_qty"`
	TeethBrush *bool `json:"teeth_brush"`
}

type foodLogItem struct {
	ID         string    `json:"id"`
	FedAt      time.Time `json:"feeddatetime"`
	FedAtPT    string    `json:"feeddatetime_pt"`
	FoodQty    int       `json:"food_qty"`
	WaterQty   int       `json:"water_qty"`
	TeethBrush bool      `json:"teeth_brush"`
}

type suggestionResponse struct {
	Suggestion      *string `json:"suggestion"`
	SuggestionError string  `json:"suggestion_error,omitempty"`
	ErrorKind       string  `json:"error_kind,omitempty"`
	EventCount      int     `json:"event_count"`
	GeneratedAt     string  `json:"generated_at"`
}

func toFoodLogItem(event feeding.Event) foodLogItem {
	return foodLogItem{
		ID:         event.ID,
		FedAt:      event.FedAt.UTC(),
		FedAtPT:    feeding.FormatISO(event.FedAt),
		FoodQty:    event.FoodQty,
		WaterQty:   event.WaterQty,
		TeethBrush: event.TeethBrushed,
	}
}

func toFoodLogItems(events []feeding.Event) []foodLogItem {
	items := make([]foodLogItem, 0, len(events))
	for _, event := range events {
		items = append(items, toFoodLogItem(event))
	}
	return items
}

func mustJSON(c *gin.Context, payload any) bool {
	if err := c.ShouldBindJSON(payload); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

// validate applies the food log form rules: both quantities are required
// and must stay below 100.
func (r createFoodLogRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	checkQty := func(field, label string, value *int, max int) {
		switch {
		case value == nil:
			fieldErrors[field] = "This field is required."
		case *value < 0:
			fieldErrors[field] = label + " must not be negative."
		case *value >= max:
			fieldErrors[field] = label + " must be less than " + strconv.Itoa(max) + "."
		}
	}
	checkQty("food_qty", "Food quantity", r.FoodQty, maxFoodQty)
	checkQty("water_qty", "Water quantity", r.WaterQty, maxWaterQty)
	return fieldErrors
}

func parseLimit(raw string, fallback, max int) (int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback, true
	}
	limit, err := strconv.Atoi(trimmed)
	if err != nil || limit <= 0 {
		return 0, false
	}
	if limit > max {
		limit = max
	}
	return limit, true
}
