package feeding

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	isoLayout      = "2006-01-02T15:04:05-07:00"
	isoMicroLayout = "2006-01-02T15:04:05.000000-07:00"
)

type promptEvent struct {
	FedAt      string `json:"feeddatetime"`
	FoodQtyG   int    `json:"food_qty_g"`
	WaterQtyML int    `json:"water_qty_ml"`
	TeethBrush bool   `json:"teeth_brush"`
}

// BuildPrompt renders events in the order given, followed by the 20-day
// summary and the current reference-zone time.
func BuildPrompt(events []Event, now time.Time) string {
	recent := make([]promptEvent, 0, len(events))
	for _, event := range events {
		recent = append(recent, promptEvent{
			FedAt:      FormatISO(event.FedAt),
			FoodQtyG:   event.FoodQty,
			WaterQtyML: event.WaterQty,
			TeethBrush: event.TeethBrushed,
		})
	}
	summary := Summarize(events, now)

	var b strings.Builder
	b.WriteString("Recent feeding so far is: ")
	b.WriteString(mustCompactJSON(recent))
	b.WriteString(" Feeding summary for last 20 PT days: ")
	b.WriteString(mustCompactJSON(summary))
	b.WriteString(" Given that Biscuit needs regular meals and it is currently ")
	b.WriteString(FormatISO(now))
	b.WriteString(", what should the next portion be?")
	return b.String()
}

// FormatISO renders t in the reference zone with a numeric offset. Fractional
// seconds appear as six digits only when the microsecond part is non-zero.
func FormatISO(t time.Time) string {
	local := t.In(referenceZone)
	if local.Nanosecond()/int(time.Microsecond) != 0 {
		return local.Format(isoMicroLayout)
	}
	return local.Format(isoLayout)
}

// mustCompactJSON only receives prompt structs made of strings, ints, bools
// and floats from median, which are never NaN or Inf.
func mustCompactJSON(input any) string {
	encoded, err := json.Marshal(input)
	if err != nil {
		panic("feeding: encode prompt json: " + err.Error())
	}
	return string(encoded)
}
