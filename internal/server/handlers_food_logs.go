package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"dogfood/internal/agent"
	"dogfood/internal/feeding"
	"dogfood/internal/metrics"
)

func (a *App) listFoodLogs(c *gin.Context) {
	limit, ok := parseLimit(c.Query("limit"), a.cfg.RecentLogLimit, a.cfg.RecentLogLimit)
	if !ok {
		writeError(c, http.StatusBadRequest, "limit must be a positive integer")
		return
	}

	events, err := a.store.RecentFoodLogs(c.Request.Context(), limit)
	if err != nil {
		a.log.Error("load food logs failed", slog.Int("limit", limit), slog.Any("err", err))
		writeError(c, http.StatusInternalServerError, "Failed to load food logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"food_logs": toFoodLogItems(events),
		"count":     len(events),
	})
}

func (a *App) createFoodLog(c *gin.Context) {
	var payload createFoodLogRequest
	if !mustJSON(c, &payload) {
		return
	}
	if fieldErrors := payload.validate(); len(fieldErrors) > 0 {
		writeValidationError(c, fieldErrors)
		return
	}

	entry := feeding.Event{
		FedAt:    a.currentTime(),
		FoodQty:  *payload.FoodQty,
		WaterQty: *payload.WaterQty,
	}
	if payload.TeethBrush != nil {
		entry.TeethBrushed = *payload.TeethBrush
	}

	saved, err := a.store.InsertFoodLog(c.Request.Context(), entry)
	if err != nil {
		a.log.Error("insert food log failed", slog.Any("err", err))
		writeError(c, http.StatusInternalServerError, "Failed to save food log")
		return
	}
	metrics.IncFoodLogCreated()

	c.JSON(http.StatusCreated, toFoodLogItem(saved))
}

func (a *App) getFeedingSummary(c *gin.Context) {
	now := a.currentTime()
	windowStart := feeding.WindowStart(now)

	events, err := a.store.FoodLogsSince(c.Request.Context(), windowStart)
	if err != nil {
		a.log.Error("load summary window failed", slog.Time("since", windowStart), slog.Any("err", err))
		writeError(c, http.StatusInternalServerError, "Failed to load food logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timezone":     feeding.ReferenceZoneName,
		"window_days":  feeding.WindowDays,
		"window_start": feeding.FormatISO(windowStart),
		"generated_at": feeding.FormatISO(now),
		"summary":      feeding.Summarize(events, now),
	})
}

// getSuggestion never fails on agent errors; the response carries a fallback
// message instead so the page can still render.
func (a *App) getSuggestion(c *gin.Context) {
	now := a.currentTime()
	events, err := a.store.RecentFoodLogs(c.Request.Context(), a.cfg.PromptLogLimit)
	if err != nil {
		a.log.Error("load prompt food logs failed", slog.Int("limit", a.cfg.PromptLogLimit), slog.Any("err", err))
		writeError(c, http.StatusInternalServerError, "Failed to load food logs")
		return
	}

	response := suggestionResponse{
		EventCount:  len(events),
		GeneratedAt: feeding.FormatISO(now),
	}

	suggestion, err := a.agent.GetSuggestion(c.Request.Context(), events, now)
	if err != nil {
		kind, ok := agent.KindOf(err)
		if !ok {
			kind = agent.KindTransport
		}
		a.log.Warn(
			"agent suggestion unavailable",
			slog.String("kind", string(kind)),
			slog.Int("events", len(events)),
			slog.Any("err", err),
		)
		response.SuggestionError = suggestionFallback
		response.ErrorKind = string(kind)
		c.JSON(http.StatusOK, response)
		return
	}

	response.Suggestion = &suggestion
	c.JSON(http.StatusOK, response)
}
