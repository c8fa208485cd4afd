package server

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dogfood/internal/feeding"
)

var exportHeader = []string{
	"id",
	"feeddatetime_utc",
	"feeddatetime_pt",
	"pt_day",
	"food_qty_g",
	"water_qty_ml",
	"teeth_brush",
}

func (a *App) exportFoodLogsCSV(c *gin.Context) {
	events, err := a.store.AllFoodLogs(c.Request.Context())
	if err != nil {
		a.log.Error("load food logs for export failed", slog.Any("err", err))
		writeError(c, http.StatusInternalServerError, "Failed to load food logs")
		return
	}

	var out bytes.Buffer
	writer := csv.NewWriter(&out)
	if err := writer.Write(exportHeader); err != nil {
		writeError(c, http.StatusInternalServerError, "Failed to build CSV header")
		return
	}
	for _, event := range events {
		if err := writer.Write([]string{
			event.ID,
			event.FedAt.UTC().Format(time.RFC3339),
			feeding.FormatISO(event.FedAt),
			event.FedAt.In(feeding.ReferenceZone()).Format("2006-01-02"),
			strconv.Itoa(event.FoodQty),
			strconv.Itoa(event.WaterQty),
			strconv.FormatBool(event.TeethBrushed),
		}); err != nil {
			writeError(c, http.StatusInternalServerError, "Failed to write CSV rows")
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		writeError(c, http.StatusInternalServerError, "Failed to flush CSV")
		return
	}

	filename := fmt.Sprintf("dogfood_export_%s.csv", a.currentTime().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.String(http.StatusOK, out.String())
}

func ensureCSVContainsHeader(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("empty csv")
	}
	if !strings.Contains(raw, strings.Join(exportHeader, ",")) {
		return errors.New("missing csv header")
	}
	return nil
}
