package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"alfredoramos.mx/outreach-tracker/app"
	"alfredoramos.mx/outreach-tracker/models"
	"github.com/redis/rueidis"
)

const statusSummaryCacheKey string = "websites:stats:status"

type statusCount struct {
	Status *string
	Total  int64
}

// The cache is optional: without a configured Redis host the summary is
// always computed from the store.
func cacheEnabled() bool {
	return len(os.Getenv("REDIS_HOST")) > 0
}

// StatusSummary returns the number of records per status. The result is
// cached for a few minutes and invalidated on every write.
func StatusSummary() (map[string]int64, error) {
	if cacheEnabled() {
		cached, err := app.Cache().DoCache(context.Background(), app.Cache().B().Get().Key(statusSummaryCacheKey).Cache(), 5*time.Minute).ToString()
		if err != nil && !errors.Is(err, rueidis.Nil) {
			slog.Warn(fmt.Sprintf("Could not get cached status summary: %v", err))
		}

		if len(cached) > 0 {
			summary := map[string]int64{}

			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return summary, nil
			}

			slog.Warn("Discarding malformed cached status summary.")
		}
	}

	counts := []statusCount{}

	if err := app.DB().Model(&models.Website{}).
		Select("status, count(*) AS total").
		Group("status").
		Scan(&counts).Error; err != nil {
		slog.Error(fmt.Sprintf("Could not count websites by status: %v", err))
		return nil, err
	}

	summary := map[string]int64{}

	for _, c := range counts {
		status := ""

		if c.Status != nil {
			status = *c.Status
		}

		summary[status] = c.Total
	}

	if cacheEnabled() {
		if payload, err := json.Marshal(summary); err == nil {
			if err := app.Cache().Do(context.Background(), app.Cache().B().Set().Key(statusSummaryCacheKey).Value(string(payload)).Ex(5*time.Minute).Build()).Error(); err != nil {
				slog.Error(fmt.Sprintf("Could not save status summary to cache: %v", err))
			}
		}
	}

	return summary, nil
}

// InvalidateStatusSummary drops the cached per-status counts. Writes call it
// so the summary never serves counts older than the last mutation.
func InvalidateStatusSummary() {
	if !cacheEnabled() {
		return
	}

	if err := app.Cache().Do(context.Background(), app.Cache().B().Del().Key(statusSummaryCacheKey).Build()).Error(); err != nil {
		slog.Warn(fmt.Sprintf("Could not invalidate cached status summary: %v", err))
	}
}
