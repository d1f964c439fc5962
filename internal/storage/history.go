package storage

import (
	"context"
	"log/slog"

	"github.com/your-org/fitcheck/internal/models"
	"github.com/your-org/fitcheck/internal/observability"
)

// History is the error-swallowing front of a MetricsStore. Storage problems
// are logged and never reach the caller.
type History struct {
	store    MetricsStore
	capacity int
}

func NewHistory(store MetricsStore, capacity int) *History {
	return &History{store: store, capacity: capacity}
}

// Record appends rec, evicting the oldest entries beyond capacity.
func (h *History) Record(ctx context.Context, rec models.StyleMetricsRecord) {
	if err := h.store.Append(ctx, rec, h.capacity); err != nil {
		observability.StoreErrors.WithLabelValues("append").Inc()
		slog.Error("failed to store metrics", "record_id", rec.ID, "error", err)
	}
}

// Recent returns up to limit of the newest records, oldest first.
// limit <= 0 returns the whole history. Never nil.
func (h *History) Recent(ctx context.Context, limit int) []models.StyleMetricsRecord {
	list, err := h.store.List(ctx)
	if err != nil {
		observability.StoreErrors.WithLabelValues("list").Inc()
		slog.Error("failed to retrieve metrics", "error", err)
		return []models.StyleMetricsRecord{}
	}
	if list == nil {
		list = []models.StyleMetricsRecord{}
	}
	if limit > 0 && len(list) > limit {
		list = list[len(list)-limit:]
	}
	return list
}

func (h *History) Ping(ctx context.Context) error {
	return h.store.Ping(ctx)
}

// Summary aggregates the stored history.
type Summary struct {
	Count          int                            `json:"count"`
	RatedCount     int                            `json:"rated_count"`
	NotOutfitCount int                            `json:"not_outfit_count"`
	AverageRating  float64                        `json:"average_rating"`
	AverageMetrics AverageMetrics                 `json:"average_metrics"`
	EnergyLevels   map[models.EnergyLevelName]int `json:"energy_levels"`
	Sources        map[models.RecordSource]int    `json:"sources"`
	Categories     map[string]int                 `json:"categories"`
}

type AverageMetrics struct {
	Fit        float64 `json:"fit"`
	ColorMatch float64 `json:"colorMatch"`
	Trendiness float64 `json:"trendiness"`
	Creativity float64 `json:"creativity"`
	EraVibe    float64 `json:"eraVibe"`
}

// Summary computes aggregates over the current history. Averages cover rated
// (non not-an-outfit) records only.
func (h *History) Summary(ctx context.Context) Summary {
	return Summarize(h.Recent(ctx, 0))
}

func Summarize(records []models.StyleMetricsRecord) Summary {
	s := Summary{
		Count:        len(records),
		EnergyLevels: map[models.EnergyLevelName]int{},
		Sources:      map[models.RecordSource]int{},
		Categories:   map[string]int{},
	}

	var ratingSum int
	var m AverageMetrics
	for _, r := range records {
		s.EnergyLevels[r.EnergyLevel.Level]++
		s.Sources[r.Source]++
		for _, c := range r.StyleCategories {
			s.Categories[c]++
		}

		if r.Rating == 0 || r.Style == models.StyleNotAnOutfit {
			s.NotOutfitCount++
			continue
		}
		s.RatedCount++
		ratingSum += r.Rating
		m.Fit += float64(r.Metrics.Fit)
		m.ColorMatch += float64(r.Metrics.ColorMatch)
		m.Trendiness += float64(r.Metrics.Trendiness)
		m.Creativity += float64(r.Metrics.Creativity)
		m.EraVibe += float64(r.Metrics.EraVibe)
	}

	if s.RatedCount > 0 {
		n := float64(s.RatedCount)
		s.AverageRating = float64(ratingSum) / n
		s.AverageMetrics = AverageMetrics{
			Fit:        m.Fit / n,
			ColorMatch: m.ColorMatch / n,
			Trendiness: m.Trendiness / n,
			Creativity: m.Creativity / n,
			EraVibe:    m.EraVibe / n,
		}
	}
	return s
}
