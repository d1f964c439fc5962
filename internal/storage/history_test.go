package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/fitcheck/internal/models"
)

type failingStore struct{ err error }

func (f failingStore) Append(context.Context, models.StyleMetricsRecord, int) error { return f.err }
func (f failingStore) List(context.Context) ([]models.StyleMetricsRecord, error) { return nil, f.err }
func (f failingStore) Ping(context.Context) error { return f.err }
func (f failingStore) Close() {}

func TestHistory_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	h := NewHistory(NewMemoryStore(), 3)

	for i := 1; i <= 5; i++ {
		h.Record(ctx, record(i))
	}

	all := h.Recent(ctx, 0)
	require.Len(t, all, 3)
	assert.Equal(t, []int{3, 4, 5}, ratings(all))

	assert.Equal(t, []int{4, 5}, ratings(h.Recent(ctx, 2)))
	assert.Len(t, h.Recent(ctx, 10), 3)
}

func TestHistory_SwallowsStoreErrors(t *testing.T) {
	ctx := context.Background()
	h := NewHistory(failingStore{err: errors.New("quota exceeded")}, 100)

	assert.NotPanics(t, func() { h.Record(ctx, record(8)) })

	list := h.Recent(ctx, 0)
	assert.NotNil(t, list)
	assert.Empty(t, list)
	assert.Equal(t, 0, h.Summary(ctx).Count)
	assert.Error(t, h.Ping(ctx))
}

func TestSummarize(t *testing.T) {
	recs := []models.StyleMetricsRecord{
		{Rating: 8, Style: models.StyleCasual, Source: models.RecordAIAnalysis,
			Metrics:         models.StyleMetrics{Fit: 70, ColorMatch: 70, Trendiness: 70, Creativity: 70, EraVibe: 70},
			EnergyLevel:     models.EnergyLevel{Level: models.EnergyBalanced},
			StyleCategories: []string{"casual", "minimalist"}},
		{Rating: 6, Style: models.StyleDemo, Source: models.RecordFallback,
			Metrics:         models.StyleMetrics{Fit: 50, ColorMatch: 50, Trendiness: 50, Creativity: 50, EraVibe: 50},
			EnergyLevel:     models.EnergyLevel{Level: models.EnergyCalm},
			StyleCategories: []string{"general"}},
		{Rating: 0, Style: models.StyleNotAnOutfit, Source: models.RecordNotOutfit,
			EnergyLevel:     models.EnergyLevel{Level: models.EnergyNone},
			StyleCategories: []string{"not-detected"}},
	}

	s := Summarize(recs)

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.RatedCount)
	assert.Equal(t, 1, s.NotOutfitCount)
	assert.InDelta(t, 7.0, s.AverageRating, 1e-9)
	assert.InDelta(t, 60.0, s.AverageMetrics.Fit, 1e-9)
	assert.Equal(t, 1, s.EnergyLevels[models.EnergyNone])
	assert.Equal(t, 1, s.Sources[models.RecordFallback])
	assert.Equal(t, 1, s.Categories["minimalist"])
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Count)
	assert.Zero(t, s.AverageRating)
	assert.NotNil(t, s.EnergyLevels)
}

func ratings(list []models.StyleMetricsRecord) []int {
	out := make([]int, 0, len(list))
	for _, r := range list {
		out = append(out, r.Rating)
	}
	return out
}
