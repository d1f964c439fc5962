package stylemetrics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/fitcheck/internal/models"
)

func newTestExtractor(seed int64) *Extractor {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Extractor{
		Rand: rand.New(rand.NewSource(seed)),
		Now:  func() time.Time { return now },
	}
}

func TestExtract_StreetwearScenario(t *testing.T) {
	e := newTestExtractor(1)
	rec := e.Extract(models.AnalysisResult{
		Rating:      9,
		Style:       models.StyleStreetwear,
		Description: "bold unique silhouette with a striking color palette",
	})

	assert.Equal(t, 82, rec.Metrics.Fit, "silhouette keyword")
	assert.Equal(t, 82, rec.Metrics.ColorMatch, "color keyword without a named color")
	assert.Equal(t, 84, rec.Metrics.Creativity, "unique keyword")
	assert.GreaterOrEqual(t, rec.Metrics.Trendiness, 72)
	assert.Less(t, rec.Metrics.Trendiness, 72+25)
	assert.GreaterOrEqual(t, rec.Metrics.EraVibe, 72)
	assert.Less(t, rec.Metrics.EraVibe, 72+15)

	assert.Equal(t, Energy(rec.Metrics), rec.EnergyLevel)
	assert.Equal(t, []string{"edgy"}, rec.StyleCategories)
	assert.False(t, rec.ColorAnalysis.HasColorMention)
	assert.Nil(t, rec.ColorAnalysis.DominantColor)
	assert.Equal(t, models.RecordAIAnalysis, rec.Source)
	assert.Equal(t, "2026-03-01T12:00:00Z", rec.Timestamp)
	assert.InDelta(t, 0.9, rec.ConfidenceScores.Rating, 1e-9)
}

func TestExtract_SameSeedSameScores(t *testing.T) {
	in := models.AnalysisResult{Rating: 6, Style: models.StyleCasual, Description: "a comfy look"}
	a := newTestExtractor(42).Extract(in)
	b := newTestExtractor(42).Extract(in)
	assert.Equal(t, a.Metrics, b.Metrics)
}

func TestExtract_NamedColors(t *testing.T) {
	rec := newTestExtractor(1).Extract(models.AnalysisResult{
		Rating:      7,
		Style:       models.StyleCasual,
		Description: "Navy chinos with a white tee, matching tones",
	})

	assert.Equal(t, []string{"white", "navy"}, rec.ColorAnalysis.MentionedColors)
	assert.Equal(t, 2, rec.ColorAnalysis.ColorCount)
	require.NotNil(t, rec.ColorAnalysis.DominantColor)
	assert.Equal(t, "white", *rec.ColorAnalysis.DominantColor)
	assert.Equal(t, 56+10+5, rec.Metrics.ColorMatch)
}

func TestExtract_ClampsAt95(t *testing.T) {
	rec := newTestExtractor(1).Extract(models.AnalysisResult{
		Rating:      10,
		Style:       "trendy vintage",
		Description: "tailored, unique, red palette",
	})

	assert.Equal(t, 90, rec.Metrics.Fit)
	assert.Equal(t, 95, rec.Metrics.ColorMatch)
	assert.Equal(t, 95, rec.Metrics.Trendiness)
	assert.Equal(t, 92, rec.Metrics.Creativity)
	assert.Equal(t, 88, rec.Metrics.EraVibe)
	assert.Equal(t, models.EnergyBold, rec.EnergyLevel.Level)
}

func TestExtract_NotAnOutfit(t *testing.T) {
	e := newTestExtractor(1)
	for _, in := range []models.AnalysisResult{
		{Rating: 0, Style: models.StyleCasual, Description: "nothing here"},
		{Rating: 8, Style: models.StyleNotAnOutfit},
	} {
		rec := e.Extract(in)
		assert.True(t, rec.Metrics.IsZero())
		assert.Zero(t, rec.Rating)
		assert.Equal(t, models.StyleNotAnOutfit, rec.Style)
		assert.Equal(t, models.EnergyNone, rec.EnergyLevel.Level)
		assert.Equal(t, "#6B7280", rec.EnergyLevel.Color)
		assert.Equal(t, []string{"not-detected"}, rec.StyleCategories)
		assert.Equal(t, models.RecordNotOutfit, rec.Source)
		assert.Zero(t, rec.ConfidenceScores.Overall)
	}

	assert.Equal(t, "No outfit detected in the image", e.Extract(models.NotAnOutfit("")).Description)
	assert.Equal(t, "screenshot", e.Extract(models.NotAnOutfit("screenshot")).Description)
}

func TestExtract_Invariants(t *testing.T) {
	e := newTestExtractor(7)
	descs := []string{"", "great stunning fit", "poor messy ugly bad awful terrible", "retro vintage gym"}
	for rating := 0; rating <= 10; rating++ {
		for _, d := range descs {
			rec := e.Extract(models.AnalysisResult{Rating: rating, Style: models.StyleTrendy, Description: d})

			zero := rec.Metrics.IsZero()
			assert.Equal(t, rating == 0, zero)
			assert.Equal(t, rec.Rating == 0, rec.Style == models.StyleNotAnOutfit)
			assert.Equal(t, zero, rec.EnergyLevel.Level == models.EnergyNone)
			assert.NotEmpty(t, rec.StyleCategories)

			for _, v := range []int{rec.Metrics.Fit, rec.Metrics.ColorMatch, rec.Metrics.Trendiness, rec.Metrics.Creativity, rec.Metrics.EraVibe} {
				assert.GreaterOrEqual(t, v, 0)
				assert.LessOrEqual(t, v, 95)
			}
			assert.GreaterOrEqual(t, rec.ConfidenceScores.Sentiment, 0.0)
			assert.LessOrEqual(t, rec.ConfidenceScores.Sentiment, 1.0)
		}
	}
}

func TestConfidence(t *testing.T) {
	c := confidence("a great and stunning look", 8)
	assert.InDelta(t, 0.7, c.Sentiment, 1e-9)
	assert.InDelta(t, 0.8, c.Rating, 1e-9)
	assert.InDelta(t, 0.75, c.Overall, 1e-9)

	// Sentiment is clamped but overall uses the raw value.
	c = confidence("poor bad awful terrible ugly messy", 2)
	assert.Zero(t, c.Sentiment)
	assert.InDelta(t, (-0.1+0.2)/2, c.Overall, 1e-9)
}

func TestEnergy(t *testing.T) {
	tests := []struct {
		m    models.StyleMetrics
		want models.EnergyLevelName
	}{
		{models.StyleMetrics{}, models.EnergyNone},
		{models.StyleMetrics{Fit: 80, ColorMatch: 80, Trendiness: 80, Creativity: 80, EraVibe: 80}, models.EnergyBold},
		{models.StyleMetrics{Fit: 60, ColorMatch: 60, Trendiness: 60, Creativity: 60, EraVibe: 60}, models.EnergyBalanced},
		{models.StyleMetrics{Fit: 59, ColorMatch: 60, Trendiness: 60, Creativity: 60, EraVibe: 60}, models.EnergyCalm},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Energy(tt.m).Level)
	}
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"general"}, Categories("a look", "streetwear"))
	assert.Equal(t, []string{"casual", "minimalist"}, Categories("relaxed and clean", ""))
	assert.Equal(t, []string{"trendy"}, Categories("", "stylish"))
}

func TestFallback(t *testing.T) {
	e := newTestExtractor(3)
	rec := e.Fallback(7)

	assert.Equal(t, models.StyleDemo, rec.Style)
	assert.Equal(t, models.RecordFallback, rec.Source)
	assert.Equal(t, "Demo analysis - no AI result available", rec.Description)
	assert.Equal(t, []string{"general"}, rec.StyleCategories)
	assert.InDelta(t, 0.5, rec.ConfidenceScores.Sentiment, 1e-9)
	assert.InDelta(t, 0.6, rec.ConfidenceScores.Overall, 1e-9)
	assert.GreaterOrEqual(t, rec.Metrics.Fit, 56)
	assert.Less(t, rec.Metrics.Fit, 56+15)

	zero := e.Fallback(0)
	assert.True(t, zero.Metrics.IsZero())
	assert.Equal(t, models.RecordNotOutfit, zero.Source)
}
