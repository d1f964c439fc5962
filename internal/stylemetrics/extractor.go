// Package stylemetrics derives numeric style sub-scores, an energy band and
// descriptive tags from a rating result's free text.
package stylemetrics

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/your-org/fitcheck/internal/models"
)

const (
	maxMetric        = 95
	baseMultiplier   = 8
	notOutfitMessage = "No outfit detected in the image"
	demoDescription  = "Demo analysis - no AI result available"
)

// Extractor builds StyleMetricsRecords. Rand and Now may be replaced for
// deterministic tests; the zero value is not usable, use New.
type Extractor struct {
	Rand *rand.Rand
	Now  func() time.Time

	mu sync.Mutex
}

func New() *Extractor {
	return &Extractor{
		Rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:  time.Now,
	}
}

// Extract scores result. The not-an-outfit sentinel always yields the all-zero record.
func (e *Extractor) Extract(result models.AnalysisResult) models.StyleMetricsRecord {
	if result.IsNotAnOutfit() {
		desc := result.Description
		if desc == "" {
			desc = notOutfitMessage
		}
		return e.notOutfit(desc)
	}

	desc := strings.ToLower(result.Description)
	style := strings.ToLower(string(result.Style))
	base := result.Rating * baseMultiplier

	colors := analyzeColors(desc)
	colorBonus := 0
	if colors.HasColorMention {
		colorBonus = colorMentionBonus
	}

	e.mu.Lock()
	m := models.StyleMetrics{
		Fit:        e.score(fitRule, base, 0, desc, style),
		ColorMatch: e.score(colorMatchRule, base, colorBonus, desc, style),
		Trendiness: e.score(trendinessRule, base, 0, desc, style),
		Creativity: e.score(creativityRule, base, 0, desc, style),
		EraVibe:    e.score(eraVibeRule, base, 0, desc, style),
	}
	e.mu.Unlock()

	return models.StyleMetricsRecord{
		ID:               uuid.New(),
		Timestamp:        e.timestamp(),
		Rating:           result.Rating,
		Style:            result.Style,
		Description:      result.Description,
		Metrics:          m,
		EnergyLevel:      Energy(m),
		StyleCategories:  Categories(desc, style),
		ColorAnalysis:    colors,
		ConfidenceScores: confidence(desc, result.Rating),
		Source:           models.RecordAIAnalysis,
	}
}

// Fallback builds a demo record when no rating result is available.
// rating 0 yields the not-an-outfit record.
func (e *Extractor) Fallback(rating int) models.StyleMetricsRecord {
	if rating <= 0 {
		return e.notOutfit(notOutfitMessage)
	}
	if rating > 10 {
		rating = 10
	}
	base := rating * baseMultiplier

	e.mu.Lock()
	m := models.StyleMetrics{
		Fit:        e.random(base, fitRule.randomMax),
		ColorMatch: e.random(base, colorMatchRule.randomMax),
		Trendiness: e.random(base, trendinessRule.randomMax),
		Creativity: e.random(base, creativityRule.randomMax),
		EraVibe:    e.random(base, eraVibeRule.randomMax),
	}
	e.mu.Unlock()

	r := float64(rating) / 10
	return models.StyleMetricsRecord{
		ID:              uuid.New(),
		Timestamp:       e.timestamp(),
		Rating:          rating,
		Style:           models.StyleDemo,
		Description:     demoDescription,
		Metrics:         m,
		EnergyLevel:     Energy(m),
		StyleCategories: []string{"general"},
		ColorAnalysis:   models.ColorAnalysis{MentionedColors: []string{}},
		ConfidenceScores: models.ConfidenceScores{
			Sentiment: 0.5,
			Rating:    r,
			Overall:   (0.5 + r) / 2,
		},
		Source: models.RecordFallback,
	}
}

func (e *Extractor) notOutfit(description string) models.StyleMetricsRecord {
	return models.StyleMetricsRecord{
		ID:               uuid.New(),
		Timestamp:        e.timestamp(),
		Rating:           0,
		Style:            models.StyleNotAnOutfit,
		Description:      description,
		EnergyLevel:      Energy(models.StyleMetrics{}),
		StyleCategories:  []string{"not-detected"},
		ColorAnalysis:    models.ColorAnalysis{MentionedColors: []string{}},
		ConfidenceScores: models.ConfidenceScores{},
		Source:           models.RecordNotOutfit,
	}
}

// score must be called with e.mu held.
func (e *Extractor) score(rule metricRule, base, extra int, desc, style string) int {
	hit := containsAny(desc, rule.keywords) || (rule.inStyle && containsAny(style, rule.keywords))
	if hit {
		return clamp(base + rule.bonus + extra)
	}
	return clamp(base + extra + e.Rand.Intn(rule.randomMax))
}

// random must be called with e.mu held.
func (e *Extractor) random(base, n int) int {
	return clamp(base + e.Rand.Intn(n))
}

func (e *Extractor) timestamp() string {
	return e.Now().UTC().Format(time.RFC3339Nano)
}

// Energy maps the sub-score mean to an energy band. The all-zero vector is
// "No Style Detected".
func Energy(m models.StyleMetrics) models.EnergyLevel {
	if m.IsZero() {
		return models.EnergyLevel{Level: models.EnergyNone, Position: 0, Color: "#6B7280", Intensity: models.IntensityNone}
	}
	switch mean := m.Mean(); {
	case mean >= 80:
		return models.EnergyLevel{Level: models.EnergyBold, Position: 85, Color: "#FF0050", Intensity: models.IntensityHigh}
	case mean >= 60:
		return models.EnergyLevel{Level: models.EnergyBalanced, Position: 50, Color: "#25F4EE", Intensity: models.IntensityMedium}
	default:
		return models.EnergyLevel{Level: models.EnergyCalm, Position: 15, Color: "#9B5DE5", Intensity: models.IntensityLow}
	}
}

// Categories tags the result with every style family whose keywords appear
// in the lower-cased description or style. Never empty.
func Categories(desc, style string) []string {
	var out []string
	for _, c := range categories {
		if containsAny(desc, c.keywords) || containsAny(style, c.keywords) {
			out = append(out, c.name)
		}
	}
	if len(out) == 0 {
		return []string{"general"}
	}
	return out
}

func analyzeColors(desc string) models.ColorAnalysis {
	mentioned := []string{}
	for _, c := range namedColors {
		if strings.Contains(desc, c) {
			mentioned = append(mentioned, c)
		}
	}

	a := models.ColorAnalysis{
		MentionedColors: mentioned,
		ColorCount:      len(mentioned),
		HasColorMention: len(mentioned) > 0,
	}
	if len(mentioned) > 0 {
		dominant := mentioned[0]
		a.DominantColor = &dominant
	}
	return a
}

// confidence reports the keyword sentiment and rating confidence. Overall
// averages the unclamped sentiment with the rating, so it can leave [0,1]
// only when more than five sentiment words of one polarity appear.
func confidence(desc string, rating int) models.ConfidenceScores {
	pos := countMatches(desc, positiveWords)
	neg := countMatches(desc, negativeWords)

	sentiment := float64(pos-neg+5) / 10
	r := float64(rating) / 10
	return models.ConfidenceScores{
		Sentiment: clamp01(sentiment),
		Rating:    r,
		Overall:   (sentiment + r) / 2,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func countMatches(s string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(s, w) {
			n++
		}
	}
	return n
}

func clamp(v int) int {
	if v > maxMetric {
		return maxMetric
	}
	if v < 0 {
		return 0
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
