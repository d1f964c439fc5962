package models

import "github.com/google/uuid"

// RecordSource tells how a metrics record was produced.
type RecordSource string

const (
	RecordAIAnalysis RecordSource = "ai_analysis"
	RecordFallback   RecordSource = "fallback"
	RecordNotOutfit  RecordSource = "not-outfit"
)

// EnergyLevelName is the qualitative band of the style sub-scores.
type EnergyLevelName string

const (
	EnergyNone     EnergyLevelName = "No Style Detected"
	EnergyCalm     EnergyLevelName = "Calm & Classic"
	EnergyBalanced EnergyLevelName = "Balanced"
	EnergyBold     EnergyLevelName = "Bold & Vibrant"
)

type Intensity string

const (
	IntensityNone   Intensity = "none"
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// StyleMetrics are the five 0-95 sub-scores.
type StyleMetrics struct {
	Fit        int `json:"fit"`
	ColorMatch int `json:"colorMatch"`
	Trendiness int `json:"trendiness"`
	Creativity int `json:"creativity"`
	EraVibe    int `json:"eraVibe"`
}

// IsZero reports whether every sub-score is zero.
func (m StyleMetrics) IsZero() bool {
	return m == StyleMetrics{}
}

// Mean is the average of the five sub-scores.
func (m StyleMetrics) Mean() float64 {
	return float64(m.Fit+m.ColorMatch+m.Trendiness+m.Creativity+m.EraVibe) / 5
}

type EnergyLevel struct {
	Level     EnergyLevelName `json:"level"`
	Position  int             `json:"position"`
	Color     string          `json:"color"`
	Intensity Intensity       `json:"intensity"`
}

type ColorAnalysis struct {
	MentionedColors []string `json:"mentionedColors"`
	ColorCount      int      `json:"colorCount"`
	HasColorMention bool     `json:"hasColorMention"`
	DominantColor   *string  `json:"dominantColor"`
}

type ConfidenceScores struct {
	Sentiment float64 `json:"sentiment"`
	Rating    float64 `json:"rating"`
	Overall   float64 `json:"overall"`
}

// StyleMetricsRecord is one entry of the result history. Never mutated after creation.
type StyleMetricsRecord struct {
	ID               uuid.UUID        `json:"id"`
	Timestamp        string           `json:"timestamp"`
	Rating           int              `json:"rating"`
	Style            Style            `json:"style"`
	Description      string           `json:"description"`
	Metrics          StyleMetrics     `json:"metrics"`
	EnergyLevel      EnergyLevel      `json:"energyLevel"`
	StyleCategories  []string         `json:"styleCategories"`
	ColorAnalysis    ColorAnalysis    `json:"colorAnalysis"`
	ConfidenceScores ConfidenceScores `json:"confidenceScores"`
	Source           RecordSource     `json:"source"`
}
