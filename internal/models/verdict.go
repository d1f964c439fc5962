package models

// Reasoning is the reason code attached to a classifier verdict.
type Reasoning string

const (
	ReasonObjectDetected             Reasoning = "object_detected"
	ReasonNoPersonDetected           Reasoning = "no_person_detected"
	ReasonNoClothingDetected         Reasoning = "no_clothing_detected"
	ReasonNonClothingDetected        Reasoning = "non_clothing_detected"
	ReasonOutfitDetected             Reasoning = "outfit_detected"
	ReasonUncertainLowConfidence     Reasoning = "uncertain_low_confidence"
	ReasonFilenameSuggestsOutfit     Reasoning = "filename_suggests_outfit"
	ReasonFilenameSuggestsNonOutfit  Reasoning = "filename_suggests_non_outfit"
	ReasonPropertiesSuggestOutfit    Reasoning = "image_properties_suggest_outfit"
	ReasonPropertiesSuggestNonOutfit Reasoning = "image_properties_suggest_non_outfit"
	ReasonBasicAnalysis              Reasoning = "basic_analysis"
	ReasonScreenshot                 Reasoning = "screenshot"
	ReasonIcon                       Reasoning = "icon"
	ReasonMonochrome                 Reasoning = "monochrome"
	ReasonLowConfidence              Reasoning = "low_confidence"
)

// Source identifies which classifier produced a verdict.
type Source string

const (
	SourceBasicAnalysis  Source = "basic_analysis"
	SourceHuggingFace    Source = "huggingface"
	SourceTensorFlow     Source = "tensorflow" // in-process model; name kept for API compatibility
	SourceSimpleAnalysis Source = "simple_analysis"
)

// Label is one (label, score) pair reported by an image classifier.
type Label struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// LabelScores holds the keyword accumulators a label-based verdict was derived from.
type LabelScores struct {
	Human     float64 `json:"human"`
	Clothing  float64 `json:"clothing"`
	NonOutfit float64 `json:"non_outfit"`
}

// Verdict is a classifier's judgment on whether an image shows an outfit.
// Confidence 0 means "no signal", not "confident no".
type Verdict struct {
	IsOutfit   bool         `json:"is_outfit"`
	Confidence float64      `json:"confidence"`
	Reasoning  Reasoning    `json:"reasoning"`
	Source     Source       `json:"source"`
	TopLabels  []Label      `json:"top_labels,omitempty"`
	Scores     *LabelScores `json:"scores,omitempty"`
}

// TopLabel returns the highest ranked label, or "" when none was reported.
func (v Verdict) TopLabel() string {
	if len(v.TopLabels) == 0 {
		return ""
	}
	return v.TopLabels[0].Label
}

// StopReason names the gate rule that blocked an upload.
type StopReason string

const (
	StopNone                   StopReason = ""
	StopAIDetectedNonOutfit    StopReason = "ai_detected_non_outfit"
	StopBasicAnalysisNonOutfit StopReason = "basic_analysis_non_outfit"
)

// OutfitDecision is the gate's stop/proceed outcome.
type OutfitDecision struct {
	ShouldStop      bool            `json:"should_stop"`
	Reason          StopReason      `json:"reason,omitempty"`
	Detail          string          `json:"detail,omitempty"`
	ResultIfStopped *AnalysisResult `json:"result_if_stopped,omitempty"`
}
