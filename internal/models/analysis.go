package models

import "strings"

// Style is the category label returned by the rating service.
type Style string

const (
	StyleCasual     Style = "casual"
	StyleElegant    Style = "elegant"
	StyleSporty     Style = "sporty"
	StyleStreetwear Style = "streetwear"
	StyleBusiness   Style = "business"
	StyleBohemian   Style = "bohemian"
	StyleTrendy     Style = "trendy"
	StyleClassic    Style = "classic"
	StyleStylish    Style = "stylish"
	StyleDemo       Style = "demo"

	// StyleNotAnOutfit marks a result for an image that does not show an outfit.
	StyleNotAnOutfit Style = "not-an-outfit"
)

// KnownStyles is the vocabulary searched when a style has to be recovered from free text.
var KnownStyles = []Style{
	StyleCasual, StyleElegant, StyleSporty, StyleStreetwear, StyleBusiness,
	StyleBohemian, StyleTrendy, StyleClassic, StyleNotAnOutfit,
}

// AnalysisResult is the rating/style/description triple shown to the user.
type AnalysisResult struct {
	Rating      int    `json:"rating"`
	Style       Style  `json:"style"`
	Description string `json:"description"`
}

// NotAnOutfit builds the sentinel result for rejected uploads.
func NotAnOutfit(description string) AnalysisResult {
	return AnalysisResult{Rating: 0, Style: StyleNotAnOutfit, Description: description}
}

// IsNotAnOutfit reports whether r is the not-an-outfit sentinel.
func (r AnalysisResult) IsNotAnOutfit() bool {
	return r.Rating == 0 || r.Style == StyleNotAnOutfit
}

// Normalize keeps rating 0 and the not-an-outfit style coupled and clamps the
// rating into [0,10].
func (r AnalysisResult) Normalize() AnalysisResult {
	r.Style = Style(strings.TrimSpace(string(r.Style)))
	if r.IsNotAnOutfit() {
		r.Rating = 0
		r.Style = StyleNotAnOutfit
		return r
	}
	if r.Rating > 10 {
		r.Rating = 10
	}
	if r.Rating < 0 {
		r.Rating = 0
		r.Style = StyleNotAnOutfit
	}
	return r
}
