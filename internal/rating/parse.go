package rating

import (
	"encoding/json"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/your-org/fitcheck/internal/models"
)

const (
	descriptionFallbackLen = 220
	noDescription          = "Description unavailable."
)

var (
	fencePattern  = regexp.MustCompile("(?i)```(?:json)?\\s*([\\s\\S]*?)\\s*```")
	ratingPattern = regexp.MustCompile(`(?i)rating[:\s]*(\d+)`)
	leadingInt    = regexp.MustCompile(`^\s*([+-]?\d+)`)
)

type rawResult struct {
	Rating      json.RawMessage `json:"rating"`
	Style       any             `json:"style"`
	Description any             `json:"description"`
}

// ParseContent turns a model reply into a result. It tolerates markdown code
// fences, string ratings and non-JSON replies; the returned result always
// satisfies the rating-0 / not-an-outfit coupling.
func ParseContent(content string) models.AnalysisResult {
	content = strings.TrimSpace(content)

	jsonText := content
	if m := fencePattern.FindStringSubmatch(content); m != nil {
		jsonText = strings.TrimSpace(m[1])
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return models.AnalysisResult{
			Rating:      ratingFromText(content),
			Style:       styleFromText(content),
			Description: descriptionOr(prefix(content)),
		}.Normalize()
	}

	result := models.AnalysisResult{
		Style:       models.Style(strings.TrimSpace(stringify(raw.Style))),
		Description: strings.TrimSpace(stringify(raw.Description)),
	}

	if n, ok := parseRating(raw.Rating); ok {
		result.Rating = clampRating(n)
	} else {
		result.Rating = ratingFromText(content)
	}
	if result.Style == "" {
		result.Style = styleFromText(content)
	}
	if result.Description == "" {
		result.Description = descriptionOr(prefix(content))
	}
	if result.Style == models.StyleNotAnOutfit {
		result.Rating = 0
	}
	return result.Normalize()
}

// parseRating accepts JSON numbers (truncated) and strings with a leading integer.
func parseRating(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if m := leadingInt.FindStringSubmatch(s); m != nil {
			n, err := strconv.Atoi(m[1])
			return n, err == nil
		}
	}
	return 0, false
}

// ratingFromText finds "rating: N" in free text, else picks 7-9.
func ratingFromText(text string) int {
	if m := ratingPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return clampRating(n)
		}
	}
	return 7 + rand.Intn(3)
}

func styleFromText(text string) models.Style {
	lower := strings.ToLower(text)
	for _, s := range models.KnownStyles {
		if strings.Contains(lower, string(s)) {
			return s
		}
	}
	return models.StyleStylish
}

func clampRating(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}

func prefix(s string) string {
	r := []rune(s)
	if len(r) > descriptionFallbackLen {
		r = r[:descriptionFallbackLen]
	}
	return strings.TrimSpace(string(r))
}

func descriptionOr(s string) string {
	if s == "" {
		return noDescription
	}
	return s
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}
