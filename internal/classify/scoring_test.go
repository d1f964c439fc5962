package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/fitcheck/internal/models"
)

func labelSet(pairs ...any) []models.Label {
	out := make([]models.Label, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.Label{Label: pairs[i].(string), Score: pairs[i+1].(float64)})
	}
	return out
}

func TestScore_HandbagIsObject(t *testing.T) {
	v := Score(labelSet("handbag", 0.7, "person", 0.05), HuggingFaceScoring, models.SourceHuggingFace)

	assert.False(t, v.IsOutfit)
	assert.Equal(t, models.ReasonObjectDetected, v.Reasoning)
	assert.InDelta(t, 0.7, v.Confidence, 1e-9)
	require.NotNil(t, v.Scores)
	assert.InDelta(t, 0.7, v.Scores.NonOutfit, 1e-9)
	assert.InDelta(t, 0.05, v.Scores.Human, 1e-9)
	assert.Equal(t, "handbag", v.TopLabel())
}

func TestScore_OutfitDetected(t *testing.T) {
	v := Score(labelSet("person", 0.4, "Jacket", 0.3), HuggingFaceScoring, models.SourceHuggingFace)

	assert.True(t, v.IsOutfit)
	assert.Equal(t, models.ReasonOutfitDetected, v.Reasoning)
	assert.InDelta(t, 0.4, v.Confidence, 1e-9)
}

func TestScore_ReasoningPriority(t *testing.T) {
	tests := []struct {
		name   string
		labels []models.Label
		want   models.Reasoning
	}{
		{"no person", labelSet("suit", 0.5), models.ReasonNoPersonDetected},
		{"no clothing", labelSet("person", 0.5), models.ReasonNoClothingDetected},
		{"object beats missing person", labelSet("laptop computer", 0.8, "suit", 0.2), models.ReasonObjectDetected},
		{"human exactly at threshold", labelSet("person", 0.15, "suit", 0.2), models.ReasonNonClothingDetected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Score(tt.labels, HuggingFaceScoring, models.SourceHuggingFace)
			assert.Equal(t, tt.want, v.Reasoning)
			assert.False(t, v.IsOutfit)
		})
	}
}

func TestScore_ForceLowConfidenceOnlyWhenConfigured(t *testing.T) {
	in := labelSet("tench", 0.05, "person", 0.02)

	hf := Score(in, HuggingFaceScoring, models.SourceHuggingFace)
	assert.InDelta(t, 0.01, hf.Confidence, 1e-9)
	assert.Equal(t, models.ReasonUncertainLowConfidence, hf.Reasoning)

	local := Score(in, LocalScoring, models.SourceTensorFlow)
	assert.InDelta(t, 0.02, local.Confidence, 1e-9)
	assert.Equal(t, models.ReasonNoPersonDetected, local.Reasoning)
}

func TestScore_LocalThresholdsAreLooser(t *testing.T) {
	in := labelSet("backpack", 0.45, "person", 0.2)

	assert.Equal(t, models.ReasonObjectDetected, Score(in, LocalScoring, models.SourceTensorFlow).Reasoning)
	assert.Equal(t, models.ReasonNoClothingDetected, Score(in, HuggingFaceScoring, models.SourceHuggingFace).Reasoning)
}

func TestScore_KeepsAtMostThreeTopLabels(t *testing.T) {
	v := Score(labelSet("a", 0.4, "b", 0.3, "c", 0.2, "d", 0.1), HuggingFaceScoring, models.SourceHuggingFace)
	assert.Len(t, v.TopLabels, 3)
}

func TestScore_EmptyLabels(t *testing.T) {
	v := Score(nil, HuggingFaceScoring, models.SourceHuggingFace)

	assert.False(t, v.IsOutfit)
	assert.Equal(t, models.ReasonUncertainLowConfidence, v.Reasoning)
	assert.Empty(t, v.TopLabels)
}
