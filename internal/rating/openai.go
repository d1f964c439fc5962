package rating

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/your-org/fitcheck/internal/models"
)

// ErrNoAPIKey is returned by OpenAI.Rate when no key was configured.
var ErrNoAPIKey = errors.New("openai api key not configured")

const systemPrompt = "You are a stylist. Analyze only what you can see in the photo. " +
	"Avoid generic phrases like 'Great look'. Be brief and concrete, referring to details: " +
	"colors, textures, cuts, fit, combinations, footwear, accessories. " +
	"If the image does not show a person wearing an outfit (logo, icon, screenshot, room, landscape, " +
	"product without a person), return JSON with style='not-an-outfit', rating=0 and an explanatory description."

const userPrompt = `Analyze the outfit photo and return STRICT JSON: {"rating": number 1-10, "style": short category, "description": 1-2 rich, unique sentences in English with specifics. No additional text outside JSON.}`

// OpenAI rates images with a vision-capable chat completion model.
type OpenAI struct {
	client openai.Client
	model  string
	apiKey string
}

// NewOpenAI builds the client. An empty apiKey is accepted; every Rate call
// then fails with ErrNoAPIKey so callers fall back to demo results.
func NewOpenAI(apiKey, model, baseURL string, timeout time.Duration) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}
	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  model,
		apiKey: apiKey,
	}
}

func (o *OpenAI) Rate(ctx context.Context, image []byte, mimeType string) (models.AnalysisResult, error) {
	if o.apiKey == "" {
		return models.AnalysisResult{}, ErrNoAPIKey
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(userPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL:    dataURL,
					Detail: "high",
				}),
			}),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
		Model:       o.model,
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(300),
	}

	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.AnalysisResult{}, errors.New("no response from openai")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return models.AnalysisResult{}, errors.New("no response from openai")
	}

	result := ParseContent(content)
	slog.Debug("openai rating",
		"model", resp.Model,
		"rating", result.Rating,
		"style", result.Style,
		"duration", time.Since(start),
	)
	return result, nil
}
