package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/your-org/fitcheck/internal/models"
)

// maxClassifierResponse bounds the body read from the inference API.
const maxClassifierResponse = 1 << 20

// HuggingFace sends uploads to a remote multi-label image classifier
// (the Hugging Face inference API) and scores the returned labels.
type HuggingFace struct {
	url     string
	token   string
	client  *http.Client
	scoring ScoringConfig
}

// NewHuggingFace creates the adapter. token may be empty; the free tier
// accepts unauthenticated requests for some models.
func NewHuggingFace(url, token string, timeout time.Duration) *HuggingFace {
	return &HuggingFace{
		url:     url,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		scoring: HuggingFaceScoring,
	}
}

func (h *HuggingFace) Name() string { return string(models.SourceHuggingFace) }

// Classify never fails: transport errors, timeouts, non-2xx statuses and
// non-array bodies all report the provider as unavailable.
func (h *HuggingFace) Classify(ctx context.Context, in Input) (models.Verdict, bool) {
	labels, err := h.fetchLabels(ctx, in.Data, in.ContentType)
	if err != nil {
		slog.Debug("huggingface classifier unavailable", "error", err)
		return models.Verdict{}, false
	}

	v := Score(labels, h.scoring, models.SourceHuggingFace)
	slog.Debug("huggingface verdict",
		"is_outfit", v.IsOutfit,
		"confidence", v.Confidence,
		"reasoning", v.Reasoning,
		"top_label", v.TopLabel(),
	)
	return v, true
}

func (h *HuggingFace) fetchLabels(ctx context.Context, data []byte, contentType string) ([]models.Label, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxClassifierResponse))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("classifier status %d", resp.StatusCode)
	}

	var labels []models.Label
	if err := json.Unmarshal(body, &labels); err != nil {
		return nil, fmt.Errorf("parse labels: %w", err)
	}
	if labels == nil {
		return nil, fmt.Errorf("classifier returned no label array")
	}
	return labels, nil
}
