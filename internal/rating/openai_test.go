package rating

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/fitcheck/internal/models"
)

func completion(content string) string {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(b)
}

func TestOpenAI_Rate(t *testing.T) {
	var req map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completion(`{"rating": 8, "style": "casual", "description": "White tee and straight jeans."}`)))
	}))
	defer srv.Close()

	o := NewOpenAI("sk-test", "gpt-4o-mini", srv.URL+"/", 5*time.Second)
	got, err := o.Rate(context.Background(), []byte{0x89, 'P', 'N', 'G'}, "image/png")

	require.NoError(t, err)
	assert.Equal(t, models.AnalysisResult{Rating: 8, Style: "casual", Description: "White tee and straight jeans."}, got)

	assert.Equal(t, "gpt-4o-mini", req["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, req["response_format"])
	assert.InDelta(t, 0.7, req["temperature"], 1e-9)
	assert.InDelta(t, 300, req["max_tokens"], 1e-9)

	msgs, ok := req["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	user := msgs[1].(map[string]any)
	parts := user["content"].([]any)
	require.Len(t, parts, 2)
	image := parts[1].(map[string]any)["image_url"].(map[string]any)
	assert.Equal(t, "data:image/png;base64,iVBORw==", image["url"])
	assert.Equal(t, "high", image["detail"])
}

func TestOpenAI_MissingKey(t *testing.T) {
	_, err := NewOpenAI("", "gpt-4o-mini", "", time.Second).Rate(context.Background(), []byte("x"), "image/png")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestOpenAI_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"bad request", http.StatusBadRequest, `{"error":{"message":"invalid image","type":"invalid_request_error"}}`},
		{"empty content", http.StatusOK, completion("   ")},
		{"no choices", http.StatusOK, `{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOpenAI("sk-test", "gpt-4o-mini", srv.URL+"/", 5*time.Second).Rate(context.Background(), []byte("x"), "image/jpeg")
			assert.Error(t, err)
		})
	}
}
