package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAnthropicProvider points a provider at handler with the SDK's own
// retries switched off, so error mapping is observed on the first answer.
func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("sk-ant-test"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func explainRequest() Request {
	return Request{
		System:      "You are a French teacher.",
		Messages:    []Message{{Role: RoleUser, Content: `Question: "Ils ___ (chanter)". Student's answer: "chante".`}},
		MaxTokens:   256,
		Temperature: 0.3,
	}
}

func TestAnthropicProvider_Explanation(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": "Avec « ils », "},
				{"type": "text", "text": "le verbe prend -ent."},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
		})
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), explainRequest())
	require.NoError(t, err)

	assert.Equal(t, "Avec « ils », le verbe prend -ent.", resp.Content)
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)

	assert.Equal(t, "claude-haiku-4-5-20251001", body["model"])
	assert.InDelta(t, 0.3, body["temperature"], 1e-9)
	system, ok := body["system"].([]any)
	require.True(t, ok, "system prompt sent as text blocks")
	require.Len(t, system, 1)
	assert.Equal(t, "You are a French teacher.", system[0].(map[string]any)["text"])
}

func TestAnthropicProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		errorType string
		check     func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, "rate_limit_error", func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{"overloaded", http.StatusInternalServerError, "api_error", func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
		{"bad key", http.StatusUnauthorized, "authentication_error", func(err error) bool {
			var e *ErrAuth
			return errors.As(err, &e) && e.StatusCode == http.StatusUnauthorized
		}},
		{"no access", http.StatusForbidden, "permission_error", func(err error) bool {
			var e *ErrAuth
			return errors.As(err, &e) && e.StatusCode == http.StatusForbidden
		}},
		{"unknown model", http.StatusNotFound, "not_found_error", func(err error) bool {
			var e *ErrRequestRejected
			return errors.As(err, &e)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"type":  "error",
					"error": map[string]any{"type": tt.errorType, "message": tt.name},
				})
			}

			p := newTestAnthropicProvider(t, handler)
			_, err := p.Generate(context.Background(), explainRequest())
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error %T: %v", err, err)
		})
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-sonnet-4-5", resolveModel("claude-sonnet-4-5", anthropicModels))

	p := &AnthropicProvider{model: "claude-haiku-4-5-20251001"}
	assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())
}
