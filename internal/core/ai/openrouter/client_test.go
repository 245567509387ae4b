package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-grocery/internal/core/ai/provider"
	"recipe-grocery/internal/infrastructure/config"
	"recipe-grocery/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(&config.OpenRouterConfig{
		Enabled:   true,
		APIKey:    "sk-test-key",
		BaseURL:   url,
		Model:     "test/model",
		MaxTokens: 256,
		Timeout:   5 * time.Second,
	})
}

func TestClientGenerate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer sk-test-key", r.Header.Get("Authorization"))

			var body chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "test/model", body.Model)
			assert.Equal(t, 256, body.MaxTokens)
			require.Len(t, body.Messages, 1)
			assert.Equal(t, "hello", body.Messages[0].Content)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[]"}}],"usage":{"total_tokens":12}}`))
		}))
		defer srv.Close()

		resp, err := newTestClient(srv.URL).Generate(context.Background(), &provider.Request{
			Messages: []provider.Message{{Role: "user", Content: "hello"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "[]", resp.Content)
		assert.Equal(t, 12, resp.Usage.TotalTokens)
	})

	t.Run("Rate Limited", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Generate(context.Background(), &provider.Request{})
		assert.ErrorIs(t, err, common.ErrAIRateLimited)
	})

	t.Run("Server Error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream failed", http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Generate(context.Background(), &provider.Request{})
		assert.ErrorIs(t, err, common.ErrAIServiceError)
	})

	t.Run("No Choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Generate(context.Background(), &provider.Request{})
		assert.ErrorIs(t, err, common.ErrAIServiceError)
	})
}

func TestClientAccessors(t *testing.T) {
	c := newTestClient("http://localhost")
	assert.Equal(t, "test/model", c.GetModel())
	assert.Equal(t, 5*time.Second, c.GetTimeout())
}
