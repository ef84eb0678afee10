package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskrunner/internal/domain/entity"
)

func newTestAdapter(serverURL string) *GeminiAdapter {
	cfg := DefaultConfig("test-key", "gemini-2.0-flash")
	cfg.BaseURL = serverURL
	cfg.Timeout = time.Second
	return NewGeminiAdapter(cfg)
}

func TestSubmit_Success(t *testing.T) {
	var gotPath, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{
				"content": {
					"role": "model",
					"parts": [{"text": "1. Open the shop page\n2. Compare prices"}]
				}
			}]
		}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	result, err := adapter.Submit(context.Background(), "find cheap laptops")

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "1. Open the shop page\n2. Compare prices", result.Final)
	assert.Equal(t, []string{"Open the shop page", "Compare prices"}, result.Steps)
	assert.Equal(t, "gemini", result.Provider)
	assert.NotEmpty(t, result.Raw)
}

func TestSubmit_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "Resource has been exhausted", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	_, err := adapter.Submit(context.Background(), "anything")

	require.Error(t, err)
	var pe *entity.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.RateLimited)
	assert.True(t, pe.Retryable)
	assert.Equal(t, http.StatusTooManyRequests, pe.StatusCode)
	assert.Contains(t, pe.Message, "Resource has been exhausted")
	assert.Contains(t, pe.Message, "RESOURCE_EXHAUSTED")
}

func TestSubmit_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "API key not valid"}}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	_, err := adapter.Submit(context.Background(), "anything")

	var pe *entity.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.False(t, pe.RateLimited)
	assert.False(t, pe.Retryable)
}

func TestSubmit_ServerErrorIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	_, err := adapter.Submit(context.Background(), "anything")

	var pe *entity.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.Retryable)
	assert.False(t, pe.RateLimited)
}

func TestSubmit_QuotaBadRequestTreatedAsRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "quota exceeded for project"}}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	_, err := adapter.Submit(context.Background(), "anything")

	var pe *entity.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.RateLimited)
}

func TestSubmit_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	_, err := adapter.Submit(context.Background(), "anything")

	var pe *entity.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Message, "no candidates")
}

func TestSubmit_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	cfg := DefaultConfig("test-key", "gemini-2.0-flash")
	cfg.BaseURL = server.URL
	cfg.Timeout = 20 * time.Millisecond
	adapter := NewGeminiAdapter(cfg)

	_, err := adapter.Submit(context.Background(), "anything")

	require.Error(t, err)
	var te *entity.TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "gemini", te.Provider)
}

func TestSubmit_PromptWrapsTaskVerbatim(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "ok"}]}}]}`))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)
	_, err := adapter.Submit(context.Background(), "search for gaming laptops")

	require.NoError(t, err)
	assert.Contains(t, gotBody, "Task: search for gaming laptops")
}
