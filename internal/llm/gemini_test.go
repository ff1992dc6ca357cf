package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(srv *httptest.Server) *GeminiGenerator {
	return &GeminiGenerator{
		httpClient: srv.Client(),
		baseURL:    srv.URL,
		model:      geminiModel,
	}
}

func TestGeminiGenerate_ReturnsFirstCandidateText(t *testing.T) {
	var gotPath, gotKey, gotRawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		gotRawQuery = r.URL.RawQuery

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)
		assert.Equal(t, "ARRAY", req.GenerationConfig.ResponseSchema.Type)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": `[{"platform":"X"}]`}}}},
			},
		})
	}))
	defer srv.Close()

	text, err := newTestGemini(srv).Generate(context.Background(), "prompt", "test-key")
	require.NoError(t, err)
	assert.Equal(t, `[{"platform":"X"}]`, text)
	assert.Equal(t, "/models/"+geminiModel+":generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Empty(t, gotRawQuery)
}

func TestGeminiGenerate_TransportErrorOmitsAPIKey(t *testing.T) {
	// Transport errors embed the request URL in their message, so the key
	// must not be part of it.
	gen := &GeminiGenerator{
		httpClient: &http.Client{},
		baseURL:    "http://127.0.0.1:1",
		model:      geminiModel,
	}

	const apiKey = "super-secret-key"
	_, err := gen.Generate(context.Background(), "prompt", apiKey)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), apiKey)
}

func TestGeminiGenerate_BlockedPromptIsDistinct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates":     []any{},
			"promptFeedback": map[string]string{"blockReason": "SAFETY"},
		})
	}))
	defer srv.Close()

	_, err := newTestGemini(srv).Generate(context.Background(), "prompt", "test-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestGeminiGenerate_UpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	_, err := newTestGemini(srv).Generate(context.Background(), "prompt", "test-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Contains(t, err.Error(), "API key not valid")
}
