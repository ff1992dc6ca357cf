package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClaude(srv *httptest.Server) *ClaudeGenerator {
	return &ClaudeGenerator{
		httpClient: srv.Client(),
		baseURL:    srv.URL,
	}
}

func TestClaudeGenerate_AppendsInstructionAndReturnsText(t *testing.T) {
	var gotReq claudeRequest
	var gotAPIKey, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{{"type": "text", "text": `[{"platform":"X"}]`}},
		})
	}))
	defer srv.Close()

	text, err := newTestClaude(srv).Generate(context.Background(), "write posts", "test-key")
	require.NoError(t, err)
	assert.Equal(t, `[{"platform":"X"}]`, text)

	assert.Equal(t, "test-key", gotAPIKey)
	assert.Equal(t, claudeAPIVersion, gotVersion)
	require.Len(t, gotReq.Messages, 1)
	assert.True(t, strings.HasPrefix(gotReq.Messages[0].Content, "write posts"))
	assert.Contains(t, gotReq.Messages[0].Content, "valid JSON array")
}

func TestClaudeGenerate_APIErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	_, err := newTestClaude(srv).Generate(context.Background(), "prompt", "bad-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
	assert.Contains(t, err.Error(), "invalid x-api-key")
}

func TestClaudeGenerate_NoTextBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	}))
	defer srv.Close()

	_, err := newTestClaude(srv).Generate(context.Background(), "prompt", "test-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text block")
}
