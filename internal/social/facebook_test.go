package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFacebook(srv *httptest.Server) *FacebookPublisher {
	return &FacebookPublisher{
		httpClient:  srv.Client(),
		baseURL:     srv.URL,
		pageID:      "1234567890",
		accessToken: "page-token",
	}
}

func TestFacebookPublish_Success(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1234567890/feed", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "1234567890_987"})
	}))
	defer srv.Close()

	id, err := newTestFacebook(srv).Publish(context.Background(), "page update")
	require.NoError(t, err)
	assert.Equal(t, "1234567890_987", id)
	assert.Equal(t, "page update", gotBody["message"])
	assert.Equal(t, "page-token", gotBody["access_token"])
}

func TestFacebookPublish_SurfacesGraphError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"message": "Error validating access token: Session has expired",
				"type":    "OAuthException",
			},
		})
	}))
	defer srv.Close()

	_, err := newTestFacebook(srv).Publish(context.Background(), "page update")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to post to Facebook")
	assert.Contains(t, err.Error(), "Session has expired")
}

func TestFacebookPublish_MissingCredentials(t *testing.T) {
	pub := &FacebookPublisher{httpClient: http.DefaultClient, baseURL: "http://example.invalid"}
	_, err := pub.Publish(context.Background(), "page update")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestFacebookPublish_ValidationSkipsNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := newTestFacebook(srv).Publish(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.False(t, called)
}
