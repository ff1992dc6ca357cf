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

func newTestLinkedIn(srv *httptest.Server) *LinkedInPublisher {
	return &LinkedInPublisher{
		httpClient:  srv.Client(),
		postsURL:    srv.URL + "/v2/ugcPosts",
		authorURN:   "urn:li:person:abc123",
		accessToken: "member-token",
	}
}

func TestLinkedInPublish_Success(t *testing.T) {
	var gotBody map[string]any
	var gotAuth, gotRestli string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRestli = r.Header.Get("X-Restli-Protocol-Version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "urn:li:share:555"})
	}))
	defer srv.Close()

	id, err := newTestLinkedIn(srv).Publish(context.Background(), "shipping update")
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:555", id)

	assert.Equal(t, "Bearer member-token", gotAuth)
	assert.Equal(t, "2.0.0", gotRestli)
	assert.Equal(t, "urn:li:person:abc123", gotBody["author"])
	assert.Equal(t, "PUBLISHED", gotBody["lifecycleState"])

	visibility, ok := gotBody["visibility"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "PUBLIC", visibility["com.linkedin.ugc.MemberNetworkVisibility"])
}

func TestLinkedInPublish_IDFromHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RestLi-Id", "urn:li:share:777")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	id, err := newTestLinkedIn(srv).Publish(context.Background(), "shipping update")
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:777", id)
}

func TestLinkedInPublish_SurfacesAPIMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "Empty oauth2 access token",
			"status":  401,
		})
	}))
	defer srv.Close()

	_, err := newTestLinkedIn(srv).Publish(context.Background(), "shipping update")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to post to LinkedIn")
	assert.Contains(t, err.Error(), "Empty oauth2 access token")
}

func TestLinkedInPublish_MissingCredentials(t *testing.T) {
	pub := &LinkedInPublisher{httpClient: http.DefaultClient, postsURL: "http://example.invalid"}
	_, err := pub.Publish(context.Background(), "shipping update")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
