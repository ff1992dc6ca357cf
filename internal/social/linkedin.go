package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/postarmory/postarmory/internal/config"
)

const (
	linkedinPostsURL  = "https://api.linkedin.com/v2/ugcPosts"
	linkedinCharLimit = 3000
)

// LinkedInPublisher posts under a pre-configured author URN. Visibility and
// lifecycle are fixed (public, published) per the product's current scope.
type LinkedInPublisher struct {
	httpClient  *http.Client
	postsURL    string
	authorURN   string
	accessToken string
}

func NewLinkedInPublisher(cfg config.LinkedInConfig) *LinkedInPublisher {
	return &LinkedInPublisher{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		postsURL:    linkedinPostsURL,
		authorURN:   cfg.AuthorURN,
		accessToken: cfg.AccessToken,
	}
}

func (l *LinkedInPublisher) Validate(text string) error {
	return validateText(text, linkedinCharLimit)
}

type linkedinResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (l *LinkedInPublisher) Publish(ctx context.Context, text string) (string, error) {
	if err := l.Validate(text); err != nil {
		return "", err
	}
	if l.authorURN == "" || l.accessToken == "" {
		return "", fmt.Errorf("linkedin credentials are not configured")
	}

	payload := map[string]any{
		"author":         l.authorURN,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]string{"text": text},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal post: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.postsURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+l.accessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("linkedin request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var parsed linkedinResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("linkedin API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		if parsed.Message != "" {
			return "", fmt.Errorf("failed to post to LinkedIn: %s", parsed.Message)
		}
		return "", fmt.Errorf("linkedin API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if parsed.ID == "" {
		// LinkedIn also exposes the created URN via the X-RestLi-Id header.
		parsed.ID = resp.Header.Get("X-RestLi-Id")
	}
	if parsed.ID == "" {
		return "", fmt.Errorf("linkedin API response contained no post id")
	}
	return parsed.ID, nil
}
