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
	facebookGraphURL = "https://graph.facebook.com/v20.0"
	// Facebook's real limit is 63,206 characters; 60,000 keeps a margin.
	facebookCharLimit = 60000
)

// FacebookPublisher posts to a single pre-configured page feed using a
// long-lived page access token.
type FacebookPublisher struct {
	httpClient  *http.Client
	baseURL     string
	pageID      string
	accessToken string
}

func NewFacebookPublisher(cfg config.FacebookConfig) *FacebookPublisher {
	return &FacebookPublisher{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     facebookGraphURL,
		pageID:      cfg.PageID,
		accessToken: cfg.AccessToken,
	}
}

func (f *FacebookPublisher) Validate(text string) error {
	return validateText(text, facebookCharLimit)
}

type facebookResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (f *FacebookPublisher) Publish(ctx context.Context, text string) (string, error) {
	if err := f.Validate(text); err != nil {
		return "", err
	}
	if f.pageID == "" || f.accessToken == "" {
		return "", fmt.Errorf("facebook page credentials are not configured")
	}

	body, err := json.Marshal(map[string]string{
		"message":      text,
		"access_token": f.accessToken,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal post: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/feed", f.baseURL, f.pageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("facebook request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var parsed facebookResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("facebook API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("failed to post to Facebook: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("facebook API returned status %d: %s", resp.StatusCode, string(respBody))
	}
	if parsed.ID == "" {
		return "", fmt.Errorf("facebook API response contained no post id")
	}
	return parsed.ID, nil
}
