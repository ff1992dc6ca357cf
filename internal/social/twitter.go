package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"

	"github.com/postarmory/postarmory/internal/config"
)

const (
	twitterTweetURL  = "https://api.twitter.com/2/tweets"
	twitterCharLimit = 280
)

// TwitterPublisher posts tweets through the v2 API using the app's OAuth 1.0a
// user context (pre-configured key quad, no per-user token yet).
type TwitterPublisher struct {
	httpClient *http.Client
	tweetURL   string
}

func NewTwitterPublisher(cfg config.TwitterConfig) *TwitterPublisher {
	oauthConfig := oauth1.NewConfig(cfg.APIKey, cfg.APISecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessTokenSecret)

	client := oauthConfig.Client(oauth1.NoContext, token)
	client.Timeout = 30 * time.Second

	return &TwitterPublisher{
		httpClient: client,
		tweetURL:   twitterTweetURL,
	}
}

func (t *TwitterPublisher) Validate(text string) error {
	return validateText(text, twitterCharLimit)
}

type tweetResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (t *TwitterPublisher) Publish(ctx context.Context, text string) (string, error) {
	if err := t.Validate(text); err != nil {
		return "", err
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal tweet: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tweetURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("twitter request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var parsed tweetResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("twitter API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		// Surface the platform's own message verbatim.
		if parsed.Detail != "" {
			return "", fmt.Errorf("twitter API error: %s", parsed.Detail)
		}
		return "", fmt.Errorf("twitter API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if parsed.Data.ID == "" {
		return "", fmt.Errorf("twitter API response contained no tweet id")
	}
	return parsed.Data.ID, nil
}
