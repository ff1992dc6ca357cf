package imagen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/postarmory/postarmory/internal/config"
)

const imagenModel = "imagegeneration@006"

// Client calls the Vertex AI image generation endpoint. Auth is a bearer
// token supplied through configuration; obtaining and refreshing it is the
// deployment's concern, not this client's.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	projectID   string
	location    string
	accessToken string
}

func NewClient(cfg config.VertexConfig) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 120 * time.Second},
		baseURL:     fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1", cfg.Location),
		projectID:   cfg.ProjectID,
		location:    cfg.Location,
		accessToken: cfg.AccessToken,
	}
}

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParams     `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParams struct {
	SampleCount int    `json:"sampleCount"`
	AspectRatio string `json:"aspectRatio"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateImage returns the PNG bytes for a 1:1 image rendered from prompt.
func (c *Client) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	if c.projectID == "" || c.accessToken == "" {
		return nil, fmt.Errorf("image generation is not configured")
	}

	payload := predictRequest{
		Instances:  []predictInstance{{Prompt: prompt}},
		Parameters: predictParams{SampleCount: 1, AspectRatio: "1:1"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/projects/%s/locations/%s/publishers/google/models/%s:predict",
		c.baseURL, c.projectID, c.location, imagenModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image generation request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var parsed predictResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("image generation returned status %d: %s", resp.StatusCode, string(respBody))
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("image generation failed with status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return nil, fmt.Errorf("image generation returned status %d: %s", resp.StatusCode, string(respBody))
	}
	if len(parsed.Predictions) == 0 {
		return nil, fmt.Errorf("image generation returned no predictions")
	}

	img, err := base64.StdEncoding.DecodeString(parsed.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid image data in response: %w", err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("invalid image data in response")
	}
	return img, nil
}
