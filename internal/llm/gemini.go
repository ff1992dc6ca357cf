package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	geminiModel   = "gemini-2.0-flash"
)

// GeminiGenerator asks Gemini for JSON-mode output with an explicit response
// schema, so the required post shape is enforced server-side.
type GeminiGenerator struct {
	httpClient *http.Client
	baseURL    string
	model      string
}

func NewGeminiGenerator() *GeminiGenerator {
	return &GeminiGenerator{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    geminiBaseURL,
		model:      geminiModel,
	}
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	ResponseMimeType string       `json:"responseMimeType"`
	ResponseSchema   geminiSchema `json:"responseSchema"`
}

type geminiSchema struct {
	Type       string                  `json:"type"`
	Items      *geminiSchema           `json:"items,omitempty"`
	Properties map[string]geminiSchema `json:"properties,omitempty"`
	Required   []string                `json:"required,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func postArraySchema() geminiSchema {
	return geminiSchema{
		Type: "ARRAY",
		Items: &geminiSchema{
			Type: "OBJECT",
			Properties: map[string]geminiSchema{
				"platform": {Type: "STRING"},
				"content":  {Type: "STRING"},
				"hashtags": {Type: "ARRAY", Items: &geminiSchema{Type: "STRING"}},
			},
			Required: []string{"platform", "content", "hashtags"},
		},
	}
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt, apiKey string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   postArraySchema(),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	// The key goes in a header, never the URL: transport errors embed the
	// full URL in their message and those messages reach the user.
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse gemini response: %w", err)
	}

	if len(parsed.Candidates) == 0 {
		// No candidates usually means the prompt was blocked; surface the
		// reason distinctly so the user can rephrase instead of retrying.
		if reason := parsed.PromptFeedback.BlockReason; reason != "" {
			return "", fmt.Errorf("gemini blocked the prompt: %s", reason)
		}
		return "", fmt.Errorf("gemini returned no candidates")
	}
	if len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini candidate has no text parts")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
