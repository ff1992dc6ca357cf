package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const openaiSystemPrompt = "You are a social media post generator. Your response must be a valid JSON array of objects, where each object has 'platform', 'content', and 'hashtags' keys. Do not include any text outside of the JSON array."

// OpenAIGenerator constrains the output shape through a system message only;
// the model can still wrap its answer in a markdown code fence, so the raw
// text is cleaned up before it is handed back.
type OpenAIGenerator struct {
	model   string
	baseURL string // overridable for tests
}

func NewOpenAIGenerator() *OpenAIGenerator {
	return &OpenAIGenerator{model: openai.GPT4oMini}
}

func (o *OpenAIGenerator) Generate(ctx context.Context, prompt, apiKey string) (string, error) {
	cfg := openai.DefaultConfig(apiKey)
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openaiSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return stripCodeFence(resp.Choices[0].Message.Content), nil
}

// stripCodeFence removes a markdown fence wrapping the whole response.
// Fences inside the payload are part of the content and stay untouched.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if rest, ok := strings.CutPrefix(s, "```json"); ok {
		s = rest
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
