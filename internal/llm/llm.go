package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Provider identifies an LLM backend. The set is closed: adding a provider
// means adding a Generator implementation and a case in generatorFor.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderClaude Provider = "claude"
)

// DisplayName is the human-readable provider name used in error messages.
func (p Provider) DisplayName() string {
	switch p {
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderClaude:
		return "Anthropic Claude"
	default:
		return "Google Gemini"
	}
}

// GeneratedPost is the normalized unit every provider must produce.
type GeneratedPost struct {
	Platform string   `json:"platform"`
	Content  string   `json:"content"`
	Hashtags []string `json:"hashtags"`
}

// Generator turns a prompt and an API key into raw text that is expected to
// parse as a JSON array of posts. Implementations are pure request/response:
// no retries, no streaming, no caching.
type Generator interface {
	Generate(ctx context.Context, prompt, apiKey string) (string, error)
}

var (
	ErrMissingAPIKey = errors.New("API key is required")
	ErrBadResponse   = errors.New("provider returned a malformed response")
)

var generatorFor = func(p Provider) Generator {
	switch p {
	case ProviderOpenAI:
		return NewOpenAIGenerator()
	case ProviderClaude:
		return NewClaudeGenerator()
	default:
		return NewGeminiGenerator()
	}
}

// GeneratePosts invokes the selected provider once and normalizes its output:
// exactly one post per requested platform, returned in the requested order.
// Any missing field, unparseable response, or missing platform fails the whole
// batch; there is no partial success. The apiKey never appears in errors.
func GeneratePosts(ctx context.Context, provider Provider, prompt, apiKey string, platforms []string) ([]GeneratedPost, error) {
	if provider == "" {
		provider = ProviderGemini
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s %w", provider.DisplayName(), ErrMissingAPIKey)
	}

	raw, err := generatorFor(provider).Generate(ctx, prompt, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content using %s: %w", provider, err)
	}

	posts, err := parsePosts(raw, platforms)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content using %s: %w", provider, err)
	}
	return posts, nil
}

// rawPost uses pointers so that absent fields are distinguishable from empty
// ones during validation.
type rawPost struct {
	Platform *string   `json:"platform"`
	Content  *string   `json:"content"`
	Hashtags *[]string `json:"hashtags"`
}

func parsePosts(raw string, platforms []string) ([]GeneratedPost, error) {
	var parsed []rawPost
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	byPlatform := make(map[string]GeneratedPost, len(parsed))
	for i, p := range parsed {
		if p.Platform == nil || p.Content == nil || p.Hashtags == nil {
			return nil, fmt.Errorf("%w: post %d is missing platform, content or hashtags", ErrBadResponse, i)
		}
		key := strings.ToLower(strings.TrimSpace(*p.Platform))
		if _, dup := byPlatform[key]; dup {
			return nil, fmt.Errorf("%w: duplicate post for platform %q", ErrBadResponse, *p.Platform)
		}
		byPlatform[key] = GeneratedPost{
			Platform: *p.Platform,
			Content:  *p.Content,
			Hashtags: *p.Hashtags,
		}
	}

	if len(parsed) != len(platforms) {
		return nil, fmt.Errorf("%w: expected %d posts, got %d", ErrBadResponse, len(platforms), len(parsed))
	}

	posts := make([]GeneratedPost, 0, len(platforms))
	for _, name := range platforms {
		post, ok := byPlatform[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: no post for platform %q", ErrBadResponse, name)
		}
		post.Platform = name
		posts = append(posts, post)
	}
	return posts, nil
}
