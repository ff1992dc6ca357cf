package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/postarmory/postarmory/internal/config"
	"github.com/postarmory/postarmory/internal/llm"
	"github.com/postarmory/postarmory/internal/repositories"
)

func TestBuildPrompt_IncludesOptedInContextOnly(t *testing.T) {
	view := repositories.SettingsView{
		SystemPrompt: "Keep it playful.",
		BusinessName: "Acme Co",
		Email:        "hi@acme.example",
		Phone:        "555-0100",
		Address:      "1 Main St",
		WebsiteURL:   "https://acme.example",

		IncludeBusinessName: true,
		IncludeEmail:        true,
		// phone and address not opted in
	}

	prompt := buildPrompt("announce our summer sale", view)

	assert.Contains(t, prompt, "Keep it playful.")
	assert.Contains(t, prompt, "Business Name: Acme Co")
	assert.Contains(t, prompt, "Contact Email: hi@acme.example")
	assert.Contains(t, prompt, "Main Website: https://acme.example")
	assert.NotContains(t, prompt, "555-0100")
	assert.NotContains(t, prompt, "1 Main St")

	assert.Contains(t, prompt, `"announce our summer sale"`)
	assert.Contains(t, prompt, "generate 6 distinct social media posts")
	assert.Contains(t, prompt, "X (formerly Twitter), Snapchat, TikTok, LinkedIn, Facebook, and Instagram")
}

func TestBuildPrompt_OptedInButEmptyFieldsOmitted(t *testing.T) {
	view := repositories.SettingsView{
		IncludeBusinessName: true,
		IncludePhone:        true,
	}
	prompt := buildPrompt("idea", view)
	assert.NotContains(t, prompt, "Business Name:")
	assert.NotContains(t, prompt, "Contact Phone:")
}

func TestAPIKeyFor(t *testing.T) {
	view := repositories.SettingsView{
		GeminiAPIKey:    "stored-gemini",
		OpenAIAPIKey:    "stored-openai",
		AnthropicAPIKey: "stored-anthropic",
	}

	assert.Equal(t, "stored-gemini", apiKeyFor(llm.ProviderGemini, view))
	assert.Equal(t, "stored-openai", apiKeyFor(llm.ProviderOpenAI, view))
	assert.Equal(t, "stored-anthropic", apiKeyFor(llm.ProviderClaude, view))
}

func TestAPIKeyFor_ServerFallbackOnlyForDefaultProvider(t *testing.T) {
	orig := config.Envs.GeminiAPIKey
	config.Envs.GeminiAPIKey = "server-gemini"
	defer func() { config.Envs.GeminiAPIKey = orig }()

	empty := repositories.SettingsView{}
	assert.Equal(t, "server-gemini", apiKeyFor(llm.ProviderGemini, empty))
	assert.Equal(t, "", apiKeyFor(llm.ProviderOpenAI, empty))
	assert.Equal(t, "", apiKeyFor(llm.ProviderClaude, empty))

	// A stored key always wins over the server fallback.
	stored := repositories.SettingsView{GeminiAPIKey: "stored-gemini"}
	assert.Equal(t, "stored-gemini", apiKeyFor(llm.ProviderGemini, stored))
}
