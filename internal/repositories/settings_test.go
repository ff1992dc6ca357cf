package repositories

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postarmory/postarmory/internal/crypto"
	"github.com/postarmory/postarmory/internal/models"
)

func TestMain(m *testing.M) {
	if err := crypto.Init("settings-test-master-secret-0123456789"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestBuildUpdates_PartialInputTouchesOnlyPresentFields(t *testing.T) {
	updates, err := BuildUpdates(SettingsInput{
		SystemPrompt: strPtr("Keep the tone casual."),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"system_prompt": "Keep the tone casual."}, updates)
}

func TestBuildUpdates_EmptyInputMeansNoUpdates(t *testing.T) {
	updates, err := BuildUpdates(SettingsInput{})
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestBuildUpdates_PlainFieldsStoredAsGiven(t *testing.T) {
	updates, err := BuildUpdates(SettingsInput{
		BusinessName:        strPtr("Acme Co"),
		IncludeBusinessName: boolPtr(true),
		LLMProvider:         strPtr("claude"),
		WebsiteURL:          strPtr("https://acme.example"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Co", updates["business_name"])
	assert.Equal(t, true, updates["include_business_name"])
	assert.Equal(t, "claude", updates["llm_provider"])
	assert.Equal(t, "https://acme.example", updates["website_url"])
}

func TestBuildUpdates_CredentialsEncryptedAtBoundary(t *testing.T) {
	const apiKey = "sk-live-abc123"

	updates, err := BuildUpdates(SettingsInput{OpenAIAPIKey: strPtr(apiKey)})
	require.NoError(t, err)

	stored, ok := updates["openai_api_key"].(string)
	require.True(t, ok)
	assert.NotEqual(t, apiKey, stored)
	assert.NotContains(t, stored, apiKey)

	plaintext, ok := crypto.Decrypt(stored)
	require.True(t, ok)
	assert.Equal(t, apiKey, plaintext)
}

func TestBuildUpdates_EmptyCredentialClearsColumn(t *testing.T) {
	updates, err := BuildUpdates(SettingsInput{GeminiAPIKey: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "", updates["gemini_api_key"])
}

func TestDecryptView_RoundTrip(t *testing.T) {
	encrypted, err := crypto.Encrypt("gm-key-xyz")
	require.NoError(t, err)

	view := DecryptView(models.UserSettings{
		BusinessName: "Acme Co",
		SystemPrompt: "Be concise.",
		LLMProvider:  "gemini",
		GeminiAPIKey: encrypted,
		XURL:         "https://x.com/acme",
	})

	assert.Equal(t, "Acme Co", view.BusinessName)
	assert.Equal(t, "Be concise.", view.SystemPrompt)
	assert.Equal(t, "gemini", view.LLMProvider)
	assert.Equal(t, "gm-key-xyz", view.GeminiAPIKey)
	assert.Equal(t, "https://x.com/acme", view.XURL)
}

func TestDecryptView_CorruptedCiphertextReadsEmpty(t *testing.T) {
	view := DecryptView(models.UserSettings{
		OpenAIAPIKey: "not-a-valid-ciphertext",
		BusinessName: "Acme Co",
	})

	assert.Equal(t, "", view.OpenAIAPIKey)
	// Corruption in one credential never fails the rest of the view.
	assert.Equal(t, "Acme Co", view.BusinessName)
}

func TestDecryptView_EmptyColumnsStayEmpty(t *testing.T) {
	view := DecryptView(models.UserSettings{})
	assert.Equal(t, "", view.GeminiAPIKey)
	assert.Equal(t, "", view.AnthropicAPIKey)
	assert.False(t, view.IncludeEmail)
}
