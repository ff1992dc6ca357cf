package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/postarmory/postarmory/internal/config"
	"github.com/postarmory/postarmory/internal/llm"
	"github.com/postarmory/postarmory/internal/repositories"
	"github.com/postarmory/postarmory/internal/utils"
)

// DefaultPlatforms is the fixed set of platforms a generation request covers,
// in response order.
var DefaultPlatforms = []string{"X", "Snapchat", "TikTok", "LinkedIn", "Facebook", "Instagram"}

// buildPrompt assembles the provider prompt from the user's idea plus the
// business context they opted into.
func buildPrompt(idea string, view repositories.SettingsView) string {
	var b strings.Builder
	b.WriteString("Here is some context about the user, their brand, and their goals. Use this to tailor the generated posts:\n")

	if view.SystemPrompt != "" {
		fmt.Fprintf(&b, "\n**Overall Voice, Tone, and Instructions:**\n%s\n", view.SystemPrompt)
	}
	if view.IncludeBusinessName && view.BusinessName != "" {
		fmt.Fprintf(&b, "\n- Business Name: %s", view.BusinessName)
	}
	if view.IncludeEmail && view.Email != "" {
		fmt.Fprintf(&b, "\n- Contact Email: %s", view.Email)
	}
	if view.IncludePhone && view.Phone != "" {
		fmt.Fprintf(&b, "\n- Contact Phone: %s", view.Phone)
	}
	if view.IncludeAddress && view.Address != "" {
		fmt.Fprintf(&b, "\n- Business Address: %s", view.Address)
	}
	if view.WebsiteURL != "" {
		fmt.Fprintf(&b, "\n- Main Website: %s", view.WebsiteURL)
	}
	b.WriteString("\n---\n\n")

	fmt.Fprintf(&b,
		"Based on the detailed context provided, generate %d distinct social media posts for the following idea: %q. "+
			"Create one post for each platform: X (formerly Twitter), Snapchat, TikTok, LinkedIn, Facebook, and Instagram. "+
			"For each post, provide: \"platform\", \"content\", and \"hashtags\". "+
			"Return the result as a single, valid JSON array of objects.",
		len(DefaultPlatforms), idea)

	return b.String()
}

// apiKeyFor picks the stored key for the selected provider. Only the default
// provider has a server-side fallback key.
func apiKeyFor(provider llm.Provider, view repositories.SettingsView) string {
	switch provider {
	case llm.ProviderOpenAI:
		return view.OpenAIAPIKey
	case llm.ProviderClaude:
		return view.AnthropicAPIKey
	default:
		if view.GeminiAPIKey != "" {
			return view.GeminiAPIKey
		}
		return config.Envs.GeminiAPIKey
	}
}

// GeneratePosts godoc
// @Summary Generate platform-tailored post drafts from an idea
// @Tags Generate
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/generate [post]
func GeneratePosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Unauthorized",
		})
		return
	}

	if r.Method != http.MethodPost {
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
		return
	}

	var input struct {
		Idea string `json:"idea"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || strings.TrimSpace(input.Idea) == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Idea is required",
		})
		return
	}

	view, err := repositories.LoadSettings(userID)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to load settings",
		})
		return
	}

	provider := llm.Provider(view.LLMProvider)
	if provider == "" {
		provider = llm.ProviderGemini
	}

	apiKey := apiKeyFor(provider, view)
	if apiKey == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: fmt.Sprintf("API key for %s not found in your settings.", provider),
		})
		return
	}

	posts, err := llm.GeneratePosts(r.Context(), provider, buildPrompt(input.Idea, view), apiKey, DefaultPlatforms)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Posts generated",
		Data:    map[string]any{"posts": posts},
	})
}
