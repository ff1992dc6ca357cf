package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/postarmory/postarmory/internal/crypto"
	"github.com/postarmory/postarmory/internal/models"
)

// SettingsView is the decrypted, fully-populated view returned to the owning
// user. Absent fields come back as empty strings / false, never null, so
// consumers need no guards. Credential fields that fail to decrypt (corrupted
// row, rotated master secret) read as empty instead of failing the whole load.
type SettingsView struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`

	IncludeBusinessName bool `json:"include_business_name"`
	IncludeAddress      bool `json:"include_address"`
	IncludePhone        bool `json:"include_phone"`
	IncludeEmail        bool `json:"include_email"`

	SystemPrompt string `json:"system_prompt"`
	LLMProvider  string `json:"llm_provider"`

	GeminiAPIKey    string `json:"gemini_api_key"`
	OpenAIAPIKey    string `json:"openai_api_key"`
	AnthropicAPIKey string `json:"anthropic_api_key"`

	XAPIKey        string `json:"x_api_key"`
	FacebookToken  string `json:"facebook_token"`
	InstagramToken string `json:"instagram_token"`
	LinkedInToken  string `json:"linkedin_token"`
	TikTokToken    string `json:"tiktok_token"`
	SnapchatToken  string `json:"snapchat_token"`

	XURL         string `json:"x_url"`
	FacebookURL  string `json:"facebook_url"`
	InstagramURL string `json:"instagram_url"`
	LinkedInURL  string `json:"linkedin_url"`
	TikTokURL    string `json:"tiktok_url"`
	SnapchatURL  string `json:"snapchat_url"`
	WebsiteURL   string `json:"website_url"`
}

// SettingsInput carries a partial update: nil pointers leave the stored field
// untouched, non-nil pointers overwrite it. Credential fields are encrypted
// before they reach storage.
type SettingsInput struct {
	BusinessName *string `json:"business_name"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`

	IncludeBusinessName *bool `json:"include_business_name"`
	IncludeAddress      *bool `json:"include_address"`
	IncludePhone        *bool `json:"include_phone"`
	IncludeEmail        *bool `json:"include_email"`

	SystemPrompt *string `json:"system_prompt"`
	LLMProvider  *string `json:"llm_provider"`

	GeminiAPIKey    *string `json:"gemini_api_key"`
	OpenAIAPIKey    *string `json:"openai_api_key"`
	AnthropicAPIKey *string `json:"anthropic_api_key"`

	XAPIKey        *string `json:"x_api_key"`
	FacebookToken  *string `json:"facebook_token"`
	InstagramToken *string `json:"instagram_token"`
	LinkedInToken  *string `json:"linkedin_token"`
	TikTokToken    *string `json:"tiktok_token"`
	SnapchatToken  *string `json:"snapchat_token"`

	XURL         *string `json:"x_url"`
	FacebookURL  *string `json:"facebook_url"`
	InstagramURL *string `json:"instagram_url"`
	LinkedInURL  *string `json:"linkedin_url"`
	TikTokURL    *string `json:"tiktok_url"`
	SnapchatURL  *string `json:"snapchat_url"`
	WebsiteURL   *string `json:"website_url"`
}

// LoadSettings returns the decrypted settings view for a user. A user without
// a settings row gets the zero view with the default provider.
func LoadSettings(userID uuid.UUID) (SettingsView, error) {
	var row models.UserSettings
	err := DB.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return SettingsView{LLMProvider: "gemini"}, nil
	}
	if err != nil {
		return SettingsView{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return DecryptView(row), nil
}

// SaveSettings upserts the fields present in the input and leaves the rest
// untouched.
func SaveSettings(userID uuid.UUID, input SettingsInput) error {
	updates, err := BuildUpdates(input)
	if err != nil {
		return err
	}

	var row models.UserSettings
	err = DB.Where("user_id = ?", userID).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.UserSettings{UserID: userID}
		if err := DB.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create settings: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if len(updates) == 0 {
		return nil
	}
	if err := DB.Model(&row).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// DecryptView maps a stored row to the plaintext view. Kept free of database
// access so the round-trip invariants are testable on their own.
func DecryptView(row models.UserSettings) SettingsView {
	return SettingsView{
		BusinessName: row.BusinessName,
		Address:      row.Address,
		Phone:        row.Phone,
		Email:        row.Email,

		IncludeBusinessName: row.IncludeBusinessName,
		IncludeAddress:      row.IncludeAddress,
		IncludePhone:        row.IncludePhone,
		IncludeEmail:        row.IncludeEmail,

		SystemPrompt: row.SystemPrompt,
		LLMProvider:  row.LLMProvider,

		GeminiAPIKey:    decryptOrEmpty(row.GeminiAPIKey),
		OpenAIAPIKey:    decryptOrEmpty(row.OpenAIAPIKey),
		AnthropicAPIKey: decryptOrEmpty(row.AnthropicAPIKey),

		XAPIKey:        decryptOrEmpty(row.XAPIKey),
		FacebookToken:  decryptOrEmpty(row.FacebookToken),
		InstagramToken: decryptOrEmpty(row.InstagramToken),
		LinkedInToken:  decryptOrEmpty(row.LinkedInToken),
		TikTokToken:    decryptOrEmpty(row.TikTokToken),
		SnapchatToken:  decryptOrEmpty(row.SnapchatToken),

		XURL:         row.XURL,
		FacebookURL:  row.FacebookURL,
		InstagramURL: row.InstagramURL,
		LinkedInURL:  row.LinkedInURL,
		TikTokURL:    row.TikTokURL,
		SnapchatURL:  row.SnapchatURL,
		WebsiteURL:   row.WebsiteURL,
	}
}

func decryptOrEmpty(encoded string) string {
	if encoded == "" {
		return ""
	}
	plaintext, ok := crypto.Decrypt(encoded)
	if !ok {
		return ""
	}
	return plaintext
}

// BuildUpdates turns a partial input into a column->value map, encrypting
// credential fields on the way. Pure; no database access.
func BuildUpdates(input SettingsInput) (map[string]any, error) {
	updates := make(map[string]any)

	setString := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
		}
	}
	setBool := func(column string, v *bool) {
		if v != nil {
			updates[column] = *v
		}
	}

	setString("business_name", input.BusinessName)
	setString("address", input.Address)
	setString("phone", input.Phone)
	setString("email", input.Email)

	setBool("include_business_name", input.IncludeBusinessName)
	setBool("include_address", input.IncludeAddress)
	setBool("include_phone", input.IncludePhone)
	setBool("include_email", input.IncludeEmail)

	setString("system_prompt", input.SystemPrompt)
	setString("llm_provider", input.LLMProvider)

	setString("x_url", input.XURL)
	setString("facebook_url", input.FacebookURL)
	setString("instagram_url", input.InstagramURL)
	setString("linkedin_url", input.LinkedInURL)
	setString("tiktok_url", input.TikTokURL)
	setString("snapchat_url", input.SnapchatURL)
	setString("website_url", input.WebsiteURL)

	secrets := []struct {
		column string
		value  *string
	}{
		{"gemini_api_key", input.GeminiAPIKey},
		{"openai_api_key", input.OpenAIAPIKey},
		{"anthropic_api_key", input.AnthropicAPIKey},
		{"x_api_key", input.XAPIKey},
		{"facebook_token", input.FacebookToken},
		{"instagram_token", input.InstagramToken},
		{"linkedin_token", input.LinkedInToken},
		{"tiktok_token", input.TikTokToken},
		{"snapchat_token", input.SnapchatToken},
	}
	for _, s := range secrets {
		if s.value == nil {
			continue
		}
		if *s.value == "" {
			// Explicit empty clears the stored credential.
			updates[s.column] = ""
			continue
		}
		encrypted, err := crypto.Encrypt(*s.value)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt %s: %w", s.column, err)
		}
		updates[s.column] = encrypted
	}

	return updates, nil
}
