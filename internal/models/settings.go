package models

import (
	"time"

	"github.com/google/uuid"
)

// UserSettings holds one row per user: business profile context for prompt
// assembly, the selected LLM provider, and per-provider / per-platform
// credentials. Credential columns are stored encrypted (see internal/crypto)
// and are never serialized into responses.
type UserSettings struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID uuid.UUID `json:"userId" gorm:"type:uuid;uniqueIndex;not null"`

	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`

	IncludeBusinessName bool `json:"include_business_name"`
	IncludeAddress      bool `json:"include_address"`
	IncludePhone        bool `json:"include_phone"`
	IncludeEmail        bool `json:"include_email"`

	SystemPrompt string `json:"system_prompt"`
	LLMProvider  string `json:"llm_provider" gorm:"default:gemini"`

	// Encrypted at rest
	GeminiAPIKey    string `json:"-" gorm:"type:text"`
	OpenAIAPIKey    string `json:"-" gorm:"type:text;column:openai_api_key"`
	AnthropicAPIKey string `json:"-" gorm:"type:text"`
	XAPIKey         string `json:"-" gorm:"type:text;column:x_api_key"`
	FacebookToken   string `json:"-" gorm:"type:text"`
	InstagramToken  string `json:"-" gorm:"type:text"`
	LinkedInToken   string `json:"-" gorm:"type:text;column:linkedin_token"`
	TikTokToken     string `json:"-" gorm:"type:text;column:tiktok_token"`
	SnapchatToken   string `json:"-" gorm:"type:text"`

	XURL         string `json:"x_url" gorm:"column:x_url"`
	FacebookURL  string `json:"facebook_url"`
	InstagramURL string `json:"instagram_url"`
	LinkedInURL  string `json:"linkedin_url" gorm:"column:linkedin_url"`
	TikTokURL    string `json:"tiktok_url" gorm:"column:tiktok_url"`
	SnapchatURL  string `json:"snapchat_url"`
	WebsiteURL   string `json:"website_url"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
