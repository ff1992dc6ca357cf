package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	PostStatusSaved  = "saved"
	PostStatusPosted = "posted"
)

// Post is a generated draft persisted by its owner. Status moves one way,
// saved -> posted, when a publish succeeds.
type Post struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID   uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Platform string    `json:"platform" gorm:"not null"`
	Content  string    `json:"content" gorm:"type:text;not null"`
	Hashtags []string  `json:"hashtags" gorm:"serializer:json"`
	Status   string    `json:"status" gorm:"default:saved"`
	PostedAt time.Time `json:"postedAt"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
