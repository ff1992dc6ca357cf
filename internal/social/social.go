package social

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/postarmory/postarmory/internal/config"
)

// Publisher adapts one social platform's publish API behind a uniform
// contract. Validate runs platform constraints before any network call;
// Publish validates, sends, and returns the platform's created-object id.
type Publisher interface {
	Validate(text string) error
	Publish(ctx context.Context, text string) (string, error)
}

var (
	// ErrUnsupportedPlatform marks the deliberate placeholder state for
	// platforms without an implemented adapter (Instagram, TikTok, Snapchat).
	ErrUnsupportedPlatform = errors.New("publishing to this platform is not yet supported")

	ErrEmptyText   = errors.New("post text cannot be empty")
	ErrTextTooLong = errors.New("post text exceeds the platform limit")
)

// ForPlatform maps a platform name to its publisher. The set is closed;
// adding a platform means adding an adapter plus one case here.
func ForPlatform(name string) (Publisher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "x", "twitter":
		return NewTwitterPublisher(config.Envs.Twitter), nil
	case "facebook":
		return NewFacebookPublisher(config.Envs.Facebook), nil
	case "linkedin":
		return NewLinkedInPublisher(config.Envs.LinkedIn), nil
	case "instagram", "tiktok", "snapchat":
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedPlatform)
	default:
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedPlatform)
	}
}

func validateText(text string, limit int) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}
	if n := len([]rune(text)); n > limit {
		return fmt.Errorf("%w: %d characters, limit is %d", ErrTextTooLong, n, limit)
	}
	return nil
}

// ComposeText builds the final text sent to a platform: the draft content
// plus its hashtags. Length limits apply to this composed text, since it is
// what the platform actually receives.
func ComposeText(content string, hashtags []string) string {
	tags := make([]string, 0, len(hashtags))
	for _, h := range hashtags {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if !strings.HasPrefix(h, "#") {
			h = "#" + h
		}
		tags = append(tags, h)
	}
	if len(tags) == 0 {
		return content
	}
	return content + "\n\n" + strings.Join(tags, " ")
}
