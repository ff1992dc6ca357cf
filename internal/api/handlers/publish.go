package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/postarmory/postarmory/internal/models"
	"github.com/postarmory/postarmory/internal/repositories"
	"github.com/postarmory/postarmory/internal/social"
	"github.com/postarmory/postarmory/internal/utils"
)

// PublishOutcome makes the two phases of publishing representable on their
// own: the platform call and the subsequent status bookkeeping. A publish
// that succeeded but whose status update failed needs reconciliation, not a
// retry, so the two must never be conflated.
type PublishOutcome struct {
	Published      bool   `json:"published"`
	StatusRecorded bool   `json:"statusRecorded"`
	PlatformPostID string `json:"platformPostId,omitempty"`
}

// markPosted flips the draft to posted. Package var so the bookkeeping
// failure path is testable.
var markPosted = func(post *models.Post) error {
	return repositories.DB.Model(post).Updates(map[string]any{
		"status":    models.PostStatusPosted,
		"posted_at": time.Now(),
	}).Error
}

// publishDraft runs both phases. A non-nil error means nothing reached the
// platform; a nil error with StatusRecorded false means the post is live but
// its status needs manual reconciliation.
func publishDraft(ctx context.Context, publisher social.Publisher, post *models.Post, text string) (PublishOutcome, error) {
	platformPostID, err := publisher.Publish(ctx, text)
	if err != nil {
		return PublishOutcome{}, err
	}

	outcome := PublishOutcome{Published: true, PlatformPostID: platformPostID}
	if err := markPosted(post); err != nil {
		return outcome, nil
	}
	outcome.StatusRecorded = true
	return outcome, nil
}

// PublishPost godoc
// @Summary Publish a saved draft to its platform
// @Tags Posts
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload "Validation failed before any platform call"
// @Failure 501 {object} utils.Payload "Platform has no publish adapter yet"
// @Failure 502 {object} utils.Payload "Platform rejected the publish"
// @Router /api/v1/posts/{id}/publish [post]
func PublishPost(w http.ResponseWriter, r *http.Request) {
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

	post, err := ownedPost(r, userID)
	if err != nil {
		status, message := ownedPostError(err)
		utils.JSONResponse(w, status, utils.Payload{
			Success: false,
			Message: message,
		})
		return
	}

	if post.Status == models.PostStatusPosted {
		utils.JSONResponse(w, http.StatusConflict, utils.Payload{
			Success: false,
			Message: "Post has already been published",
		})
		return
	}

	publisher, err := social.ForPlatform(post.Platform)
	if err != nil {
		utils.JSONResponse(w, http.StatusNotImplemented, utils.Payload{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	text := social.ComposeText(post.Content, post.Hashtags)

	// Validation failures cost nothing: they are caught before any platform
	// call is made.
	if err := publisher.Validate(text); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	outcome, err := publishDraft(r.Context(), publisher, post, text)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, social.ErrEmptyText) || errors.Is(err, social.ErrTextTooLong) {
			status = http.StatusBadRequest
		}
		utils.JSONResponse(w, status, utils.Payload{
			Success: false,
			Message: fmt.Sprintf("Failed to publish to %s: %v", post.Platform, err),
			Data:    PublishOutcome{},
		})
		return
	}

	if !outcome.StatusRecorded {
		// The post is live; only the bookkeeping failed. Do not let this
		// read as a publish failure or the caller may double-publish.
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "Published, but the post status could not be recorded. Do not publish again; the status needs manual reconciliation.",
			Data:    outcome,
		})
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: fmt.Sprintf("Published to %s successfully", post.Platform),
		Data:    outcome,
	})
}
