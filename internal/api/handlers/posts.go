package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/postarmory/postarmory/internal/models"
	"github.com/postarmory/postarmory/internal/repositories"
	"github.com/postarmory/postarmory/internal/utils"
)

// Posts godoc
// @Summary List or save the caller's post drafts
// @Tags Posts
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /api/v1/posts [get]
// @Router /api/v1/posts [post]
func Posts(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Unauthorized",
		})
		return
	}

	switch r.Method {
	case http.MethodGet:
		var posts []models.Post
		err := repositories.DB.
			Where("user_id = ?", userID).
			Order("posted_at DESC").
			Find(&posts).Error
		if err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Success: false,
				Message: "Failed to fetch posts",
			})
			return
		}
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "Posts retrieved",
			Data:    map[string]any{"posts": posts},
		})

	case http.MethodPost:
		var input struct {
			Platform string   `json:"platform"`
			Content  string   `json:"content"`
			Hashtags []string `json:"hashtags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Platform == "" {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "Invalid input",
			})
			return
		}

		post := models.Post{
			UserID:   userID,
			Platform: input.Platform,
			Content:  input.Content,
			Hashtags: input.Hashtags,
			Status:   models.PostStatusSaved,
			PostedAt: time.Now(),
		}
		if err := repositories.DB.Create(&post).Error; err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Success: false,
				Message: "Failed to save post",
			})
			return
		}
		utils.JSONResponse(w, http.StatusCreated, utils.Payload{
			Success: true,
			Message: "Post saved successfully",
			Data:    map[string]any{"postId": post.ID},
		})

	default:
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
	}
}

var errInvalidPostID = errors.New("invalid post id")

// ownedPost loads a post by path id, scoped to the owner.
func ownedPost(r *http.Request, userID uuid.UUID) (*models.Post, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return nil, errInvalidPostID
	}

	var post models.Post
	err = repositories.DB.
		Where("id = ? AND user_id = ?", id, userID).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ownedPostError maps a lookup failure to a response status and message. A
// database failure is the server's fault, never blamed on the caller.
func ownedPostError(err error) (int, string) {
	switch {
	case errors.Is(err, errInvalidPostID):
		return http.StatusBadRequest, "Invalid post id"
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "Post not found or you do not have permission to access it"
	default:
		return http.StatusInternalServerError, "Database error"
	}
}

// PostByID godoc
// @Summary Edit or delete a post draft
// @Tags Posts
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/v1/posts/{id} [put]
// @Router /api/v1/posts/{id} [delete]
func PostByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Unauthorized",
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

	switch r.Method {
	case http.MethodPut:
		var input struct {
			Content  *string   `json:"content"`
			Hashtags *[]string `json:"hashtags"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "Invalid input",
			})
			return
		}

		updates := make(map[string]any)
		if input.Content != nil {
			updates["content"] = *input.Content
		}
		if input.Hashtags != nil {
			post.Hashtags = *input.Hashtags
			updates["hashtags"] = post.Hashtags
		}
		if len(updates) > 0 {
			if err := repositories.DB.Model(post).Updates(updates).Error; err != nil {
				utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
					Success: false,
					Message: "Failed to update post",
				})
				return
			}
		}
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "Post updated successfully",
		})

	case http.MethodDelete:
		if err := repositories.DB.Delete(post).Error; err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Success: false,
				Message: "Failed to delete post",
			})
			return
		}
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "Post deleted successfully",
		})

	default:
		utils.JSONResponse(w, http.StatusMethodNotAllowed, utils.Payload{
			Success: false,
			Message: "Method not allowed",
		})
	}
}
