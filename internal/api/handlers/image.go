package handlers

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/postarmory/postarmory/internal/config"
	"github.com/postarmory/postarmory/internal/imagen"
	"github.com/postarmory/postarmory/internal/repositories"
	"github.com/postarmory/postarmory/internal/utils"
)

// GenerateImage godoc
// @Summary Generate an accompanying image for a post
// @Description Renders a 1:1 image from the prompt. When object storage is configured the image is also uploaded and a time-limited download URL returned.
// @Tags Generate
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/generate-image [post]
func GenerateImage(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUserID(r); !ok {
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
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || strings.TrimSpace(input.Prompt) == "" {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Prompt is required",
		})
		return
	}

	client := imagen.NewClient(config.Envs.Vertex)
	img, err := client.GenerateImage(r.Context(), input.Prompt)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	data := map[string]any{
		"image": "data:image/png;base64," + base64.StdEncoding.EncodeToString(img),
	}

	// Storage is best-effort: the inline image above is always usable.
	if repositories.R2Client != nil {
		key := fmt.Sprintf("images/%s.png", uuid.New())
		if err := repositories.UploadObject(r.Context(), key, img, "image/png"); err == nil {
			if url, err := repositories.GeneratePresignedGetURL(r.Context(), key, 24*time.Hour); err == nil {
				data["url"] = url
			}
		}
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Image generated",
		Data:    data,
	})
}
