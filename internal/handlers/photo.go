package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apierrors "github.com/genmatch/genmatch-api/internal/errors"
	"github.com/genmatch/genmatch-api/internal/middleware"
	"github.com/genmatch/genmatch-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PhotoHandler coordinates evidence photo HTTP handlers.
type PhotoHandler struct {
	photoService *services.PhotoService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// UploadPhoto records an evidence photo in PENDING review state.
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	type UploadPhotoRequest struct {
		TaskID      uint64 `json:"taskId"`
		PhotoURL    string `json:"photoUrl"`
		Description string `json:"description"`
		UploadedBy  uint64 `json:"uploadedBy"`
	}

	var req UploadPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	photo, err := h.photoService.UploadPhoto(services.UploadPhotoInput{
		TaskID:      req.TaskID,
		PhotoURL:    req.PhotoURL,
		Description: req.Description,
		UploadedBy:  req.UploadedBy,
	})
	if err != nil {
		respondPhotoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"photoId": photo.ID,
	})
}

// ListPhotos returns photos filtered by task and review status.
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	input := services.ListPhotosInput{
		Status: c.Query("status"),
	}

	if taskIDStr := c.Query("taskId"); taskIDStr != "" {
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid taskId")
			return
		}
		input.TaskID = &taskID
	}

	photos, err := h.photoService.ListPhotos(input)
	if err != nil {
		respondPhotoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"photos":  photos,
		"count":   len(photos),
	})
}

// GetPhoto returns a single photo by ID.
func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	photoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid photo ID")
		return
	}

	photo, err := h.photoService.GetPhoto(photoID)
	if err != nil {
		respondPhotoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"photo":   photo,
	})
}

// UpdatePhotoStatus moves a photo through the review workflow.
func (h *PhotoHandler) UpdatePhotoStatus(c *gin.Context) {
	photoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid photo ID")
		return
	}

	type UpdatePhotoStatusRequest struct {
		Status     string `json:"status" binding:"required"`
		ApprovedBy uint64 `json:"approvedBy"`
		Notes      string `json:"notes"`
	}

	var req UpdatePhotoStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reviewerID := req.ApprovedBy
	if reviewerID == 0 {
		if userID, ok := middleware.GetUserID(c); ok {
			reviewerID = userID
		}
	}

	photo, err := h.photoService.ReviewPhoto(photoID, services.ReviewPhotoInput{
		Status:     req.Status,
		ReviewerID: reviewerID,
		Notes:      req.Notes,
	})
	if err != nil {
		respondPhotoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"photo":   photo,
	})
}

func respondPhotoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPhotoNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidPhotoStatus),
		errors.Is(err, services.ErrPhotoFieldsRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
