package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/genmatch/genmatch-api/internal/dto"
	apierrors "github.com/genmatch/genmatch-api/internal/errors"
	"github.com/genmatch/genmatch-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RatingHandler coordinates rating-related HTTP handlers.
type RatingHandler struct {
	ratingService *services.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// CreateRating records a rating between a task's creator and its volunteer.
func (h *RatingHandler) CreateRating(c *gin.Context) {
	type CreateRatingRequest struct {
		TaskID      uint64 `json:"taskId"`
		RaterID     uint64 `json:"raterId"`
		RatedUserID uint64 `json:"ratedUserId"`
		Rating      int    `json:"rating"`
		Category    string `json:"category"`
		Review      string `json:"review"`
	}

	var req CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	rating, err := h.ratingService.CreateRating(services.CreateRatingInput{
		TaskID:      req.TaskID,
		RaterID:     req.RaterID,
		RatedUserID: req.RatedUserID,
		Rating:      req.Rating,
		Category:    req.Category,
		Review:      req.Review,
	})
	if err != nil {
		respondRatingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"ratingId": rating.ID,
	})
}

// ListRatings returns ratings for a user or a task, with joined names.
func (h *RatingHandler) ListRatings(c *gin.Context) {
	input := services.ListRatingsInput{
		Category: c.Query("category"),
	}

	if userIDStr := c.Query("userId"); userIDStr != "" {
		userID, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid userId")
			return
		}
		input.RatedUserID = &userID
	}
	if taskIDStr := c.Query("taskId"); taskIDStr != "" {
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid taskId")
			return
		}
		input.TaskID = &taskID
	}

	ratings, err := h.ratingService.ListRatings(input)
	if err != nil {
		respondRatingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"ratings": dto.ToRatingDTOs(ratings),
		"count":   len(ratings),
	})
}

func respondRatingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSelfRating),
		errors.Is(err, services.ErrRatingOutOfRange),
		errors.Is(err, services.ErrRatingNotTaskParty),
		errors.Is(err, services.ErrDuplicateRating),
		errors.Is(err, services.ErrRatingFieldsRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
