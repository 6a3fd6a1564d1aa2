package dto

import (
	"time"

	"github.com/genmatch/genmatch-api/internal/models"
)

// RatingDTO represents a rating joined with participant names
type RatingDTO struct {
	ID            uint64    `json:"id"`
	TaskID        uint64    `json:"taskId"`
	RaterID       uint64    `json:"raterId"`
	RaterName     string    `json:"raterName,omitempty"`
	RatedUserID   uint64    `json:"ratedUserId"`
	RatedUserName string    `json:"ratedUserName,omitempty"`
	Rating        int       `json:"rating"`
	Category      string    `json:"category"`
	Review        string    `json:"review"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToRatingDTO converts a Rating with preloaded users to RatingDTO
func ToRatingDTO(rating models.Rating) RatingDTO {
	dto := RatingDTO{
		ID:          rating.ID,
		TaskID:      rating.TaskID,
		RaterID:     rating.RaterID,
		RatedUserID: rating.RatedUserID,
		Rating:      rating.Rating,
		Category:    rating.Category,
		Review:      rating.Review,
		CreatedAt:   rating.CreatedAt,
	}

	if rating.Rater.ID != 0 {
		dto.RaterName = rating.Rater.Name
	}
	if rating.RatedUser.ID != 0 {
		dto.RatedUserName = rating.RatedUser.Name
	}

	return dto
}

// ToRatingDTOs converts a slice of ratings
func ToRatingDTOs(ratings []models.Rating) []RatingDTO {
	dtos := make([]RatingDTO, len(ratings))
	for i, rating := range ratings {
		dtos[i] = ToRatingDTO(rating)
	}
	return dtos
}
