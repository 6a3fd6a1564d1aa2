package repository

import (
	"github.com/genmatch/genmatch-api/internal/models"
	"gorm.io/gorm"
)

// GormRatingRepository is a GORM implementation of RatingRepository
type GormRatingRepository struct {
	db *gorm.DB
}

// NewRatingRepository creates a new RatingRepository
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &GormRatingRepository{db: db}
}

// Create creates a new rating
func (r *GormRatingRepository) Create(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

// Exists reports whether a rating exists for the (task, rater, rated) triple
func (r *GormRatingRepository) Exists(taskID, raterID, ratedUserID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.Rating{}).
		Where("task_id = ? AND rater_id = ? AND rated_user_id = ?", taskID, raterID, ratedUserID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List retrieves ratings with rater and rated user preloaded, newest first
func (r *GormRatingRepository) List(filter RatingFilter) ([]models.Rating, error) {
	var ratings []models.Rating

	query := r.db.Model(&models.Rating{})
	if filter.RatedUserID != nil {
		query = query.Where("rated_user_id = ?", *filter.RatedUserID)
	}
	if filter.TaskID != nil {
		query = query.Where("task_id = ?", *filter.TaskID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	err := query.
		Preload("Rater").
		Preload("RatedUser").
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}
