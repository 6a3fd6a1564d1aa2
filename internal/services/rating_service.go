package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/genmatch/genmatch-api/internal/models"
	"github.com/genmatch/genmatch-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSelfRating           = errors.New("rater and rated user must differ")
	ErrRatingOutOfRange     = errors.New("rating must be between 1 and 5")
	ErrRatingNotTaskParty   = errors.New("rating must involve the task creator")
	ErrDuplicateRating      = errors.New("rating already exists for this task and user pair")
	ErrRatingFieldsRequired = errors.New("taskId, raterId, ratedUserId and category are required")
)

// RatingService gates rating creation and serves rating reads
type RatingService struct {
	ratingRepo repository.RatingRepository
	taskRepo   repository.TaskRepository
	notifRepo  repository.NotificationRepository
}

// NewRatingService creates a new RatingService
func NewRatingService(ratingRepo repository.RatingRepository, taskRepo repository.TaskRepository, notifRepo repository.NotificationRepository) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		taskRepo:   taskRepo,
		notifRepo:  notifRepo,
	}
}

// CreateRatingInput represents input for creating a rating
type CreateRatingInput struct {
	TaskID      uint64
	RaterID     uint64
	RatedUserID uint64
	Rating      int
	Category    string
	Review      string
}

// CreateRating validates rating eligibility and inserts the rating.
// A rating is only valid between a task's creator and its other participant,
// at most once per (task, rater, rated) triple.
func (s *RatingService) CreateRating(input CreateRatingInput) (*models.Rating, error) {
	if input.TaskID == 0 || input.RaterID == 0 || input.RatedUserID == 0 ||
		strings.TrimSpace(input.Category) == "" {
		return nil, ErrRatingFieldsRequired
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrRatingOutOfRange
	}
	if input.RaterID == input.RatedUserID {
		return nil, ErrSelfRating
	}

	task, err := s.taskRepo.FindByID(input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.RaterID != task.CreatorID && input.RatedUserID != task.CreatorID {
		return nil, ErrRatingNotTaskParty
	}

	exists, err := s.ratingRepo.Exists(input.TaskID, input.RaterID, input.RatedUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing rating: %w", err)
	}
	if exists {
		return nil, ErrDuplicateRating
	}

	rating := &models.Rating{
		TaskID:      input.TaskID,
		RaterID:     input.RaterID,
		RatedUserID: input.RatedUserID,
		Rating:      input.Rating,
		Category:    strings.TrimSpace(input.Category),
		Review:      input.Review,
	}

	if err := s.ratingRepo.Create(rating); err != nil {
		return nil, fmt.Errorf("failed to create rating: %w", err)
	}

	if s.notifRepo != nil {
		n := &models.Notification{
			UserID:  input.RatedUserID,
			Type:    models.NotifNewRating,
			Title:   "You received a new rating",
			Message: fmt.Sprintf("You were rated %d/5 on \"%s\"", input.Rating, task.Title),
			TaskID:  &task.ID,
		}
		// Best effort, the rating itself is already stored
		_ = s.notifRepo.Create(n)
	}

	return rating, nil
}

// ListRatingsInput represents filters for listing ratings
type ListRatingsInput struct {
	RatedUserID *uint64
	TaskID      *uint64
	Category    string
}

// ListRatings returns ratings with rater and rated names, newest first
func (s *RatingService) ListRatings(input ListRatingsInput) ([]models.Rating, error) {
	ratings, err := s.ratingRepo.List(repository.RatingFilter{
		RatedUserID: input.RatedUserID,
		TaskID:      input.TaskID,
		Category:    input.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	return ratings, nil
}
