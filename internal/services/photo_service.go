package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/genmatch/genmatch-api/internal/models"
	"github.com/genmatch/genmatch-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrPhotoNotFound       = errors.New("photo not found")
	ErrInvalidPhotoStatus  = errors.New("invalid photo status")
	ErrPhotoFieldsRequired = errors.New("taskId, photoUrl, description and uploadedBy are required")
)

// PhotoService manages the evidence photo review workflow
type PhotoService struct {
	photoRepo repository.PhotoRepository
	taskRepo  repository.TaskRepository
}

// NewPhotoService creates a new PhotoService
func NewPhotoService(photoRepo repository.PhotoRepository, taskRepo repository.TaskRepository) *PhotoService {
	return &PhotoService{
		photoRepo: photoRepo,
		taskRepo:  taskRepo,
	}
}

// UploadPhotoInput represents input for uploading an evidence photo
type UploadPhotoInput struct {
	TaskID      uint64
	PhotoURL    string
	Description string
	UploadedBy  uint64
}

// UploadPhoto records a new photo in PENDING review state
func (s *PhotoService) UploadPhoto(input UploadPhotoInput) (*models.TaskPhoto, error) {
	if input.TaskID == 0 || input.UploadedBy == 0 ||
		strings.TrimSpace(input.PhotoURL) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, ErrPhotoFieldsRequired
	}

	if _, err := s.taskRepo.FindByID(input.TaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	photo := &models.TaskPhoto{
		TaskID:      input.TaskID,
		PhotoURL:    strings.TrimSpace(input.PhotoURL),
		Description: strings.TrimSpace(input.Description),
		UploadedBy:  input.UploadedBy,
		Status:      models.PhotoStatusPending,
	}

	if err := s.photoRepo.Create(photo); err != nil {
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}

	return photo, nil
}

// GetPhoto returns a photo by ID
func (s *PhotoService) GetPhoto(id uint64) (*models.TaskPhoto, error) {
	photo, err := s.photoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to find photo: %w", err)
	}
	return photo, nil
}

// ListPhotosInput represents filters for listing photos
type ListPhotosInput struct {
	TaskID *uint64
	Status string
}

// ListPhotos returns photos matching the filter, newest first
func (s *PhotoService) ListPhotos(input ListPhotosInput) ([]models.TaskPhoto, error) {
	filter := repository.PhotoFilter{TaskID: input.TaskID}

	if input.Status != "" {
		status := models.PhotoStatus(input.Status)
		if !models.ValidPhotoStatus(status) {
			return nil, ErrInvalidPhotoStatus
		}
		filter.Status = &status
	}

	photos, err := s.photoRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}

// ReviewPhotoInput represents input for a photo status change
type ReviewPhotoInput struct {
	Status     string
	ReviewerID uint64
	Notes      string
}

// ReviewPhoto moves a photo to any review state. APPROVED stamps the reviewer
// and time; PENDING and REJECTED clear them.
func (s *PhotoService) ReviewPhoto(photoID uint64, input ReviewPhotoInput) (*models.TaskPhoto, error) {
	status := models.PhotoStatus(input.Status)
	if !models.ValidPhotoStatus(status) {
		return nil, ErrInvalidPhotoStatus
	}

	photo, err := s.photoRepo.FindByID(photoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to find photo: %w", err)
	}

	photo.Status = status
	photo.Notes = input.Notes
	if status == models.PhotoStatusApproved {
		now := time.Now()
		photo.ApprovedBy = &input.ReviewerID
		photo.ApprovedAt = &now
	} else {
		photo.ApprovedBy = nil
		photo.ApprovedAt = nil
	}

	if err := s.photoRepo.Update(photo); err != nil {
		return nil, fmt.Errorf("failed to update photo: %w", err)
	}

	return photo, nil
}
