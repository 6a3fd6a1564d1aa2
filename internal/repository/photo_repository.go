package repository

import (
	"github.com/genmatch/genmatch-api/internal/models"
	"gorm.io/gorm"
)

// GormPhotoRepository is a GORM implementation of PhotoRepository
type GormPhotoRepository struct {
	db *gorm.DB
}

// NewPhotoRepository creates a new PhotoRepository
func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &GormPhotoRepository{db: db}
}

// Create creates a new photo record
func (r *GormPhotoRepository) Create(photo *models.TaskPhoto) error {
	return r.db.Create(photo).Error
}

// FindByID finds a photo by ID
func (r *GormPhotoRepository) FindByID(id uint64) (*models.TaskPhoto, error) {
	var photo models.TaskPhoto
	if err := r.db.First(&photo, id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// List retrieves photos matching the filter, newest first
func (r *GormPhotoRepository) List(filter PhotoFilter) ([]models.TaskPhoto, error) {
	var photos []models.TaskPhoto

	query := r.db.Model(&models.TaskPhoto{})
	if filter.TaskID != nil {
		query = query.Where("task_id = ?", *filter.TaskID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	err := query.Order("created_at DESC").Find(&photos).Error
	return photos, err
}

// Update persists review-state changes on a photo. Save writes all fields so
// cleared approval columns (NULL approvedBy/approvedAt) are persisted too.
func (r *GormPhotoRepository) Update(photo *models.TaskPhoto) error {
	return r.db.Save(photo).Error
}
