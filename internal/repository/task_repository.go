package repository

import (
	"github.com/genmatch/genmatch-api/internal/database"
	"github.com/genmatch/genmatch-api/internal/models"
	"github.com/genmatch/genmatch-api/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks matching the filter, newest first
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	if filter.Category != nil {
		query = query.Where("tasks.category = ?", *filter.Category)
	}
	if filter.Location != "" {
		query = query.Where("tasks.location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"tasks.title LIKE ? OR tasks.description LIKE ? OR tasks.tags LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Preload("Creator").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// ListByCreator lists tasks created by a user, newest first
func (r *GormTaskRepository) ListByCreator(creatorID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// ListByVolunteer lists tasks assigned to a volunteer, newest first
func (r *GormTaskRepository) ListByVolunteer(volunteerID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("volunteer_id = ?", volunteerID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// Claim atomically assigns a volunteer to a PENDING, unassigned task. The
// status check and the write are a single conditional UPDATE so two
// concurrent claims cannot both pass: the second one matches zero rows.
func (r *GormTaskRepository) Claim(taskID, volunteerID uint64) error {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND status = ? AND volunteer_id IS NULL", taskID, models.TaskStatusPending).
		Updates(map[string]interface{}{
			"status":       models.TaskStatusAccepted,
			"volunteer_id": volunteerID,
			"progress":     0,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// Complete atomically completes an ACCEPTED task held by the volunteer
func (r *GormTaskRepository) Complete(taskID, volunteerID uint64, completionNotes string) error {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND status = ? AND volunteer_id = ?", taskID, models.TaskStatusAccepted, volunteerID).
		Updates(map[string]interface{}{
			"status":           models.TaskStatusCompleted,
			"progress":         100,
			"completion_notes": completionNotes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// UpdateStatus sets status, progress and notes on a task
func (r *GormTaskRepository) UpdateStatus(taskID uint64, status models.TaskStatus, progress int, notes string) error {
	result := r.db.Model(&models.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"status":       status,
			"progress":     progress,
			"status_notes": notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
