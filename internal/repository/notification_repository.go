package repository

import (
	"github.com/genmatch/genmatch-api/internal/models"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create creates a new notification
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// List retrieves notifications for a user, newest first
func (r *GormNotificationRepository) List(filter NotificationFilter) ([]models.Notification, error) {
	var notifications []models.Notification

	query := r.db.Model(&models.Notification{}).Where("user_id = ?", filter.UserID)
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}

	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// MarkRead flags the given notifications as read
func (r *GormNotificationRepository) MarkRead(ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Notification{}).
		Where("id IN ?", ids).
		Update("is_read", true).Error
}

// MarkAllRead flags every unread notification of a user as read
func (r *GormNotificationRepository) MarkAllRead(userID uint64) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
