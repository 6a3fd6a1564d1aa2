package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/genmatch/genmatch-api/internal/models"
	"github.com/genmatch/genmatch-api/internal/repository"
)

var (
	ErrNotifFieldsRequired = errors.New("userId, type and title are required")
	ErrNotifTargetRequired = errors.New("notificationIds or markAll with userId is required")
)

// NotificationService manages the append-only notification feed
type NotificationService struct {
	notifRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

// CreateNotificationInput represents input for creating a notification
type CreateNotificationInput struct {
	UserID  uint64
	Type    string
	Title   string
	Message string
	TaskID  *uint64
}

// CreateNotification inserts an unread notification
func (s *NotificationService) CreateNotification(input CreateNotificationInput) (*models.Notification, error) {
	if input.UserID == 0 || strings.TrimSpace(input.Type) == "" || strings.TrimSpace(input.Title) == "" {
		return nil, ErrNotifFieldsRequired
	}

	notification := &models.Notification{
		UserID:  input.UserID,
		Type:    models.NotificationType(strings.TrimSpace(input.Type)),
		Title:   strings.TrimSpace(input.Title),
		Message: input.Message,
		TaskID:  input.TaskID,
	}

	if err := s.notifRepo.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return notification, nil
}

// ListNotificationsInput represents filters for listing notifications
type ListNotificationsInput struct {
	UserID uint64
	Type   string
	IsRead *bool
}

// ListNotifications returns a user's notifications, newest first
func (s *NotificationService) ListNotifications(input ListNotificationsInput) ([]models.Notification, error) {
	if input.UserID == 0 {
		return nil, ErrNotifFieldsRequired
	}

	filter := repository.NotificationFilter{
		UserID: input.UserID,
		IsRead: input.IsRead,
	}
	if input.Type != "" {
		notifType := models.NotificationType(input.Type)
		filter.Type = &notifType
	}

	notifications, err := s.notifRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkReadInput represents input for marking notifications read
type MarkReadInput struct {
	NotificationIDs []uint64
	MarkAll         bool
	UserID          uint64
}

// MarkRead flags notifications as read, either a given set of IDs or every
// unread notification of a user. isRead is the only mutable field.
func (s *NotificationService) MarkRead(input MarkReadInput) error {
	switch {
	case input.MarkAll && input.UserID != 0:
		if err := s.notifRepo.MarkAllRead(input.UserID); err != nil {
			return fmt.Errorf("failed to mark notifications read: %w", err)
		}
		return nil
	case len(input.NotificationIDs) > 0:
		if err := s.notifRepo.MarkRead(input.NotificationIDs); err != nil {
			return fmt.Errorf("failed to mark notifications read: %w", err)
		}
		return nil
	default:
		return ErrNotifTargetRequired
	}
}
