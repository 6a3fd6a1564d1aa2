package repository

import (
	"errors"

	"github.com/genmatch/genmatch-api/internal/models"
)

// ErrNoRowsAffected signals that a conditional update matched no row.
var ErrNoRowsAffected = errors.New("no rows affected")

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Category *models.TaskCategory
	Location string
	Search   string
	Page     int
	PageSize int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter, newest first
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListByCreator lists tasks created by a user, newest first
	ListByCreator(creatorID uint64) ([]models.Task, error)

	// ListByVolunteer lists tasks assigned to a volunteer, newest first
	ListByVolunteer(volunteerID uint64) ([]models.Task, error)

	// Claim atomically assigns a volunteer to a PENDING, unassigned task.
	// Returns ErrNoRowsAffected when the task is missing or already claimed.
	Claim(taskID, volunteerID uint64) error

	// Complete atomically completes an ACCEPTED task held by the volunteer.
	// Returns ErrNoRowsAffected when no such row exists.
	Complete(taskID, volunteerID uint64, completionNotes string) error

	// UpdateStatus sets status, progress and notes on a task
	UpdateStatus(taskID uint64, status models.TaskStatus, progress int, notes string) error

	// Delete soft deletes a task
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByPhone finds a user by phone number
	FindByPhone(phone string) (*models.User, error)
}

// RatingFilter holds filtering options for listing ratings
type RatingFilter struct {
	RatedUserID *uint64
	TaskID      *uint64
	Category    string
}

// RatingRepository defines the interface for rating data access
type RatingRepository interface {
	// Create creates a new rating
	Create(rating *models.Rating) error

	// Exists reports whether a rating exists for the (task, rater, rated) triple
	Exists(taskID, raterID, ratedUserID uint64) (bool, error)

	// List retrieves ratings with rater and rated user preloaded, newest first
	List(filter RatingFilter) ([]models.Rating, error)
}

// PhotoFilter holds filtering options for listing task photos
type PhotoFilter struct {
	TaskID *uint64
	Status *models.PhotoStatus
}

// PhotoRepository defines the interface for task photo data access
type PhotoRepository interface {
	// Create creates a new photo record
	Create(photo *models.TaskPhoto) error

	// FindByID finds a photo by ID
	FindByID(id uint64) (*models.TaskPhoto, error)

	// List retrieves photos matching the filter, newest first
	List(filter PhotoFilter) ([]models.TaskPhoto, error)

	// Update persists review-state changes on a photo
	Update(photo *models.TaskPhoto) error
}

// ChatRepository defines the interface for chat message data access
type ChatRepository interface {
	// Create appends a chat message
	Create(message *models.ChatMessage) error

	// ListByTask lists messages of a task in chronological order
	ListByTask(taskID uint64) ([]models.ChatMessage, error)

	// ListByUser lists messages sent or received by a user in chronological order
	ListByUser(userID uint64) ([]models.ChatMessage, error)
}

// NotificationFilter holds filtering options for listing notifications
type NotificationFilter struct {
	UserID uint64
	Type   *models.NotificationType
	IsRead *bool
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create creates a new notification
	Create(notification *models.Notification) error

	// List retrieves notifications for a user, newest first
	List(filter NotificationFilter) ([]models.Notification, error)

	// MarkRead flags the given notifications as read
	MarkRead(ids []uint64) error

	// MarkAllRead flags every unread notification of a user as read
	MarkAllRead(userID uint64) error
}
