package repository

import (
	"github.com/genmatch/genmatch-api/internal/models"
	"gorm.io/gorm"
)

// GormChatRepository is a GORM implementation of ChatRepository
type GormChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

// Create appends a chat message
func (r *GormChatRepository) Create(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

// ListByTask lists messages of a task in chronological order
func (r *GormChatRepository) ListByTask(taskID uint64) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.
		Where("task_id = ?", taskID).
		Preload("Sender").
		Preload("Receiver").
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// ListByUser lists messages sent or received by a user in chronological order
func (r *GormChatRepository) ListByUser(userID uint64) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Preload("Sender").
		Preload("Receiver").
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
