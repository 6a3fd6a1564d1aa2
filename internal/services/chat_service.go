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
	ErrChatFieldsRequired = errors.New("taskId, senderId, receiverId and message are required")
	ErrChatScopeRequired  = errors.New("either taskId or userId is required")
)

// ChatService serves the append-only per-task message log
type ChatService struct {
	chatRepo  repository.ChatRepository
	taskRepo  repository.TaskRepository
	notifRepo repository.NotificationRepository
}

// NewChatService creates a new ChatService
func NewChatService(chatRepo repository.ChatRepository, taskRepo repository.TaskRepository, notifRepo repository.NotificationRepository) *ChatService {
	return &ChatService{
		chatRepo:  chatRepo,
		taskRepo:  taskRepo,
		notifRepo: notifRepo,
	}
}

// SendMessageInput represents input for appending a chat message
type SendMessageInput struct {
	TaskID     uint64
	SenderID   uint64
	ReceiverID uint64
	Message    string
}

// SendMessage appends a message to a task's chat
func (s *ChatService) SendMessage(input SendMessageInput) (*models.ChatMessage, error) {
	if input.TaskID == 0 || input.SenderID == 0 || input.ReceiverID == 0 ||
		strings.TrimSpace(input.Message) == "" {
		return nil, ErrChatFieldsRequired
	}

	if _, err := s.taskRepo.FindByID(input.TaskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	message := &models.ChatMessage{
		TaskID:     input.TaskID,
		SenderID:   input.SenderID,
		ReceiverID: input.ReceiverID,
		Message:    strings.TrimSpace(input.Message),
	}

	if err := s.chatRepo.Create(message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if s.notifRepo != nil {
		n := &models.Notification{
			UserID:  input.ReceiverID,
			Type:    models.NotifNewMessage,
			Title:   "New message",
			Message: "You have a new message on one of your tasks",
			TaskID:  &input.TaskID,
		}
		_ = s.notifRepo.Create(n)
	}

	return message, nil
}

// ListMessages returns messages scoped by task or by user, oldest first
func (s *ChatService) ListMessages(taskID, userID *uint64) ([]models.ChatMessage, error) {
	switch {
	case taskID != nil:
		messages, err := s.chatRepo.ListByTask(*taskID)
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
		return messages, nil
	case userID != nil:
		messages, err := s.chatRepo.ListByUser(*userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}
		return messages, nil
	default:
		return nil, ErrChatScopeRequired
	}
}
