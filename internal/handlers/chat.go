package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apierrors "github.com/genmatch/genmatch-api/internal/errors"
	"github.com/genmatch/genmatch-api/internal/services"
	"github.com/gin-gonic/gin"
)

// ChatHandler coordinates chat HTTP handlers.
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ListMessages returns messages for a task or a user, oldest first.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	var taskID, userID *uint64

	if taskIDStr := c.Query("taskId"); taskIDStr != "" {
		id, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid taskId")
			return
		}
		taskID = &id
	}
	if userIDStr := c.Query("userId"); userIDStr != "" {
		id, err := strconv.ParseUint(userIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid userId")
			return
		}
		userID = &id
	}

	messages, err := h.chatService.ListMessages(taskID, userID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": messages,
		"count":    len(messages),
	})
}

// SendMessage appends a message to a task's chat.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	type SendMessageRequest struct {
		TaskID     uint64 `json:"taskId"`
		SenderID   uint64 `json:"senderId"`
		ReceiverID uint64 `json:"receiverId"`
		Message    string `json:"message"`
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.chatService.SendMessage(services.SendMessageInput{
		TaskID:     req.TaskID,
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
	})
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"messageId": message.ID,
	})
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrChatFieldsRequired),
		errors.Is(err, services.ErrChatScopeRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
