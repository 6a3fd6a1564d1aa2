package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apierrors "github.com/genmatch/genmatch-api/internal/errors"
	"github.com/genmatch/genmatch-api/internal/services"
	"github.com/gin-gonic/gin"
)

// NotificationHandler coordinates notification HTTP handlers.
type NotificationHandler struct {
	notifService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notifService: notifService,
	}
}

// CreateNotification inserts an unread notification for a user.
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	type CreateNotificationRequest struct {
		UserID  uint64  `json:"userId"`
		Type    string  `json:"type"`
		Title   string  `json:"title"`
		Message string  `json:"message"`
		TaskID  *uint64 `json:"taskId"`
	}

	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	notification, err := h.notifService.CreateNotification(services.CreateNotificationInput{
		UserID:  req.UserID,
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
		TaskID:  req.TaskID,
	})
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"notificationId": notification.ID,
	})
}

// ListNotifications returns a user's notifications, newest first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("userId"), 10, 64)
	if err != nil || userID == 0 {
		apierrors.BadRequest(c, "userId is required")
		return
	}

	input := services.ListNotificationsInput{
		UserID: userID,
		Type:   c.Query("type"),
	}
	if isReadStr := c.Query("isRead"); isReadStr != "" {
		isRead, err := strconv.ParseBool(isReadStr)
		if err != nil {
			apierrors.BadRequest(c, "Invalid isRead")
			return
		}
		input.IsRead = &isRead
	}

	notifications, err := h.notifService.ListNotifications(input)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkRead flags notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	type MarkReadRequest struct {
		NotificationIDs []uint64 `json:"notificationIds"`
		MarkAll         bool     `json:"markAll"`
		UserID          uint64   `json:"userId"`
	}

	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.notifService.MarkRead(services.MarkReadInput{
		NotificationIDs: req.NotificationIDs,
		MarkAll:         req.MarkAll,
		UserID:          req.UserID,
	})
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notifications marked as read",
	})
}

func respondNotificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotifFieldsRequired),
		errors.Is(err, services.ErrNotifTargetRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
