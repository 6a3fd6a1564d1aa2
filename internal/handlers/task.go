package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/genmatch/genmatch-api/internal/dto"
	apierrors "github.com/genmatch/genmatch-api/internal/errors"
	"github.com/genmatch/genmatch-api/internal/middleware"
	"github.com/genmatch/genmatch-api/internal/models"
	"github.com/genmatch/genmatch-api/internal/services"
	"github.com/genmatch/genmatch-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new task in PENDING state.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title         string `json:"title"`
		Description   string `json:"description"`
		Category      string `json:"category"`
		Location      string `json:"location"`
		Date          string `json:"date"`
		StartTime     string `json:"startTime"`
		EndTime       string `json:"endTime"`
		MaxVolunteers int    `json:"maxVolunteers"`
		Requirements  string `json:"requirements"`
		Tags          string `json:"tags"`
		ContactName   string `json:"contactName"`
		ContactPhone  string `json:"contactPhone"`
		ContactEmail  string `json:"contactEmail"`
		CreatorID     uint64 `json:"creatorId"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.CreatorID == 0 {
		// Fall back to the authenticated caller
		if userID, ok := middleware.GetUserID(c); ok {
			req.CreatorID = userID
		}
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Location:      req.Location,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		MaxVolunteers: req.MaxVolunteers,
		Requirements:  req.Requirements,
		Tags:          req.Tags,
		ContactName:   req.ContactName,
		ContactPhone:  req.ContactPhone,
		ContactEmail:  req.ContactEmail,
		CreatorID:     req.CreatorID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"taskId":  task.ID,
	})
}

// ListTasks returns tasks filtered by category, location and free-text search.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(services.ListTasksInput{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Search:   c.Query("search"),
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tasks":   tasks,
		"count":   total,
	})
}

// ListMyTasks returns the caller's tasks bucketed by lifecycle stage.
// Identity comes from the bearer token or from explicit query parameters.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userID, hasUser := middleware.GetUserID(c)
	userType, _ := middleware.GetUserType(c)

	if !hasUser {
		id, err := strconv.ParseUint(c.Query("userId"), 10, 64)
		if err != nil || id == 0 {
			apierrors.Unauthorized(c, "Bearer token or userId/userType query parameters required")
			return
		}
		userID = id
		userType = models.UserType(c.Query("userType"))
	}

	myTasks, err := h.taskService.ListMyTasks(userID, userType)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"created":   myTasks.Created,
		"ongoing":   myTasks.Ongoing,
		"completed": myTasks.Completed,
	})
}

// AcceptTask claims a pending task for a volunteer.
func (h *TaskHandler) AcceptTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	type AcceptTaskRequest struct {
		UserID      uint64 `json:"userId"`
		VolunteerID uint64 `json:"volunteerId"`
	}

	var req AcceptTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	volunteerID := req.VolunteerID
	if volunteerID == 0 {
		volunteerID = req.UserID
	}
	if volunteerID == 0 {
		if userID, ok := middleware.GetUserID(c); ok {
			volunteerID = userID
		}
	}
	if volunteerID == 0 {
		apierrors.BadRequest(c, "userId or volunteerId is required")
		return
	}

	task, err := h.taskService.AcceptTask(taskID, volunteerID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task accepted",
		"task":    dto.ToTaskDetailDTO(*task),
	})
}

// CompleteTask marks an accepted task as completed.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	type CompleteTaskRequest struct {
		VolunteerID     uint64 `json:"volunteerId"`
		CompletionNotes string `json:"completionNotes"`
	}

	var req CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	volunteerID := req.VolunteerID
	if volunteerID == 0 {
		if userID, ok := middleware.GetUserID(c); ok {
			volunteerID = userID
		}
	}

	task, err := h.taskService.CompleteTask(taskID, volunteerID, req.CompletionNotes)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task completed",
		"task":    dto.ToTaskDetailDTO(*task),
	})
}

// UpdateTaskStatus applies a transition-checked status change.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status   string `json:"status" binding:"required"`
		Progress int    `json:"progress"`
		Notes    string `json:"notes"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateStatus(taskID, services.UpdateStatusInput{
		Status:   req.Status,
		Progress: req.Progress,
		Notes:    req.Notes,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    dto.ToTaskDetailDTO(*task),
	})
}

// GetTaskStatus returns a task joined with creator and volunteer details.
func (h *TaskHandler) GetTaskStatus(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"task":    dto.ToTaskDetailDTO(*task),
	})
}

// DeleteTask deletes a pending task owned by the caller.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.taskService.DeleteTask(taskID, userID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task deleted successfully",
	})
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return 0, false
	}
	return taskID, true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotAssignedVolunteer):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrNotTaskCreator):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrTaskAlreadyClaimed),
		errors.Is(err, services.ErrTaskNotPending),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidProgress),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidMaxVolunteers),
		errors.Is(err, services.ErrFieldRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
