package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/genmatch/genmatch-api/internal/models"
	"github.com/genmatch/genmatch-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskAlreadyClaimed   = errors.New("task has already been claimed by a volunteer")
	ErrNotAssignedVolunteer = errors.New("volunteer is not assigned to this task")
	ErrNotTaskCreator       = errors.New("only the task creator can perform this action")
	ErrTaskNotPending       = errors.New("only pending tasks can be deleted")
	ErrInvalidStatus        = errors.New("invalid task status")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrInvalidProgress      = errors.New("progress must be between 0 and 100")
	ErrInvalidCategory      = errors.New("invalid task category")
	ErrInvalidMaxVolunteers = errors.New("maxVolunteers must be a positive integer")
	ErrFieldRequired        = errors.New("missing required field")
)

// statusTransitions is the single transition table every generic status change
// is checked against. ACCEPTED is deliberately absent as a target: claiming a
// task goes through AcceptTask, which binds the volunteer atomically.
var statusTransitions = map[models.TaskStatus][]models.TaskStatus{
	models.TaskStatusPending:    {models.TaskStatusCancelled},
	models.TaskStatusAccepted:   {models.TaskStatusInProgress, models.TaskStatusCancelled},
	models.TaskStatusInProgress: {models.TaskStatusCompleted, models.TaskStatusCancelled},
}

// TaskService handles task lifecycle business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	notifRepo repository.NotificationRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, notifRepo repository.NotificationRepository) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		notifRepo: notifRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title         string
	Description   string
	Category      string
	Location      string
	Date          string
	StartTime     string
	EndTime       string
	MaxVolunteers int
	Requirements  string
	Tags          string
	ContactName   string
	ContactPhone  string
	ContactEmail  string
	CreatorID     uint64
}

// CreateTask validates the input and inserts a PENDING task with no volunteer
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	required := []struct {
		name  string
		value string
	}{
		{"title", input.Title},
		{"description", input.Description},
		{"category", input.Category},
		{"location", input.Location},
		{"date", input.Date},
		{"startTime", input.StartTime},
		{"endTime", input.EndTime},
		{"contactName", input.ContactName},
		{"contactPhone", input.ContactPhone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, fmt.Errorf("%w: %s", ErrFieldRequired, f.name)
		}
	}
	if input.CreatorID == 0 {
		return nil, fmt.Errorf("%w: creatorId", ErrFieldRequired)
	}
	if input.MaxVolunteers < 1 {
		return nil, ErrInvalidMaxVolunteers
	}

	category := models.TaskCategory(strings.TrimSpace(input.Category))
	if !models.ValidTaskCategory(category) {
		return nil, ErrInvalidCategory
	}

	task := &models.Task{
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Category:      category,
		Location:      strings.TrimSpace(input.Location),
		Date:          strings.TrimSpace(input.Date),
		StartTime:     strings.TrimSpace(input.StartTime),
		EndTime:       strings.TrimSpace(input.EndTime),
		MaxVolunteers: input.MaxVolunteers,
		Requirements:  input.Requirements,
		Tags:          input.Tags,
		ContactName:   strings.TrimSpace(input.ContactName),
		ContactPhone:  strings.TrimSpace(input.ContactPhone),
		ContactEmail:  strings.TrimSpace(input.ContactEmail),
		Status:        models.TaskStatusPending,
		CreatorID:     input.CreatorID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Category string
	Location string
	Search   string
	Page     int
	PageSize int
}

// ListTasks returns tasks matching the filters, newest first
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Location: input.Location,
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	if input.Category != "" {
		category := models.TaskCategory(input.Category)
		if !models.ValidTaskCategory(category) {
			return nil, 0, ErrInvalidCategory
		}
		filter.Category = &category
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// MyTasks holds a user's tasks bucketed by lifecycle stage
type MyTasks struct {
	Created   []models.Task
	Ongoing   []models.Task
	Completed []models.Task
}

// ListMyTasks buckets tasks for a user. Elderly users see the tasks they
// created; everyone else sees the tasks they volunteer on.
func (s *TaskService) ListMyTasks(userID uint64, userType models.UserType) (*MyTasks, error) {
	var tasks []models.Task
	var err error

	creatorView := userType == models.UserTypeElderly
	if creatorView {
		tasks, err = s.taskRepo.ListByCreator(userID)
	} else {
		tasks, err = s.taskRepo.ListByVolunteer(userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	result := &MyTasks{
		Created:   []models.Task{},
		Ongoing:   []models.Task{},
		Completed: []models.Task{},
	}

	for _, task := range tasks {
		if creatorView {
			result.Created = append(result.Created, task)
		}
		switch task.Status {
		case models.TaskStatusAccepted, models.TaskStatusInProgress:
			result.Ongoing = append(result.Ongoing, task)
		case models.TaskStatusCompleted:
			result.Completed = append(result.Completed, task)
		}
	}

	return result, nil
}

// GetTask returns a task with creator and volunteer loaded
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Creator", "Volunteer")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// AcceptTask claims a PENDING task for a volunteer. First claim wins: the
// check and the assignment are one conditional update in the store.
func (s *TaskService) AcceptTask(taskID, volunteerID uint64) (*models.Task, error) {
	if err := s.taskRepo.Claim(taskID, volunteerID); err != nil {
		if !errors.Is(err, repository.ErrNoRowsAffected) {
			return nil, fmt.Errorf("failed to accept task: %w", err)
		}
		// Zero rows matched: either the task does not exist or it is no
		// longer an unclaimed PENDING task.
		if _, ferr := s.taskRepo.FindByID(taskID); ferr != nil {
			if errors.Is(ferr, gorm.ErrRecordNotFound) {
				return nil, ErrTaskNotFound
			}
			return nil, fmt.Errorf("failed to find task: %w", ferr)
		}
		return nil, ErrTaskAlreadyClaimed
	}

	task, err := s.taskRepo.FindByID(taskID, "Creator", "Volunteer")
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	s.notify(task.CreatorID, models.NotifTaskAccepted, "Your task has been accepted",
		fmt.Sprintf("A volunteer accepted \"%s\"", task.Title), &task.ID)

	return task, nil
}

// CompleteTask marks an ACCEPTED task as COMPLETED. The completing volunteer
// must be the one assigned to the task.
func (s *TaskService) CompleteTask(taskID, volunteerID uint64, completionNotes string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.Status != models.TaskStatusAccepted {
		return nil, ErrTaskNotFound
	}
	if task.VolunteerID == nil || *task.VolunteerID != volunteerID {
		return nil, ErrNotAssignedVolunteer
	}

	if err := s.taskRepo.Complete(taskID, volunteerID, completionNotes); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			// The task changed hands between the read and the write
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	task, err = s.taskRepo.FindByID(taskID, "Creator", "Volunteer")
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	s.notify(task.CreatorID, models.NotifTaskCompleted, "Your task has been completed",
		fmt.Sprintf("\"%s\" was marked completed", task.Title), &task.ID)

	return task, nil
}

// UpdateStatusInput represents input for a generic status update
type UpdateStatusInput struct {
	Status   string
	Progress int
	Notes    string
}

// UpdateStatus applies a status change after checking it against the
// transition table. Same-status updates carry progress and notes only.
func (s *TaskService) UpdateStatus(taskID uint64, input UpdateStatusInput) (*models.Task, error) {
	status := models.TaskStatus(input.Status)
	if !models.ValidTaskStatus(status) {
		return nil, ErrInvalidStatus
	}
	if input.Progress < 0 || input.Progress > 100 {
		return nil, ErrInvalidProgress
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if status != task.Status && !transitionAllowed(task.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.taskRepo.UpdateStatus(taskID, status, input.Progress, input.Notes); err != nil {
		if errors.Is(err, repository.ErrNoRowsAffected) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	if status == models.TaskStatusCancelled && task.Status != models.TaskStatusCancelled {
		s.notify(task.CreatorID, models.NotifTaskCancelled, "Task cancelled",
			fmt.Sprintf("\"%s\" was cancelled", task.Title), &task.ID)
		if task.VolunteerID != nil {
			s.notify(*task.VolunteerID, models.NotifTaskCancelled, "Task cancelled",
				fmt.Sprintf("\"%s\" was cancelled", task.Title), &task.ID)
		}
	}

	return s.taskRepo.FindByID(taskID, "Creator", "Volunteer")
}

// DeleteTask deletes a PENDING task if the actor is the creator
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.CreatorID != actorID {
		return ErrNotTaskCreator
	}
	if task.Status != models.TaskStatusPending {
		return ErrTaskNotPending
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// transitionAllowed checks the transition table
func transitionAllowed(from, to models.TaskStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// notify records a notification without failing the surrounding operation
func (s *TaskService) notify(userID uint64, notifType models.NotificationType, title, message string, taskID *uint64) {
	if s.notifRepo == nil {
		return
	}
	n := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		TaskID:  taskID,
	}
	if err := s.notifRepo.Create(n); err != nil {
		log.Printf("failed to create notification for user %d: %v", userID, err)
	}
}
