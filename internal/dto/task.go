package dto

import (
	"time"

	"github.com/genmatch/genmatch-api/internal/models"
)

// TaskDetailDTO represents a task joined with its participants' names and
// phones, as returned by the task status endpoint.
type TaskDetailDTO struct {
	ID              uint64              `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Category        models.TaskCategory `json:"category"`
	Location        string              `json:"location"`
	Date            string              `json:"date"`
	StartTime       string              `json:"startTime"`
	EndTime         string              `json:"endTime"`
	MaxVolunteers   int                 `json:"maxVolunteers"`
	Requirements    string              `json:"requirements"`
	Tags            string              `json:"tags"`
	ContactName     string              `json:"contactName"`
	ContactPhone    string              `json:"contactPhone"`
	ContactEmail    string              `json:"contactEmail"`
	Status          models.TaskStatus   `json:"status"`
	Progress        int                 `json:"progress"`
	StatusNotes     string              `json:"statusNotes"`
	CompletionNotes string              `json:"completionNotes"`
	CreatorID       uint64              `json:"creatorId"`
	CreatorName     string              `json:"creatorName"`
	CreatorPhone    string              `json:"creatorPhone"`
	VolunteerID     *uint64             `json:"volunteerId"`
	VolunteerName   string              `json:"volunteerName,omitempty"`
	VolunteerPhone  string              `json:"volunteerPhone,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// ToTaskDetailDTO converts a Task with preloaded participants to TaskDetailDTO
func ToTaskDetailDTO(task models.Task) TaskDetailDTO {
	dto := TaskDetailDTO{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		Category:        task.Category,
		Location:        task.Location,
		Date:            task.Date,
		StartTime:       task.StartTime,
		EndTime:         task.EndTime,
		MaxVolunteers:   task.MaxVolunteers,
		Requirements:    task.Requirements,
		Tags:            task.Tags,
		ContactName:     task.ContactName,
		ContactPhone:    task.ContactPhone,
		ContactEmail:    task.ContactEmail,
		Status:          task.Status,
		Progress:        task.Progress,
		StatusNotes:     task.StatusNotes,
		CompletionNotes: task.CompletionNotes,
		CreatorID:       task.CreatorID,
		VolunteerID:     task.VolunteerID,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}

	if task.Creator.ID != 0 {
		dto.CreatorName = task.Creator.Name
		dto.CreatorPhone = task.Creator.Phone
	}
	if task.Volunteer != nil && task.Volunteer.ID != 0 {
		dto.VolunteerName = task.Volunteer.Name
		dto.VolunteerPhone = task.Volunteer.Phone
	}

	return dto
}
