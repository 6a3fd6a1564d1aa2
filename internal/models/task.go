package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusAccepted   TaskStatus = "ACCEPTED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// ValidTaskStatus reports whether s is one of the known task statuses.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusAccepted, TaskStatusInProgress,
		TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

type TaskCategory string

const (
	TaskCategoryHospital TaskCategory = "HOSPITAL"
	TaskCategoryTemple   TaskCategory = "TEMPLE"
	TaskCategoryExercise TaskCategory = "EXERCISE"
	TaskCategoryRepair   TaskCategory = "REPAIR"
)

// ValidTaskCategory reports whether c is one of the known task categories.
func ValidTaskCategory(c TaskCategory) bool {
	switch c {
	case TaskCategoryHospital, TaskCategoryTemple, TaskCategoryExercise, TaskCategoryRepair:
		return true
	}
	return false
}

type Task struct {
	ID              uint64       `gorm:"primarykey" json:"id"`
	Title           string       `gorm:"type:varchar(255);not null" json:"title"`
	Description     string       `gorm:"type:text" json:"description"`
	Category        TaskCategory `gorm:"type:varchar(20);not null" json:"category"`
	Location        string       `gorm:"type:varchar(255);not null" json:"location"`
	Date            string       `gorm:"type:varchar(20);not null" json:"date"`
	StartTime       string       `gorm:"type:varchar(10);not null" json:"startTime"`
	EndTime         string       `gorm:"type:varchar(10);not null" json:"endTime"`
	MaxVolunteers   int          `gorm:"not null;default:1" json:"maxVolunteers"`
	Requirements    string       `gorm:"type:text" json:"requirements"`
	Tags            string       `gorm:"type:text" json:"tags"`
	ContactName     string       `gorm:"type:varchar(120);not null" json:"contactName"`
	ContactPhone    string       `gorm:"type:varchar(30);not null" json:"contactPhone"`
	ContactEmail    string       `gorm:"type:varchar(190)" json:"contactEmail"`
	Status          TaskStatus   `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Progress        int          `gorm:"default:0" json:"progress"`
	StatusNotes     string       `gorm:"type:text" json:"statusNotes"`
	CompletionNotes string       `gorm:"type:text" json:"completionNotes"`
	CreatorID       uint64       `gorm:"not null;index" json:"creatorId"`
	// VolunteerID is set if and only if the task has left PENDING.
	VolunteerID *uint64        `gorm:"index" json:"volunteerId"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator   User  `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Volunteer *User `gorm:"foreignKey:VolunteerID" json:"volunteer,omitempty"`
}

// Terminal reports whether the status permits no further transitions.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}
