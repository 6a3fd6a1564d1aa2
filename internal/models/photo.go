package models

import (
	"time"
)

type PhotoStatus string

const (
	PhotoStatusPending  PhotoStatus = "PENDING"
	PhotoStatusApproved PhotoStatus = "APPROVED"
	PhotoStatusRejected PhotoStatus = "REJECTED"
)

// ValidPhotoStatus reports whether s is one of the known photo statuses.
func ValidPhotoStatus(s PhotoStatus) bool {
	switch s {
	case PhotoStatusPending, PhotoStatusApproved, PhotoStatusRejected:
		return true
	}
	return false
}

// TaskPhoto is an evidence photo attached to a task. Review transitions are
// unconstrained: any status is reachable from any other.
type TaskPhoto struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	TaskID      uint64      `gorm:"not null;index" json:"taskId"`
	PhotoURL    string      `gorm:"type:varchar(500);not null" json:"photoUrl"`
	Description string      `gorm:"type:text" json:"description"`
	UploadedBy  uint64      `gorm:"not null" json:"uploadedBy"`
	Status      PhotoStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	ApprovedBy  *uint64     `json:"approvedBy"`
	ApprovedAt  *time.Time  `json:"approvedAt"`
	Notes       string      `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
