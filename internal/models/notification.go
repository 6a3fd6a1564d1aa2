package models

import (
	"time"
)

type NotificationType string

const (
	NotifTaskAccepted  NotificationType = "task_accepted"
	NotifTaskCompleted NotificationType = "task_completed"
	NotifTaskCancelled NotificationType = "task_cancelled"
	NotifNewRating     NotificationType = "new_rating"
	NotifNewMessage    NotificationType = "new_message"
	NotifSystem        NotificationType = "system"
)

// Notification is append-only except for the isRead flag.
type Notification struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	UserID    uint64           `gorm:"not null;index" json:"userId"`
	Type      NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	TaskID    *uint64          `gorm:"index" json:"taskId"`
	IsRead    bool             `gorm:"not null;default:false" json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}
