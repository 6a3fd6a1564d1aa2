package models

import (
	"time"
)

// ChatMessage is an append-only message exchanged within a task.
type ChatMessage struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	TaskID     uint64    `gorm:"not null;index" json:"taskId"`
	SenderID   uint64    `gorm:"not null;index" json:"senderId"`
	ReceiverID uint64    `gorm:"not null;index" json:"receiverId"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`

	// Relations
	Sender   User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}
