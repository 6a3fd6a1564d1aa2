package models

import (
	"time"
)

// Rating is created once after a task interaction and never mutated.
// Exactly one of rater and rated user is the task's creator.
type Rating struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	TaskID      uint64    `gorm:"not null;uniqueIndex:idx_ratings_task_rater_rated" json:"taskId"`
	RaterID     uint64    `gorm:"not null;uniqueIndex:idx_ratings_task_rater_rated" json:"raterId"`
	RatedUserID uint64    `gorm:"not null;uniqueIndex:idx_ratings_task_rater_rated" json:"ratedUserId"`
	Rating      int       `gorm:"not null" json:"rating"`
	Category    string    `gorm:"type:varchar(50);not null" json:"category"`
	Review      string    `gorm:"type:text" json:"review"`
	CreatedAt   time.Time `json:"createdAt"`

	// Relations
	Task      Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Rater     User `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
	RatedUser User `gorm:"foreignKey:RatedUserID" json:"ratedUser,omitempty"`
}
