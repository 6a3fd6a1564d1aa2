package models

import (
	"time"

	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeStudent UserType = "STUDENT"
	UserTypeElderly UserType = "ELDERLY"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(120);not null" json:"name"`
	Phone        string         `gorm:"type:varchar(30);uniqueIndex;not null" json:"phone"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	UserType     UserType       `gorm:"type:varchar(20);not null" json:"userType"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedTasks   []Task `gorm:"foreignKey:CreatorID" json:"-"`
	VolunteerTasks []Task `gorm:"foreignKey:VolunteerID" json:"-"`
}
