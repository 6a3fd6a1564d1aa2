package dto

import (
	"github.com/genmatch/genmatch-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64          `json:"id"`
	Name     string          `json:"name"`
	Phone    string          `json:"phone"`
	UserType models.UserType `json:"userType"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Name:     user.Name,
		Phone:    user.Phone,
		UserType: user.UserType,
	}
}
