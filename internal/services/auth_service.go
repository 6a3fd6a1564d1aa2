package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/genmatch/genmatch-api/internal/constants"
	"github.com/genmatch/genmatch-api/internal/models"
	"github.com/genmatch/genmatch-api/internal/repository"
	"github.com/genmatch/genmatch-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrPhoneTaken           = errors.New("phone number already registered")
	ErrInvalidCredentials   = errors.New("invalid phone or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidUserType      = errors.New("userType must be STUDENT or ELDERLY")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
)

// AuthService handles registration and credential checks.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name     string
	Phone    string
	Password string
	UserType string
}

// Register creates a new user account.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, fmt.Errorf("name and phone are required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	userType := models.UserType(strings.TrimSpace(input.UserType))
	if userType != models.UserTypeStudent && userType != models.UserTypeElderly {
		return nil, ErrInvalidUserType
	}

	if _, err := s.userRepo.FindByPhone(phone); err == nil {
		return nil, ErrPhoneTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check phone: %w", err)
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Phone:        phone,
		PasswordHash: hashedPassword,
		UserType:     userType,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrFailedToCreateUser
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Phone    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByPhone(strings.TrimSpace(input.Phone))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
