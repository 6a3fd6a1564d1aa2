package utils

import (
	"errors"
	"time"

	"github.com/genmatch/genmatch-api/internal/constants"
	"github.com/genmatch/genmatch-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret = []byte("default-secret-key-change-me")

// SetJWTSecret configures the key used to sign and verify bearer tokens.
// Called once at startup with the configured secret.
func SetJWTSecret(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

var ErrInvalidToken = errors.New("invalid token")

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken issues a signed bearer token for the user.
func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"user_type": string(user.UserType),
		"exp":       time.Now().Add(time.Hour * constants.TokenTTLHours).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken verifies a bearer token and returns the user identity it carries.
func ParseToken(tokenString string) (uint64, models.UserType, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}

	// Numeric claims round-trip through JSON as float64
	rawID, ok := claims["user_id"].(float64)
	if !ok || rawID < 0 {
		return 0, "", ErrInvalidToken
	}
	userType, _ := claims["user_type"].(string)

	return uint64(rawID), models.UserType(userType), nil
}
