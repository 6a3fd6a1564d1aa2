package utils

import (
	"testing"

	"github.com/genmatch/genmatch-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("round-trip-secret")
	defer SetJWTSecret("default-secret-key-change-me")

	user := models.User{ID: 42, UserType: models.UserTypeStudent}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	userID, userType, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, uint64(42), userID)
	require.Equal(t, models.UserTypeStudent, userType)
}

func TestSetJWTSecret_InvalidatesOtherKeys(t *testing.T) {
	SetJWTSecret("first-secret")
	defer SetJWTSecret("default-secret-key-change-me")

	user := models.User{ID: 7, UserType: models.UserTypeElderly}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	// Tokens signed under a different key must not verify
	SetJWTSecret("second-secret")
	_, _, err = ParseToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSetJWTSecret_IgnoresEmpty(t *testing.T) {
	SetJWTSecret("keep-me")
	defer SetJWTSecret("default-secret-key-change-me")

	user := models.User{ID: 1, UserType: models.UserTypeStudent}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	SetJWTSecret("")

	userID, _, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, uint64(1), userID)
}

func TestParseToken_Garbage(t *testing.T) {
	_, _, err := ParseToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}
