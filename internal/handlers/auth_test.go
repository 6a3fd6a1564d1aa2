package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/genmatch/genmatch-api/internal/middleware"
	"github.com/genmatch/genmatch-api/internal/models"
	"github.com/genmatch/genmatch-api/internal/repository"
	"github.com/genmatch/genmatch-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	handler := NewAuthHandler(services.NewAuthService(repository.NewUserRepository(db)))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", handler.Register)
	r.POST("/login", handler.Login)
	r.GET("/auth/check", middleware.RequireAuth(), handler.Check)

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":     "Somsak",
		"phone":    "0810000001",
		"password": "password123",
		"userType": "ELDERLY",
	}
}

func TestRegister(t *testing.T) {
	r, db := setupAuthRouter(t)

	w := doJSON(t, r, "POST", "/register", registerPayload(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Success bool `json:"success"`
		User    struct {
			ID       uint64 `json:"id"`
			Name     string `json:"name"`
			Phone    string `json:"phone"`
			UserType string `json:"userType"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.Success)
	require.Equal(t, "Somsak", response.User.Name)
	require.Equal(t, "ELDERLY", response.User.UserType)

	// Password is stored hashed, never echoed
	require.NotContains(t, w.Body.String(), "password123")

	var user models.User
	require.NoError(t, db.First(&user, response.User.ID).Error)
	require.NotEqual(t, "password123", user.PasswordHash)
}

func TestRegister_DuplicatePhone(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doJSON(t, r, "POST", "/register", registerPayload(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	payload := registerPayload()
	payload["name"] = "Someone Else"
	w = doJSON(t, r, "POST", "/register", payload, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_ShortPassword(t *testing.T) {
	r, _ := setupAuthRouter(t)

	payload := registerPayload()
	payload["password"] = "short"
	w := doJSON(t, r, "POST", "/register", payload, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_InvalidUserType(t *testing.T) {
	r, _ := setupAuthRouter(t)

	payload := registerPayload()
	payload["userType"] = "ADMIN"
	w := doJSON(t, r, "POST", "/register", payload, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doJSON(t, r, "POST", "/register", registerPayload(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/login", map[string]interface{}{
		"phone":    "0810000001",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.Success)
	require.NotEmpty(t, response.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doJSON(t, r, "POST", "/register", registerPayload(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/login", map[string]interface{}{
		"phone":    "0810000001",
		"password": "wrongpassword",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_UnknownPhone(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doJSON(t, r, "POST", "/login", map[string]interface{}{
		"phone":    "0899999999",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthCheck(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doJSON(t, r, "POST", "/register", registerPayload(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/login", map[string]interface{}{
		"phone":    "0810000001",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = doJSON(t, r, "GET", "/auth/check", nil, map[string]string{
		"Authorization": "Bearer " + login.Token,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var check struct {
		User struct {
			Phone string `json:"phone"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &check))
	require.Equal(t, "0810000001", check.User.Phone)
}

func TestAuthCheck_MissingToken(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doJSON(t, r, "GET", "/auth/check", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthCheck_MalformedToken(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doJSON(t, r, "GET", "/auth/check", nil, map[string]string{
		"Authorization": "Bearer not-a-token",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthCheck_WrongScheme(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doJSON(t, r, "GET", "/auth/check", nil, map[string]string{
		"Authorization": "Basic dXNlcjpwYXNz",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
