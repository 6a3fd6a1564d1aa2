package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/genmatch/genmatch-api/internal/models"
	"github.com/genmatch/genmatch-api/internal/repository"
	"github.com/genmatch/genmatch-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NotificationHandlerTestSuite defines the test suite for NotificationHandler
type NotificationHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *NotificationHandler

	user *models.User
}

// SetupTest runs before each test
func (suite *NotificationHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(&models.User{}, &models.Notification{})
	suite.Require().NoError(err)

	notifRepo := repository.NewNotificationRepository(suite.db)
	suite.handler = NewNotificationHandler(services.NewNotificationService(notifRepo))

	gin.SetMode(gin.TestMode)

	suite.user = &models.User{Name: "Somsak", Phone: "0810000001", PasswordHash: "x", UserType: models.UserTypeElderly}
	suite.db.Create(suite.user)
}

// TearDownTest runs after each test
func (suite *NotificationHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *NotificationHandlerTestSuite) createTestNotification(notifType models.NotificationType, isRead bool) *models.Notification {
	n := &models.Notification{
		UserID:  suite.user.ID,
		Type:    notifType,
		Title:   "Test",
		Message: "Test message",
		IsRead:  isRead,
	}
	suite.db.Create(n)
	return n
}

func (suite *NotificationHandlerTestSuite) doJSON(method, url string, payload interface{}, handle gin.HandlerFunc) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		bodyReader = bytes.NewReader(body)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, url, bodyReader)
	c.Request.Header.Set("Content-Type", "application/json")

	handle(c)
	return w
}

// TestCreateNotification_Success tests inserting an unread notification
func (suite *NotificationHandlerTestSuite) TestCreateNotification_Success() {
	w := suite.doJSON("POST", "/notifications", map[string]interface{}{
		"userId":  suite.user.ID,
		"type":    "system",
		"title":   "Welcome",
		"message": "Thanks for joining",
	}, suite.handler.CreateNotification)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), true, response["success"])

	var stored models.Notification
	suite.Require().NoError(suite.db.First(&stored, uint64(response["notificationId"].(float64))).Error)
	assert.False(suite.T(), stored.IsRead)
}

// TestCreateNotification_MissingFields tests required field validation
func (suite *NotificationHandlerTestSuite) TestCreateNotification_MissingFields() {
	w := suite.doJSON("POST", "/notifications", map[string]interface{}{
		"userId": suite.user.ID,
		"type":   "system",
	}, suite.handler.CreateNotification)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListNotifications_RequiresUserID tests the mandatory userId query
func (suite *NotificationHandlerTestSuite) TestListNotifications_RequiresUserID() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/notifications", nil)

	suite.handler.ListNotifications(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListNotifications_UnreadFilter tests filtering by read state
func (suite *NotificationHandlerTestSuite) TestListNotifications_UnreadFilter() {
	suite.createTestNotification(models.NotifTaskAccepted, true)
	unread := suite.createTestNotification(models.NotifNewMessage, false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/notifications?userId="+jsonNumber(suite.user.ID)+"&isRead=false", nil)

	suite.handler.ListNotifications(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Notifications []models.Notification `json:"notifications"`
		Count         int                   `json:"count"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Equal(1, response.Count)
	assert.Equal(suite.T(), unread.ID, response.Notifications[0].ID)
}

// TestMarkRead_ByIDs tests flagging a set of notifications read
func (suite *NotificationHandlerTestSuite) TestMarkRead_ByIDs() {
	first := suite.createTestNotification(models.NotifTaskAccepted, false)
	second := suite.createTestNotification(models.NotifNewMessage, false)

	w := suite.doJSON("PUT", "/notifications", map[string]interface{}{
		"notificationIds": []uint64{first.ID},
	}, suite.handler.MarkRead)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Notification
	suite.db.First(&stored, first.ID)
	assert.True(suite.T(), stored.IsRead)
	stored = models.Notification{}
	suite.db.First(&stored, second.ID)
	assert.False(suite.T(), stored.IsRead)
}

// TestMarkRead_All tests the mark-all path
func (suite *NotificationHandlerTestSuite) TestMarkRead_All() {
	suite.createTestNotification(models.NotifTaskAccepted, false)
	suite.createTestNotification(models.NotifNewMessage, false)

	w := suite.doJSON("PUT", "/notifications", map[string]interface{}{
		"markAll": true,
		"userId":  suite.user.ID,
	}, suite.handler.MarkRead)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Notification{}).Where("is_read = ?", false).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestMarkRead_MissingTarget tests that some target must be given
func (suite *NotificationHandlerTestSuite) TestMarkRead_MissingTarget() {
	w := suite.doJSON("PUT", "/notifications", map[string]interface{}{}, suite.handler.MarkRead)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSuite runs the test suite
func TestNotificationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationHandlerTestSuite))
}
