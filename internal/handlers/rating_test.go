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

// RatingHandlerTestSuite defines the test suite for RatingHandler
type RatingHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *RatingHandler

	creator   *models.User
	volunteer *models.User
	outsider  *models.User
	task      *models.Task
}

// SetupTest runs before each test
func (suite *RatingHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Rating{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	ratingRepo := repository.NewRatingRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	notifRepo := repository.NewNotificationRepository(suite.db)
	suite.handler = NewRatingHandler(services.NewRatingService(ratingRepo, taskRepo, notifRepo))

	gin.SetMode(gin.TestMode)

	suite.creator = suite.createTestUser("Somsak", "0810000001", models.UserTypeElderly)
	suite.volunteer = suite.createTestUser("Nok", "0810000002", models.UserTypeStudent)
	suite.outsider = suite.createTestUser("Lek", "0810000003", models.UserTypeStudent)

	suite.task = &models.Task{
		Title:         "Hospital visit",
		Description:   "Checkup",
		Category:      models.TaskCategoryHospital,
		Location:      "Bangkok",
		Date:          "2025-04-01",
		StartTime:     "09:00",
		EndTime:       "11:00",
		MaxVolunteers: 1,
		ContactName:   "Contact",
		ContactPhone:  "0812345678",
		Status:        models.TaskStatusCompleted,
		CreatorID:     suite.creator.ID,
		VolunteerID:   &suite.volunteer.ID,
	}
	suite.db.Create(suite.task)
}

// TearDownTest runs after each test
func (suite *RatingHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *RatingHandlerTestSuite) createTestUser(name, phone string, userType models.UserType) *models.User {
	user := &models.User{
		Name:         name,
		Phone:        phone,
		PasswordHash: "hashedpassword",
		UserType:     userType,
	}
	suite.db.Create(user)
	return user
}

func (suite *RatingHandlerTestSuite) postRating(payload map[string]interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/ratings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	suite.handler.CreateRating(c)
	return w
}

func (suite *RatingHandlerTestSuite) ratingPayload(raterID, ratedUserID uint64, rating int) map[string]interface{} {
	return map[string]interface{}{
		"taskId":      suite.task.ID,
		"raterId":     raterID,
		"ratedUserId": ratedUserID,
		"rating":      rating,
		"category":    "HOSPITAL",
		"review":      "Very helpful",
	}
}

// TestCreateRating_Success tests a creator rating the volunteer
func (suite *RatingHandlerTestSuite) TestCreateRating_Success() {
	w := suite.postRating(suite.ratingPayload(suite.creator.ID, suite.volunteer.ID, 5))

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), true, response["success"])
	assert.Contains(suite.T(), response, "ratingId")

	// Rated user gets notified
	var notif models.Notification
	err := suite.db.Where("user_id = ? AND type = ?", suite.volunteer.ID, models.NotifNewRating).First(&notif).Error
	assert.NoError(suite.T(), err)
}

// TestCreateRating_Boundaries tests the inclusive 1..5 range
func (suite *RatingHandlerTestSuite) TestCreateRating_Boundaries() {
	w := suite.postRating(suite.ratingPayload(suite.creator.ID, suite.volunteer.ID, 1))
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.postRating(suite.ratingPayload(suite.volunteer.ID, suite.creator.ID, 5))
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestCreateRating_OutOfRange tests rejection of 0 and 6
func (suite *RatingHandlerTestSuite) TestCreateRating_OutOfRange() {
	w := suite.postRating(suite.ratingPayload(suite.creator.ID, suite.volunteer.ID, 0))
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.postRating(suite.ratingPayload(suite.creator.ID, suite.volunteer.ID, 6))
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.Rating{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestCreateRating_SelfRating tests that users cannot rate themselves
func (suite *RatingHandlerTestSuite) TestCreateRating_SelfRating() {
	w := suite.postRating(suite.ratingPayload(suite.creator.ID, suite.creator.ID, 4))
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateRating_TaskNotFound tests rating an unknown task
func (suite *RatingHandlerTestSuite) TestCreateRating_TaskNotFound() {
	payload := suite.ratingPayload(suite.creator.ID, suite.volunteer.ID, 4)
	payload["taskId"] = 999

	w := suite.postRating(payload)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestCreateRating_NotTaskParty tests that the creator must be rater or ratee
func (suite *RatingHandlerTestSuite) TestCreateRating_NotTaskParty() {
	w := suite.postRating(suite.ratingPayload(suite.volunteer.ID, suite.outsider.ID, 4))
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateRating_Duplicate tests the one-rating-per-triple rule
func (suite *RatingHandlerTestSuite) TestCreateRating_Duplicate() {
	w := suite.postRating(suite.ratingPayload(suite.creator.ID, suite.volunteer.ID, 5))
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.postRating(suite.ratingPayload(suite.creator.ID, suite.volunteer.ID, 3))
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.Rating{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestCreateRating_ReverseDirection tests that the volunteer can rate back
func (suite *RatingHandlerTestSuite) TestCreateRating_ReverseDirection() {
	w := suite.postRating(suite.ratingPayload(suite.creator.ID, suite.volunteer.ID, 5))
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.postRating(suite.ratingPayload(suite.volunteer.ID, suite.creator.ID, 4))
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Rating{}).Count(&count)
	assert.Equal(suite.T(), int64(2), count)
}

// TestListRatings_ByUser tests listing with joined participant names
func (suite *RatingHandlerTestSuite) TestListRatings_ByUser() {
	w := suite.postRating(suite.ratingPayload(suite.creator.ID, suite.volunteer.ID, 5))
	suite.Require().Equal(http.StatusOK, w.Code)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/ratings?userId="+jsonNumber(suite.volunteer.ID), nil)

	suite.handler.ListRatings(c)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response struct {
		Ratings []struct {
			Rating        int    `json:"rating"`
			RaterName     string `json:"raterName"`
			RatedUserName string `json:"ratedUserName"`
		} `json:"ratings"`
		Count int `json:"count"`
	}
	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &response))
	suite.Require().Equal(1, response.Count)
	assert.Equal(suite.T(), 5, response.Ratings[0].Rating)
	assert.Equal(suite.T(), "Somsak", response.Ratings[0].RaterName)
	assert.Equal(suite.T(), "Nok", response.Ratings[0].RatedUserName)
}

// TestSuite runs the test suite
func TestRatingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RatingHandlerTestSuite))
}
