package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	apperrors "saas-admin-backend/internal/errors"
	"saas-admin-backend/internal/gate"
	"saas-admin-backend/internal/mocks"
	"saas-admin-backend/internal/service"
	"saas-admin-backend/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// MaintenanceHandlerTestSuite defines the test suite for MaintenanceHandler
type MaintenanceHandlerTestSuite struct {
	suite.Suite
	ctrl                   *gomock.Controller
	mockMaintenanceService *mocks.MockMaintenanceServiceInterface
	handler                *MaintenanceHandler
	httpSuite              *testutils.HTTPTestSuite
	userID                 uuid.UUID
}

// SetupTest sets up the test suite
func (suite *MaintenanceHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockMaintenanceService = mocks.NewMockMaintenanceServiceInterface(suite.ctrl)

	// Create handler with mock service
	suite.handler = NewMaintenanceHandler(suite.mockMaintenanceService)

	// Setup HTTP test suite
	suite.httpSuite = testutils.SetupHTTPTest()

	// Inject an authenticated caller the way RequireAuth would
	suite.userID = uuid.New()
	suite.httpSuite.Router.Use(func(c *gin.Context) {
		c.Set("user_id", suite.userID.String())
		c.Next()
	})

	// Register routes
	v1 := suite.httpSuite.Router.Group("/api/v1")
	maintenance := v1.Group("/maintenance")
	{
		maintenance.GET("/status", suite.handler.GetMaintenanceStatus)
		maintenance.GET("/active", suite.handler.GetActiveMaintenanceWindow)

		windows := maintenance.Group("/windows")
		{
			windows.POST("", suite.handler.CreateMaintenanceWindow)
			windows.GET("/upcoming", suite.handler.GetUpcomingMaintenanceWindows)
			windows.GET("/history", suite.handler.GetMaintenanceHistory)
			windows.POST("/:id/cancel", suite.handler.CancelMaintenanceWindow)
			windows.DELETE("/:id", suite.handler.DeleteMaintenanceWindow)
		}
	}
}

// TearDownTest cleans up after each test
func (suite *MaintenanceHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestGetMaintenanceStatusActive tests the polling endpoint during a window
func (suite *MaintenanceHandlerTestSuite) TestGetMaintenanceStatusActive() {
	remaining := gate.Countdown{Hours: 1, Minutes: 30, Seconds: 0, Display: "1h 30m 0s"}
	status := &service.MaintenanceStatusResponse{
		Active: true,
		Window: &service.MaintenanceWindowResponse{
			ID:        uuid.New(),
			MessageEN: "System under maintenance",
		},
		Remaining:       &remaining,
		ReloadGraceSecs: 5,
	}

	suite.mockMaintenanceService.EXPECT().
		GetStatus().
		Return(status).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/maintenance/status", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.MaintenanceStatusResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.True(suite.T(), response.Active)
	assert.Equal(suite.T(), "1h 30m 0s", response.Remaining.Display)
	assert.Equal(suite.T(), 5, response.ReloadGraceSecs)
}

// TestGetMaintenanceStatusIdle tests the polling endpoint with no window
func (suite *MaintenanceHandlerTestSuite) TestGetMaintenanceStatusIdle() {
	suite.mockMaintenanceService.EXPECT().
		GetStatus().
		Return(&service.MaintenanceStatusResponse{Active: false, ReloadGraceSecs: 5}).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/maintenance/status", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.MaintenanceStatusResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.False(suite.T(), response.Active)
	assert.Nil(suite.T(), response.Window)
}

// TestGetActiveWindow tests retrieving the effective window
func (suite *MaintenanceHandlerTestSuite) TestGetActiveWindow() {
	window := &service.MaintenanceWindowResponse{
		ID:        uuid.New(),
		MessageTR: "Sistem bakımda",
		MessageEN: "System under maintenance",
		IsActive:  true,
	}

	suite.mockMaintenanceService.EXPECT().
		GetActive().
		Return(window).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/maintenance/active", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response service.MaintenanceWindowResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), window.ID, response.ID)
}

// TestGetActiveWindowNone tests the no-content path
func (suite *MaintenanceHandlerTestSuite) TestGetActiveWindowNone() {
	suite.mockMaintenanceService.EXPECT().
		GetActive().
		Return(nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/maintenance/active", nil)

	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
}

// TestCreateWindow tests scheduling a window
func (suite *MaintenanceHandlerTestSuite) TestCreateWindow() {
	now := time.Now().UTC()
	requestBody := map[string]interface{}{
		"start_time": now.Add(time.Hour).Format(time.RFC3339),
		"end_time":   now.Add(3 * time.Hour).Format(time.RFC3339),
		"message_tr": "Planlı bakım",
		"message_en": "Scheduled maintenance",
	}

	expectedResponse := &service.MaintenanceWindowResponse{
		ID:          uuid.New(),
		MessageTR:   "Planlı bakım",
		MessageEN:   "Scheduled maintenance",
		IsActive:    true,
		ScheduledBy: suite.userID,
	}

	suite.mockMaintenanceService.EXPECT().
		Create(gomock.Any(), suite.userID).
		Return(expectedResponse, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/maintenance/windows", requestBody)

	assert.Equal(suite.T(), http.StatusCreated, recorder.Code)

	var response service.MaintenanceWindowResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Equal(suite.T(), suite.userID, response.ScheduledBy)
}

// TestCreateWindowInvalidTimeRange tests the bad-range error mapping
func (suite *MaintenanceHandlerTestSuite) TestCreateWindowInvalidTimeRange() {
	now := time.Now().UTC()
	requestBody := map[string]interface{}{
		"start_time": now.Add(time.Hour).Format(time.RFC3339),
		"end_time":   now.Format(time.RFC3339),
		"message_tr": "Planlı bakım",
		"message_en": "Scheduled maintenance",
	}

	suite.mockMaintenanceService.EXPECT().
		Create(gomock.Any(), suite.userID).
		Return(nil, apperrors.ErrInvalidTimeRange).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/maintenance/windows", requestBody)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "")
}

// TestGetUpcomingWindows tests the upcoming listing
func (suite *MaintenanceHandlerTestSuite) TestGetUpcomingWindows() {
	windows := []service.MaintenanceWindowResponse{
		{ID: uuid.New(), IsActive: true},
		{ID: uuid.New(), IsActive: true},
	}

	suite.mockMaintenanceService.EXPECT().
		GetUpcoming().
		Return(windows, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/maintenance/windows/upcoming", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)

	var response []service.MaintenanceWindowResponse
	testutils.ParseJSONResponse(suite.T(), recorder, &response)
	assert.Len(suite.T(), response, 2)
}

// TestGetHistoryPassesLimit tests the limit query parameter
func (suite *MaintenanceHandlerTestSuite) TestGetHistoryPassesLimit() {
	suite.mockMaintenanceService.EXPECT().
		GetHistory(50).
		Return([]service.MaintenanceWindowResponse{}, nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("GET", "/api/v1/maintenance/windows/history?limit=50", nil)

	assert.Equal(suite.T(), http.StatusOK, recorder.Code)
}

// TestCancelWindow tests canceling a window
func (suite *MaintenanceHandlerTestSuite) TestCancelWindow() {
	id := uuid.New()

	suite.mockMaintenanceService.EXPECT().
		Cancel(id).
		Return(nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", fmt.Sprintf("/api/v1/maintenance/windows/%s/cancel", id), nil)

	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
}

// TestCancelWindowNotFound tests canceling a missing window
func (suite *MaintenanceHandlerTestSuite) TestCancelWindowNotFound() {
	id := uuid.New()

	suite.mockMaintenanceService.EXPECT().
		Cancel(id).
		Return(apperrors.ErrMaintenanceWindowNotFound).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("POST", fmt.Sprintf("/api/v1/maintenance/windows/%s/cancel", id), nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusNotFound, "")
}

// TestCancelWindowInvalidID tests UUID validation
func (suite *MaintenanceHandlerTestSuite) TestCancelWindowInvalidID() {
	recorder := suite.httpSuite.MakeRequest("POST", "/api/v1/maintenance/windows/not-a-uuid/cancel", nil)

	testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "Invalid window ID")
}

// TestDeleteWindow tests hard-deleting a window
func (suite *MaintenanceHandlerTestSuite) TestDeleteWindow() {
	id := uuid.New()

	suite.mockMaintenanceService.EXPECT().
		Delete(id).
		Return(nil).
		Times(1)

	recorder := suite.httpSuite.MakeRequest("DELETE", fmt.Sprintf("/api/v1/maintenance/windows/%s", id), nil)

	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
}

// TestMaintenanceHandlerTestSuite runs the test suite
func TestMaintenanceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceHandlerTestSuite))
}
