package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"saas-admin-backend/internal/database/models"
	apperrors "saas-admin-backend/internal/errors"
	"saas-admin-backend/internal/gate"
	"saas-admin-backend/internal/mocks"
	"saas-admin-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// MaintenanceServiceTestSuite defines the test suite for MaintenanceService
type MaintenanceServiceTestSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockRepo           *mocks.MockMaintenanceWindowRepositoryInterface
	maintenanceService *service.MaintenanceService
	validator          *validator.Validate
}

// SetupTest sets up the test suite
func (suite *MaintenanceServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockRepo = mocks.NewMockMaintenanceWindowRepositoryInterface(suite.ctrl)
	suite.validator = validator.New()

	// The gate shares the mocked store, so status reads go through the same
	// effective-window resolution as production. No watcher, so status reads
	// query live; the snapshot path has its own tests below.
	g := gate.New(suite.mockRepo)
	suite.maintenanceService = service.NewMaintenanceService(suite.mockRepo, g, nil, suite.validator, 5*time.Second)
}

// serviceWithWatcher builds a maintenance service fed by a watcher snapshot
func (suite *MaintenanceServiceTestSuite) serviceWithWatcher() (*service.MaintenanceService, *gate.Watcher) {
	g := gate.New(suite.mockRepo)
	watcher := gate.NewWatcher(g, time.Minute)
	return service.NewMaintenanceService(suite.mockRepo, g, watcher, suite.validator, 5*time.Second), watcher
}

// TearDownTest cleans up after each test
func (suite *MaintenanceServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *MaintenanceServiceTestSuite) effectiveWindow() models.MaintenanceWindow {
	now := time.Now().UTC()
	return models.MaintenanceWindow{
		BaseModel:   models.BaseModel{ID: uuid.New(), CreatedAt: now},
		StartTime:   now.Add(-time.Hour),
		EndTime:     now.Add(time.Hour),
		MessageTR:   "Sistem bakımda",
		MessageEN:   "System under maintenance",
		IsActive:    true,
		ScheduledBy: uuid.New(),
	}
}

// TestCreateWindow tests scheduling a maintenance window
func (suite *MaintenanceServiceTestSuite) TestCreateWindow() {
	now := time.Now().UTC()
	req := &service.CreateMaintenanceWindowRequest{
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(3 * time.Hour),
		MessageTR: "Planlı bakım",
		MessageEN: "Scheduled maintenance",
	}
	scheduledBy := uuid.New()

	suite.mockRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(window *models.MaintenanceWindow) error {
			assert.True(suite.T(), window.IsActive)
			assert.Equal(suite.T(), scheduledBy, window.ScheduledBy)
			return nil
		}).
		Times(1)

	response, err := suite.maintenanceService.Create(req, scheduledBy)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), req.MessageEN, response.MessageEN)
	assert.True(suite.T(), response.IsActive)
}

// TestCreateWindowInvalidTimeRange tests that the end must exceed the start
func (suite *MaintenanceServiceTestSuite) TestCreateWindowInvalidTimeRange() {
	now := time.Now().UTC()

	for _, end := range []time.Time{now, now.Add(-time.Minute)} {
		req := &service.CreateMaintenanceWindowRequest{
			StartTime: now,
			EndTime:   end,
			MessageTR: "Planlı bakım",
			MessageEN: "Scheduled maintenance",
		}

		response, err := suite.maintenanceService.Create(req, uuid.New())

		assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidTimeRange)
		assert.Nil(suite.T(), response)
	}
}

// TestCreateWindowValidationError tests that both notice messages are required
func (suite *MaintenanceServiceTestSuite) TestCreateWindowValidationError() {
	now := time.Now().UTC()
	req := &service.CreateMaintenanceWindowRequest{
		StartTime: now,
		EndTime:   now.Add(time.Hour),
		MessageTR: "Planlı bakım",
	}

	response, err := suite.maintenanceService.Create(req, uuid.New())

	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "validation failed")
	assert.Nil(suite.T(), response)
}

// TestGetStatusActive tests status composition while a window is in effect
func (suite *MaintenanceServiceTestSuite) TestGetStatusActive() {
	window := suite.effectiveWindow()

	suite.mockRepo.EXPECT().
		GetEffectiveWindows(gomock.Any()).
		Return([]models.MaintenanceWindow{window}, nil).
		Times(1)

	status := suite.maintenanceService.GetStatus()

	assert.True(suite.T(), status.Active)
	assert.NotNil(suite.T(), status.Window)
	assert.Equal(suite.T(), window.ID, status.Window.ID)
	assert.NotNil(suite.T(), status.Remaining)
	assert.False(suite.T(), status.Remaining.Terminal)
	assert.Equal(suite.T(), 5, status.ReloadGraceSecs)
}

// TestGetStatusIdle tests status composition with no window
func (suite *MaintenanceServiceTestSuite) TestGetStatusIdle() {
	suite.mockRepo.EXPECT().
		GetEffectiveWindows(gomock.Any()).
		Return(nil, nil).
		Times(1)

	status := suite.maintenanceService.GetStatus()

	assert.False(suite.T(), status.Active)
	assert.Nil(suite.T(), status.Window)
	assert.Nil(suite.T(), status.Remaining)
	assert.Equal(suite.T(), 5, status.ReloadGraceSecs)
}

// TestGetStatusFailsOpen tests that a store failure reads as no maintenance
func (suite *MaintenanceServiceTestSuite) TestGetStatusFailsOpen() {
	suite.mockRepo.EXPECT().
		GetEffectiveWindows(gomock.Any()).
		Return(nil, errors.New("connection refused")).
		Times(1)

	status := suite.maintenanceService.GetStatus()

	assert.False(suite.T(), status.Active)
	assert.Nil(suite.T(), status.Window)
}

// TestGetStatusCheckingBeforeFirstPoll tests that a wired but unresolved
// watcher yields the checking state without touching the store
func (suite *MaintenanceServiceTestSuite) TestGetStatusCheckingBeforeFirstPoll() {
	maintenanceService, _ := suite.serviceWithWatcher()

	status := maintenanceService.GetStatus()

	assert.True(suite.T(), status.Checking)
	assert.False(suite.T(), status.Active)
	assert.Nil(suite.T(), status.Window)
	assert.Equal(suite.T(), 5, status.ReloadGraceSecs)
}

// TestGetStatusServesWatcherSnapshot tests that repeated status reads are
// answered from the polled snapshot, not per-request store queries
func (suite *MaintenanceServiceTestSuite) TestGetStatusServesWatcherSnapshot() {
	window := suite.effectiveWindow()

	suite.mockRepo.EXPECT().
		GetEffectiveWindows(gomock.Any()).
		Return([]models.MaintenanceWindow{window}, nil).
		Times(1)

	maintenanceService, watcher := suite.serviceWithWatcher()
	watcher.Refresh(context.Background())

	for i := 0; i < 3; i++ {
		status := maintenanceService.GetStatus()

		assert.False(suite.T(), status.Checking)
		assert.True(suite.T(), status.Active)
		assert.NotNil(suite.T(), status.Window)
		assert.Equal(suite.T(), window.ID, status.Window.ID)
		assert.NotNil(suite.T(), status.Remaining)
	}
}

// TestGetActive tests retrieving the effective window
func (suite *MaintenanceServiceTestSuite) TestGetActive() {
	window := suite.effectiveWindow()

	suite.mockRepo.EXPECT().
		GetEffectiveWindows(gomock.Any()).
		Return([]models.MaintenanceWindow{window}, nil).
		Times(1)

	response := suite.maintenanceService.GetActive()

	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), window.ID, response.ID)
}

// TestGetActiveOverlappingWindowsPicksEarliest tests the overlap tie-break
func (suite *MaintenanceServiceTestSuite) TestGetActiveOverlappingWindowsPicksEarliest() {
	later := suite.effectiveWindow()
	earlier := suite.effectiveWindow()
	earlier.StartTime = later.StartTime.Add(-time.Hour)

	suite.mockRepo.EXPECT().
		GetEffectiveWindows(gomock.Any()).
		Return([]models.MaintenanceWindow{later, earlier}, nil).
		Times(1)

	response := suite.maintenanceService.GetActive()

	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), earlier.ID, response.ID)
}

// TestGetUpcoming tests listing windows that have not started yet
func (suite *MaintenanceServiceTestSuite) TestGetUpcoming() {
	window := suite.effectiveWindow()
	window.StartTime = time.Now().UTC().Add(2 * time.Hour)
	window.EndTime = time.Now().UTC().Add(4 * time.Hour)

	suite.mockRepo.EXPECT().
		GetUpcomingWindows(gomock.Any()).
		Return([]models.MaintenanceWindow{window}, nil).
		Times(1)

	windows, err := suite.maintenanceService.GetUpcoming()

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), windows, 1)
	assert.Equal(suite.T(), window.ID, windows[0].ID)
}

// TestGetHistoryClampsLimit tests the history limit normalization
func (suite *MaintenanceServiceTestSuite) TestGetHistoryClampsLimit() {
	suite.mockRepo.EXPECT().
		GetHistory(20).
		Return(nil, nil).
		Times(2)

	_, err := suite.maintenanceService.GetHistory(0)
	assert.NoError(suite.T(), err)

	_, err = suite.maintenanceService.GetHistory(500)
	assert.NoError(suite.T(), err)
}

// TestCancelWindow tests canceling a scheduled window
func (suite *MaintenanceServiceTestSuite) TestCancelWindow() {
	window := suite.effectiveWindow()

	suite.mockRepo.EXPECT().
		GetByID(window.ID).
		Return(&window, nil).
		Times(1)
	suite.mockRepo.EXPECT().
		Cancel(window.ID).
		Return(nil).
		Times(1)

	err := suite.maintenanceService.Cancel(window.ID)

	assert.NoError(suite.T(), err)
}

// TestCancelWindowNotFound tests canceling a missing window
func (suite *MaintenanceServiceTestSuite) TestCancelWindowNotFound() {
	id := uuid.New()

	suite.mockRepo.EXPECT().
		GetByID(id).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	err := suite.maintenanceService.Cancel(id)

	assert.ErrorIs(suite.T(), err, apperrors.ErrMaintenanceWindowNotFound)
}

// TestDeleteWindow tests hard-deleting a window
func (suite *MaintenanceServiceTestSuite) TestDeleteWindow() {
	window := suite.effectiveWindow()

	suite.mockRepo.EXPECT().
		GetByID(window.ID).
		Return(&window, nil).
		Times(1)
	suite.mockRepo.EXPECT().
		Delete(window.ID).
		Return(nil).
		Times(1)

	err := suite.maintenanceService.Delete(window.ID)

	assert.NoError(suite.T(), err)
}

// TestMaintenanceServiceTestSuite runs the test suite
func TestMaintenanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceServiceTestSuite))
}
