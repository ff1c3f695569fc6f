//go:build integration
// +build integration

package repository

import (
	"testing"
	"time"

	"saas-admin-backend/internal/database/models"
	"saas-admin-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MaintenanceWindowRepositoryTestSuite tests the MaintenanceWindowRepository
type MaintenanceWindowRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *MaintenanceWindowRepository
	factory       *testutils.MaintenanceWindowFactory
}

// SetupSuite runs before all tests in the suite
func (suite *MaintenanceWindowRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewMaintenanceWindowRepository(suite.baseTestSuite.DB)
	suite.factory = testutils.NewMaintenanceWindowFactory()
}

// TearDownSuite runs after all tests in the suite
func (suite *MaintenanceWindowRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *MaintenanceWindowRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *MaintenanceWindowRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *MaintenanceWindowRepositoryTestSuite) mustCreate(window *models.MaintenanceWindow) *models.MaintenanceWindow {
	suite.NoError(suite.repo.Create(window))
	return window
}

// TestCreateAndGetByID tests the basic round trip
func (suite *MaintenanceWindowRepositoryTestSuite) TestCreateAndGetByID() {
	window := suite.mustCreate(suite.factory.Create())

	retrieved, err := suite.repo.GetByID(window.ID)

	suite.NoError(err)
	suite.NotNil(retrieved)
	suite.Equal(window.ID, retrieved.ID)
	suite.Equal(window.MessageEN, retrieved.MessageEN)
	suite.True(retrieved.IsActive)
}

// TestGetByIDNotFound tests the missing-row error
func (suite *MaintenanceWindowRepositoryTestSuite) TestGetByIDNotFound() {
	_, err := suite.repo.GetByID(uuid.New())

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetEffectiveWindows tests the effectiveness predicate in SQL
func (suite *MaintenanceWindowRepositoryTestSuite) TestGetEffectiveWindows() {
	now := time.Now().UTC()

	current := suite.mustCreate(suite.factory.WithWindow(now.Add(-time.Hour), now.Add(time.Hour)))
	suite.mustCreate(suite.factory.WithWindow(now.Add(time.Hour), now.Add(2*time.Hour)))    // upcoming
	suite.mustCreate(suite.factory.WithWindow(now.Add(-3*time.Hour), now.Add(-2*time.Hour))) // past
	suite.mustCreate(suite.factory.Canceled())                                               // canceled

	windows, err := suite.repo.GetEffectiveWindows(now)

	suite.NoError(err)
	suite.Len(windows, 1)
	suite.Equal(current.ID, windows[0].ID)
}

// TestGetEffectiveWindowsBoundaryInclusive tests both interval endpoints
func (suite *MaintenanceWindowRepositoryTestSuite) TestGetEffectiveWindowsBoundaryInclusive() {
	now := time.Now().UTC().Truncate(time.Microsecond)

	atStart := suite.mustCreate(suite.factory.WithWindow(now, now.Add(time.Hour)))
	atEnd := suite.mustCreate(suite.factory.WithWindow(now.Add(-time.Hour), now))

	windows, err := suite.repo.GetEffectiveWindows(now)

	suite.NoError(err)
	suite.Len(windows, 2)
	ids := []uuid.UUID{windows[0].ID, windows[1].ID}
	suite.Contains(ids, atStart.ID)
	suite.Contains(ids, atEnd.ID)
}

// TestGetEffectiveWindowsOrderedByStart tests deterministic ordering on overlap
func (suite *MaintenanceWindowRepositoryTestSuite) TestGetEffectiveWindowsOrderedByStart() {
	now := time.Now().UTC()

	later := suite.mustCreate(suite.factory.WithWindow(now.Add(-30*time.Minute), now.Add(time.Hour)))
	earlier := suite.mustCreate(suite.factory.WithWindow(now.Add(-2*time.Hour), now.Add(time.Hour)))

	windows, err := suite.repo.GetEffectiveWindows(now)

	suite.NoError(err)
	suite.Len(windows, 2)
	suite.Equal(earlier.ID, windows[0].ID)
	suite.Equal(later.ID, windows[1].ID)
}

// TestGetUpcomingWindows tests listing future windows soonest first
func (suite *MaintenanceWindowRepositoryTestSuite) TestGetUpcomingWindows() {
	now := time.Now().UTC()

	soon := suite.mustCreate(suite.factory.WithWindow(now.Add(time.Hour), now.Add(2*time.Hour)))
	later := suite.mustCreate(suite.factory.WithWindow(now.Add(3*time.Hour), now.Add(4*time.Hour)))
	suite.mustCreate(suite.factory.WithWindow(now.Add(-time.Hour), now.Add(time.Hour))) // already running

	canceled := suite.factory.WithWindow(now.Add(5*time.Hour), now.Add(6*time.Hour))
	canceled.IsActive = false
	suite.mustCreate(canceled)

	windows, err := suite.repo.GetUpcomingWindows(now)

	suite.NoError(err)
	suite.Len(windows, 2)
	suite.Equal(soon.ID, windows[0].ID)
	suite.Equal(later.ID, windows[1].ID)
}

// TestGetHistory tests the newest-first capped listing
func (suite *MaintenanceWindowRepositoryTestSuite) TestGetHistory() {
	now := time.Now().UTC()

	suite.mustCreate(suite.factory.WithWindow(now.Add(-4*time.Hour), now.Add(-3*time.Hour)))
	middle := suite.mustCreate(suite.factory.WithWindow(now.Add(-2*time.Hour), now.Add(-time.Hour)))
	newest := suite.mustCreate(suite.factory.WithWindow(now.Add(-time.Hour), now))

	windows, err := suite.repo.GetHistory(2)

	suite.NoError(err)
	suite.Len(windows, 2)
	suite.Equal(newest.ID, windows[0].ID)
	suite.Equal(middle.ID, windows[1].ID)
}

// TestCancel tests the idempotent cancel flag
func (suite *MaintenanceWindowRepositoryTestSuite) TestCancel() {
	window := suite.mustCreate(suite.factory.Create())

	suite.NoError(suite.repo.Cancel(window.ID))
	suite.NoError(suite.repo.Cancel(window.ID)) // second cancel is a no-op

	retrieved, err := suite.repo.GetByID(window.ID)
	suite.NoError(err)
	suite.False(retrieved.IsActive)

	windows, err := suite.repo.GetEffectiveWindows(time.Now().UTC())
	suite.NoError(err)
	suite.Empty(windows)
}

// TestDelete tests hard deletion
func (suite *MaintenanceWindowRepositoryTestSuite) TestDelete() {
	window := suite.mustCreate(suite.factory.Create())

	suite.NoError(suite.repo.Delete(window.ID))

	_, err := suite.repo.GetByID(window.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestMaintenanceWindowRepositoryTestSuite runs the test suite
func TestMaintenanceWindowRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceWindowRepositoryTestSuite))
}
