package repository

import (
	"time"

	"saas-admin-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaintenanceWindowRepository is the persistence side of the maintenance
// window store. Effectiveness is computed against the caller's clock, never
// stored as a flag.
type MaintenanceWindowRepository struct {
	db *gorm.DB
}

// NewMaintenanceWindowRepository creates a new maintenance window repository
func NewMaintenanceWindowRepository(db *gorm.DB) *MaintenanceWindowRepository {
	return &MaintenanceWindowRepository{db: db}
}

// Create creates a new maintenance window
func (r *MaintenanceWindowRepository) Create(window *models.MaintenanceWindow) error {
	return r.db.Create(window).Error
}

// GetByID retrieves a maintenance window by ID
func (r *MaintenanceWindowRepository) GetByID(id uuid.UUID) (*models.MaintenanceWindow, error) {
	var window models.MaintenanceWindow
	err := r.db.First(&window, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &window, nil
}

// GetEffectiveWindows returns all windows in effect at now: not canceled
// and containing the instant. Normally zero or one row; the gate resolves
// ties deterministically when operators overlap windows by mistake.
func (r *MaintenanceWindowRepository) GetEffectiveWindows(now time.Time) ([]models.MaintenanceWindow, error) {
	var windows []models.MaintenanceWindow
	err := r.db.
		Where("is_active = ? AND start_time <= ? AND end_time >= ?", true, now, now).
		Order("start_time").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

// GetUpcomingWindows returns scheduled windows that have not started yet,
// soonest first
func (r *MaintenanceWindowRepository) GetUpcomingWindows(now time.Time) ([]models.MaintenanceWindow, error) {
	var windows []models.MaintenanceWindow
	err := r.db.
		Where("is_active = ? AND start_time > ?", true, now).
		Order("start_time").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

// GetHistory returns the most recent windows regardless of state, newest
// first, capped at limit
func (r *MaintenanceWindowRepository) GetHistory(limit int) ([]models.MaintenanceWindow, error) {
	var windows []models.MaintenanceWindow
	err := r.db.
		Order("start_time DESC").
		Limit(limit).
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

// Cancel marks the window inactive. Idempotent: canceling an already
// canceled window is not an error.
func (r *MaintenanceWindowRepository) Cancel(id uuid.UUID) error {
	return r.db.Model(&models.MaintenanceWindow{}).Where("id = ?", id).Update("is_active", false).Error
}

// Delete hard-deletes a maintenance window
func (r *MaintenanceWindowRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.MaintenanceWindow{}, "id = ?", id).Error
}
