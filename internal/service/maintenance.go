package service

import (
	"errors"
	"fmt"
	"time"

	"saas-admin-backend/internal/database/models"
	apperrors "saas-admin-backend/internal/errors"
	"saas-admin-backend/internal/gate"
	"saas-admin-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaintenanceService handles business logic for maintenance windows
type MaintenanceService struct {
	repo        repository.MaintenanceWindowRepositoryInterface
	gate        *gate.Gate
	watcher     *gate.Watcher
	validator   *validator.Validate
	reloadGrace time.Duration
}

// NewMaintenanceService creates a new maintenance service. When a watcher is
// provided the status endpoint serves its polled snapshot instead of querying
// the store on every request; a nil watcher falls back to live queries.
func NewMaintenanceService(repo repository.MaintenanceWindowRepositoryInterface, g *gate.Gate, watcher *gate.Watcher, validator *validator.Validate, reloadGrace time.Duration) *MaintenanceService {
	return &MaintenanceService{
		repo:        repo,
		gate:        g,
		watcher:     watcher,
		validator:   validator,
		reloadGrace: reloadGrace,
	}
}

// CreateMaintenanceWindowRequest represents the request to schedule a maintenance window
type CreateMaintenanceWindowRequest struct {
	StartTime        time.Time `json:"start_time" validate:"required"`
	EndTime          time.Time `json:"end_time" validate:"required"`
	MessageTR        string    `json:"message_tr" validate:"required,max=1000"`
	MessageEN        string    `json:"message_en" validate:"required,max=1000"`
	AffectedServices []string  `json:"affected_services,omitempty"`
}

// MaintenanceWindowResponse represents a maintenance window in API responses
type MaintenanceWindowResponse struct {
	ID               uuid.UUID `json:"id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	MessageTR        string    `json:"message_tr"`
	MessageEN        string    `json:"message_en"`
	AffectedServices []string  `json:"affected_services,omitempty"`
	IsActive         bool      `json:"is_active"`
	ScheduledBy      uuid.UUID `json:"scheduled_by"`
	CreatedAt        string    `json:"created_at"`
}

// MaintenanceStatusResponse is what the maintenance landing page renders:
// the effective window (if any), the countdown, and the grace delay before
// the page should reload once the countdown hits zero.
type MaintenanceStatusResponse struct {
	Checking        bool                       `json:"checking,omitempty"`
	Active          bool                       `json:"active"`
	Window          *MaintenanceWindowResponse `json:"window,omitempty"`
	Remaining       *gate.Countdown            `json:"remaining,omitempty"`
	ReloadGraceSecs int                        `json:"reload_grace_seconds"`
}

// Create schedules a new maintenance window. The end must exceed the start
// and both notice messages are required.
func (s *MaintenanceService) Create(req *CreateMaintenanceWindowRequest, scheduledBy uuid.UUID) (*MaintenanceWindowResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !req.EndTime.After(req.StartTime) {
		return nil, apperrors.ErrInvalidTimeRange
	}

	window := &models.MaintenanceWindow{
		StartTime:        req.StartTime.UTC(),
		EndTime:          req.EndTime.UTC(),
		MessageTR:        req.MessageTR,
		MessageEN:        req.MessageEN,
		AffectedServices: req.AffectedServices,
		IsActive:         true,
		ScheduledBy:      scheduledBy,
	}

	if err := s.repo.Create(window); err != nil {
		return nil, fmt.Errorf("failed to create maintenance window: %w", err)
	}

	return s.toResponse(window), nil
}

// GetActive returns the currently effective window, or nil when the system
// is not under maintenance. Store failures fail open inside the gate.
func (s *MaintenanceService) GetActive() *MaintenanceWindowResponse {
	window := s.gate.ActiveWindow()
	if window == nil {
		return nil
	}
	return s.toResponse(window)
}

// GetStatus composes the maintenance landing page state. It reads the
// watcher's snapshot when one is wired, so steady-state polling from every
// dashboard session costs no store queries. Until the first poll resolves
// the response is marked checking and the page renders a neutral state.
func (s *MaintenanceService) GetStatus() *MaintenanceStatusResponse {
	window, checking := s.currentWindow()
	if checking {
		return &MaintenanceStatusResponse{
			Checking:        true,
			ReloadGraceSecs: int(s.reloadGrace.Seconds()),
		}
	}
	if window == nil {
		return &MaintenanceStatusResponse{
			Active:          false,
			ReloadGraceSecs: int(s.reloadGrace.Seconds()),
		}
	}

	remaining := s.gate.Remaining(window.EndTime)
	return &MaintenanceStatusResponse{
		Active:          true,
		Window:          s.toResponse(window),
		Remaining:       &remaining,
		ReloadGraceSecs: int(s.reloadGrace.Seconds()),
	}
}

func (s *MaintenanceService) currentWindow() (*models.MaintenanceWindow, bool) {
	if s.watcher != nil {
		snapshot := s.watcher.Snapshot()
		if snapshot.Checking {
			return nil, true
		}
		return snapshot.Window, false
	}
	return s.gate.ActiveWindow(), false
}

// GetUpcoming returns scheduled windows that have not started yet
func (s *MaintenanceService) GetUpcoming() ([]MaintenanceWindowResponse, error) {
	windows, err := s.repo.GetUpcomingWindows(time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming maintenance windows: %w", err)
	}
	return s.toResponses(windows), nil
}

// GetHistory returns the most recent windows, newest first
func (s *MaintenanceService) GetHistory(limit int) ([]MaintenanceWindowResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	windows, err := s.repo.GetHistory(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get maintenance history: %w", err)
	}
	return s.toResponses(windows), nil
}

// Cancel marks a window inactive. Canceling twice is not an error.
func (s *MaintenanceService) Cancel(id uuid.UUID) error {
	_, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMaintenanceWindowNotFound
		}
		return fmt.Errorf("failed to get maintenance window: %w", err)
	}

	if err := s.repo.Cancel(id); err != nil {
		return fmt.Errorf("failed to cancel maintenance window: %w", err)
	}
	return nil
}

// Delete hard-deletes a window
func (s *MaintenanceService) Delete(id uuid.UUID) error {
	_, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMaintenanceWindowNotFound
		}
		return fmt.Errorf("failed to get maintenance window: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete maintenance window: %w", err)
	}
	return nil
}

func (s *MaintenanceService) toResponse(window *models.MaintenanceWindow) *MaintenanceWindowResponse {
	return &MaintenanceWindowResponse{
		ID:               window.ID,
		StartTime:        window.StartTime,
		EndTime:          window.EndTime,
		MessageTR:        window.MessageTR,
		MessageEN:        window.MessageEN,
		AffectedServices: window.AffectedServices,
		IsActive:         window.IsActive,
		ScheduledBy:      window.ScheduledBy,
		CreatedAt:        window.CreatedAt.Format(time.RFC3339),
	}
}

func (s *MaintenanceService) toResponses(windows []models.MaintenanceWindow) []MaintenanceWindowResponse {
	responses := make([]MaintenanceWindowResponse, 0, len(windows))
	for i := range windows {
		responses = append(responses, *s.toResponse(&windows[i]))
	}
	return responses
}
