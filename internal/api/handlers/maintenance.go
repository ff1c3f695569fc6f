package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"saas-admin-backend/internal/auth"
	apperrors "saas-admin-backend/internal/errors"
	"saas-admin-backend/internal/logger"
	"saas-admin-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaintenanceHandler handles HTTP requests for maintenance windows
type MaintenanceHandler struct {
	service service.MaintenanceServiceInterface
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(service service.MaintenanceServiceInterface) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// GetMaintenanceStatus handles GET /api/v1/maintenance/status
// @Summary Get maintenance status
// @Description Get the currently effective maintenance window, the remaining countdown and the reload grace. This is the endpoint the maintenance page polls.
// @Tags maintenance
// @Accept json
// @Produce json
// @Success 200 {object} service.MaintenanceStatusResponse "Current maintenance status"
// @Router /maintenance/status [get]
func (h *MaintenanceHandler) GetMaintenanceStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.GetStatus())
}

// GetActiveMaintenanceWindow handles GET /api/v1/maintenance/active
// @Summary Get active maintenance window
// @Description Get the currently effective maintenance window, if any
// @Tags maintenance
// @Accept json
// @Produce json
// @Success 200 {object} service.MaintenanceWindowResponse "Active window"
// @Success 204 "No active window"
// @Security BearerAuth
// @Router /maintenance/active [get]
func (h *MaintenanceHandler) GetActiveMaintenanceWindow(c *gin.Context) {
	window := h.service.GetActive()
	if window == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, window)
}

// CreateMaintenanceWindow handles POST /api/v1/maintenance/windows
// @Summary Schedule a maintenance window
// @Description Schedule a system-wide maintenance window with bilingual notice messages
// @Tags maintenance
// @Accept json
// @Produce json
// @Param window body service.CreateMaintenanceWindowRequest true "Window data"
// @Success 201 {object} service.MaintenanceWindowResponse "Successfully scheduled window"
// @Failure 400 {object} map[string]interface{} "Invalid request body or time range"
// @Failure 401 {object} map[string]interface{} "Authentication required"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /maintenance/windows [post]
func (h *MaintenanceHandler) CreateMaintenanceWindow(c *gin.Context) {
	var req service.CreateMaintenanceWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	scheduledBy, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	window, err := h.service.Create(&req, scheduledBy)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidTimeRange) || apperrors.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create maintenance window", "details": err.Error()})
		return
	}

	logger.WithContext(c).WithField("window_id", window.ID).Info("maintenance window scheduled")
	c.JSON(http.StatusCreated, window)
}

// GetUpcomingMaintenanceWindows handles GET /api/v1/maintenance/windows/upcoming
// @Summary List upcoming maintenance windows
// @Description Get scheduled windows that have not started yet
// @Tags maintenance
// @Accept json
// @Produce json
// @Success 200 {array} service.MaintenanceWindowResponse "Upcoming windows"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /maintenance/windows/upcoming [get]
func (h *MaintenanceHandler) GetUpcomingMaintenanceWindows(c *gin.Context) {
	windows, err := h.service.GetUpcoming()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get upcoming maintenance windows", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, windows)
}

// GetMaintenanceHistory handles GET /api/v1/maintenance/windows/history
// @Summary Get maintenance history
// @Description Get the most recent maintenance windows, newest first
// @Tags maintenance
// @Accept json
// @Produce json
// @Param limit query int false "Maximum number of windows (default 20, max 100)"
// @Success 200 {array} service.MaintenanceWindowResponse "Window history"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /maintenance/windows/history [get]
func (h *MaintenanceHandler) GetMaintenanceHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	windows, err := h.service.GetHistory(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get maintenance history", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, windows)
}

// CancelMaintenanceWindow handles POST /api/v1/maintenance/windows/:id/cancel
// @Summary Cancel a maintenance window
// @Description Mark a scheduled or running window inactive; canceling twice is a no-op
// @Tags maintenance
// @Accept json
// @Produce json
// @Param id path string true "Window ID (UUID)"
// @Success 204 "Successfully canceled window"
// @Failure 400 {object} map[string]interface{} "Invalid window ID"
// @Failure 404 {object} map[string]interface{} "Window not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /maintenance/windows/{id}/cancel [post]
func (h *MaintenanceHandler) CancelMaintenanceWindow(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid window ID: invalid UUID format"})
		return
	}

	if err := h.service.Cancel(id); err != nil {
		if errors.Is(err, apperrors.ErrMaintenanceWindowNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel maintenance window", "details": err.Error()})
		return
	}

	logger.WithContext(c).WithField("window_id", id).Info("maintenance window canceled")
	c.Status(http.StatusNoContent)
}

// DeleteMaintenanceWindow handles DELETE /api/v1/maintenance/windows/:id
// @Summary Delete a maintenance window
// @Description Hard-delete a maintenance window record
// @Tags maintenance
// @Accept json
// @Produce json
// @Param id path string true "Window ID (UUID)"
// @Success 204 "Successfully deleted window"
// @Failure 400 {object} map[string]interface{} "Invalid window ID"
// @Failure 404 {object} map[string]interface{} "Window not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /maintenance/windows/{id} [delete]
func (h *MaintenanceHandler) DeleteMaintenanceWindow(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid window ID: invalid UUID format"})
		return
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrMaintenanceWindowNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete maintenance window", "details": err.Error()})
		return
	}

	logger.WithContext(c).WithField("window_id", id).Info("maintenance window deleted")
	c.Status(http.StatusNoContent)
}
