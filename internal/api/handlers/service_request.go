package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"saas-admin-backend/internal/auth"
	apperrors "saas-admin-backend/internal/errors"
	"saas-admin-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ServiceRequestHandler handles HTTP requests for service requests
type ServiceRequestHandler struct {
	service service.ServiceRequestServiceInterface
}

// NewServiceRequestHandler creates a new service request handler
func NewServiceRequestHandler(service service.ServiceRequestServiceInterface) *ServiceRequestHandler {
	return &ServiceRequestHandler{service: service}
}

// CreateServiceRequest handles POST /api/v1/service-requests
// @Summary File a service request
// @Description Request a new service for a company; suspended companies are rejected
// @Tags service-requests
// @Accept json
// @Produce json
// @Param request body service.CreateServiceRequestRequest true "Request data"
// @Success 201 {object} service.ServiceRequestResponse "Successfully filed request"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Authentication required"
// @Failure 404 {object} map[string]interface{} "Company or service type not found"
// @Failure 422 {object} map[string]interface{} "Company is suspended"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /service-requests [post]
func (h *ServiceRequestHandler) CreateServiceRequest(c *gin.Context) {
	var req service.CreateServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	requestedBy, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	request, err := h.service.Create(&req, requestedBy)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCompanyNotFound), errors.Is(err, apperrors.ErrServiceTypeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrCompanySuspended):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service request", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, request)
}

// ListServiceRequests handles GET /api/v1/service-requests
// @Summary List service requests
// @Description Get a paginated list of service requests, optionally filtered by company
// @Tags service-requests
// @Accept json
// @Produce json
// @Param company_id query string false "Filter by company ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} service.ServiceRequestListResponse "Successfully retrieved requests"
// @Failure 400 {object} map[string]interface{} "Invalid company ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /service-requests [get]
func (h *ServiceRequestHandler) ListServiceRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if companyIDStr := c.Query("company_id"); companyIDStr != "" {
		companyID, err := uuid.Parse(companyIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID: invalid UUID format"})
			return
		}

		requests, err := h.service.ListByCompany(companyID, page, pageSize)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list service requests", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, requests)
		return
	}

	requests, err := h.service.List(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list service requests", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, requests)
}

// ApproveServiceRequest handles POST /api/v1/service-requests/:id/approve
// @Summary Approve a service request
// @Description Approve a pending request and provision the service instance
// @Tags service-requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID (UUID)"
// @Success 200 {object} service.ServiceRequestResponse "Successfully approved request"
// @Failure 400 {object} map[string]interface{} "Invalid request ID"
// @Failure 401 {object} map[string]interface{} "Authentication required"
// @Failure 404 {object} map[string]interface{} "Request not found"
// @Failure 409 {object} map[string]interface{} "Request already reviewed"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /service-requests/{id}/approve [post]
func (h *ServiceRequestHandler) ApproveServiceRequest(c *gin.Context) {
	h.review(c, h.service.Approve)
}

// RejectServiceRequest handles POST /api/v1/service-requests/:id/reject
// @Summary Reject a service request
// @Description Reject a pending request
// @Tags service-requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID (UUID)"
// @Success 200 {object} service.ServiceRequestResponse "Successfully rejected request"
// @Failure 400 {object} map[string]interface{} "Invalid request ID"
// @Failure 401 {object} map[string]interface{} "Authentication required"
// @Failure 404 {object} map[string]interface{} "Request not found"
// @Failure 409 {object} map[string]interface{} "Request already reviewed"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /service-requests/{id}/reject [post]
func (h *ServiceRequestHandler) RejectServiceRequest(c *gin.Context) {
	h.review(c, h.service.Reject)
}

func (h *ServiceRequestHandler) review(c *gin.Context, action func(id, reviewedBy uuid.UUID) (*service.ServiceRequestResponse, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID: invalid UUID format"})
		return
	}

	reviewedBy, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	request, err := action(id, reviewedBy)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrServiceRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRequestAlreadyReviewed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to review service request", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, request)
}
