package handlers

import (
	"errors"
	"net/http"

	"saas-admin-backend/internal/auth"
	"saas-admin-backend/internal/database/models"
	apperrors "saas-admin-backend/internal/errors"
	"saas-admin-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ServiceCatalogHandler handles HTTP requests for the service catalog and
// per-company service instances
type ServiceCatalogHandler struct {
	service service.ServiceCatalogServiceInterface
}

// NewServiceCatalogHandler creates a new service catalog handler
func NewServiceCatalogHandler(service service.ServiceCatalogServiceInterface) *ServiceCatalogHandler {
	return &ServiceCatalogHandler{service: service}
}

// statusRequest is the body of the status update endpoints
type statusRequest struct {
	Status models.ServiceStatus `json:"status" binding:"required"`
}

// ListServiceTypes handles GET /api/v1/service-types
// @Summary List service types
// @Description Get the full service catalog
// @Tags service-catalog
// @Accept json
// @Produce json
// @Success 200 {array} service.ServiceTypeResponse "Successfully retrieved service types"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /service-types [get]
func (h *ServiceCatalogHandler) ListServiceTypes(c *gin.Context) {
	types, err := h.service.ListTypes()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list service types", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, types)
}

// GetServiceType handles GET /api/v1/service-types/:id
// @Summary Get service type by ID
// @Description Get a specific catalog entry by its UUID
// @Tags service-catalog
// @Accept json
// @Produce json
// @Param id path string true "Service type ID (UUID)"
// @Success 200 {object} service.ServiceTypeResponse "Successfully retrieved service type"
// @Failure 400 {object} map[string]interface{} "Invalid service type ID"
// @Failure 404 {object} map[string]interface{} "Service type not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /service-types/{id} [get]
func (h *ServiceCatalogHandler) GetServiceType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service type ID: invalid UUID format"})
		return
	}

	serviceType, err := h.service.GetType(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrServiceTypeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get service type", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, serviceType)
}

// SetServiceTypeStatus handles PATCH /api/v1/service-types/:id/status
// @Summary Set service type status
// @Description Update the type-level status; inactive disables the service for every role
// @Tags service-catalog
// @Accept json
// @Produce json
// @Param id path string true "Service type ID (UUID)"
// @Param status body statusRequest true "New status (active, maintenance or inactive)"
// @Success 200 {object} service.ServiceTypeResponse "Successfully updated status"
// @Failure 400 {object} map[string]interface{} "Invalid status"
// @Failure 404 {object} map[string]interface{} "Service type not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /service-types/{id}/status [patch]
func (h *ServiceCatalogHandler) SetServiceTypeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service type ID: invalid UUID format"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	serviceType, err := h.service.SetTypeStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrServiceTypeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set service type status", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, serviceType)
}

// CreateServiceInstance handles POST /api/v1/service-instances
// @Summary Provision a service instance
// @Description Provision a service of the given type for a company
// @Tags service-catalog
// @Accept json
// @Produce json
// @Param instance body service.CreateServiceInstanceRequest true "Instance data"
// @Success 201 {object} service.ServiceInstanceResponse "Successfully provisioned instance"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 404 {object} map[string]interface{} "Company or service type not found"
// @Failure 409 {object} map[string]interface{} "Instance already exists"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /service-instances [post]
func (h *ServiceCatalogHandler) CreateServiceInstance(c *gin.Context) {
	var req service.CreateServiceInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	instance, err := h.service.CreateInstance(&req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrServiceInstanceExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrCompanyNotFound), errors.Is(err, apperrors.ErrServiceTypeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create service instance", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, instance)
}

// GetCompanyServiceInstances handles GET /api/v1/companies/:id/service-instances
// @Summary List a company's service instances
// @Description Get all service instances provisioned for a company
// @Tags service-catalog
// @Accept json
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Success 200 {array} service.ServiceInstanceResponse "Successfully retrieved instances"
// @Failure 400 {object} map[string]interface{} "Invalid company ID"
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /companies/{id}/service-instances [get]
func (h *ServiceCatalogHandler) GetCompanyServiceInstances(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID: invalid UUID format"})
		return
	}

	instances, err := h.service.GetInstancesByCompany(companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list service instances", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, instances)
}

// UpdateServiceInstance handles PUT /api/v1/service-instances/:id
// @Summary Update a service instance
// @Description Update an instance's config and metadata
// @Tags service-catalog
// @Accept json
// @Produce json
// @Param id path string true "Instance ID (UUID)"
// @Param instance body service.UpdateServiceInstanceRequest true "Instance data"
// @Success 200 {object} service.ServiceInstanceResponse "Successfully updated instance"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Instance not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /service-instances/{id} [put]
func (h *ServiceCatalogHandler) UpdateServiceInstance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instance ID: invalid UUID format"})
		return
	}

	var req service.UpdateServiceInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	instance, err := h.service.UpdateInstance(id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrServiceInstanceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update service instance", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, instance)
}

// SetServiceInstanceStatus handles PATCH /api/v1/service-instances/:id/status
// @Summary Set service instance status
// @Description Update the instance-level status for a single company
// @Tags service-catalog
// @Accept json
// @Produce json
// @Param id path string true "Instance ID (UUID)"
// @Param status body statusRequest true "New status (active, maintenance or inactive)"
// @Success 200 {object} service.ServiceInstanceResponse "Successfully updated status"
// @Failure 400 {object} map[string]interface{} "Invalid status"
// @Failure 404 {object} map[string]interface{} "Instance not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /service-instances/{id}/status [patch]
func (h *ServiceCatalogHandler) SetServiceInstanceStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instance ID: invalid UUID format"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	instance, err := h.service.SetInstanceStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrServiceInstanceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set service instance status", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, instance)
}

// DeleteServiceInstance handles DELETE /api/v1/service-instances/:id
// @Summary Delete a service instance
// @Description Remove a provisioned service instance from a company
// @Tags service-catalog
// @Accept json
// @Produce json
// @Param id path string true "Instance ID (UUID)"
// @Success 204 "Successfully deleted instance"
// @Failure 400 {object} map[string]interface{} "Invalid instance ID"
// @Failure 404 {object} map[string]interface{} "Instance not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /service-instances/{id} [delete]
func (h *ServiceCatalogHandler) DeleteServiceInstance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instance ID: invalid UUID format"})
		return
	}

	if err := h.service.DeleteInstance(id); err != nil {
		if errors.Is(err, apperrors.ErrServiceInstanceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete service instance", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// CheckServiceAccess handles GET /api/v1/service-instances/:id/access
// @Summary Check service access
// @Description Evaluate whether the authenticated user may enter the service right now
// @Tags service-catalog
// @Accept json
// @Produce json
// @Param id path string true "Instance ID (UUID)"
// @Success 200 {object} gate.ServiceResult "Access decision"
// @Failure 400 {object} map[string]interface{} "Invalid instance ID"
// @Failure 404 {object} map[string]interface{} "Instance not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /service-instances/{id}/access [get]
func (h *ServiceCatalogHandler) CheckServiceAccess(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid instance ID: invalid UUID format"})
		return
	}

	role, _ := auth.GetUserRole(c)

	result, err := h.service.CheckAccess(id, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrServiceInstanceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check service access", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
