package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"saas-admin-backend/internal/database/models"
	apperrors "saas-admin-backend/internal/errors"
	"saas-admin-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CompanyHandler handles HTTP requests for tenant companies
type CompanyHandler struct {
	service service.CompanyServiceInterface
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(service service.CompanyServiceInterface) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// CreateCompany handles POST /api/v1/companies
// @Summary Create a new company
// @Description Create a new tenant company with the provided details
// @Tags companies
// @Accept json
// @Produce json
// @Param company body service.CreateCompanyRequest true "Company data"
// @Success 201 {object} service.CompanyResponse "Successfully created company"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 409 {object} map[string]interface{} "Company already exists"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /companies [post]
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req service.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	company, err := h.service.Create(&req)
	if err != nil {
		if errors.Is(err, apperrors.ErrCompanyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create company", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, company)
}

// GetCompany handles GET /api/v1/companies/:id
// @Summary Get company by ID
// @Description Get a specific company by its UUID
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Success 200 {object} service.CompanyResponse "Successfully retrieved company"
// @Failure 400 {object} map[string]interface{} "Invalid company ID"
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID: invalid UUID format"})
		return
	}

	company, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get company", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, company)
}

// ListCompanies handles GET /api/v1/companies
// @Summary List companies
// @Description Get a paginated list of tenant companies
// @Tags companies
// @Accept json
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} service.CompanyListResponse "Successfully retrieved companies"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /companies [get]
func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	companies, err := h.service.List(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list companies", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, companies)
}

// UpdateCompany handles PUT /api/v1/companies/:id
// @Summary Update a company
// @Description Update a company's contact and plan details
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Param company body service.UpdateCompanyRequest true "Company data"
// @Success 200 {object} service.CompanyResponse "Successfully updated company"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /companies/{id} [put]
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID: invalid UUID format"})
		return
	}

	var req service.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	company, err := h.service.Update(id, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update company", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, company)
}

// SetCompanyStatus handles PATCH /api/v1/companies/:id/status
// @Summary Set company status
// @Description Suspend or reactivate a tenant company
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Param status body object{status=string} true "New status (active or suspended)"
// @Success 200 {object} service.CompanyResponse "Successfully updated status"
// @Failure 400 {object} map[string]interface{} "Invalid status"
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /companies/{id}/status [patch]
func (h *CompanyHandler) SetCompanyStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID: invalid UUID format"})
		return
	}

	var req struct {
		Status models.CompanyStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	company, err := h.service.SetStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCompanyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set company status", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, company)
}

// DeleteCompany handles DELETE /api/v1/companies/:id
// @Summary Delete a company
// @Description Delete a tenant company and its scoped records
// @Tags companies
// @Accept json
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Success 204 "Successfully deleted company"
// @Failure 400 {object} map[string]interface{} "Invalid company ID"
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /companies/{id} [delete]
func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID: invalid UUID format"})
		return
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete company", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
