package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "saas-admin-backend/internal/errors"
	"saas-admin-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles HTTP requests for delivery projects
type ProjectHandler struct {
	service service.ProjectServiceInterface
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(service service.ProjectServiceInterface) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// CreateProject handles POST /api/v1/projects
// @Summary Create a project
// @Description Create a website or mobile app delivery project for a company
// @Tags projects
// @Accept json
// @Produce json
// @Param project body service.CreateProjectRequest true "Project data"
// @Success 201 {object} service.ProjectResponse "Successfully created project"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	project, err := h.service.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrCompanyNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case apperrors.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProject handles GET /api/v1/projects/:id
// @Summary Get project by ID
// @Description Get a project with its milestones and derived progress
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} service.ProjectResponse "Successfully retrieved project"
// @Failure 400 {object} map[string]interface{} "Invalid project ID"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID: invalid UUID format"})
		return
	}

	project, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get project", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListCompanyProjects handles GET /api/v1/companies/:id/projects
// @Summary List a company's projects
// @Description Get a paginated list of a company's delivery projects
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Company ID (UUID)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} service.ProjectListResponse "Successfully retrieved projects"
// @Failure 400 {object} map[string]interface{} "Invalid company ID"
// @Failure 404 {object} map[string]interface{} "Company not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /companies/{id}/projects [get]
func (h *ProjectHandler) ListCompanyProjects(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID: invalid UUID format"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	projects, err := h.service.ListByCompany(companyID, page, pageSize)
	if err != nil {
		if errors.Is(err, apperrors.ErrCompanyNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, projects)
}

// UpdateProject handles PUT /api/v1/projects/:id
// @Summary Update a project
// @Description Update a project's status, description or metadata
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param project body service.UpdateProjectRequest true "Project data"
// @Success 200 {object} service.ProjectResponse "Successfully updated project"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID: invalid UUID format"})
		return
	}

	var req service.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	project, err := h.service.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /api/v1/projects/:id
// @Summary Delete a project
// @Description Delete a project and its milestones
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 204 "Successfully deleted project"
// @Failure 400 {object} map[string]interface{} "Invalid project ID"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID: invalid UUID format"})
		return
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// AddProjectMilestone handles POST /api/v1/projects/:id/milestones
// @Summary Add a milestone
// @Description Add a milestone to a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param milestone body service.CreateMilestoneRequest true "Milestone data"
// @Success 201 {object} service.MilestoneResponse "Successfully added milestone"
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /projects/{id}/milestones [post]
func (h *ProjectHandler) AddProjectMilestone(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID: invalid UUID format"})
		return
	}

	var req service.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	milestone, err := h.service.AddMilestone(projectID, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add milestone", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, milestone)
}

// CompleteProjectMilestone handles POST /api/v1/milestones/:id/complete
// @Summary Complete a milestone
// @Description Mark a milestone as completed; completing twice is a no-op
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Milestone ID (UUID)"
// @Success 200 {object} service.MilestoneResponse "Successfully completed milestone"
// @Failure 400 {object} map[string]interface{} "Invalid milestone ID"
// @Failure 404 {object} map[string]interface{} "Milestone not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /milestones/{id}/complete [post]
func (h *ProjectHandler) CompleteProjectMilestone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid milestone ID: invalid UUID format"})
		return
	}

	milestone, err := h.service.CompleteMilestone(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrMilestoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete milestone", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, milestone)
}

// DeleteProjectMilestone handles DELETE /api/v1/milestones/:id
// @Summary Delete a milestone
// @Description Remove a milestone from its project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Milestone ID (UUID)"
// @Success 204 "Successfully deleted milestone"
// @Failure 400 {object} map[string]interface{} "Invalid milestone ID"
// @Failure 404 {object} map[string]interface{} "Milestone not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /milestones/{id} [delete]
func (h *ProjectHandler) DeleteProjectMilestone(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid milestone ID: invalid UUID format"})
		return
	}

	if err := h.service.DeleteMilestone(id); err != nil {
		if errors.Is(err, apperrors.ErrMilestoneNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete milestone", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
