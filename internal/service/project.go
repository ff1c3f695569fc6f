package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"saas-admin-backend/internal/database/models"
	apperrors "saas-admin-backend/internal/errors"
	"saas-admin-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectService handles business logic for delivery projects and milestones
type ProjectService struct {
	repo        repository.ProjectRepositoryInterface
	companyRepo repository.CompanyRepositoryInterface
	validator   *validator.Validate
}

// NewProjectService creates a new project service
func NewProjectService(repo repository.ProjectRepositoryInterface, companyRepo repository.CompanyRepositoryInterface, validator *validator.Validate) *ProjectService {
	return &ProjectService{
		repo:        repo,
		companyRepo: companyRepo,
		validator:   validator,
	}
}

// CreateProjectRequest represents the request to create a project
type CreateProjectRequest struct {
	CompanyID   uuid.UUID          `json:"company_id" validate:"required"`
	Name        string             `json:"name" validate:"required,min=1,max=100"`
	Kind        models.ProjectKind `json:"kind" validate:"required"`
	Description string             `json:"description,omitempty" validate:"omitempty,max=500"`
	Metadata    json.RawMessage    `json:"metadata,omitempty" swaggertype:"object"`
}

// UpdateProjectRequest represents the request to update a project
type UpdateProjectRequest struct {
	Status      *models.ProjectStatus `json:"status,omitempty"`
	Description string                `json:"description,omitempty" validate:"omitempty,max=500"`
	Metadata    json.RawMessage       `json:"metadata,omitempty" swaggertype:"object"`
}

// CreateMilestoneRequest represents the request to add a milestone
type CreateMilestoneRequest struct {
	Name      string     `json:"name" validate:"required,min=1,max=100"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	SortOrder int        `json:"sort_order,omitempty"`
}

// MilestoneResponse represents a milestone in API responses
type MilestoneResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Name        string     `json:"name"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	SortOrder   int        `json:"sort_order"`
}

// ProjectResponse represents a project in API responses. Progress is the
// completed-milestone percentage, derived at response time.
type ProjectResponse struct {
	ID          uuid.UUID            `json:"id"`
	CompanyID   uuid.UUID            `json:"company_id"`
	Name        string               `json:"name"`
	Kind        models.ProjectKind   `json:"kind"`
	Status      models.ProjectStatus `json:"status"`
	Description string               `json:"description,omitempty"`
	Progress    int                  `json:"progress"`
	Milestones  []MilestoneResponse  `json:"milestones,omitempty"`
	Metadata    json.RawMessage      `json:"metadata,omitempty" swaggertype:"object"`
}

// ProjectListResponse represents a paginated list of projects
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// Create creates a new delivery project
func (s *ProjectService) Create(req *CreateProjectRequest) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Kind.IsValid() {
		return nil, apperrors.NewValidationError("kind", "unknown project kind")
	}

	if _, err := s.companyRepo.GetByID(req.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to verify company: %w", err)
	}

	project := &models.Project{
		CompanyID:   req.CompanyID,
		Name:        req.Name,
		Kind:        req.Kind,
		Status:      models.ProjectStatusPlanning,
		Description: req.Description,
		Metadata:    req.Metadata,
	}

	if err := s.repo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.toResponse(project), nil
}

// GetByID retrieves a project with milestones and derived progress
func (s *ProjectService) GetByID(id uuid.UUID) (*ProjectResponse, error) {
	project, err := s.repo.GetWithMilestones(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return s.toResponse(project), nil
}

// ListByCompany retrieves a company's projects with pagination
func (s *ProjectService) ListByCompany(companyID uuid.UUID, page, pageSize int) (*ProjectListResponse, error) {
	page, pageSize = normalizePagination(page, pageSize)

	if _, err := s.companyRepo.GetByID(companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to verify company: %w", err)
	}

	projects, total, err := s.repo.GetByCompanyID(companyID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, *s.toResponse(&projects[i]))
	}

	return &ProjectListResponse{
		Projects: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Update updates a project
func (s *ProjectService) Update(id uuid.UUID, req *UpdateProjectRequest) (*ProjectResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	project, err := s.repo.GetWithMilestones(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, apperrors.ErrInvalidStatus
		}
		project.Status = *req.Status
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.Metadata != nil {
		project.Metadata = req.Metadata
	}

	if err := s.repo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.toResponse(project), nil
}

// Delete deletes a project and its milestones
func (s *ProjectService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("failed to get project: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// AddMilestone adds a milestone to a project
func (s *ProjectService) AddMilestone(projectID uuid.UUID, req *CreateMilestoneRequest) (*MilestoneResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.repo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to verify project: %w", err)
	}

	milestone := &models.ProjectMilestone{
		ProjectID: projectID,
		Name:      req.Name,
		DueDate:   req.DueDate,
		SortOrder: req.SortOrder,
	}

	if err := s.repo.CreateMilestone(milestone); err != nil {
		return nil, fmt.Errorf("failed to create milestone: %w", err)
	}

	return s.milestoneToResponse(milestone), nil
}

// CompleteMilestone marks a milestone as completed
func (s *ProjectService) CompleteMilestone(id uuid.UUID) (*MilestoneResponse, error) {
	milestone, err := s.repo.GetMilestoneByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}

	if !milestone.Completed {
		now := time.Now().UTC()
		milestone.Completed = true
		milestone.CompletedAt = &now
		if err := s.repo.UpdateMilestone(milestone); err != nil {
			return nil, fmt.Errorf("failed to update milestone: %w", err)
		}
	}

	return s.milestoneToResponse(milestone), nil
}

// DeleteMilestone removes a milestone
func (s *ProjectService) DeleteMilestone(id uuid.UUID) error {
	if _, err := s.repo.GetMilestoneByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMilestoneNotFound
		}
		return fmt.Errorf("failed to get milestone: %w", err)
	}
	if err := s.repo.DeleteMilestone(id); err != nil {
		return fmt.Errorf("failed to delete milestone: %w", err)
	}
	return nil
}

func (s *ProjectService) toResponse(project *models.Project) *ProjectResponse {
	milestones := make([]MilestoneResponse, 0, len(project.Milestones))
	for i := range project.Milestones {
		milestones = append(milestones, *s.milestoneToResponse(&project.Milestones[i]))
	}
	return &ProjectResponse{
		ID:          project.ID,
		CompanyID:   project.CompanyID,
		Name:        project.Name,
		Kind:        project.Kind,
		Status:      project.Status,
		Description: project.Description,
		Progress:    project.Progress(),
		Milestones:  milestones,
		Metadata:    project.Metadata,
	}
}

func (s *ProjectService) milestoneToResponse(milestone *models.ProjectMilestone) *MilestoneResponse {
	return &MilestoneResponse{
		ID:          milestone.ID,
		ProjectID:   milestone.ProjectID,
		Name:        milestone.Name,
		DueDate:     milestone.DueDate,
		Completed:   milestone.Completed,
		CompletedAt: milestone.CompletedAt,
		SortOrder:   milestone.SortOrder,
	}
}
