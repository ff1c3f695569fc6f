package service

import (
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

// ServiceRequestService handles business logic for service requests
type ServiceRequestService struct {
	repo         repository.ServiceRequestRepositoryInterface
	companyRepo  repository.CompanyRepositoryInterface
	typeRepo     repository.ServiceTypeRepositoryInterface
	instanceRepo repository.ServiceInstanceRepositoryInterface
	validator    *validator.Validate
}

// NewServiceRequestService creates a new service request service
func NewServiceRequestService(
	repo repository.ServiceRequestRepositoryInterface,
	companyRepo repository.CompanyRepositoryInterface,
	typeRepo repository.ServiceTypeRepositoryInterface,
	instanceRepo repository.ServiceInstanceRepositoryInterface,
	validator *validator.Validate,
) *ServiceRequestService {
	return &ServiceRequestService{
		repo:         repo,
		companyRepo:  companyRepo,
		typeRepo:     typeRepo,
		instanceRepo: instanceRepo,
		validator:    validator,
	}
}

// CreateServiceRequestRequest represents a company's request for a new service
type CreateServiceRequestRequest struct {
	CompanyID     uuid.UUID `json:"company_id" validate:"required"`
	ServiceTypeID uuid.UUID `json:"service_type_id" validate:"required"`
	Notes         string    `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// ServiceRequestResponse represents a service request in API responses
type ServiceRequestResponse struct {
	ID            uuid.UUID                   `json:"id"`
	CompanyID     uuid.UUID                   `json:"company_id"`
	ServiceTypeID uuid.UUID                   `json:"service_type_id"`
	ServiceType   *ServiceTypeResponse        `json:"service_type,omitempty"`
	RequestedBy   uuid.UUID                   `json:"requested_by"`
	Status        models.ServiceRequestStatus `json:"status"`
	Notes         string                      `json:"notes,omitempty"`
	ReviewedBy    *uuid.UUID                  `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time                  `json:"reviewed_at,omitempty"`
	CreatedAt     string                      `json:"created_at"`
}

// ServiceRequestListResponse represents a paginated list of service requests
type ServiceRequestListResponse struct {
	Requests []ServiceRequestResponse `json:"requests"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
}

// Create files a new service request on behalf of a company admin
func (s *ServiceRequestService) Create(req *CreateServiceRequestRequest, requestedBy uuid.UUID) (*ServiceRequestResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	company, err := s.companyRepo.GetByID(req.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to verify company: %w", err)
	}
	if company.Status == models.CompanyStatusSuspended {
		return nil, apperrors.ErrCompanySuspended
	}

	if _, err := s.typeRepo.GetByID(req.ServiceTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrServiceTypeNotFound
		}
		return nil, fmt.Errorf("failed to verify service type: %w", err)
	}

	request := &models.ServiceRequest{
		CompanyID:     req.CompanyID,
		ServiceTypeID: req.ServiceTypeID,
		RequestedBy:   requestedBy,
		Status:        models.ServiceRequestPending,
		Notes:         req.Notes,
	}

	if err := s.repo.Create(request); err != nil {
		return nil, fmt.Errorf("failed to create service request: %w", err)
	}

	return s.toResponse(request), nil
}

// List retrieves all service requests with pagination
func (s *ServiceRequestService) List(page, pageSize int) (*ServiceRequestListResponse, error) {
	page, pageSize = normalizePagination(page, pageSize)

	requests, total, err := s.repo.GetAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list service requests: %w", err)
	}

	return s.toListResponse(requests, total, page, pageSize), nil
}

// ListByCompany retrieves a company's service requests with pagination
func (s *ServiceRequestService) ListByCompany(companyID uuid.UUID, page, pageSize int) (*ServiceRequestListResponse, error) {
	page, pageSize = normalizePagination(page, pageSize)

	requests, total, err := s.repo.GetByCompanyID(companyID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list service requests: %w", err)
	}

	return s.toListResponse(requests, total, page, pageSize), nil
}

// Approve approves a pending request and provisions the service instance
func (s *ServiceRequestService) Approve(id, reviewedBy uuid.UUID) (*ServiceRequestResponse, error) {
	return s.review(id, reviewedBy, models.ServiceRequestApproved)
}

// Reject rejects a pending request
func (s *ServiceRequestService) Reject(id, reviewedBy uuid.UUID) (*ServiceRequestResponse, error) {
	return s.review(id, reviewedBy, models.ServiceRequestRejected)
}

func (s *ServiceRequestService) review(id, reviewedBy uuid.UUID, status models.ServiceRequestStatus) (*ServiceRequestResponse, error) {
	request, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrServiceRequestNotFound
		}
		return nil, fmt.Errorf("failed to get service request: %w", err)
	}

	if request.Status != models.ServiceRequestPending {
		return nil, apperrors.ErrRequestAlreadyReviewed
	}

	now := time.Now().UTC()
	request.Status = status
	request.ReviewedBy = &reviewedBy
	request.ReviewedAt = &now

	if err := s.repo.Update(request); err != nil {
		return nil, fmt.Errorf("failed to update service request: %w", err)
	}

	if status == models.ServiceRequestApproved {
		existing, err := s.instanceRepo.GetByCompanyAndType(request.CompanyID, request.ServiceTypeID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing instance: %w", err)
		}
		if existing == nil {
			instance := &models.ServiceInstance{
				CompanyID:     request.CompanyID,
				ServiceTypeID: request.ServiceTypeID,
				Status:        models.ServiceStatusActive,
			}
			if err := s.instanceRepo.Create(instance); err != nil {
				return nil, fmt.Errorf("failed to provision service instance: %w", err)
			}
		}
	}

	return s.toResponse(request), nil
}

func (s *ServiceRequestService) toResponse(request *models.ServiceRequest) *ServiceRequestResponse {
	resp := &ServiceRequestResponse{
		ID:            request.ID,
		CompanyID:     request.CompanyID,
		ServiceTypeID: request.ServiceTypeID,
		RequestedBy:   request.RequestedBy,
		Status:        request.Status,
		Notes:         request.Notes,
		ReviewedBy:    request.ReviewedBy,
		ReviewedAt:    request.ReviewedAt,
		CreatedAt:     request.CreatedAt.Format(time.RFC3339),
	}
	if request.ServiceType != nil {
		resp.ServiceType = &ServiceTypeResponse{
			ID:          request.ServiceType.ID,
			Slug:        request.ServiceType.Slug,
			Title:       request.ServiceType.Title,
			Description: request.ServiceType.Description,
			Status:      request.ServiceType.Status,
		}
	}
	return resp
}

func (s *ServiceRequestService) toListResponse(requests []models.ServiceRequest, total int64, page, pageSize int) *ServiceRequestListResponse {
	responses := make([]ServiceRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *s.toResponse(&requests[i]))
	}
	return &ServiceRequestListResponse{
		Requests: responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
