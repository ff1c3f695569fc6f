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

// CompanyService handles business logic for tenant companies
type CompanyService struct {
	repo      repository.CompanyRepositoryInterface
	validator *validator.Validate
}

// NewCompanyService creates a new company service
func NewCompanyService(repo repository.CompanyRepositoryInterface, validator *validator.Validate) *CompanyService {
	return &CompanyService{
		repo:      repo,
		validator: validator,
	}
}

// CreateCompanyRequest represents the request to create a company
type CreateCompanyRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=100"`
	Domain       string          `json:"domain,omitempty" validate:"omitempty,max=255"`
	ContactEmail string          `json:"contact_email" validate:"required,email,max=255"`
	Phone        string          `json:"phone,omitempty" validate:"omitempty,max=20"`
	Plan         string          `json:"plan,omitempty" validate:"omitempty,max=50"`
	Metadata     json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// UpdateCompanyRequest represents the request to update a company
type UpdateCompanyRequest struct {
	Domain       string          `json:"domain,omitempty" validate:"omitempty,max=255"`
	ContactEmail string          `json:"contact_email,omitempty" validate:"omitempty,email,max=255"`
	Phone        string          `json:"phone,omitempty" validate:"omitempty,max=20"`
	Plan         string          `json:"plan,omitempty" validate:"omitempty,max=50"`
	Metadata     json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Domain       string               `json:"domain,omitempty"`
	ContactEmail string               `json:"contact_email"`
	Phone        string               `json:"phone,omitempty"`
	Status       models.CompanyStatus `json:"status"`
	Plan         string               `json:"plan,omitempty"`
	Metadata     json.RawMessage      `json:"metadata,omitempty" swaggertype:"object"`
	CreatedAt    string               `json:"created_at"`
	UpdatedAt    string               `json:"updated_at"`
}

// CompanyListResponse represents a paginated list of companies
type CompanyListResponse struct {
	Companies []CompanyResponse `json:"companies"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	PageSize  int               `json:"page_size"`
}

// Create creates a new company
func (s *CompanyService) Create(req *CreateCompanyRequest) (*CompanyResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.repo.GetByName(req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing company by name: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrCompanyExists
	}

	if req.Domain != "" {
		existingByDomain, err := s.repo.GetByDomain(req.Domain)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check existing company by domain: %w", err)
		}
		if existingByDomain != nil {
			return nil, apperrors.ErrCompanyExists
		}
	}

	company := &models.Company{
		Name:         req.Name,
		Domain:       req.Domain,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		Status:       models.CompanyStatusActive,
		Plan:         req.Plan,
		Metadata:     req.Metadata,
	}

	if err := s.repo.Create(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return s.toResponse(company), nil
}

// GetByID retrieves a company by ID
func (s *CompanyService) GetByID(id uuid.UUID) (*CompanyResponse, error) {
	company, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return s.toResponse(company), nil
}

// List retrieves companies with pagination
func (s *CompanyService) List(page, pageSize int) (*CompanyListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	companies, total, err := s.repo.GetAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	responses := make([]CompanyResponse, 0, len(companies))
	for i := range companies {
		responses = append(responses, *s.toResponse(&companies[i]))
	}

	return &CompanyListResponse{
		Companies: responses,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

// Update updates a company
func (s *CompanyService) Update(id uuid.UUID, req *UpdateCompanyRequest) (*CompanyResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	company, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	if req.Domain != "" {
		company.Domain = req.Domain
	}
	if req.ContactEmail != "" {
		company.ContactEmail = req.ContactEmail
	}
	if req.Phone != "" {
		company.Phone = req.Phone
	}
	if req.Plan != "" {
		company.Plan = req.Plan
	}
	if req.Metadata != nil {
		company.Metadata = req.Metadata
	}

	if err := s.repo.Update(company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	return s.toResponse(company), nil
}

// SetStatus suspends or reactivates a company
func (s *CompanyService) SetStatus(id uuid.UUID, status models.CompanyStatus) (*CompanyResponse, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	company, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	if err := s.repo.SetStatus(id, status); err != nil {
		return nil, fmt.Errorf("failed to set company status: %w", err)
	}

	company.Status = status
	return s.toResponse(company), nil
}

// Delete deletes a company
func (s *CompanyService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to get company: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	return nil
}

func (s *CompanyService) toResponse(company *models.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:           company.ID,
		Name:         company.Name,
		Domain:       company.Domain,
		ContactEmail: company.ContactEmail,
		Phone:        company.Phone,
		Status:       company.Status,
		Plan:         company.Plan,
		Metadata:     company.Metadata,
		CreatedAt:    company.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    company.UpdatedAt.Format(time.RFC3339),
	}
}
