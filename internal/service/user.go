package service

import (
	"errors"
	"fmt"

	"saas-admin-backend/internal/database/models"
	apperrors "saas-admin-backend/internal/errors"
	"saas-admin-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService handles business logic for dashboard users
type UserService struct {
	repo        repository.UserRepositoryInterface
	companyRepo repository.CompanyRepositoryInterface
	validator   *validator.Validate
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, companyRepo repository.CompanyRepositoryInterface, validator *validator.Validate) *UserService {
	return &UserService{
		repo:        repo,
		companyRepo: companyRepo,
		validator:   validator,
	}
}

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	CompanyID *uuid.UUID      `json:"company_id,omitempty"`
	Email     string          `json:"email" validate:"required,email,max=255"`
	FirstName string          `json:"first_name" validate:"required,max=100"`
	LastName  string          `json:"last_name" validate:"required,max=100"`
	Role      models.UserRole `json:"role" validate:"required"`
}

// UpdateUserRequest represents the request to update a user
type UpdateUserRequest struct {
	FirstName string           `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName  string           `json:"last_name,omitempty" validate:"omitempty,max=100"`
	Role      *models.UserRole `json:"role,omitempty"`
	IsActive  *bool            `json:"is_active,omitempty"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID       `json:"id"`
	CompanyID *uuid.UUID      `json:"company_id,omitempty"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      models.UserRole `json:"role"`
	IsActive  bool            `json:"is_active"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// Create creates a new user. Roles below super_admin must be scoped to a company.
func (s *UserService) Create(req *CreateUserRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationError("role", "unknown role")
	}
	if req.Role != models.RoleSuperAdmin && req.CompanyID == nil {
		return nil, apperrors.NewValidationError("company_id", "company scope is required for this role")
	}

	if req.CompanyID != nil {
		if _, err := s.companyRepo.GetByID(*req.CompanyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrCompanyNotFound
			}
			return nil, fmt.Errorf("failed to verify company: %w", err)
		}
	}

	existing, err := s.repo.GetByEmail(req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrUserExists
	}

	user := &models.User{
		CompanyID: req.CompanyID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  true,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.toResponse(user), nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(id uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return s.toResponse(user), nil
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(email string) (*UserResponse, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return s.toResponse(user), nil
}

// List retrieves all users with pagination
func (s *UserService) List(page, pageSize int) (*UserListResponse, error) {
	page, pageSize = normalizePagination(page, pageSize)

	users, total, err := s.repo.GetAll(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return s.toListResponse(users, total, page, pageSize), nil
}

// ListByCompany retrieves a company's users with pagination
func (s *UserService) ListByCompany(companyID uuid.UUID, page, pageSize int) (*UserListResponse, error) {
	page, pageSize = normalizePagination(page, pageSize)

	if _, err := s.companyRepo.GetByID(companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to verify company: %w", err)
	}

	users, total, err := s.repo.GetByCompanyID(companyID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return s.toListResponse(users, total, page, pageSize), nil
}

// Update updates a user
func (s *UserService) Update(id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, apperrors.NewValidationError("role", "unknown role")
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.toResponse(user), nil
}

// Delete deletes a user
func (s *UserService) Delete(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *UserService) toResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		CompanyID: user.CompanyID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		IsActive:  user.IsActive,
	}
}

func (s *UserService) toListResponse(users []models.User, total int64, page, pageSize int) *UserListResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *s.toResponse(&users[i]))
	}
	return &UserListResponse{
		Users:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}

func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
