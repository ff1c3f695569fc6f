package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"saas-admin-backend/internal/database/models"
	apperrors "saas-admin-backend/internal/errors"
	"saas-admin-backend/internal/gate"
	"saas-admin-backend/internal/logger"
	"saas-admin-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceCatalogService handles business logic for service types and
// per-company service instances, including gate-backed access checks
type ServiceCatalogService struct {
	typeRepo     repository.ServiceTypeRepositoryInterface
	instanceRepo repository.ServiceInstanceRepositoryInterface
	companyRepo  repository.CompanyRepositoryInterface
	gate         *gate.Gate
	validator    *validator.Validate
	log          *logger.Logger
}

// NewServiceCatalogService creates a new service catalog service
func NewServiceCatalogService(
	typeRepo repository.ServiceTypeRepositoryInterface,
	instanceRepo repository.ServiceInstanceRepositoryInterface,
	companyRepo repository.CompanyRepositoryInterface,
	g *gate.Gate,
	validator *validator.Validate,
) *ServiceCatalogService {
	return &ServiceCatalogService{
		typeRepo:     typeRepo,
		instanceRepo: instanceRepo,
		companyRepo:  companyRepo,
		gate:         g,
		validator:    validator,
		log:          logger.New(),
	}
}

// ServiceTypeResponse represents a catalog entry in API responses
type ServiceTypeResponse struct {
	ID          uuid.UUID            `json:"id"`
	Slug        string               `json:"slug"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	Status      models.ServiceStatus `json:"status"`
}

// CreateServiceInstanceRequest represents the request to provision an instance
type CreateServiceInstanceRequest struct {
	CompanyID     uuid.UUID       `json:"company_id" validate:"required"`
	ServiceTypeID uuid.UUID       `json:"service_type_id" validate:"required"`
	Config        json.RawMessage `json:"config,omitempty" swaggertype:"object"`
}

// UpdateServiceInstanceRequest represents the request to update an instance
type UpdateServiceInstanceRequest struct {
	Config   json.RawMessage `json:"config,omitempty" swaggertype:"object"`
	Metadata json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// ServiceInstanceResponse represents a service instance in API responses
type ServiceInstanceResponse struct {
	ID            uuid.UUID            `json:"id"`
	CompanyID     uuid.UUID            `json:"company_id"`
	ServiceTypeID uuid.UUID            `json:"service_type_id"`
	ServiceType   *ServiceTypeResponse `json:"service_type,omitempty"`
	Status        models.ServiceStatus `json:"status"`
	Config        json.RawMessage      `json:"config,omitempty" swaggertype:"object"`
	Metadata      json.RawMessage      `json:"metadata,omitempty" swaggertype:"object"`
}

// ListTypes returns the full service catalog
func (s *ServiceCatalogService) ListTypes() ([]ServiceTypeResponse, error) {
	types, err := s.typeRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list service types: %w", err)
	}

	responses := make([]ServiceTypeResponse, 0, len(types))
	for i := range types {
		responses = append(responses, *s.typeToResponse(&types[i]))
	}
	return responses, nil
}

// GetType returns a single catalog entry
func (s *ServiceCatalogService) GetType(id uuid.UUID) (*ServiceTypeResponse, error) {
	serviceType, err := s.typeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrServiceTypeNotFound
		}
		return nil, fmt.Errorf("failed to get service type: %w", err)
	}
	return s.typeToResponse(serviceType), nil
}

// SetTypeStatus updates the type-level status. Setting "inactive" is the
// operator kill-switch that blocks every role, including super-admins.
func (s *ServiceCatalogService) SetTypeStatus(id uuid.UUID, status models.ServiceStatus) (*ServiceTypeResponse, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	serviceType, err := s.typeRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrServiceTypeNotFound
		}
		return nil, fmt.Errorf("failed to get service type: %w", err)
	}

	if err := s.typeRepo.SetStatus(id, status); err != nil {
		return nil, fmt.Errorf("failed to set service type status: %w", err)
	}

	serviceType.Status = status
	return s.typeToResponse(serviceType), nil
}

// CreateInstance provisions a service instance for a company
func (s *ServiceCatalogService) CreateInstance(req *CreateServiceInstanceRequest) (*ServiceInstanceResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.companyRepo.GetByID(req.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to verify company: %w", err)
	}

	if _, err := s.typeRepo.GetByID(req.ServiceTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrServiceTypeNotFound
		}
		return nil, fmt.Errorf("failed to verify service type: %w", err)
	}

	existing, err := s.instanceRepo.GetByCompanyAndType(req.CompanyID, req.ServiceTypeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing instance: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrServiceInstanceExists
	}

	instance := &models.ServiceInstance{
		CompanyID:     req.CompanyID,
		ServiceTypeID: req.ServiceTypeID,
		Status:        models.ServiceStatusActive,
		Config:        req.Config,
	}

	if err := s.instanceRepo.Create(instance); err != nil {
		return nil, fmt.Errorf("failed to create service instance: %w", err)
	}

	return s.instanceToResponse(instance), nil
}

// GetInstancesByCompany returns all service instances of a company
func (s *ServiceCatalogService) GetInstancesByCompany(companyID uuid.UUID) ([]ServiceInstanceResponse, error) {
	if _, err := s.companyRepo.GetByID(companyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to verify company: %w", err)
	}

	instances, err := s.instanceRepo.GetByCompanyID(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service instances: %w", err)
	}

	responses := make([]ServiceInstanceResponse, 0, len(instances))
	for i := range instances {
		responses = append(responses, *s.instanceToResponse(&instances[i]))
	}
	return responses, nil
}

// UpdateInstance updates an instance's config and metadata
func (s *ServiceCatalogService) UpdateInstance(id uuid.UUID, req *UpdateServiceInstanceRequest) (*ServiceInstanceResponse, error) {
	instance, err := s.instanceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrServiceInstanceNotFound
		}
		return nil, fmt.Errorf("failed to get service instance: %w", err)
	}

	if req.Config != nil {
		instance.Config = req.Config
	}
	if req.Metadata != nil {
		instance.Metadata = req.Metadata
	}

	if err := s.instanceRepo.Update(instance); err != nil {
		return nil, fmt.Errorf("failed to update service instance: %w", err)
	}

	return s.instanceToResponse(instance), nil
}

// SetInstanceStatus updates the instance-level status
func (s *ServiceCatalogService) SetInstanceStatus(id uuid.UUID, status models.ServiceStatus) (*ServiceInstanceResponse, error) {
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	instance, err := s.instanceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrServiceInstanceNotFound
		}
		return nil, fmt.Errorf("failed to get service instance: %w", err)
	}

	if err := s.instanceRepo.SetStatus(id, status); err != nil {
		return nil, fmt.Errorf("failed to set service instance status: %w", err)
	}

	instance.Status = status
	return s.instanceToResponse(instance), nil
}

// DeleteInstance deletes a service instance
func (s *ServiceCatalogService) DeleteInstance(id uuid.UUID) error {
	if _, err := s.instanceRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrServiceInstanceNotFound
		}
		return fmt.Errorf("failed to get service instance: %w", err)
	}
	if err := s.instanceRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete service instance: %w", err)
	}
	return nil
}

// CheckAccess evaluates whether the given role may enter the service
// instance right now. A failed status read is not evidence the service is
// in maintenance, so lookup errors other than not-found fail open.
func (s *ServiceCatalogService) CheckAccess(instanceID uuid.UUID, role models.UserRole) (*gate.ServiceResult, error) {
	instance, err := s.instanceRepo.GetWithType(instanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrServiceInstanceNotFound
		}
		s.log.WithFields(map[string]interface{}{
			"instance_id": instanceID,
			"role":        role,
			"error":       err.Error(),
		}).Error("service status read failed, failing open")
		return &gate.ServiceResult{Decision: gate.DecisionAllow}, nil
	}

	serviceType := instance.ServiceType
	if serviceType == nil {
		loaded, err := s.typeRepo.GetByID(instance.ServiceTypeID)
		if err != nil {
			s.log.WithFields(map[string]interface{}{
				"instance_id": instanceID,
				"role":        role,
				"error":       err.Error(),
			}).Error("service type read failed, failing open")
			return &gate.ServiceResult{Decision: gate.DecisionAllow}, nil
		}
		serviceType = loaded
	}

	result := s.gate.EvaluateServiceAccess(instance, serviceType, role)
	return &result, nil
}

func (s *ServiceCatalogService) typeToResponse(serviceType *models.ServiceType) *ServiceTypeResponse {
	return &ServiceTypeResponse{
		ID:          serviceType.ID,
		Slug:        serviceType.Slug,
		Title:       serviceType.Title,
		Description: serviceType.Description,
		Status:      serviceType.Status,
	}
}

func (s *ServiceCatalogService) instanceToResponse(instance *models.ServiceInstance) *ServiceInstanceResponse {
	resp := &ServiceInstanceResponse{
		ID:            instance.ID,
		CompanyID:     instance.CompanyID,
		ServiceTypeID: instance.ServiceTypeID,
		Status:        instance.Status,
		Config:        instance.Config,
		Metadata:      instance.Metadata,
	}
	if instance.ServiceType != nil {
		resp.ServiceType = s.typeToResponse(instance.ServiceType)
	}
	return resp
}
