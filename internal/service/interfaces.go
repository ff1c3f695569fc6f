package service

import (
	"saas-admin-backend/internal/database/models"
	"saas-admin-backend/internal/gate"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/service_mocks.go -package=mocks

// CompanyServiceInterface defines the interface for the company service
type CompanyServiceInterface interface {
	Create(req *CreateCompanyRequest) (*CompanyResponse, error)
	GetByID(id uuid.UUID) (*CompanyResponse, error)
	List(page, pageSize int) (*CompanyListResponse, error)
	Update(id uuid.UUID, req *UpdateCompanyRequest) (*CompanyResponse, error)
	SetStatus(id uuid.UUID, status models.CompanyStatus) (*CompanyResponse, error)
	Delete(id uuid.UUID) error
}

// UserServiceInterface defines the interface for the user service
type UserServiceInterface interface {
	Create(req *CreateUserRequest) (*UserResponse, error)
	GetByID(id uuid.UUID) (*UserResponse, error)
	GetByEmail(email string) (*UserResponse, error)
	List(page, pageSize int) (*UserListResponse, error)
	ListByCompany(companyID uuid.UUID, page, pageSize int) (*UserListResponse, error)
	Update(id uuid.UUID, req *UpdateUserRequest) (*UserResponse, error)
	Delete(id uuid.UUID) error
}

// ServiceCatalogServiceInterface defines the interface for the service catalog service
type ServiceCatalogServiceInterface interface {
	ListTypes() ([]ServiceTypeResponse, error)
	GetType(id uuid.UUID) (*ServiceTypeResponse, error)
	SetTypeStatus(id uuid.UUID, status models.ServiceStatus) (*ServiceTypeResponse, error)
	CreateInstance(req *CreateServiceInstanceRequest) (*ServiceInstanceResponse, error)
	GetInstancesByCompany(companyID uuid.UUID) ([]ServiceInstanceResponse, error)
	UpdateInstance(id uuid.UUID, req *UpdateServiceInstanceRequest) (*ServiceInstanceResponse, error)
	SetInstanceStatus(id uuid.UUID, status models.ServiceStatus) (*ServiceInstanceResponse, error)
	DeleteInstance(id uuid.UUID) error
	CheckAccess(instanceID uuid.UUID, role models.UserRole) (*gate.ServiceResult, error)
}

// MaintenanceServiceInterface defines the interface for the maintenance service
type MaintenanceServiceInterface interface {
	Create(req *CreateMaintenanceWindowRequest, scheduledBy uuid.UUID) (*MaintenanceWindowResponse, error)
	GetActive() *MaintenanceWindowResponse
	GetStatus() *MaintenanceStatusResponse
	GetUpcoming() ([]MaintenanceWindowResponse, error)
	GetHistory(limit int) ([]MaintenanceWindowResponse, error)
	Cancel(id uuid.UUID) error
	Delete(id uuid.UUID) error
}

// ServiceRequestServiceInterface defines the interface for the service request service
type ServiceRequestServiceInterface interface {
	Create(req *CreateServiceRequestRequest, requestedBy uuid.UUID) (*ServiceRequestResponse, error)
	List(page, pageSize int) (*ServiceRequestListResponse, error)
	ListByCompany(companyID uuid.UUID, page, pageSize int) (*ServiceRequestListResponse, error)
	Approve(id, reviewedBy uuid.UUID) (*ServiceRequestResponse, error)
	Reject(id, reviewedBy uuid.UUID) (*ServiceRequestResponse, error)
}

// ProjectServiceInterface defines the interface for the project service
type ProjectServiceInterface interface {
	Create(req *CreateProjectRequest) (*ProjectResponse, error)
	GetByID(id uuid.UUID) (*ProjectResponse, error)
	ListByCompany(companyID uuid.UUID, page, pageSize int) (*ProjectListResponse, error)
	Update(id uuid.UUID, req *UpdateProjectRequest) (*ProjectResponse, error)
	Delete(id uuid.UUID) error
	AddMilestone(projectID uuid.UUID, req *CreateMilestoneRequest) (*MilestoneResponse, error)
	CompleteMilestone(id uuid.UUID) (*MilestoneResponse, error)
	DeleteMilestone(id uuid.UUID) error
}
