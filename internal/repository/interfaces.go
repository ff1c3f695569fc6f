package repository

import (
	"time"

	"saas-admin-backend/internal/database/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mocks/repository_mocks.go -package=mocks

// CompanyRepositoryInterface defines the interface for company repository operations
type CompanyRepositoryInterface interface {
	Create(company *models.Company) error
	GetByID(id uuid.UUID) (*models.Company, error)
	GetByName(name string) (*models.Company, error)
	GetByDomain(domain string) (*models.Company, error)
	GetAll(limit, offset int) ([]models.Company, int64, error)
	Update(company *models.Company) error
	Delete(id uuid.UUID) error
	SetStatus(id uuid.UUID, status models.CompanyStatus) error
}

// UserRepositoryInterface defines the interface for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll(limit, offset int) ([]models.User, int64, error)
	GetByCompanyID(companyID uuid.UUID, limit, offset int) ([]models.User, int64, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// ServiceTypeRepositoryInterface defines the interface for service type repository operations
type ServiceTypeRepositoryInterface interface {
	Create(serviceType *models.ServiceType) error
	GetByID(id uuid.UUID) (*models.ServiceType, error)
	GetBySlug(slug string) (*models.ServiceType, error)
	GetAll() ([]models.ServiceType, error)
	SetStatus(id uuid.UUID, status models.ServiceStatus) error
}

// ServiceInstanceRepositoryInterface defines the interface for service instance repository operations
type ServiceInstanceRepositoryInterface interface {
	Create(instance *models.ServiceInstance) error
	GetByID(id uuid.UUID) (*models.ServiceInstance, error)
	GetWithType(id uuid.UUID) (*models.ServiceInstance, error)
	GetByCompanyID(companyID uuid.UUID) ([]models.ServiceInstance, error)
	GetByCompanyAndType(companyID, serviceTypeID uuid.UUID) (*models.ServiceInstance, error)
	Update(instance *models.ServiceInstance) error
	Delete(id uuid.UUID) error
	SetStatus(id uuid.UUID, status models.ServiceStatus) error
}

// MaintenanceWindowRepositoryInterface defines the interface for maintenance window store operations
type MaintenanceWindowRepositoryInterface interface {
	Create(window *models.MaintenanceWindow) error
	GetByID(id uuid.UUID) (*models.MaintenanceWindow, error)
	GetEffectiveWindows(now time.Time) ([]models.MaintenanceWindow, error)
	GetUpcomingWindows(now time.Time) ([]models.MaintenanceWindow, error)
	GetHistory(limit int) ([]models.MaintenanceWindow, error)
	Cancel(id uuid.UUID) error
	Delete(id uuid.UUID) error
}

// ServiceRequestRepositoryInterface defines the interface for service request repository operations
type ServiceRequestRepositoryInterface interface {
	Create(request *models.ServiceRequest) error
	GetByID(id uuid.UUID) (*models.ServiceRequest, error)
	GetAll(limit, offset int) ([]models.ServiceRequest, int64, error)
	GetByCompanyID(companyID uuid.UUID, limit, offset int) ([]models.ServiceRequest, int64, error)
	Update(request *models.ServiceRequest) error
}

// ProjectRepositoryInterface defines the interface for project repository operations
type ProjectRepositoryInterface interface {
	Create(project *models.Project) error
	GetByID(id uuid.UUID) (*models.Project, error)
	GetWithMilestones(id uuid.UUID) (*models.Project, error)
	GetByCompanyID(companyID uuid.UUID, limit, offset int) ([]models.Project, int64, error)
	Update(project *models.Project) error
	Delete(id uuid.UUID) error
	CreateMilestone(milestone *models.ProjectMilestone) error
	GetMilestoneByID(id uuid.UUID) (*models.ProjectMilestone, error)
	UpdateMilestone(milestone *models.ProjectMilestone) error
	DeleteMilestone(id uuid.UUID) error
}
