package repository

import (
	"saas-admin-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceInstanceRepository handles database operations for per-company service instances
type ServiceInstanceRepository struct {
	db *gorm.DB
}

// NewServiceInstanceRepository creates a new service instance repository
func NewServiceInstanceRepository(db *gorm.DB) *ServiceInstanceRepository {
	return &ServiceInstanceRepository{db: db}
}

// Create creates a new service instance
func (r *ServiceInstanceRepository) Create(instance *models.ServiceInstance) error {
	return r.db.Create(instance).Error
}

// GetByID retrieves a service instance by ID
func (r *ServiceInstanceRepository) GetByID(id uuid.UUID) (*models.ServiceInstance, error) {
	var instance models.ServiceInstance
	err := r.db.First(&instance, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// GetWithType retrieves a service instance with its service type preloaded
func (r *ServiceInstanceRepository) GetWithType(id uuid.UUID) (*models.ServiceInstance, error) {
	var instance models.ServiceInstance
	err := r.db.Preload("ServiceType").First(&instance, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// GetByCompanyID retrieves all service instances of a company
func (r *ServiceInstanceRepository) GetByCompanyID(companyID uuid.UUID) ([]models.ServiceInstance, error) {
	var instances []models.ServiceInstance
	err := r.db.Preload("ServiceType").Where("company_id = ?", companyID).Find(&instances).Error
	if err != nil {
		return nil, err
	}
	return instances, nil
}

// GetByCompanyAndType retrieves a company's instance of a specific service type
func (r *ServiceInstanceRepository) GetByCompanyAndType(companyID, serviceTypeID uuid.UUID) (*models.ServiceInstance, error) {
	var instance models.ServiceInstance
	err := r.db.First(&instance, "company_id = ? AND service_type_id = ?", companyID, serviceTypeID).Error
	if err != nil {
		return nil, err
	}
	return &instance, nil
}

// Update updates a service instance
func (r *ServiceInstanceRepository) Update(instance *models.ServiceInstance) error {
	return r.db.Save(instance).Error
}

// Delete deletes a service instance
func (r *ServiceInstanceRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.ServiceInstance{}, "id = ?", id).Error
}

// SetStatus updates the instance-level status
func (r *ServiceInstanceRepository) SetStatus(id uuid.UUID, status models.ServiceStatus) error {
	return r.db.Model(&models.ServiceInstance{}).Where("id = ?", id).Update("status", status).Error
}
