package repository

import (
	"saas-admin-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceTypeRepository handles database operations for the service catalog
type ServiceTypeRepository struct {
	db *gorm.DB
}

// NewServiceTypeRepository creates a new service type repository
func NewServiceTypeRepository(db *gorm.DB) *ServiceTypeRepository {
	return &ServiceTypeRepository{db: db}
}

// Create creates a new service type
func (r *ServiceTypeRepository) Create(serviceType *models.ServiceType) error {
	return r.db.Create(serviceType).Error
}

// GetByID retrieves a service type by ID
func (r *ServiceTypeRepository) GetByID(id uuid.UUID) (*models.ServiceType, error) {
	var serviceType models.ServiceType
	err := r.db.First(&serviceType, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &serviceType, nil
}

// GetBySlug retrieves a service type by its slug
func (r *ServiceTypeRepository) GetBySlug(slug string) (*models.ServiceType, error) {
	var serviceType models.ServiceType
	err := r.db.First(&serviceType, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &serviceType, nil
}

// GetAll retrieves the full service catalog
func (r *ServiceTypeRepository) GetAll() ([]models.ServiceType, error) {
	var serviceTypes []models.ServiceType
	if err := r.db.Order("slug").Find(&serviceTypes).Error; err != nil {
		return nil, err
	}
	return serviceTypes, nil
}

// SetStatus updates the type-level status (the operator kill-switch scope)
func (r *ServiceTypeRepository) SetStatus(id uuid.UUID, status models.ServiceStatus) error {
	return r.db.Model(&models.ServiceType{}).Where("id = ?", id).Update("status", status).Error
}
