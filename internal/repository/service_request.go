package repository

import (
	"saas-admin-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceRequestRepository handles database operations for service requests
type ServiceRequestRepository struct {
	db *gorm.DB
}

// NewServiceRequestRepository creates a new service request repository
func NewServiceRequestRepository(db *gorm.DB) *ServiceRequestRepository {
	return &ServiceRequestRepository{db: db}
}

// Create creates a new service request
func (r *ServiceRequestRepository) Create(request *models.ServiceRequest) error {
	return r.db.Create(request).Error
}

// GetByID retrieves a service request by ID
func (r *ServiceRequestRepository) GetByID(id uuid.UUID) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := r.db.Preload("ServiceType").First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetAll retrieves service requests with pagination, newest first
func (r *ServiceRequestRepository) GetAll(limit, offset int) ([]models.ServiceRequest, int64, error) {
	var requests []models.ServiceRequest
	var total int64

	if err := r.db.Model(&models.ServiceRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Preload("ServiceType").Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// GetByCompanyID retrieves a company's service requests with pagination
func (r *ServiceRequestRepository) GetByCompanyID(companyID uuid.UUID, limit, offset int) ([]models.ServiceRequest, int64, error) {
	var requests []models.ServiceRequest
	var total int64

	query := r.db.Model(&models.ServiceRequest{}).Where("company_id = ?", companyID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Preload("ServiceType").Where("company_id = ?", companyID).Order("created_at DESC").Limit(limit).Offset(offset).Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// Update updates a service request
func (r *ServiceRequestRepository) Update(request *models.ServiceRequest) error {
	return r.db.Save(request).Error
}
