package repository

import (
	"saas-admin-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyRepository handles database operations for companies
type CompanyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Create creates a new company
func (r *CompanyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(id uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// GetByName retrieves a company by name
func (r *CompanyRepository) GetByName(name string) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// GetByDomain retrieves a company by domain
func (r *CompanyRepository) GetByDomain(domain string) (*models.Company, error) {
	var company models.Company
	err := r.db.First(&company, "domain = ?", domain).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// GetAll retrieves companies with pagination
func (r *CompanyRepository) GetAll(limit, offset int) ([]models.Company, int64, error) {
	var companies []models.Company
	var total int64

	if err := r.db.Model(&models.Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Model(&models.Company{}).Order("name").Limit(limit).Offset(offset).Find(&companies).Error; err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

// Update updates a company
func (r *CompanyRepository) Update(company *models.Company) error {
	return r.db.Save(company).Error
}

// Delete deletes a company
func (r *CompanyRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Company{}, "id = ?", id).Error
}

// SetStatus updates the company lifecycle status
func (r *CompanyRepository) SetStatus(id uuid.UUID, status models.CompanyStatus) error {
	return r.db.Model(&models.Company{}).Where("id = ?", id).Update("status", status).Error
}
