package repository

import (
	"saas-admin-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectRepository handles database operations for delivery projects and their milestones
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetWithMilestones retrieves a project with milestones ordered for display
func (r *ProjectRepository) GetWithMilestones(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order")
		}).
		First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// GetByCompanyID retrieves a company's projects with pagination
func (r *ProjectRepository) GetByCompanyID(companyID uuid.UUID, limit, offset int) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	query := r.db.Model(&models.Project{}).Where("company_id = ?", companyID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Preload("Milestones").Where("company_id = ?", companyID).Order("name").Limit(limit).Offset(offset).Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update updates a project
func (r *ProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete deletes a project and its milestones
func (r *ProjectRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProjectMilestone{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, "id = ?", id).Error
	})
}

// CreateMilestone creates a new project milestone
func (r *ProjectRepository) CreateMilestone(milestone *models.ProjectMilestone) error {
	return r.db.Create(milestone).Error
}

// GetMilestoneByID retrieves a milestone by ID
func (r *ProjectRepository) GetMilestoneByID(id uuid.UUID) (*models.ProjectMilestone, error) {
	var milestone models.ProjectMilestone
	err := r.db.First(&milestone, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

// UpdateMilestone updates a milestone
func (r *ProjectRepository) UpdateMilestone(milestone *models.ProjectMilestone) error {
	return r.db.Save(milestone).Error
}

// DeleteMilestone deletes a milestone
func (r *ProjectRepository) DeleteMilestone(id uuid.UUID) error {
	return r.db.Delete(&models.ProjectMilestone{}, "id = ?", id).Error
}
