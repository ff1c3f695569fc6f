package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Project is a website or mobile-app delivery project for a company.
// Progress is derived from milestone completion, never stored.
type Project struct {
	BaseModel
	CompanyID   uuid.UUID       `json:"company_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_company_name"`
	Name        string          `json:"name" gorm:"not null;size:100;uniqueIndex:idx_project_company_name" validate:"required,min=1,max=100"`
	Kind        ProjectKind     `json:"kind" gorm:"type:varchar(20);not null"`
	Status      ProjectStatus   `json:"status" gorm:"type:varchar(20);not null;default:'planning'"`
	Description string          `json:"description" gorm:"size:500" validate:"max=500"`
	Metadata    json.RawMessage `json:"metadata,omitempty" gorm:"type:jsonb"`

	Milestones []ProjectMilestone `json:"milestones,omitempty" gorm:"foreignKey:ProjectID"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}

// Progress returns the completed-milestone percentage, 0 when the project
// has no milestones.
func (p *Project) Progress() int {
	if len(p.Milestones) == 0 {
		return 0
	}
	done := 0
	for _, m := range p.Milestones {
		if m.Completed {
			done++
		}
	}
	return done * 100 / len(p.Milestones)
}

// ProjectMilestone is a single deliverable within a project
type ProjectMilestone struct {
	BaseModel
	ProjectID   uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index"`
	Name        string     `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	SortOrder   int        `json:"sort_order" gorm:"not null;default:0"`
}

// TableName returns the table name for ProjectMilestone
func (ProjectMilestone) TableName() string {
	return "project_milestones"
}
