package models

import "encoding/json"

// Company represents a tenant company administered through the dashboard
type Company struct {
	BaseModel
	Name         string          `json:"name" gorm:"uniqueIndex;not null;size:100" validate:"required,min=1,max=100"`
	Domain       string          `json:"domain" gorm:"uniqueIndex;size:255" validate:"max=255"`
	ContactEmail string          `json:"contact_email" gorm:"not null;size:255" validate:"required,email,max=255"`
	Phone        string          `json:"phone" gorm:"size:20"`
	Status       CompanyStatus   `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	Plan         string          `json:"plan" gorm:"size:50"`
	Metadata     json.RawMessage `json:"metadata,omitempty" gorm:"type:jsonb"`

	Users            []User            `json:"users,omitempty" gorm:"foreignKey:CompanyID"`
	ServiceInstances []ServiceInstance `json:"service_instances,omitempty" gorm:"foreignKey:CompanyID"`
}

// TableName returns the table name for Company
func (Company) TableName() string {
	return "companies"
}
