package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceRequest is a company's request for a new service instance,
// reviewed by a super-admin.
type ServiceRequest struct {
	BaseModel
	CompanyID     uuid.UUID            `json:"company_id" gorm:"type:uuid;not null;index"`
	ServiceTypeID uuid.UUID            `json:"service_type_id" gorm:"type:uuid;not null"`
	RequestedBy   uuid.UUID            `json:"requested_by" gorm:"type:uuid;not null"`
	Status        ServiceRequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	Notes         string               `json:"notes" gorm:"size:1000" validate:"max=1000"`
	ReviewedBy    *uuid.UUID           `json:"reviewed_by,omitempty" gorm:"type:uuid"`
	ReviewedAt    *time.Time           `json:"reviewed_at,omitempty"`

	ServiceType *ServiceType `json:"service_type,omitempty" gorm:"foreignKey:ServiceTypeID"`
}

// TableName returns the table name for ServiceRequest
func (ServiceRequest) TableName() string {
	return "service_requests"
}
