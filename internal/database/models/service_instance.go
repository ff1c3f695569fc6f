package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// ServiceInstance is one company's configured instantiation of a service
// type, e.g. "Tech Corp's WhatsApp bot". Its status is independent from the
// type-level status; the gate combines the two scopes.
type ServiceInstance struct {
	BaseModel
	CompanyID     uuid.UUID       `json:"company_id" gorm:"type:uuid;not null;uniqueIndex:idx_instance_company_type"`
	ServiceTypeID uuid.UUID       `json:"service_type_id" gorm:"type:uuid;not null;uniqueIndex:idx_instance_company_type"`
	Status        ServiceStatus   `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
	Config        json.RawMessage `json:"config,omitempty" gorm:"type:jsonb"`
	Metadata      json.RawMessage `json:"metadata,omitempty" gorm:"type:jsonb"`

	ServiceType *ServiceType `json:"service_type,omitempty" gorm:"foreignKey:ServiceTypeID"`
}

// TableName returns the table name for ServiceInstance
func (ServiceInstance) TableName() string {
	return "service_instances"
}

// MaintenanceReason extracts the operator-authored maintenance reason from
// instance metadata. Empty string when not set or metadata is malformed.
func (s *ServiceInstance) MaintenanceReason() string {
	if len(s.Metadata) == 0 {
		return ""
	}
	var meta struct {
		MaintenanceReason string `json:"maintenance_reason"`
	}
	if err := json.Unmarshal(s.Metadata, &meta); err != nil {
		return ""
	}
	return meta.MaintenanceReason
}
