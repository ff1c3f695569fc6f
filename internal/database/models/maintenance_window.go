package models

import (
	"time"

	"github.com/google/uuid"
)

// MaintenanceWindow is a scheduled maintenance period. IsActive means "not
// canceled"; whether a window is currently in effect is always computed from
// the clock at query time, never stored.
type MaintenanceWindow struct {
	BaseModel
	StartTime        time.Time `json:"start_time" gorm:"not null;index"`
	EndTime          time.Time `json:"end_time" gorm:"not null;index"`
	MessageTR        string    `json:"message_tr" gorm:"not null;size:1000" validate:"required,max=1000"`
	MessageEN        string    `json:"message_en" gorm:"not null;size:1000" validate:"required,max=1000"`
	AffectedServices []string  `json:"affected_services,omitempty" gorm:"type:jsonb;serializer:json"`
	IsActive         bool      `json:"is_active" gorm:"not null;default:true"`
	ScheduledBy      uuid.UUID `json:"scheduled_by" gorm:"type:uuid;not null"`
}

// TableName returns the table name for MaintenanceWindow
func (MaintenanceWindow) TableName() string {
	return "maintenance_windows"
}

// AffectsAllServices reports whether the window was scheduled without an
// explicit service list. The list is informational notice text only; gating
// reads the instance and type status fields instead.
func (w *MaintenanceWindow) AffectsAllServices() bool {
	return len(w.AffectedServices) == 0
}
