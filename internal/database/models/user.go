package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// User represents a dashboard user. Super-admins have no company scope;
// company admins and regular users belong to exactly one company.
type User struct {
	BaseModel
	CompanyID *uuid.UUID      `json:"company_id,omitempty" gorm:"type:uuid;index"`
	Email     string          `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email,max=255"`
	FirstName string          `json:"first_name" gorm:"not null;size:100" validate:"required,max=100"`
	LastName  string          `json:"last_name" gorm:"not null;size:100" validate:"required,max=100"`
	Role      UserRole        `json:"role" gorm:"type:varchar(50);not null;default:'user'" validate:"required"`
	IsActive  bool            `json:"is_active" gorm:"not null;default:true"`
	Metadata  json.RawMessage `json:"metadata,omitempty" gorm:"type:jsonb"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
