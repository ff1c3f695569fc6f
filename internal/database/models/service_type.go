package models

// ServiceType is a catalog entry shared across all companies, e.g. the
// WhatsApp bot or Instagram automation product. Its status is the
// operator-level scope: "inactive" is a hard kill-switch that overrides
// everything, including per-instance state.
type ServiceType struct {
	BaseModel
	Slug        string        `json:"slug" gorm:"uniqueIndex;not null;size:50" validate:"required,min=1,max=50"`
	Title       string        `json:"title" gorm:"not null;size:100" validate:"required,max=100"`
	Description string        `json:"description" gorm:"size:500" validate:"max=500"`
	Status      ServiceStatus `json:"status" gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for ServiceType
func (ServiceType) TableName() string {
	return "service_types"
}

// Well-known service type slugs seeded on first run
const (
	ServiceSlugWhatsAppBot         = "whatsapp_bot"
	ServiceSlugInstagramAutomation = "instagram_automation"
	ServiceSlugGoogleIntegration   = "google_integration"
	ServiceSlugWebsiteProject      = "website_project"
	ServiceSlugMobileAppProject    = "mobile_app_project"
)
