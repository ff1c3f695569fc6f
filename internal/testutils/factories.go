package testutils

import (
	"time"

	"saas-admin-backend/internal/database/models"

	"github.com/google/uuid"
)

// CompanyFactory provides methods to create test Company data
type CompanyFactory struct{}

// NewCompanyFactory creates a new CompanyFactory
func NewCompanyFactory() *CompanyFactory {
	return &CompanyFactory{}
}

// Create creates a test Company with default values
func (f *CompanyFactory) Create() *models.Company {
	id := uuid.New()
	return &models.Company{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:         "Test Company " + id.String()[:8],
		Domain:       id.String()[:8] + ".test.com",
		ContactEmail: "contact@test.com",
		Phone:        "+90-555-0100",
		Status:       models.CompanyStatusActive,
		Plan:         "standard",
	}
}

// WithName sets a custom name for the company
func (f *CompanyFactory) WithName(name string) *models.Company {
	company := f.Create()
	company.Name = name
	return company
}

// Suspended creates a suspended company
func (f *CompanyFactory) Suspended() *models.Company {
	company := f.Create()
	company.Status = models.CompanyStatusSuspended
	return company
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with default values. Email is made unique
// from the generated ID to avoid unique-index conflicts between tests.
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		CompanyID: nil,
		Email:     "user-" + id.String()[:8] + "@test.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      models.RoleUser,
		IsActive:  true,
	}
}

// WithCompany scopes the user to a company
func (f *UserFactory) WithCompany(companyID uuid.UUID) *models.User {
	user := f.Create()
	user.CompanyID = &companyID
	return user
}

// WithRole sets a custom role for the user
func (f *UserFactory) WithRole(role models.UserRole) *models.User {
	user := f.Create()
	user.Role = role
	return user
}

// SuperAdmin creates a super-admin user without a company scope
func (f *UserFactory) SuperAdmin() *models.User {
	user := f.Create()
	user.Role = models.RoleSuperAdmin
	return user
}

// ServiceTypeFactory provides methods to create test ServiceType data
type ServiceTypeFactory struct{}

// NewServiceTypeFactory creates a new ServiceTypeFactory
func NewServiceTypeFactory() *ServiceTypeFactory {
	return &ServiceTypeFactory{}
}

// Create creates a test ServiceType with default values
func (f *ServiceTypeFactory) Create() *models.ServiceType {
	id := uuid.New()
	return &models.ServiceType{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Slug:        "test_service_" + id.String()[:8],
		Title:       "Test Service",
		Description: "A test catalog entry",
		Status:      models.ServiceStatusActive,
	}
}

// WithSlug sets a custom slug for the service type
func (f *ServiceTypeFactory) WithSlug(slug string) *models.ServiceType {
	serviceType := f.Create()
	serviceType.Slug = slug
	return serviceType
}

// WithStatus sets a custom status for the service type
func (f *ServiceTypeFactory) WithStatus(status models.ServiceStatus) *models.ServiceType {
	serviceType := f.Create()
	serviceType.Status = status
	return serviceType
}

// ServiceInstanceFactory provides methods to create test ServiceInstance data
type ServiceInstanceFactory struct{}

// NewServiceInstanceFactory creates a new ServiceInstanceFactory
func NewServiceInstanceFactory() *ServiceInstanceFactory {
	return &ServiceInstanceFactory{}
}

// Create creates a test ServiceInstance for the given company and type
func (f *ServiceInstanceFactory) Create(companyID, serviceTypeID uuid.UUID) *models.ServiceInstance {
	return &models.ServiceInstance{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		CompanyID:     companyID,
		ServiceTypeID: serviceTypeID,
		Status:        models.ServiceStatusActive,
	}
}

// WithStatus sets a custom status for the service instance
func (f *ServiceInstanceFactory) WithStatus(companyID, serviceTypeID uuid.UUID, status models.ServiceStatus) *models.ServiceInstance {
	instance := f.Create(companyID, serviceTypeID)
	instance.Status = status
	return instance
}

// WithMaintenanceReason creates an instance under maintenance with an
// operator-authored reason in its metadata
func (f *ServiceInstanceFactory) WithMaintenanceReason(companyID, serviceTypeID uuid.UUID, reason string) *models.ServiceInstance {
	instance := f.Create(companyID, serviceTypeID)
	instance.Status = models.ServiceStatusMaintenance
	instance.Metadata = []byte(`{"maintenance_reason": "` + reason + `"}`)
	return instance
}

// MaintenanceWindowFactory provides methods to create test MaintenanceWindow data
type MaintenanceWindowFactory struct{}

// NewMaintenanceWindowFactory creates a new MaintenanceWindowFactory
func NewMaintenanceWindowFactory() *MaintenanceWindowFactory {
	return &MaintenanceWindowFactory{}
}

// Create creates a window that is in effect right now
func (f *MaintenanceWindowFactory) Create() *models.MaintenanceWindow {
	now := time.Now().UTC()
	return &models.MaintenanceWindow{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		StartTime:   now.Add(-30 * time.Minute),
		EndTime:     now.Add(30 * time.Minute),
		MessageTR:   "Sistem bakımda",
		MessageEN:   "System under maintenance",
		IsActive:    true,
		ScheduledBy: uuid.New(),
	}
}

// WithWindow sets explicit start and end times
func (f *MaintenanceWindowFactory) WithWindow(start, end time.Time) *models.MaintenanceWindow {
	window := f.Create()
	window.StartTime = start.UTC()
	window.EndTime = end.UTC()
	return window
}

// Upcoming creates a window that starts in the future
func (f *MaintenanceWindowFactory) Upcoming(startsIn, duration time.Duration) *models.MaintenanceWindow {
	now := time.Now().UTC()
	return f.WithWindow(now.Add(startsIn), now.Add(startsIn+duration))
}

// Canceled creates a window whose flag is off; it must never gate access
func (f *MaintenanceWindowFactory) Canceled() *models.MaintenanceWindow {
	window := f.Create()
	window.IsActive = false
	return window
}
