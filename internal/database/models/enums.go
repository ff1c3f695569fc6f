package models

// UserRole defines the access level of a dashboard user
type UserRole string

const (
	RoleSuperAdmin   UserRole = "super_admin"
	RoleCompanyAdmin UserRole = "company_admin"
	RoleUser         UserRole = "user"
)

// IsValid checks if the UserRole is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleCompanyAdmin, RoleUser:
		return true
	}
	return false
}

// ServiceStatus is shared by service types and service instances.
// The two are independent scopes; precedence between them lives in the gate.
type ServiceStatus string

const (
	ServiceStatusActive      ServiceStatus = "active"
	ServiceStatusMaintenance ServiceStatus = "maintenance"
	ServiceStatusInactive    ServiceStatus = "inactive"
)

// IsValid checks if the ServiceStatus is valid
func (s ServiceStatus) IsValid() bool {
	switch s {
	case ServiceStatusActive, ServiceStatusMaintenance, ServiceStatusInactive:
		return true
	}
	return false
}

// CompanyStatus defines the lifecycle state of a tenant company
type CompanyStatus string

const (
	CompanyStatusActive    CompanyStatus = "active"
	CompanyStatusSuspended CompanyStatus = "suspended"
)

// IsValid checks if the CompanyStatus is valid
func (s CompanyStatus) IsValid() bool {
	switch s {
	case CompanyStatusActive, CompanyStatusSuspended:
		return true
	}
	return false
}

// ServiceRequestStatus tracks the review state of a service request
type ServiceRequestStatus string

const (
	ServiceRequestPending  ServiceRequestStatus = "pending"
	ServiceRequestApproved ServiceRequestStatus = "approved"
	ServiceRequestRejected ServiceRequestStatus = "rejected"
)

// IsValid checks if the ServiceRequestStatus is valid
func (s ServiceRequestStatus) IsValid() bool {
	switch s {
	case ServiceRequestPending, ServiceRequestApproved, ServiceRequestRejected:
		return true
	}
	return false
}

// ProjectStatus tracks a delivery project through its lifecycle
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusDelivered  ProjectStatus = "delivered"
)

// IsValid checks if the ProjectStatus is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusDelivered:
		return true
	}
	return false
}

// ProjectKind distinguishes website from mobile app delivery projects
type ProjectKind string

const (
	ProjectKindWebsite   ProjectKind = "website"
	ProjectKindMobileApp ProjectKind = "mobile_app"
)

// IsValid checks if the ProjectKind is valid
func (k ProjectKind) IsValid() bool {
	switch k {
	case ProjectKindWebsite, ProjectKindMobileApp:
		return true
	}
	return false
}
