package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents an error when an entity already exists
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "in company"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrCompanyNotFound           = &NotFoundError{Entity: "company"}
	ErrUserNotFound              = &NotFoundError{Entity: "user"}
	ErrServiceTypeNotFound       = &NotFoundError{Entity: "service type"}
	ErrServiceInstanceNotFound   = &NotFoundError{Entity: "service instance"}
	ErrMaintenanceWindowNotFound = &NotFoundError{Entity: "maintenance window"}
	ErrServiceRequestNotFound    = &NotFoundError{Entity: "service request"}
	ErrProjectNotFound           = &NotFoundError{Entity: "project"}
	ErrMilestoneNotFound         = &NotFoundError{Entity: "project milestone"}
)

// Already Exists Errors
var (
	ErrCompanyExists         = &AlreadyExistsError{Entity: "company", Context: "with this name or domain"}
	ErrUserExists            = &AlreadyExistsError{Entity: "user", Context: "with this email"}
	ErrServiceTypeExists     = &AlreadyExistsError{Entity: "service type", Context: "with this slug"}
	ErrServiceInstanceExists = &AlreadyExistsError{Entity: "service instance", Context: "for this company and service type"}
	ErrProjectExists         = &AlreadyExistsError{Entity: "project", Context: "with this name in the company"}
)

// Business Logic Errors
var (
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidTimeRange        = errors.New("end time must be after start time")
	ErrMessageRequired         = errors.New("bilingual maintenance message is required")
	ErrWindowAlreadyCanceled   = errors.New("maintenance window is already canceled")
	ErrInvalidPaginationParams = errors.New("invalid pagination parameters")
	ErrRequestAlreadyReviewed  = errors.New("service request has already been reviewed")
	ErrCompanySuspended        = errors.New("company is suspended")
)

// Authentication Errors
var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token has expired")

	ErrUserEmailNotFound   = &AuthenticationError{Message: "user email not found in context"}
	ErrRoleNotFound        = &AuthenticationError{Message: "user role not found in context"}
	ErrInsufficientRole    = &AuthorizationError{Message: "insufficient role for this operation"}
	ErrCompanyScopeDenied  = &AuthorizationError{Message: "user may not access another company's data"}
	ErrUserNotFoundInDB    = &AuthorizationError{Message: "user not found in database"}
	ErrCompanyNotFoundInDB = &AuthorizationError{Message: "company not found in database"}
)

// Configuration Errors
var (
	ErrGoogleOAuthNotConfigured = &ConfigurationError{Message: "google oauth is not configured: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET missing"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.Is(err, &NotFoundError{}) || errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.Is(err, &AlreadyExistsError{}) || errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.Is(err, &ValidationError{}) || errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.Is(err, &AuthenticationError{}) || errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.Is(err, &AuthorizationError{}) || errors.As(err, &authzErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.Is(err, &ConfigurationError{}) || errors.As(err, &configErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}
