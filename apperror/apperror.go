// Package apperror defines a centralized system for application-specific
// errors. Handlers translate every failure into one of the error kinds below,
// and the kinds carry their HTTP status mapping and the JSON envelope shape
// sent to clients. Nothing propagates to the transport layer as an unhandled
// fault.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the kind of application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database.
	DatabaseError
	// ConfigError represents an error related to application configuration.
	ConfigError
	// AuthError represents an authentication failure at the request boundary
	// (missing, malformed or expired token, or an unresolvable user).
	AuthError
	// CredentialsError represents a failed login attempt. It is deliberately
	// a single kind: callers cannot tell an unknown email from a wrong
	// password.
	CredentialsError
	// NotFoundError represents a resource not found error.
	NotFoundError
	// ValidationError represents an input validation error, optionally with
	// a per-field breakdown.
	ValidationError
	// ConflictError represents a uniqueness conflict, e.g. a duplicate email.
	ConflictError
	// BadRequestError represents a generic bad request.
	BadRequestError
	// InternalError represents a generic internal server error.
	InternalError
	// ExternalServiceError represents a failure in an external service such
	// as the object store.
	ExternalServiceError
	// MigrationError represents an error during database migrations.
	MigrationError
)

// AppError is the application's error type. It wraps an optional underlying
// error for debugging while exposing only Message (and Fields) to clients.
type AppError struct {
	Type    ErrorType
	Message string
	// Fields holds per-field validation messages, keyed by input field name.
	Fields map[string]string
	Err    error // underlying error, never serialized for clients
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so errors.Is and errors.As can inspect
// the chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
// Validation problems, duplicate emails and failed logins all surface as 422,
// matching the API contract; 401 is reserved for the request authenticator.
// External-service failures are server-side faults from the client's point of
// view and surface as 500 like the other internal kinds.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		return http.StatusUnauthorized
	case CredentialsError, ValidationError, ConflictError:
		return http.StatusUnprocessableEntity
	case NotFoundError:
		return http.StatusNotFound
	case BadRequestError:
		return http.StatusBadRequest
	case DatabaseError, ConfigError, InternalError, MigrationError, ExternalServiceError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. Prefer the typed constructors below.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError.
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewCredentialsError creates a new CredentialsError.
func NewCredentialsError(message string) *AppError {
	return NewAppError(CredentialsError, message, nil)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string, underlyingError error) *AppError {
	return NewAppError(ValidationError, message, underlyingError)
}

// NewFieldValidationError creates a ValidationError carrying a per-field
// breakdown of what was missing or malformed.
func NewFieldValidationError(message string, fields map[string]string) *AppError {
	return &AppError{
		Type:    ValidationError,
		Message: message,
		Fields:  fields,
	}
}

// NewConflictError creates a new ConflictError.
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, message, underlyingError)
}

// NewBadRequestError creates a new BadRequestError.
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewInternalError creates a new InternalError.
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewExternalServiceError creates a new ExternalServiceError.
func NewExternalServiceError(message string, underlyingError error) *AppError {
	return NewAppError(ExternalServiceError, message, underlyingError)
}

// NewMigrationError creates a new MigrationError.
func NewMigrationError(message string, underlyingError error) *AppError {
	return NewAppError(MigrationError, message, underlyingError)
}

// ErrorResponse is the JSON envelope sent to clients for every failure.
type ErrorResponse struct {
	Success bool              `json:"success" example:"false"`
	Error   string            `json:"error" example:"A description of the error"`
	Fields  map[string]string `json:"fields,omitempty"`
	// Details exposes the underlying error message and is only populated in
	// non-production builds.
	Details string `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse. When includeDetails is
// true and an underlying error exists, its message is exposed; production
// builds must pass false.
func (e *AppError) ToResponse(includeDetails bool) ErrorResponse {
	resp := ErrorResponse{
		Success: false,
		Error:   e.Message,
		Fields:  e.Fields,
	}
	if includeDetails && e.Err != nil {
		resp.Details = e.Err.Error()
	}
	return resp
}

// FromError attempts to convert a generic error to an *AppError. It returns
// the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError checks if an error is an AuthError.
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsValidationError checks if an error is a Validation error.
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflictError checks if an error is a Conflict error.
func IsConflictError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}

// IsCredentialsError checks if an error is a Credentials error.
func IsCredentialsError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == CredentialsError
}
