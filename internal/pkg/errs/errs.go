package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	// ErrValidation indicates malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates a referenced object is absent.
	ErrNotFound = errors.New("object not found")
	// ErrForbidden indicates the acting party is not authorized for the target.
	ErrForbidden = errors.New("operation forbidden")
	// ErrConflict indicates a valid request that the current state disallows.
	ErrConflict = errors.New("state conflict")
	// ErrUpstreamUnavailable indicates an external provider failed or timed out.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// ValidationError is returned when an input value is malformed or out of range.
// The request should not be retried without correction.
type ValidationError struct {
	ParamName string
	Cause     error
}

// NewValidationError creates a ValidationError for the given parameter.
func NewValidationError(paramName string) *ValidationError {
	return &ValidationError{ParamName: paramName}
}

// NewValidationErrorWithCause creates a ValidationError wrapping an underlying cause.
func NewValidationErrorWithCause(paramName string, cause error) *ValidationError {
	return &ValidationError{ParamName: paramName, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValidation, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, sanitize(e.ParamName))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError is returned when a referenced order, courier or other object
// does not exist in storage.
type NotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewNotFoundError creates a NotFoundError for the given parameter and identifier.
func NewNotFoundError(paramName string, id any) *NotFoundError {
	return &NotFoundError{ParamName: paramName, ID: id}
}

// NewNotFoundErrorWithCause creates a NotFoundError wrapping an underlying cause.
func NewNotFoundErrorWithCause(paramName string, id any, cause error) *NotFoundError {
	return &NotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *NotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrNotFound, sanitize(e.ParamName), e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s %v", ErrNotFound, sanitize(e.ParamName), e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ForbiddenError is returned when the acting party is not permitted to perform
// the requested operation on the target object, e.g. a courier advancing an
// order assigned to someone else.
type ForbiddenError struct {
	ActorRole string
	Reason    string
}

// NewForbiddenError creates a ForbiddenError naming the actor role and the reason.
func NewForbiddenError(actorRole string, reason string) *ForbiddenError {
	return &ForbiddenError{ActorRole: actorRole, Reason: reason}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrForbidden, sanitize(e.ActorRole), sanitize(e.Reason))
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// ConflictError is returned when a well-formed request cannot be applied in
// the object's current state, e.g. canceling a delivering order or losing a
// pickup race.
type ConflictError struct {
	Message string
}

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConflict, sanitize(e.Message))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// UpstreamUnavailableError is returned when an external provider (routing,
// payment gateway) fails or times out. Callers always have a local fallback.
type UpstreamUnavailableError struct {
	Service string
	Cause   error
}

// NewUpstreamUnavailableError creates an UpstreamUnavailableError for a service.
func NewUpstreamUnavailableError(service string, cause error) *UpstreamUnavailableError {
	return &UpstreamUnavailableError{Service: service, Cause: cause}
}

func (e *UpstreamUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrUpstreamUnavailable, sanitize(e.Service), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrUpstreamUnavailable, sanitize(e.Service))
}

func (e *UpstreamUnavailableError) Unwrap() error {
	return ErrUpstreamUnavailable
}

// sanitize strips newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}
