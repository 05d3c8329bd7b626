// Package errs provides standardized error types for the takeout application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package defines one error type per failure class:
//   - ValidationError: malformed or out-of-range input, not retried
//   - NotFoundError: a referenced order/courier is absent
//   - ForbiddenError: the actor is not authorized for the target object
//   - ConflictError: the current state disallows an otherwise valid request
//   - UpstreamUnavailableError: an external provider failed; a fallback applies
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict) matched with errors.Is
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel for classification
//
// All errors are returned synchronously to the caller of an operation; none
// are swallowed except where an operation is documented as best-effort.
package errs
