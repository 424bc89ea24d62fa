// Package errs provides standardized error types for the restaurant backend.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid (validation errors surfaced to the user)
//   - ValueIsOutOfRangeError: For numeric settings outside their bounds
//   - ObjectNotFoundError: For when an object cannot be found in the caller's tenant
//   - AuthError: For auth provider failures, carrying the provider code and user message
//   - AccessDeniedError: For role/tenant mismatches that end the session
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is support against the sentinel
package errs
