package screen

import "errors"

// Validation messages shared across screens and the interactive picker.
const (
	MissingRepositoryMessage = "Please enter a GitHub repository URL"
	EmptySelectionMessage    = "Please select at least one file"
)

// UserFacingError carries the fixed message shown to the user for a failed request.
// The cause is kept for diagnostics and never rendered.
type UserFacingError struct {
	Message string
	Cause   error
}

// Error returns the user-facing message.
func (userFacingError UserFacingError) Error() string {
	return userFacingError.Message
}

// Unwrap exposes the underlying cause.
func (userFacingError UserFacingError) Unwrap() error {
	return userFacingError.Cause
}

// ValidationError reports input rejected locally before any request was issued.
type ValidationError struct {
	Message string
}

// Error returns the validation message.
func (validationError ValidationError) Error() string {
	return validationError.Message
}

// IsValidationError reports whether the error chain contains a ValidationError.
func IsValidationError(candidate error) bool {
	var validationError ValidationError
	return errors.As(candidate, &validationError)
}
