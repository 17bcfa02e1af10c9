package backend

import (
	"errors"
	"fmt"
)

const (
	httpClientNotConfiguredMessageConstant   = "backend http client not configured"
	baseURLNotConfiguredMessageConstant      = "backend base url not configured"
	operationErrorMessageTemplateConstant    = "%s operation failed"
	operationErrorWithCauseTemplateConstant  = "%s operation failed: %s"
	responseDecodingErrorTemplateConstant    = "%s response decoding failed: %s"
	payloadEncodingErrorTemplateConstant     = "%s payload encoding failed: %s"
	unexpectedStatusErrorTemplateConstant    = "%s returned unexpected status %d"
	invalidInputErrorTemplateConstant        = "%s: %s"
	invalidBaseURLErrorTemplateConstant      = "invalid backend base url %q: %s"
	requestConstructionErrorTemplateConstant = "%s request construction failed: %s"
)

// OperationName describes a named backend workflow supported by the client.
type OperationName string

var (
	// ErrHTTPClientNotConfigured indicates the client was constructed without an HTTP client.
	ErrHTTPClientNotConfigured = errors.New(httpClientNotConfiguredMessageConstant)
	// ErrBaseURLNotConfigured indicates the client was constructed without a backend base URL.
	ErrBaseURLNotConfigured = errors.New(baseURLNotConfiguredMessageConstant)
)

// InvalidInputError surfaces validation issues for operation inputs.
type InvalidInputError struct {
	FieldName string
	Message   string
}

// Error describes the invalid input.
func (inputError InvalidInputError) Error() string {
	return fmt.Sprintf(invalidInputErrorTemplateConstant, inputError.FieldName, inputError.Message)
}

// InvalidBaseURLError reports a base URL that cannot address the backend.
type InvalidBaseURLError struct {
	BaseURL string
	Cause   error
}

// Error describes the invalid base URL.
func (baseURLError InvalidBaseURLError) Error() string {
	return fmt.Sprintf(invalidBaseURLErrorTemplateConstant, baseURLError.BaseURL, baseURLError.Cause)
}

// Unwrap exposes the parse failure.
func (baseURLError InvalidBaseURLError) Unwrap() error {
	return baseURLError.Cause
}

// OperationError wraps transport failures for backend operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError OperationError) Unwrap() error {
	return operationError.Cause
}

// UnexpectedStatusError reports a non-2xx backend response. The body is not interpreted.
type UnexpectedStatusError struct {
	Operation  OperationName
	StatusCode int
}

// Error describes the unexpected status.
func (statusError UnexpectedStatusError) Error() string {
	return fmt.Sprintf(unexpectedStatusErrorTemplateConstant, statusError.Operation, statusError.StatusCode)
}

// ResponseDecodingError indicates JSON decoding failures.
type ResponseDecodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the decoding failure.
func (decodingError ResponseDecodingError) Error() string {
	return fmt.Sprintf(responseDecodingErrorTemplateConstant, decodingError.Operation, decodingError.Cause)
}

// Unwrap exposes the underlying JSON error.
func (decodingError ResponseDecodingError) Unwrap() error {
	return decodingError.Cause
}

// PayloadEncodingError indicates JSON encoding issues.
type PayloadEncodingError struct {
	Operation OperationName
	Cause     error
}

// Error describes the encoding failure.
func (encodingError PayloadEncodingError) Error() string {
	return fmt.Sprintf(payloadEncodingErrorTemplateConstant, encodingError.Operation, encodingError.Cause)
}

// Unwrap exposes the underlying error.
func (encodingError PayloadEncodingError) Unwrap() error {
	return encodingError.Cause
}

// RequestConstructionError indicates the HTTP request could not be assembled.
type RequestConstructionError struct {
	Operation OperationName
	Cause     error
}

// Error describes the construction failure.
func (constructionError RequestConstructionError) Error() string {
	return fmt.Sprintf(requestConstructionErrorTemplateConstant, constructionError.Operation, constructionError.Cause)
}

// Unwrap exposes the underlying error.
func (constructionError RequestConstructionError) Unwrap() error {
	return constructionError.Cause
}
