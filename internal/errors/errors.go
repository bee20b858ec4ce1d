package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents one failed field validation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters.
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details.
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios.
var (
	// 400 Bad Request
	ErrInvalidRequest   = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrInvalidParameter = New(http.StatusBadRequest, "INVALID_PARAMETER", "Invalid parameter value")

	// 404 Not Found
	ErrNotFound = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")

	// 422 Unprocessable Entity
	ErrEmptyFilterResult = New(http.StatusUnprocessableEntity, "EMPTY_FILTER_RESULT",
		"No transactions match the selected months; adjust your filter")

	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")

	// 500 Internal Server Error
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	ErrSchemaDefect   = New(http.StatusInternalServerError, "SCHEMA_DEFECT", "Source data violates the expected schema")

	// 503 Service Unavailable
	ErrSourceUnavailable = New(http.StatusServiceUnavailable, "SOURCE_UNAVAILABLE",
		"Transaction source could not be loaded")
)

// InvalidRequestWithError creates an invalid request error with details.
func InvalidRequestWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format", err.Error())
}

// ErrValidation creates a validation error with field details.
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", ValidationError{
		Field:   field,
		Message: message,
	})
}

// SourceUnavailableError wraps a loader failure.
func SourceUnavailableError(err error) *APIError {
	return NewWithDetails(http.StatusServiceUnavailable, "SOURCE_UNAVAILABLE",
		"Transaction source could not be loaded", err.Error())
}

// EmptyFilterResultError reports which selection matched nothing.
func EmptyFilterResultError(months []int) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "EMPTY_FILTER_RESULT",
		"No transactions match the selected months; adjust your filter",
		fmt.Sprintf("selected months: %v", months))
}

// SchemaDefectError wraps a canonical-schema violation found in derived data.
func SchemaDefectError(err error) *APIError {
	return NewWithDetails(http.StatusInternalServerError, "SCHEMA_DEFECT",
		"Source data violates the expected schema", err.Error())
}

// ErrorResponse represents a standard error response envelope.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(err *APIError) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Error:   err,
	}
}

// Render implements the render.Renderer interface.
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.Error.StatusCode)
	return nil
}
