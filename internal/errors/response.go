package errors

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
)

// ErrorResponse represents the standardized API error response structure
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the detailed error information
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id"`
}

// ErrorOption is a functional option for configuring error responses
type ErrorOption func(*ErrorResponse)

// WithDetails adds detail messages to the error response
func WithDetails(details ...string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Details = details
	}
}

// WithMessage overrides the default message for the error code
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Message = message
	}
}

// NewErrorResponse creates a standardized error response with the given error code and trace ID
// Optional details can be added using functional options
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := &ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: GetErrorMessage(code),
			TraceID: traceID,
			Details: []string{},
		},
	}

	// Apply functional options
	for _, opt := range opts {
		opt(response)
	}

	return response
}

// NewValidationError builds a VALIDATION_001 response with one "field: message" detail per
// field, sorted by field name
func NewValidationError(fieldErrors map[string]string, traceID string) *ErrorResponse {
	details := make([]string, 0, len(fieldErrors))
	for _, field := range slices.Sorted(maps.Keys(fieldErrors)) {
		details = append(details, fmt.Sprintf("%s: %s", field, fieldErrors[field]))
	}

	return NewErrorResponse(ValidationGeneral, traceID, WithDetails(details...))
}

// WrapSystemError hides err behind the generic SYSTEM_001 message.
// err is returned unchanged for server-side logging.
func WrapSystemError(err error, traceID string) (*ErrorResponse, error) {
	return NewErrorResponse(SystemInternalError, traceID), err
}

// WrapStorageError reports a failed KV write without exposing backend details
func WrapStorageError(err error, traceID string) (*ErrorResponse, error) {
	return NewErrorResponse(SystemStorageError, traceID), err
}

var httpStatusByCode = map[ErrorCode]int{
	ValidationGeneral:           http.StatusBadRequest,
	ValidationRequiredField:     http.StatusBadRequest,
	ValidationInvalidFormat:     http.StatusBadRequest,
	ValidationOutOfRange:        http.StatusBadRequest,
	ValidationInvalidDate:       http.StatusBadRequest,
	TransactionInvalidAmount:    http.StatusBadRequest,
	TransactionInvalidID:        http.StatusBadRequest,
	BudgetInvalidAmount:         http.StatusBadRequest,
	BudgetInvalidCategory:       http.StatusBadRequest,
	CategoryInvalidType:         http.StatusBadRequest,
	TransactionNotFound:         http.StatusNotFound,
	BudgetNotFound:              http.StatusNotFound,
	SystemResourceNotFound:      http.StatusNotFound,
	TransactionNothingToClear:   http.StatusConflict,
	TransactionValidationFailed: http.StatusUnprocessableEntity,
	TransactionInvalidType:      http.StatusUnprocessableEntity,
	BudgetValidationFailed:      http.StatusUnprocessableEntity,
	SystemRateLimitExceeded:     http.StatusTooManyRequests,
	SystemServiceUnavailable:    http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status for an error code. Unlisted codes are 500.
func GetHTTPStatus(code ErrorCode) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Error.Code))
}

// IsClientError returns true if the error is a 4xx client error
func (er *ErrorResponse) IsClientError() bool {
	status := er.GetHTTPStatus()
	return status >= 400 && status < 500
}

func (er *ErrorResponse) IsServerError() bool {
	return er.GetHTTPStatus() >= 500
}

// String returns a string representation of the error response
func (er *ErrorResponse) String() string {
	return fmt.Sprintf("[%s] %s (trace: %s)", er.Error.Code, er.Error.Message, er.Error.TraceID)
}
