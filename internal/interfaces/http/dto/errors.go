package dto

import (
	"net/http"
	"strings"
)

// Error code constants for errors raised at the HTTP layer itself.
// Domain errors keep their own codes and are passed through unchanged.

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeRequestTooLarge is used when the request body exceeds the limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Availability error codes
const (
	// ErrCodeServiceUnavailable is used when a dependency is down
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps HTTP-layer error codes to status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeNotFound: http.StatusNotFound,
	ErrCodeConflict: http.StatusConflict,

	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
}

// DomainCodeHTTPStatus maps domain error codes to status codes. Codes
// starting with INVALID_ that are not listed here fall through to 400.
var DomainCodeHTTPStatus = map[string]int{
	// Missing resources
	"NOT_FOUND":          http.StatusNotFound,
	"PROPERTY_NOT_FOUND": http.StatusNotFound,

	// Conflicts
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// State rule violations
	"INVALID_STATE":    http.StatusUnprocessableEntity,
	"NO_PAYMENT_DAY":   http.StatusUnprocessableEntity,
	"STORAGE_LOCATION": http.StatusUnprocessableEntity,

	// Input validation
	"INVALID_INPUT":       http.StatusBadRequest,
	"MISSING_PAYMENT_DAY": http.StatusBadRequest,
	"MISSING_TENANT":      http.StatusBadRequest,

	// Dependency failures
	"CACHE_DOWN": http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unlisted codes with an INVALID_ prefix map to 400; anything else
// maps to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if status, ok := DomainCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
